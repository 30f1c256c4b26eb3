package venue

import (
	"context"

	"github.com/nurd-os/team-sorter/internal/models"
)

// Repository defines the interface for venue data persistence
type Repository interface {
	// SaveVenue persists a venue
	SaveVenue(ctx context.Context, input *SaveVenueInput) error

	// GetVenue retrieves a venue by ID
	GetVenue(ctx context.Context, input *GetVenueInput) (*models.Venue, error)

	// GetVenueByChat retrieves the venue created in a chat
	GetVenueByChat(ctx context.Context, input *GetVenueByChatInput) (*models.Venue, error)

	// DeleteVenue removes a venue
	DeleteVenue(ctx context.Context, input *DeleteVenueInput) error
}
