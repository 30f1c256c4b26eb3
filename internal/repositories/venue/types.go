package venue

import "github.com/nurd-os/team-sorter/internal/models"

// SaveVenueInput contains parameters for saving a venue
type SaveVenueInput struct {
	Venue *models.Venue
}

// GetVenueInput contains parameters for retrieving a venue
type GetVenueInput struct {
	VenueID string
}

// GetVenueByChatInput contains parameters for retrieving a chat's venue
type GetVenueByChatInput struct {
	ChatID int64
}

// DeleteVenueInput contains parameters for deleting a venue
type DeleteVenueInput struct {
	VenueID string
}
