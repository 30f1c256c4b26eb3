package membership

import (
	"context"

	"github.com/nurd-os/team-sorter/internal/models"
)

// Repository defines the interface for roster membership persistence.
// Roster order is the ascending join sequence assigned at creation.
type Repository interface {
	// CreateMembership signs a player up for a venue, assigning the
	// next join sequence number
	CreateMembership(ctx context.Context, input *CreateMembershipInput) (*CreateMembershipOutput, error)

	// GetMembership retrieves one (venue, player) membership
	GetMembership(ctx context.Context, input *GetMembershipInput) (*models.Membership, error)

	// DeleteMembership removes a player from a venue's roster
	DeleteMembership(ctx context.Context, input *DeleteMembershipInput) error

	// GetRoster retrieves a venue's memberships in join order
	GetRoster(ctx context.Context, input *GetRosterInput) (*GetRosterOutput, error)
}
