package membership

import "github.com/nurd-os/team-sorter/internal/models"

// CreateMembershipInput contains parameters for creating a membership.
// Seq is assigned by the repository.
type CreateMembershipInput struct {
	Membership *models.Membership
}

// CreateMembershipOutput contains the result of creating a membership
type CreateMembershipOutput struct {
	Membership *models.Membership
}

// GetMembershipInput contains parameters for retrieving a membership
type GetMembershipInput struct {
	VenueID  string
	PlayerID string
}

// DeleteMembershipInput contains parameters for deleting a membership
type DeleteMembershipInput struct {
	VenueID  string
	PlayerID string
}

// GetRosterInput contains parameters for retrieving a venue's roster
type GetRosterInput struct {
	VenueID string
}

// GetRosterOutput contains a venue's memberships in join order
type GetRosterOutput struct {
	Memberships []*models.Membership
}
