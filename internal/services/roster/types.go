package roster

import (
	"github.com/nurd-os/team-sorter/internal/common/clock"
	"github.com/nurd-os/team-sorter/internal/common/uuid"
	"github.com/nurd-os/team-sorter/internal/models"
	membershipRepo "github.com/nurd-os/team-sorter/internal/repositories/membership"
	playerRepo "github.com/nurd-os/team-sorter/internal/repositories/player"
	venueRepo "github.com/nurd-os/team-sorter/internal/repositories/venue"
)

// DefaultCapacity is how many players in join order are admitted;
// everyone after is waitlisted
const DefaultCapacity = 18

// Config holds configuration for the roster service
type Config struct {
	// Capacity is the admitted-roster size; defaults to DefaultCapacity
	Capacity int

	// Repository dependencies
	VenueRepo      venueRepo.Repository
	PlayerRepo     playerRepo.Repository
	MembershipRepo membershipRepo.Repository

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// RosterEntry is one row of a venue's ordered roster
type RosterEntry struct {
	// Position is the 1-based join-order position
	Position int

	// Player at this position
	Player *models.Player

	// Admitted is true for the first Capacity positions
	Admitted bool
}

// AddPlayerInput contains parameters for signing up a chat member
type AddPlayerInput struct {
	VenueID    string
	ExternalID int64
	FirstName  string
	LastName   string
	Username   string
}

// AddPlayerOutput contains the result of signing up a chat member
type AddPlayerOutput struct {
	Player   *models.Player
	Position int
	Admitted bool
}

// AddFriendInput contains parameters for signing up a guest
type AddFriendInput struct {
	VenueID string

	// OwnerExternalID is the chat member registering the guest
	OwnerExternalID int64

	// Name is the guest's display name
	Name string

	// Rating is the guest's rating as stated by the owner
	Rating float64
}

// AddFriendOutput contains the result of signing up a guest
type AddFriendOutput struct {
	Player   *models.Player
	Position int
	Admitted bool
}

// RemovePlayerInput contains parameters for removing a chat member
type RemovePlayerInput struct {
	VenueID    string
	ExternalID int64
}

// RemoveFriendInput contains parameters for removing a member's guest
type RemoveFriendInput struct {
	VenueID         string
	OwnerExternalID int64
}

// RemovePlayerOutput contains the result of a roster removal
type RemovePlayerOutput struct {
	// RemovedPlayer is the player taken off the roster
	RemovedPlayer *models.Player

	// RemainingCount is the roster size after removal
	RemainingCount int

	// GameDayDeparture is true when a member of a full roster left on
	// the venue's scheduled date
	GameDayDeparture bool

	// PromotedPlayer is the player who crossed the admission boundary
	// because of this removal; nil when nobody was promoted
	PromotedPlayer *models.Player
}

// GetRosterInput contains parameters for listing a venue's roster
type GetRosterInput struct {
	VenueID string
}

// GetRosterOutput contains a venue's ordered roster
type GetRosterOutput struct {
	Entries []RosterEntry
}

// SortTeamsInput contains parameters for dividing the admitted roster
type SortTeamsInput struct {
	VenueID        string
	TeamCount      int
	PlayersPerTeam int
}

// SortTeamsOutput contains the result of a team division
type SortTeamsOutput struct {
	Teams []*models.Team

	// Benched are admitted players left out of the division
	Benched []*models.Player
}

// UpdateRatingInput contains parameters for a rating update
type UpdateRatingInput struct {
	VenueID string

	// Position is the 1-based roster position at command time
	Position int

	Rating float64
}

// UpdateRatingOutput contains the result of a rating update
type UpdateRatingOutput struct {
	Player *models.Player
}
