package models

import (
	"time"
)

// Membership represents "player P is currently signed up for venue V"
type Membership struct {
	// ID is the unique identifier for the membership
	ID string

	// VenueID is the venue the player signed up for
	VenueID string

	// PlayerID is the signed-up player
	PlayerID string

	// Seq is the per-venue join sequence number; roster order is
	// ascending Seq
	Seq int64

	// CreatedAt is when the player joined
	CreatedAt time.Time
}
