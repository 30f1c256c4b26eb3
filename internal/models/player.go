package models

import (
	"time"
)

// Player represents a person who can sign up for venues
type Player struct {
	// ID is the unique identifier for the player
	ID string

	// FirstName is the display name of the player
	FirstName string

	// LastName is the surname of the player
	LastName string

	// Username is the chat platform handle, if any
	Username string

	// ExternalID is the stable chat platform identity.
	// Zero for guests registered through another player.
	ExternalID int64

	// Rating is the player's skill rating; nil until set
	Rating *float64

	// FriendOwnerID is the ID of the player who registered this
	// player as their guest; empty for self-registered players
	FriendOwnerID string

	// CreatedAt is when the player was first seen
	CreatedAt time.Time
}

// DisplayName returns the name shown in roster listings
func (p *Player) DisplayName() string {
	name := p.FirstName
	if p.LastName != "" {
		name += " " + p.LastName
	}
	return name
}
