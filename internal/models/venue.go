package models

import (
	"time"
)

// Venue represents a scheduled game session at a sports venue
type Venue struct {
	// ID is the unique identifier for the venue
	ID string

	// Location is the free-text venue location
	Location string

	// Date is the scheduled game date, normalized to the next
	// occurrence of the day.month the organizer entered
	Date time.Time

	// Time is the free-text start time (e.g. "19.00")
	Time string

	// ChatID is the chat the venue was created in
	ChatID int64

	// ChatTitle is the title of the originating chat
	ChatTitle string

	// OwnerID is the external identity of the organizer
	OwnerID int64

	// CreatedAt is when the venue was created
	CreatedAt time.Time

	// UpdatedAt is when the venue was last updated
	UpdatedAt time.Time
}
