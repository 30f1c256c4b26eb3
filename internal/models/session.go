package models

import (
	"time"
)

// Step identifies the next question a conversation is waiting on
type Step string

const (
	// StepNone indicates no flow is in progress
	StepNone Step = ""

	// StepAwaitLocation waits for the venue location
	StepAwaitLocation Step = "await_location"

	// StepAwaitDate waits for the venue date (day.month)
	StepAwaitDate Step = "await_date"

	// StepAwaitTime waits for the venue start time
	StepAwaitTime Step = "await_time"

	// StepAwaitFriendData waits for a guest's name and rating
	StepAwaitFriendData Step = "await_friend_data"

	// StepAwaitTeamParams waits for team count and players per team
	StepAwaitTeamParams Step = "await_team_params"

	// StepAwaitRatingUpdate waits for a roster position and rating
	StepAwaitRatingUpdate Step = "await_rating_update"
)

// ConversationSession holds the partially collected answers of one
// chat's in-progress flow. Exactly one live session per chat; starting
// a new flow overwrites the fields of any flow in progress.
type ConversationSession struct {
	// ChatID is the chat this session belongs to
	ChatID int64

	// Step is the next expected step
	Step Step

	// Location is the collected venue location
	Location string

	// Date is the collected, normalized venue date
	Date time.Time

	// Time is the collected venue start time
	Time string

	// PendingFriendOwnerID is the external identity of the member
	// registering a guest while Step is StepAwaitFriendData
	PendingFriendOwnerID int64

	// PendingCallbackChatID is the chat whose venue summary should be
	// re-rendered once the pending friend entry completes
	PendingCallbackChatID int64

	// PendingCallbackMessageID is the summary message to re-render
	PendingCallbackMessageID int

	// VenueID is the venue the session is operating on
	VenueID string
}
