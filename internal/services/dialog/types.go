package dialog

import (
	"github.com/nurd-os/team-sorter/internal/common/clock"
	"github.com/nurd-os/team-sorter/internal/common/uuid"
	"github.com/nurd-os/team-sorter/internal/models"
	adminRepo "github.com/nurd-os/team-sorter/internal/repositories/admin"
	sessionRepo "github.com/nurd-os/team-sorter/internal/repositories/session"
	venueRepo "github.com/nurd-os/team-sorter/internal/repositories/venue"
	"github.com/nurd-os/team-sorter/internal/services/roster"
)

// Config holds configuration for the dialog service
type Config struct {
	// AuthURL is the login link handed out by the login command
	AuthURL string

	// Repository dependencies
	SessionRepo sessionRepo.Repository
	VenueRepo   venueRepo.Repository
	AdminRepo   adminRepo.Repository

	// Service dependencies
	RosterService roster.Service
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// Result tags what a free-text message did to the conversation
type Result string

const (
	// ResultNoFlow means no flow was awaiting input in this chat
	ResultNoFlow Result = "no_flow"

	// ResultLocationSaved means the location was stored; date is next
	ResultLocationSaved Result = "location_saved"

	// ResultDateSaved means the date was stored; time is next
	ResultDateSaved Result = "date_saved"

	// ResultVenueCreated means the venue was created and persisted
	ResultVenueCreated Result = "venue_created"

	// ResultFriendSaved means the guest was registered
	ResultFriendSaved Result = "friend_saved"

	// ResultFriendError means the guest could not be saved
	ResultFriendError Result = "friend_error"

	// ResultTeamsSorted means the division succeeded
	ResultTeamsSorted Result = "teams_sorted"

	// ResultRatingSaved means the rating update succeeded
	ResultRatingSaved Result = "rating_saved"

	// ResultInvalidArgument means the input failed the current step's
	// validation; the step is unchanged and awaits a corrected retry
	ResultInvalidArgument Result = "invalid_argument"

	// ResultPersistenceError means a store operation failed; the step
	// is unchanged so the input can be retried
	ResultPersistenceError Result = "persistence_error"
)

// LoginInput contains parameters for the login command
type LoginInput struct {
	ExternalID int64
}

// LoginOutput contains the authentication link
type LoginOutput struct {
	URL string
}

// RequestAdminInput contains parameters for an elevation request
type RequestAdminInput struct {
	ExternalID int64
	Username   string
}

// RequestAdminOutput contains the result of an elevation request
type RequestAdminOutput struct {
	// AlreadyRequested is true when a request was already pending
	AlreadyRequested bool
}

// StartVenueCreationInput contains parameters for entering the
// venue-creation flow
type StartVenueCreationInput struct {
	ChatID     int64
	ExternalID int64
}

// StartVenueCreationOutput contains the result of entering the flow
type StartVenueCreationOutput struct {
	Authorized bool
}

// StartTeamSortInput contains parameters for entering the
// team-division flow
type StartTeamSortInput struct {
	ChatID     int64
	ExternalID int64
}

// StartTeamSortOutput contains the result of entering the flow
type StartTeamSortOutput struct {
	Authorized bool
	VenueFound bool
}

// StartRatingUpdateInput contains parameters for entering the
// rating-update flow
type StartRatingUpdateInput struct {
	ChatID     int64
	ExternalID int64
}

// StartRatingUpdateOutput contains the result of entering the flow
type StartRatingUpdateOutput struct {
	Authorized bool
	VenueFound bool
}

// BeginFriendEntryInput contains parameters for entering the
// guest-registration flow
type BeginFriendEntryInput struct {
	ChatID            int64
	OwnerExternalID   int64
	VenueID           string
	CallbackChatID    int64
	CallbackMessageID int
}

// BeginFriendEntryOutput contains the result of entering the flow
type BeginFriendEntryOutput struct{}

// HandleMessageInput contains one inbound free-text message
type HandleMessageInput struct {
	ChatID     int64
	ChatTitle  string
	ExternalID int64
	Text       string
}

// HandleMessageOutput tags what the message did and carries the data
// the transport needs to reply
type HandleMessageOutput struct {
	Result Result

	// Venue is set when Result is ResultVenueCreated
	Venue *models.Venue

	// Guest is set when Result is ResultFriendSaved
	Guest *models.Player

	// Player is set when Result is ResultRatingSaved
	Player *models.Player

	// Teams and Benched are set when Result is ResultTeamsSorted
	Teams   []*models.Team
	Benched []*models.Player

	// RerenderChatID and RerenderMessageID identify the venue summary
	// to refresh after ResultFriendSaved
	RerenderChatID    int64
	RerenderMessageID int

	// RerenderVenueID is the venue whose summary should be refreshed
	RerenderVenueID string
}
