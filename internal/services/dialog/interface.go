package dialog

import "context"

// Service drives the multi-step conversations. Flow entry points check
// authorization once; free text is interpreted by HandleMessage against
// the chat's current step.
type Service interface {
	// Login returns the authentication link
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// RequestAdmin records an elevation request; idempotent per identity
	RequestAdmin(ctx context.Context, input *RequestAdminInput) (*RequestAdminOutput, error)

	// StartVenueCreation begins the venue-creation flow
	StartVenueCreation(ctx context.Context, input *StartVenueCreationInput) (*StartVenueCreationOutput, error)

	// StartTeamSort begins the team-division flow
	StartTeamSort(ctx context.Context, input *StartTeamSortInput) (*StartTeamSortOutput, error)

	// StartRatingUpdate begins the rating-update flow
	StartRatingUpdate(ctx context.Context, input *StartRatingUpdateInput) (*StartRatingUpdateOutput, error)

	// BeginFriendEntry begins the guest-registration flow for a member
	BeginFriendEntry(ctx context.Context, input *BeginFriendEntryInput) (*BeginFriendEntryOutput, error)

	// HandleMessage interprets free text against the chat's current step
	HandleMessage(ctx context.Context, input *HandleMessageInput) (*HandleMessageOutput, error)
}
