package roster

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/nurd-os/team-sorter/internal/services/roster Service

// Service defines the interface for roster operations
type Service interface {
	// AddPlayer signs a chat member up for a venue
	AddPlayer(ctx context.Context, input *AddPlayerInput) (*AddPlayerOutput, error)

	// AddFriend signs up a guest on behalf of a chat member
	AddFriend(ctx context.Context, input *AddFriendInput) (*AddFriendOutput, error)

	// RemovePlayer takes a chat member off a venue's roster
	RemovePlayer(ctx context.Context, input *RemovePlayerInput) (*RemovePlayerOutput, error)

	// RemoveFriend takes a chat member's most recent guest off the roster
	RemoveFriend(ctx context.Context, input *RemoveFriendInput) (*RemovePlayerOutput, error)

	// GetRoster returns a venue's players in join order with positions
	GetRoster(ctx context.Context, input *GetRosterInput) (*GetRosterOutput, error)

	// SortTeams partitions the admitted roster into teams
	SortTeams(ctx context.Context, input *SortTeamsInput) (*SortTeamsOutput, error)

	// UpdateRating sets the rating of the player at a roster position
	UpdateRating(ctx context.Context, input *UpdateRatingInput) (*UpdateRatingOutput, error)
}
