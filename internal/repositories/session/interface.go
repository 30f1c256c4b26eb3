package session

import (
	"context"

	"github.com/nurd-os/team-sorter/internal/models"
)

// Repository defines the interface for conversation session persistence
type Repository interface {
	// SaveSession persists a chat's conversation session
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession retrieves a chat's conversation session
	GetSession(ctx context.Context, input *GetSessionInput) (*models.ConversationSession, error)

	// DeleteSession discards a chat's conversation session
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error
}
