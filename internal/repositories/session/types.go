package session

import "github.com/nurd-os/team-sorter/internal/models"

// SaveSessionInput contains parameters for saving a session
type SaveSessionInput struct {
	Session *models.ConversationSession
}

// GetSessionInput contains parameters for retrieving a session
type GetSessionInput struct {
	ChatID int64
}

// DeleteSessionInput contains parameters for discarding a session
type DeleteSessionInput struct {
	ChatID int64
}
