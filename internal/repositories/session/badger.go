package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/nurd-os/team-sorter/internal/models"
)

// ErrSessionNotFound is returned when a chat has no session
var ErrSessionNotFound = errors.New("session not found")

// Config holds configuration for the Badger session repository
type Config struct {
	// Badger database handle
	DB *badger.DB
}

// badgerRepository implements the Repository interface using Badger.
// Sessions are ephemeral per-chat state, so a local embedded store is
// enough; shared records live in Redis.
type badgerRepository struct {
	db *badger.DB
}

// NewBadger creates a new Badger-backed session repository
func NewBadger(cfg *Config) (*badgerRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.DB == nil {
		return nil, errors.New("badger db cannot be nil")
	}

	return &badgerRepository{
		db: cfg.DB,
	}, nil
}

func sessionKey(chatID int64) []byte {
	return []byte(fmt.Sprintf("session:%d", chatID))
}

// SaveSession persists a chat's conversation session
func (r *badgerRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	if input.Session.ChatID == 0 {
		return errors.New("session chat ID cannot be empty")
	}

	sessionJSON, err := json.Marshal(input.Session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(sessionKey(input.Session.ChatID), sessionJSON)
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GetSession retrieves a chat's conversation session
func (r *badgerRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.ConversationSession, error) {
	if input == nil || input.ChatID == 0 {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	var sess models.ConversationSession
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(input.ChatID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &sess)
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &sess, nil
}

// DeleteSession discards a chat's conversation session
func (r *badgerRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.ChatID == 0 {
		return errors.New("input and chat ID cannot be empty")
	}

	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(sessionKey(input.ChatID))
	})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
