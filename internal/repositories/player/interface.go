package player

import (
	"context"

	"github.com/nurd-os/team-sorter/internal/models"
)

// Repository defines the interface for player data persistence
type Repository interface {
	// SavePlayer persists a player
	SavePlayer(ctx context.Context, input *SavePlayerInput) error

	// GetPlayer retrieves a player by ID
	GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.Player, error)

	// GetPlayerByExternalID retrieves a player by chat platform identity
	GetPlayerByExternalID(ctx context.Context, input *GetPlayerByExternalIDInput) (*models.Player, error)

	// GetPlayers retrieves a batch of players by ID
	GetPlayers(ctx context.Context, input *GetPlayersInput) (*GetPlayersOutput, error)
}
