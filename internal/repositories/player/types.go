package player

import "github.com/nurd-os/team-sorter/internal/models"

// SavePlayerInput contains parameters for saving a player
type SavePlayerInput struct {
	Player *models.Player
}

// GetPlayerInput contains parameters for retrieving a player
type GetPlayerInput struct {
	PlayerID string
}

// GetPlayerByExternalIDInput contains parameters for retrieving a player
// by chat platform identity
type GetPlayerByExternalIDInput struct {
	ExternalID int64
}

// GetPlayersInput contains parameters for retrieving a batch of players
type GetPlayersInput struct {
	PlayerIDs []string
}

// GetPlayersOutput contains the result of retrieving a batch of players
type GetPlayersOutput struct {
	// Players maps player ID to player; missing IDs are absent
	Players map[string]*models.Player
}
