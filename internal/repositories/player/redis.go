package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nurd-os/team-sorter/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	playerKeyPrefix   = "player:"
	externalKeyPrefix = "player_ext:"
)

// ErrPlayerNotFound is returned when a player is not found
var ErrPlayerNotFound = errors.New("player not found")

// Config holds configuration for the Redis player repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed player repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SavePlayer persists a player to Redis
func (r *redisRepository) SavePlayer(ctx context.Context, input *SavePlayerInput) error {
	if input == nil || input.Player == nil {
		return errors.New("input and player cannot be nil")
	}

	p := input.Player

	// Ensure the player has an ID
	if p.ID == "" {
		return errors.New("player ID cannot be empty")
	}

	// Marshal the player to JSON
	playerJSON, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	// Create a Redis transaction
	pipe := r.client.Pipeline()

	// Save the player
	playerKey := fmt.Sprintf("%s%s", playerKeyPrefix, p.ID)
	pipe.Set(ctx, playerKey, playerJSON, 0)

	// Guests registered by a friend have no external identity
	if p.ExternalID != 0 {
		externalKey := fmt.Sprintf("%s%d", externalKeyPrefix, p.ExternalID)
		pipe.Set(ctx, externalKey, p.ID, 0)
	}

	// Execute the transaction
	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}

	return nil
}

// GetPlayer retrieves a player by ID from Redis
func (r *redisRepository) GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.Player, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	// Get the player from Redis
	playerKey := fmt.Sprintf("%s%s", playerKeyPrefix, input.PlayerID)
	playerJSON, err := r.client.Get(ctx, playerKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	// Unmarshal the player from JSON
	var p models.Player
	if err := json.Unmarshal([]byte(playerJSON), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player: %w", err)
	}

	return &p, nil
}

// GetPlayerByExternalID retrieves a player by chat platform identity
func (r *redisRepository) GetPlayerByExternalID(ctx context.Context, input *GetPlayerByExternalIDInput) (*models.Player, error) {
	if input == nil || input.ExternalID == 0 {
		return nil, errors.New("input and external ID cannot be empty")
	}

	// Get the player ID from the external identity index
	externalKey := fmt.Sprintf("%s%d", externalKeyPrefix, input.ExternalID)
	playerID, err := r.client.Get(ctx, externalKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player ID for external identity: %w", err)
	}

	// Get the player using the player ID
	return r.GetPlayer(ctx, &GetPlayerInput{
		PlayerID: playerID,
	})
}

// GetPlayers retrieves a batch of players by ID from Redis
func (r *redisRepository) GetPlayers(ctx context.Context, input *GetPlayersInput) (*GetPlayersOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	// If there are no IDs, return an empty map
	if len(input.PlayerIDs) == 0 {
		return &GetPlayersOutput{
			Players: map[string]*models.Player{},
		}, nil
	}

	// Get all player records in parallel using a pipeline
	pipe := r.client.Pipeline()
	playerCommands := make(map[string]*redis.StringCmd)

	for _, playerID := range input.PlayerIDs {
		playerKey := fmt.Sprintf("%s%s", playerKeyPrefix, playerID)
		playerCommands[playerID] = pipe.Get(ctx, playerKey)
	}

	// Execute the pipeline
	_, err := pipe.Exec(ctx)
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}

	// Process the results
	players := make(map[string]*models.Player, len(input.PlayerIDs))
	for playerID, cmd := range playerCommands {
		playerJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Player was deleted between listing and fetching
				continue
			}
			return nil, fmt.Errorf("failed to get player %s: %w", playerID, err)
		}

		var p models.Player
		if err := json.Unmarshal([]byte(playerJSON), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal player %s: %w", playerID, err)
		}

		players[playerID] = &p
	}

	return &GetPlayersOutput{
		Players: players,
	}, nil
}
