package venue

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
	venueKeyPrefix = "venue:"
	chatKeyPrefix  = "chat_venue:"
)

// ErrVenueNotFound is returned when a venue is not found
var ErrVenueNotFound = errors.New("venue not found")

// Config holds configuration for the Redis venue repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed venue repository
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

// SaveVenue persists a venue to Redis
func (r *redisRepository) SaveVenue(ctx context.Context, input *SaveVenueInput) error {
	if input == nil || input.Venue == nil {
		return errors.New("input and venue cannot be nil")
	}

	if input.Venue.ID == "" {
		return errors.New("venue ID cannot be empty")
	}

	// Marshal the venue to JSON
	venueJSON, err := json.Marshal(input.Venue)
	if err != nil {
		return fmt.Errorf("failed to marshal venue: %w", err)
	}

	// Create a Redis transaction
	pipe := r.client.Pipeline()

	// Save the venue
	venueKey := fmt.Sprintf("%s%s", venueKeyPrefix, input.Venue.ID)
	pipe.Set(ctx, venueKey, venueJSON, 0)

	// Update the chat-to-venue mapping
	if input.Venue.ChatID != 0 {
		chatKey := fmt.Sprintf("%s%d", chatKeyPrefix, input.Venue.ChatID)
		pipe.Set(ctx, chatKey, input.Venue.ID, 0)
	}

	// Execute the transaction
	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save venue: %w", err)
	}

	return nil
}

// GetVenue retrieves a venue by ID from Redis
func (r *redisRepository) GetVenue(ctx context.Context, input *GetVenueInput) (*models.Venue, error) {
	if input == nil || input.VenueID == "" {
		return nil, errors.New("input and venue ID cannot be empty")
	}

	// Get the venue from Redis
	venueKey := fmt.Sprintf("%s%s", venueKeyPrefix, input.VenueID)
	venueJSON, err := r.client.Get(ctx, venueKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}

	// Unmarshal the venue from JSON
	var v models.Venue
	if err := json.Unmarshal([]byte(venueJSON), &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal venue: %w", err)
	}

	return &v, nil
}

// GetVenueByChat retrieves the venue created in a chat from Redis
func (r *redisRepository) GetVenueByChat(ctx context.Context, input *GetVenueByChatInput) (*models.Venue, error) {
	if input == nil || input.ChatID == 0 {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	// Get the venue ID from the chat-to-venue mapping
	chatKey := fmt.Sprintf("%s%d", chatKeyPrefix, input.ChatID)
	venueID, err := r.client.Get(ctx, chatKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to get venue ID for chat: %w", err)
	}

	// Get the venue using the venue ID
	return r.GetVenue(ctx, &GetVenueInput{
		VenueID: venueID,
	})
}

// DeleteVenue removes a venue from Redis
func (r *redisRepository) DeleteVenue(ctx context.Context, input *DeleteVenueInput) error {
	if input == nil || input.VenueID == "" {
		return errors.New("input and venue ID cannot be empty")
	}

	// Get the venue first to get its chat ID
	v, err := r.GetVenue(ctx, &GetVenueInput{
		VenueID: input.VenueID,
	})
	if err != nil {
		return err
	}

	// Create a Redis transaction
	pipe := r.client.Pipeline()

	// Delete the venue
	venueKey := fmt.Sprintf("%s%s", venueKeyPrefix, input.VenueID)
	pipe.Del(ctx, venueKey)

	// Delete the chat-to-venue mapping
	if v.ChatID != 0 {
		chatKey := fmt.Sprintf("%s%d", chatKeyPrefix, v.ChatID)
		pipe.Del(ctx, chatKey)
	}

	// Execute the transaction
	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete venue: %w", err)
	}

	return nil
}
