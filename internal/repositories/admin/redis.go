package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	// Keys for Redis
	adminsKey             = "admins"
	adminRequestKeyPrefix = "admin_request:"
)

// ErrRequestExists is returned when the identity already has a pending
// elevation request
var ErrRequestExists = errors.New("admin request already pending")

// Config holds configuration for the Redis admin repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed admin repository
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

// IsAdmin reports whether an identity has elevated access
func (r *redisRepository) IsAdmin(ctx context.Context, input *IsAdminInput) (*IsAdminOutput, error) {
	if input == nil || input.ExternalID == 0 {
		return nil, errors.New("input and external ID cannot be empty")
	}

	isMember, err := r.client.SIsMember(ctx, adminsKey, fmt.Sprintf("%d", input.ExternalID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check admin membership: %w", err)
	}

	return &IsAdminOutput{IsAdmin: isMember}, nil
}

// AddAdmin grants elevated access to an identity
func (r *redisRepository) AddAdmin(ctx context.Context, input *AddAdminInput) error {
	if input == nil || input.ExternalID == 0 {
		return errors.New("input and external ID cannot be empty")
	}

	// Granting access consumes any pending request
	pipe := r.client.Pipeline()
	pipe.SAdd(ctx, adminsKey, fmt.Sprintf("%d", input.ExternalID))
	pipe.Del(ctx, fmt.Sprintf("%s%d", adminRequestKeyPrefix, input.ExternalID))

	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to add admin: %w", err)
	}

	return nil
}

// CreateAdminRequest records a pending elevation request
func (r *redisRepository) CreateAdminRequest(ctx context.Context, input *CreateAdminRequestInput) error {
	if input == nil || input.Request == nil {
		return errors.New("input and request cannot be nil")
	}

	if input.Request.ExternalID == 0 {
		return errors.New("request external ID cannot be empty")
	}

	requestJSON, err := json.Marshal(input.Request)
	if err != nil {
		return fmt.Errorf("failed to marshal admin request: %w", err)
	}

	// SetNX keeps the operation idempotent per identity
	requestKey := fmt.Sprintf("%s%d", adminRequestKeyPrefix, input.Request.ExternalID)
	created, err := r.client.SetNX(ctx, requestKey, requestJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to save admin request: %w", err)
	}

	if !created {
		return ErrRequestExists
	}

	return nil
}
