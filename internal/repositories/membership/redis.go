package membership

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
	membershipKeyPrefix = "membership:"
	rosterKeyPrefix     = "venue_roster:"
	rosterSeqKeyPrefix  = "venue_roster_seq:"
)

var (
	// ErrMembershipNotFound is returned when a membership is not found
	ErrMembershipNotFound = errors.New("membership not found")

	// ErrAlreadyJoined is returned when the player already has an
	// active membership for the venue
	ErrAlreadyJoined = errors.New("player already joined venue")
)

// Config holds configuration for the Redis membership repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed membership repository
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

func membershipKey(venueID, playerID string) string {
	return fmt.Sprintf("%s%s:%s", membershipKeyPrefix, venueID, playerID)
}

// CreateMembership signs a player up for a venue. The join sequence
// number comes from a per-venue counter, so roster order is the order
// in which creations reached Redis.
func (r *redisRepository) CreateMembership(ctx context.Context, input *CreateMembershipInput) (*CreateMembershipOutput, error) {
	if input == nil || input.Membership == nil {
		return nil, errors.New("input and membership cannot be nil")
	}

	m := input.Membership
	if m.ID == "" || m.VenueID == "" || m.PlayerID == "" {
		return nil, errors.New("membership ID, venue ID and player ID cannot be empty")
	}

	// At most one active membership per (venue, player)
	rosterKey := fmt.Sprintf("%s%s", rosterKeyPrefix, m.VenueID)
	_, err := r.client.ZScore(ctx, rosterKey, m.PlayerID).Result()
	if err == nil {
		return nil, ErrAlreadyJoined
	}
	if err != redis.Nil {
		return nil, fmt.Errorf("failed to check existing membership: %w", err)
	}

	// Take the next join sequence number
	seqKey := fmt.Sprintf("%s%s", rosterSeqKeyPrefix, m.VenueID)
	seq, err := r.client.Incr(ctx, seqKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate join sequence: %w", err)
	}
	m.Seq = seq

	// Marshal the membership to JSON
	membershipJSON, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal membership: %w", err)
	}

	// Create a Redis transaction
	pipe := r.client.Pipeline()

	// Save the membership record
	pipe.Set(ctx, membershipKey(m.VenueID, m.PlayerID), membershipJSON, 0)

	// Add the player to the venue's ordered roster
	pipe.ZAdd(ctx, rosterKey, redis.Z{
		Score:  float64(seq),
		Member: m.PlayerID,
	})

	// Execute the transaction
	_, err = pipe.Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to save membership: %w", err)
	}

	return &CreateMembershipOutput{Membership: m}, nil
}

// GetMembership retrieves one (venue, player) membership from Redis
func (r *redisRepository) GetMembership(ctx context.Context, input *GetMembershipInput) (*models.Membership, error) {
	if input == nil || input.VenueID == "" || input.PlayerID == "" {
		return nil, errors.New("input, venue ID and player ID cannot be empty")
	}

	membershipJSON, err := r.client.Get(ctx, membershipKey(input.VenueID, input.PlayerID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	var m models.Membership
	if err := json.Unmarshal([]byte(membershipJSON), &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal membership: %w", err)
	}

	return &m, nil
}

// DeleteMembership removes a player from a venue's roster
func (r *redisRepository) DeleteMembership(ctx context.Context, input *DeleteMembershipInput) error {
	if input == nil || input.VenueID == "" || input.PlayerID == "" {
		return errors.New("input, venue ID and player ID cannot be empty")
	}

	// Verify the membership exists first
	if _, err := r.GetMembership(ctx, &GetMembershipInput{
		VenueID:  input.VenueID,
		PlayerID: input.PlayerID,
	}); err != nil {
		return err
	}

	// Create a Redis transaction
	pipe := r.client.Pipeline()

	// Remove the player from the ordered roster
	rosterKey := fmt.Sprintf("%s%s", rosterKeyPrefix, input.VenueID)
	pipe.ZRem(ctx, rosterKey, input.PlayerID)

	// Delete the membership record
	pipe.Del(ctx, membershipKey(input.VenueID, input.PlayerID))

	// Execute the transaction
	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}

	return nil
}

// GetRoster retrieves a venue's memberships in join order from Redis
func (r *redisRepository) GetRoster(ctx context.Context, input *GetRosterInput) (*GetRosterOutput, error) {
	if input == nil || input.VenueID == "" {
		return nil, errors.New("input and venue ID cannot be empty")
	}

	// Get the player IDs in join order
	rosterKey := fmt.Sprintf("%s%s", rosterKeyPrefix, input.VenueID)
	playerIDs, err := r.client.ZRange(ctx, rosterKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get roster for venue: %w", err)
	}

	// If there are no members, return an empty slice
	if len(playerIDs) == 0 {
		return &GetRosterOutput{
			Memberships: []*models.Membership{},
		}, nil
	}

	// Get all membership records in parallel using a pipeline
	pipe := r.client.Pipeline()
	membershipCommands := make([]*redis.StringCmd, len(playerIDs))

	for i, playerID := range playerIDs {
		membershipCommands[i] = pipe.Get(ctx, membershipKey(input.VenueID, playerID))
	}

	// Execute the pipeline
	_, err = pipe.Exec(ctx)
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get memberships: %w", err)
	}

	// Process the results, preserving join order
	memberships := make([]*models.Membership, 0, len(playerIDs))
	for i, cmd := range membershipCommands {
		membershipJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Membership was deleted between listing and fetching
				continue
			}
			return nil, fmt.Errorf("failed to get membership for player %s: %w", playerIDs[i], err)
		}

		var m models.Membership
		if err := json.Unmarshal([]byte(membershipJSON), &m); err != nil {
			return nil, fmt.Errorf("failed to unmarshal membership for player %s: %w", playerIDs[i], err)
		}

		memberships = append(memberships, &m)
	}

	return &GetRosterOutput{
		Memberships: memberships,
	}, nil
}
