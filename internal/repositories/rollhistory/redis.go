package rollhistory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/rollforge/roll-api/internal/errors"
	"github.com/rollforge/roll-api/internal/pkg/clock"
	redisclient "github.com/rollforge/roll-api/internal/redis"
)

const (
	// Key pattern: roll_history:{entity_id}:{context}
	historyKeyPrefix = "roll_history:"
	defaultTTL       = 15 * time.Minute

	// Error messages
	errSessionNil     = "session cannot be nil"
	errEntityIDEmpty  = "entity ID cannot be empty"
	errContextEmpty   = "context cannot be empty"
	errSessionExpired = "session has already expired"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for roll history
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Create stores a new history session with the specified TTL
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument(errEntityIDEmpty)
	}
	if input.Context == "" {
		return nil, errors.InvalidArgument(errContextEmpty)
	}

	now := r.clock.Now()
	ttl := input.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	session := &Session{
		EntityID:  input.EntityID,
		Context:   input.Context,
		Entries:   input.Entries,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	key := r.buildKey(input.EntityID, input.Context)
	err = r.client.Set(ctx, key, sessionJSON, ttl).Err()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to store session in Redis")
	}

	return &CreateOutput{
		Session: session,
	}, nil
}

// Get retrieves a history session by entity ID and context
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument(errEntityIDEmpty)
	}
	if input.Context == "" {
		return nil, errors.InvalidArgument(errContextEmpty)
	}

	key := r.buildKey(input.EntityID, input.Context)

	sessionJSON, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("roll history not found")
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get session from Redis")
	}

	var session Session
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal session")
	}

	// Redis TTL normally cleans these up; the check covers clock skew
	if r.clock.Now().After(session.ExpiresAt) {
		_ = r.client.Del(ctx, key)
		return nil, errors.NotFound("roll history has expired")
	}

	return &GetOutput{
		Session: &session,
	}, nil
}

// Delete removes a history session
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument(errEntityIDEmpty)
	}
	if input.Context == "" {
		return nil, errors.InvalidArgument(errContextEmpty)
	}

	key := r.buildKey(input.EntityID, input.Context)

	// Get the session first to count entries
	getOutput, err := r.Get(ctx, GetInput(input))

	var entriesDeleted int
	if err == nil && getOutput.Session != nil {
		entriesDeleted = len(getOutput.Session.Entries)
	}

	result := r.client.Del(ctx, key)
	if result.Err() != nil {
		return nil, errors.WrapWithCode(result.Err(), errors.CodeUnavailable, "failed to delete session from Redis")
	}

	return &DeleteOutput{
		EntriesDeleted: entriesDeleted,
	}, nil
}

// Update replaces an existing history session (used for appending rolls)
func (r *redisRepository) Update(ctx context.Context, session *Session) error {
	if session == nil {
		return errors.InvalidArgument(errSessionNil)
	}
	if session.EntityID == "" {
		return errors.InvalidArgument(errEntityIDEmpty)
	}
	if session.Context == "" {
		return errors.InvalidArgument(errContextEmpty)
	}

	now := r.clock.Now()
	if now.After(session.ExpiresAt) {
		return errors.InvalidArgument(errSessionExpired)
	}

	remainingTTL := session.ExpiresAt.Sub(now)

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal session")
	}

	key := r.buildKey(session.EntityID, session.Context)
	err = r.client.Set(ctx, key, sessionJSON, remainingTTL).Err()
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to update session in Redis")
	}

	return nil
}

// buildKey creates the Redis key for a history session
func (r *redisRepository) buildKey(entityID, context string) string {
	return fmt.Sprintf("%s%s:%s", historyKeyPrefix, entityID, context)
}
