// Package rollhistory provides repository interface and types for recent
// roll history sessions
package rollhistory

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=rollhistorymock github.com/rollforge/roll-api/internal/repositories/rollhistory Repository

// Session is a collection of rolls grouped by entity and context
type Session struct {
	// Entity that owns these rolls (e.g., "char_123", "user_789")
	EntityID string

	// Context for grouping related rolls (e.g., "combat_round_1", "downtime")
	Context string

	// The recorded rolls in this session
	Entries []Entry

	// When this session was created
	CreatedAt time.Time

	// When this session expires
	ExpiresAt time.Time
}

// Entry is a single recorded roll
type Entry struct {
	// Unique identifier for this roll within the session
	RollID string

	// The expression that was rolled (e.g., "4d6kh3+2")
	Expression string

	// Final total after modifiers and arithmetic
	Total int

	// Full human-readable trace of the roll
	Details string

	// "success", "failure", or empty when the roll was not a bare d20
	Critical string

	// Optional caller-supplied label (e.g., "Initiative")
	Label string
}

// CreateInput contains parameters for creating a history session
type CreateInput struct {
	EntityID string
	Context  string
	Entries  []Entry
	TTL      time.Duration // How long the session should live
}

// CreateOutput contains the result of creating a history session
type CreateOutput struct {
	Session *Session
}

// GetInput contains parameters for retrieving a history session
type GetInput struct {
	EntityID string
	Context  string
}

// GetOutput contains the result of retrieving a history session
type GetOutput struct {
	Session *Session
}

// DeleteInput contains parameters for deleting a history session
type DeleteInput struct {
	EntityID string
	Context  string
}

// DeleteOutput contains the result of deleting a history session
type DeleteOutput struct {
	EntriesDeleted int
}

// Repository defines the interface for roll history storage operations
type Repository interface {
	// Create stores a new history session with the specified TTL
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a history session by entity ID and context
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes a history session
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// Update replaces an existing history session (used for appending rolls)
	Update(ctx context.Context, session *Session) error
}
