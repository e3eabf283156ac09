package roller

import (
	"time"

	"github.com/rollforge/roll-api/internal/dicelang"
	"github.com/rollforge/roll-api/internal/repositories/rollhistory"
)

// RollInput defines the request for evaluating one expression
type RollInput struct {
	// Entity and context identify the history session the roll is
	// recorded under. Both empty means the roll is not recorded.
	EntityID string
	Context  string

	// The dice expression, e.g. "4d6kh3+@str"
	Expression string

	// Variable bindings for @name references
	Variables map[string]int

	// Optional display label (e.g., "Initiative")
	Label string

	// How long a newly created history session should live
	TTL time.Duration
}

// RollOutput defines the response for evaluating one expression
type RollOutput struct {
	Result *dicelang.RollResult

	// Chat-ready rendering of Result
	Display string

	// The history session the roll was recorded under, nil when the
	// roll was not recorded
	Session *rollhistory.Session
}

// RollMultipleInput defines the request for repeated independent rolls
type RollMultipleInput struct {
	EntityID   string
	Context    string
	Expression string
	Variables  map[string]int
	Label      string
	Times      int
	TTL        time.Duration
}

// RollMultipleOutput defines the response for repeated independent rolls
type RollMultipleOutput struct {
	Results []*dicelang.RollResult
	Session *rollhistory.Session
}

// ValidateInput defines the request for a static expression check
type ValidateInput struct {
	Expression string
}

// ValidateOutput defines the response for a static expression check
type ValidateOutput struct {
	Valid bool
	Error string
}

// GetHistoryInput defines the request for reading a history session
type GetHistoryInput struct {
	EntityID string
	Context  string
}

// GetHistoryOutput defines the response for reading a history session
type GetHistoryOutput struct {
	Session *rollhistory.Session
}

// ClearHistoryInput defines the request for clearing a history session
type ClearHistoryInput struct {
	EntityID string
	Context  string
}

// ClearHistoryOutput defines the response for clearing a history session
type ClearHistoryOutput struct {
	EntriesDeleted int
}
