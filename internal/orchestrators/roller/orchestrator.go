// Package roller implements the roll orchestrator: it evaluates dice
// expressions through the engine and records results in roll history
package roller

import (
	"context"
	"log/slog"
	"time"

	"github.com/rollforge/roll-api/internal/dicelang"
	"github.com/rollforge/roll-api/internal/errors"
	"github.com/rollforge/roll-api/internal/pkg/idgen"
	"github.com/rollforge/roll-api/internal/repositories/rollhistory"
)

//go:generate mockgen -destination=mock/mock_service.go -package=rollermock github.com/rollforge/roll-api/internal/orchestrators/roller Service

const (
	// Default TTL for history sessions
	DefaultHistoryTTL = 15 * time.Minute

	// MaxTimes caps how many repetitions one RollMultiple request may ask for
	MaxTimes = 100
)

// Service defines the interface for roll operations
type Service interface {
	// Expression evaluation
	Roll(ctx context.Context, input *RollInput) (*RollOutput, error)
	RollMultiple(ctx context.Context, input *RollMultipleInput) (*RollMultipleOutput, error)
	Validate(ctx context.Context, input *ValidateInput) (*ValidateOutput, error)

	// Roll history
	GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error)
	ClearHistory(ctx context.Context, input *ClearHistoryInput) (*ClearHistoryOutput, error)
}

// Config holds the dependencies for the roll orchestrator
type Config struct {
	HistoryRepo rollhistory.Repository
	IDGenerator idgen.Generator
	Engine      *dicelang.Engine

	// HistoryTTL is the lifetime of newly created history sessions when
	// the input does not name one; zero means DefaultHistoryTTL
	HistoryTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.HistoryRepo == nil {
		vb.RequiredField("HistoryRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}

	return vb.Build()
}

type orchestrator struct {
	historyRepo rollhistory.Repository
	idGen       idgen.Generator
	engine      *dicelang.Engine
	historyTTL  time.Duration
}

// NewOrchestrator creates a new roll orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	historyTTL := cfg.HistoryTTL
	if historyTTL == 0 {
		historyTTL = DefaultHistoryTTL
	}

	return &orchestrator{
		historyRepo: cfg.HistoryRepo,
		idGen:       cfg.IDGenerator,
		engine:      cfg.Engine,
		historyTTL:  historyTTL,
	}, nil
}

// Roll evaluates one expression and records it in the entity's history
// session when the input names one
func (o *orchestrator) Roll(ctx context.Context, input *RollInput) (*RollOutput, error) {
	if input.Expression == "" {
		return nil, errors.InvalidArgument("expression is required")
	}

	result, err := o.engine.Roll(input.Expression, input.Variables)
	if err != nil {
		return nil, err
	}

	output := &RollOutput{
		Result:  result,
		Display: dicelang.FormatRollForDisplay(result, input.Label),
	}

	if input.EntityID != "" && input.Context != "" {
		session, err := o.recordHistory(ctx, input.EntityID, input.Context, input.TTL, []rollhistory.Entry{
			o.historyEntry(result, input.Label),
		})
		if err != nil {
			return nil, err
		}
		output.Session = session
	}

	slog.Info("Roll evaluated",
		"entity_id", input.EntityID,
		"context", input.Context,
		"expression", input.Expression,
		"total", result.Total,
		"critical", string(result.Critical),
	)

	return output, nil
}

// RollMultiple evaluates the expression Times independent times, each
// run through the full pipeline
func (o *orchestrator) RollMultiple(ctx context.Context, input *RollMultipleInput) (*RollMultipleOutput, error) {
	if input.Expression == "" {
		return nil, errors.InvalidArgument("expression is required")
	}
	if input.Times < 1 || input.Times > MaxTimes {
		return nil, errors.InvalidArgumentf("times must be between 1 and %d, got %d", MaxTimes, input.Times)
	}

	results, err := o.engine.RollMultiple(input.Expression, input.Times, input.Variables)
	if err != nil {
		return nil, err
	}

	output := &RollMultipleOutput{Results: results}

	if input.EntityID != "" && input.Context != "" {
		entries := make([]rollhistory.Entry, 0, len(results))
		for _, result := range results {
			entries = append(entries, o.historyEntry(result, input.Label))
		}
		session, err := o.recordHistory(ctx, input.EntityID, input.Context, input.TTL, entries)
		if err != nil {
			return nil, err
		}
		output.Session = session
	}

	slog.Info("Rolls evaluated",
		"entity_id", input.EntityID,
		"context", input.Context,
		"expression", input.Expression,
		"times", input.Times,
	)

	return output, nil
}

// Validate statically checks an expression without drawing dice
func (o *orchestrator) Validate(_ context.Context, input *ValidateInput) (*ValidateOutput, error) {
	verdict := dicelang.ValidateExpression(input.Expression)
	return &ValidateOutput{
		Valid: verdict.Valid,
		Error: verdict.Error,
	}, nil
}

// GetHistory retrieves an entity's roll history session
func (o *orchestrator) GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}
	if input.Context == "" {
		return nil, errors.InvalidArgument("context is required")
	}

	getOutput, err := o.historyRepo.Get(ctx, rollhistory.GetInput{
		EntityID: input.EntityID,
		Context:  input.Context,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get roll history")
	}

	return &GetHistoryOutput{
		Session: getOutput.Session,
	}, nil
}

// ClearHistory removes an entity's roll history session
func (o *orchestrator) ClearHistory(ctx context.Context, input *ClearHistoryInput) (*ClearHistoryOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}
	if input.Context == "" {
		return nil, errors.InvalidArgument("context is required")
	}

	deleteOutput, err := o.historyRepo.Delete(ctx, rollhistory.DeleteInput{
		EntityID: input.EntityID,
		Context:  input.Context,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to clear roll history")
	}

	slog.Info("Roll history cleared",
		"entity_id", input.EntityID,
		"context", input.Context,
		"entries_deleted", deleteOutput.EntriesDeleted,
	)

	return &ClearHistoryOutput{
		EntriesDeleted: deleteOutput.EntriesDeleted,
	}, nil
}

func (o *orchestrator) historyEntry(result *dicelang.RollResult, label string) rollhistory.Entry {
	return rollhistory.Entry{
		RollID:     o.idGen.Generate(),
		Expression: result.Expression,
		Total:      result.Total,
		Details:    result.Details,
		Critical:   string(result.Critical),
		Label:      label,
	}
}

// recordHistory appends entries to the entity's session, creating the
// session when it does not exist yet
func (o *orchestrator) recordHistory(ctx context.Context, entityID, rollContext string, ttl time.Duration, entries []rollhistory.Entry) (*rollhistory.Session, error) {
	getOutput, err := o.historyRepo.Get(ctx, rollhistory.GetInput{
		EntityID: entityID,
		Context:  rollContext,
	})

	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, errors.Wrap(err, "failed to check for existing history session")
		}

		if ttl == 0 {
			ttl = o.historyTTL
		}

		createOutput, err := o.historyRepo.Create(ctx, rollhistory.CreateInput{
			EntityID: entityID,
			Context:  rollContext,
			Entries:  entries,
			TTL:      ttl,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create history session")
		}
		return createOutput.Session, nil
	}

	session := getOutput.Session
	session.Entries = append(session.Entries, entries...)

	if err := o.historyRepo.Update(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to update history session")
	}
	return session, nil
}
