// Package rng provides the random source used to draw individual dice.
package rng

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// Roller draws a single uniform value in [1, sides]. The evaluator takes
// a Roller as an explicit dependency so tests can script exact outcomes.
type Roller interface {
	Roll(sides int) (int, error)
}

// ToolkitRoller draws dice through rpg-toolkit, one die per draw.
type ToolkitRoller struct{}

// NewToolkit returns the production roller.
func NewToolkit() Roller {
	return &ToolkitRoller{}
}

// Roll draws one die with the given number of sides.
func (r *ToolkitRoller) Roll(sides int) (int, error) {
	roll, err := dice.NewRoll(1, sides)
	if err != nil {
		return 0, fmt.Errorf("roll d%d: %w", sides, err)
	}
	return roll.GetValue(), nil
}

// Scripted returns a fixed sequence of values, for tests. It is not safe
// for concurrent use.
type Scripted struct {
	values []int
	pos    int
}

// NewScripted creates a roller that returns the given values in order.
func NewScripted(values ...int) *Scripted {
	return &Scripted{values: values}
}

// Roll returns the next scripted value regardless of sides.
func (s *Scripted) Roll(sides int) (int, error) {
	if s.pos >= len(s.values) {
		return 0, fmt.Errorf("scripted roller exhausted after %d rolls", len(s.values))
	}
	v := s.values[s.pos]
	s.pos++
	return v, nil
}

// Remaining reports how many scripted values are left undrawn.
func (s *Scripted) Remaining() int {
	return len(s.values) - s.pos
}
