package dicelang

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rollforge/roll-api/internal/errors"
	"github.com/rollforge/roll-api/internal/pkg/rng"
)

// maxExplosions caps the extra dice one exploding term may add. Hitting
// the cap stops further explosions; it is not an error.
const maxExplosions = 100

// Critical marks the outcome of a bare single d20 roll.
type Critical string

// Critical outcomes.
const (
	CriticalNone    Critical = ""
	CriticalSuccess Critical = "success"
	CriticalFailure Critical = "failure"
)

// RollGroup is the evaluation output of one dice term. Results holds the
// raw rolls in draw order, including exploded extras appended at the end.
// Kept is the subsequence retained after keep/drop, in original order.
type RollGroup struct {
	Count    int   `json:"count"`
	Sides    int   `json:"sides"`
	Results  []int `json:"results"`
	Kept     []int `json:"kept"`
	Subtotal int   `json:"subtotal"`
}

// RollResult is the outcome of evaluating one expression.
type RollResult struct {
	Expression string      `json:"expression"`
	Rolls      []RollGroup `json:"rolls"`
	Total      int         `json:"total"`
	Details    string      `json:"details"`
	Critical   Critical    `json:"critical,omitempty"`
}

// Engine evaluates dice expressions. It holds no mutable state between
// calls, so a single Engine is safe for concurrent use as long as its
// Roller is.
type Engine struct {
	roller rng.Roller
}

// Config holds the dependencies for an Engine.
type Config struct {
	Roller rng.Roller
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

// NewEngine creates an engine with the provided dependencies.
func NewEngine(cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Engine{roller: cfg.Roller}, nil
}

var defaultEngine = &Engine{roller: rng.NewToolkit()}

// Roll evaluates expr with the process-default random source.
func Roll(expr string, variables map[string]int) (*RollResult, error) {
	return defaultEngine.Roll(expr, variables)
}

// RollMultiple evaluates expr n independent times with the
// process-default random source.
func RollMultiple(expr string, n int, variables map[string]int) ([]*RollResult, error) {
	return defaultEngine.RollMultiple(expr, n, variables)
}

// Roll lexes, parses, and evaluates expr in one pass. Dice are drawn
// left to right, exactly one draw per die, so a scripted roller pins the
// outcome. Variables referenced as "@name" are looked up in variables;
// a missing entry is an error, never zero.
func (e *Engine) Roll(expr string, variables map[string]int) (*RollResult, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, errors.InvalidArgument("Empty expression")
	}

	node, err := Parse(expr)
	if err != nil {
		return nil, err
	}

	result := &RollResult{Expression: expr}
	ev := &evaluation{roller: e.roller, variables: variables, result: result}

	total, trace, err := ev.eval(node)
	if err != nil {
		return nil, err
	}
	result.Total = total
	result.Details = finishTrace(node, trace, total)
	result.Critical = detectCritical(node, result)

	return result, nil
}

// RollMultiple evaluates expr n independent times. Each repetition runs
// the full pipeline; no evaluation state is shared between repetitions.
func (e *Engine) RollMultiple(expr string, n int, variables map[string]int) ([]*RollResult, error) {
	if n < 1 {
		return nil, errors.InvalidArgumentf("roll count must be at least 1, got %d", n)
	}

	results := make([]*RollResult, 0, n)
	for i := 0; i < n; i++ {
		result, err := e.Roll(expr, variables)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// detectCritical reports a critical only for the canonical case: the
// whole expression is a single unmodified d20.
func detectCritical(node Node, result *RollResult) Critical {
	term, ok := node.(*DiceTerm)
	if !ok || term.Count != 1 || term.Sides != 20 || term.Mods != (Modifiers{}) {
		return CriticalNone
	}
	switch result.Rolls[0].Results[0] {
	case 20:
		return CriticalSuccess
	case 1:
		return CriticalFailure
	}
	return CriticalNone
}

// finishTrace closes the details string with the emphasized total. When
// the whole expression is one dice term the term's own subtotal is the
// total, so only its trailing value gets emphasized.
func finishTrace(node Node, trace string, total int) string {
	switch node.(type) {
	case *DiceTerm, *SuccessExpr:
		if i := strings.LastIndex(trace, "= "); i >= 0 {
			return trace[:i+2] + "**" + trace[i+2:] + "**"
		}
	}
	return fmt.Sprintf("%s = **%d**", trace, total)
}

// evaluation is the per-call state of one Roll: the variables in scope,
// the result being accumulated, and the random source.
type evaluation struct {
	roller    rng.Roller
	variables map[string]int
	result    *RollResult
}

// eval walks the tree and returns the node's numeric value together with
// its trace fragment.
func (ev *evaluation) eval(node Node) (int, string, error) {
	switch n := node.(type) {
	case *NumberLiteral:
		return n.Value, n.String(), nil

	case *DiceTerm:
		group, dropped, err := ev.rollGroup(n)
		if err != nil {
			return 0, "", err
		}
		ev.result.Rolls = append(ev.result.Rolls, *group)
		trace := fmt.Sprintf("%s %s = %d", n.Notation(), renderResults(group.Results, dropped), group.Subtotal)
		return group.Subtotal, trace, nil

	case *SuccessExpr:
		group, dropped, err := ev.rollGroup(n.Term)
		if err != nil {
			return 0, "", err
		}
		successes := 0
		for _, v := range group.Kept {
			if compare(v, n.Operator, n.Threshold) {
				successes++
			}
		}
		group.Subtotal = successes
		ev.result.Rolls = append(ev.result.Rolls, *group)
		trace := fmt.Sprintf("%s %s = %d", n.String(), renderResults(group.Results, dropped), successes)
		return successes, trace, nil

	case *BinaryExpr:
		left, lt, err := ev.eval(n.Left)
		if err != nil {
			return 0, "", err
		}
		right, rt, err := ev.eval(n.Right)
		if err != nil {
			return 0, "", err
		}
		value, err := apply(n.Operator, left, right)
		if err != nil {
			return 0, "", err
		}
		return value, fmt.Sprintf("%s %s %s", wrapTerm(n.Left, lt), n.Operator, wrapTerm(n.Right, rt)), nil

	case *UnaryExpr:
		value, trace, err := ev.eval(n.Right)
		if err != nil {
			return 0, "", err
		}
		return -value, "-" + wrapTerm(n.Right, trace), nil

	case *GroupExpr:
		value, trace, err := ev.eval(n.Expr)
		if err != nil {
			return 0, "", err
		}
		return value, "(" + trace + ")", nil

	case *VariableRef:
		value, ok := ev.variables[n.Name]
		if !ok {
			return 0, "", errors.NotFoundf("unknown variable @%s", n.Name)
		}
		return value, fmt.Sprintf("@%s=%d", n.Name, value), nil

	default:
		return 0, "", errors.Internalf("unhandled node type %T", node)
	}
}

// rollGroup draws a dice term's results, applies explosions and
// keep/drop, and returns the group plus the set of dropped positions
// (for trace rendering).
func (ev *evaluation) rollGroup(term *DiceTerm) (*RollGroup, map[int]bool, error) {
	results := make([]int, 0, term.Count)
	for i := 0; i < term.Count; i++ {
		v, err := ev.roller.Roll(term.Sides)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "failed to roll d%d", term.Sides)
		}
		results = append(results, v)
	}

	if term.Mods.Exploding {
		extra := 0
		// results grows while we scan it, which chains explosions
		for i := 0; i < len(results) && extra < maxExplosions; i++ {
			if results[i] != term.Sides {
				continue
			}
			v, err := ev.roller.Roll(term.Sides)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "failed to roll exploding d%d", term.Sides)
			}
			results = append(results, v)
			extra++
		}
	}

	kept, dropped := selectKept(results, term.Mods)

	subtotal := 0
	for _, v := range kept {
		subtotal += v
	}

	group := &RollGroup{
		Count:    term.Count,
		Sides:    term.Sides,
		Results:  results,
		Kept:     kept,
		Subtotal: subtotal,
	}
	return group, dropped, nil
}

// selectKept applies the keep/drop rule over the full results sequence.
// Selection is by value; ties at the boundary are broken by earliest roll
// position, so the first-rolled die wins retention.
func selectKept(results []int, mods Modifiers) ([]int, map[int]bool) {
	if !mods.HasKeepDrop() {
		return results, nil
	}

	keep := len(results)
	highest := false
	switch {
	case mods.KeepHighest > 0:
		keep = mods.KeepHighest
		highest = true
	case mods.KeepLowest > 0:
		keep = mods.KeepLowest
	case mods.DropHighest > 0:
		keep = len(results) - mods.DropHighest
	case mods.DropLowest > 0:
		keep = len(results) - mods.DropLowest
		highest = true
	}
	if keep < 0 {
		keep = 0
	}
	if keep > len(results) {
		keep = len(results)
	}

	order := make([]int, len(results))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if results[order[a]] != results[order[b]] {
			if highest {
				return results[order[a]] > results[order[b]]
			}
			return results[order[a]] < results[order[b]]
		}
		return order[a] < order[b]
	})

	selected := make(map[int]bool, keep)
	for _, idx := range order[:keep] {
		selected[idx] = true
	}

	kept := make([]int, 0, keep)
	dropped := make(map[int]bool, len(results)-keep)
	for i, v := range results {
		if selected[i] {
			kept = append(kept, v)
		} else {
			dropped[i] = true
		}
	}
	return kept, dropped
}

// renderResults renders the raw rolls, striking through dropped values.
func renderResults(results []int, dropped map[int]bool) string {
	parts := make([]string, len(results))
	for i, v := range results {
		if dropped[i] {
			parts[i] = fmt.Sprintf("~~%d~~", v)
		} else {
			parts[i] = fmt.Sprintf("%d", v)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// wrapTerm parenthesizes dice-term fragments when they are joined into a
// larger arithmetic expression, so "= subtotal" annotations stay readable.
func wrapTerm(node Node, trace string) string {
	switch node.(type) {
	case *DiceTerm, *SuccessExpr:
		return "(" + trace + ")"
	}
	return trace
}

func compare(value int, operator string, threshold int) bool {
	switch operator {
	case ">":
		return value > threshold
	case ">=":
		return value >= threshold
	case "<":
		return value < threshold
	case "<=":
		return value <= threshold
	case "==":
		return value == threshold
	}
	return false
}

// apply combines two operands. Division rounds half away from zero
// (7/2 = 4, -7/2 = -4), which matches how tabletop modifiers are usually
// totaled; floor division would skew negative totals.
func apply(operator string, left, right int) (int, error) {
	switch operator {
	case "+":
		return left + right, nil
	case "-":
		return left - right, nil
	case "*":
		return left * right, nil
	case "/":
		if right == 0 {
			return 0, errors.InvalidArgument("division by zero")
		}
		return divRound(left, right), nil
	}
	return 0, errors.Internalf("unhandled operator %q", operator)
}

func divRound(a, b int) int {
	sign := 1
	if (a < 0) != (b < 0) {
		sign = -1
	}
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	return sign * ((2*a + b) / (2 * b))
}
