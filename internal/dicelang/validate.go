package dicelang

import (
	"strconv"
	"strings"

	"github.com/rollforge/roll-api/internal/errors"
)

// ValidationResult is the verdict of a static pre-evaluation check.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ValidateExpression statically checks expr without drawing any dice:
// non-empty, balanced parentheses, dice magnitudes within the caps, and
// parseable under the grammar, short-circuiting on the first failure.
// It has no hidden state and is cheap enough for per-keystroke UI checks.
func ValidateExpression(expr string) ValidationResult {
	if strings.TrimSpace(expr) == "" {
		return ValidationResult{Error: "Empty expression"}
	}

	tokens := NewLexer(expr).Tokenize()

	depth := 0
	for _, tok := range tokens {
		switch tok.Type {
		case LPAREN:
			depth++
		case RPAREN:
			depth--
			if depth < 0 {
				return ValidationResult{Error: "Unbalanced parentheses"}
			}
		}
	}
	if depth != 0 {
		return ValidationResult{Error: "Unbalanced parentheses"}
	}

	for _, tok := range tokens {
		if tok.Type != DICE {
			continue
		}
		countStr, sidesStr, _ := strings.Cut(tok.Literal, "d")
		if count, err := strconv.Atoi(countStr); countStr != "" && err == nil && count > MaxDiceCount {
			return ValidationResult{Error: "Too many dice"}
		}
		if sides, err := strconv.Atoi(sidesStr); err == nil && sides > MaxDiceSides {
			return ValidationResult{Error: "Too many sides"}
		}
	}

	if _, err := Parse(expr); err != nil {
		return ValidationResult{Error: errors.GetMessage(err)}
	}

	return ValidationResult{Valid: true}
}
