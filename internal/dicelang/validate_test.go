package dicelang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateExpressionValid(t *testing.T) {
	valid := []string{
		"d20",
		"2d6+3",
		"4d6kh3",
		"3d6!",
		"10d6>=5",
		"(2d6+3)*2 - @strength",
		"100d1000",
		"  d20  ",
	}

	for _, expr := range valid {
		t.Run(expr, func(t *testing.T) {
			result := ValidateExpression(expr)
			assert.True(t, result.Valid, "error: %s", result.Error)
			assert.Empty(t, result.Error)
		})
	}
}

func TestValidateExpressionInvalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty", "", "Empty expression"},
		{"whitespace only", "   ", "Empty expression"},
		{"unclosed paren", "(2d6+3", "Unbalanced parentheses"},
		{"stray close paren", "2d6+3)", "Unbalanced parentheses"},
		{"close before open", ")2d6(", "Unbalanced parentheses"},
		{"too many dice", "101d6", "Too many dice"},
		{"too many sides", "d1001", "Too many sides"},
		{"caps inside larger expression", "2d6 + 101d6", "Too many dice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateExpression(tt.input)
			assert.False(t, result.Valid)
			assert.Equal(t, tt.wantErr, result.Error)
		})
	}
}

func TestValidateExpressionSyntaxErrors(t *testing.T) {
	// Parse-level failures surface their message verbatim.
	result := ValidateExpression("2d6+")
	assert.False(t, result.Valid)
	assert.Contains(t, result.Error, "unexpected end of expression")

	result = ValidateExpression("4d6kh3kl1")
	assert.False(t, result.Valid)
	assert.Contains(t, result.Error, "conflicting keep/drop")
}

func TestValidateExpressionIdempotent(t *testing.T) {
	// Validation draws no dice and carries no state between calls.
	for i := 0; i < 3; i++ {
		assert.True(t, ValidateExpression("4d6kh3").Valid)
		assert.Equal(t, "Too many dice", ValidateExpression("101d6").Error)
	}
}
