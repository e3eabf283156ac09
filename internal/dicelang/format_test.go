package dicelang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRollForDisplay(t *testing.T) {
	result := &RollResult{
		Expression: "2d6+3",
		Total:      10,
		Details:    "(2d6 [4, 3] = 7) + 3 = **10**",
	}

	t.Run("without label", func(t *testing.T) {
		got := FormatRollForDisplay(result, "")
		assert.Equal(t, "`2d6+3` → (2d6 [4, 3] = 7) + 3 = **10**", got)
	})

	t.Run("with label", func(t *testing.T) {
		got := FormatRollForDisplay(result, "Attack Roll")
		assert.Equal(t, "**Attack Roll**\n`2d6+3` → (2d6 [4, 3] = 7) + 3 = **10**", got)
	})
}

func TestFormatRollForDisplayCriticalBanners(t *testing.T) {
	t.Run("critical success", func(t *testing.T) {
		result := &RollResult{
			Expression: "d20",
			Total:      20,
			Details:    "d20 [20] = **20**",
			Critical:   CriticalSuccess,
		}
		got := FormatRollForDisplay(result, "")
		assert.Equal(t, "`d20` → d20 [20] = **20**\n**Critical Success!**", got)
	})

	t.Run("critical failure", func(t *testing.T) {
		result := &RollResult{
			Expression: "d20",
			Total:      1,
			Details:    "d20 [1] = **1**",
			Critical:   CriticalFailure,
		}
		got := FormatRollForDisplay(result, "Save")
		assert.Equal(t, "**Save**\n`d20` → d20 [1] = **1**\n**Critical Failure!**", got)
	})
}
