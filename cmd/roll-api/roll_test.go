package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariables(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		variables, err := parseVariables(nil)
		require.NoError(t, err)
		assert.Nil(t, variables)
	})

	t.Run("bindings", func(t *testing.T) {
		variables, err := parseVariables([]string{"str=5", "@dex = -1"})
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"str": 5, "dex": -1}, variables)
	})

	t.Run("missing equals", func(t *testing.T) {
		_, err := parseVariables([]string{"str"})
		assert.Error(t, err)
	})

	t.Run("non-numeric value", func(t *testing.T) {
		_, err := parseVariables([]string{"str=high"})
		assert.Error(t, err)
	})
}

func TestParseBinding(t *testing.T) {
	t.Run("bindings", func(t *testing.T) {
		name, value, ok := parseBinding("@str = 5")
		require.True(t, ok)
		assert.Equal(t, "str", name)
		assert.Equal(t, 5, value)

		name, value, ok = parseBinding("@dex=-1")
		require.True(t, ok)
		assert.Equal(t, "dex", name)
		assert.Equal(t, -1, value)
	})

	t.Run("expressions are not bindings", func(t *testing.T) {
		for _, input := range []string{
			"d20+@str",
			"@str",
			"@str == 5",
			"@str >= 5",
			"@str = high",
			"2d6",
		} {
			_, _, ok := parseBinding(input)
			assert.False(t, ok, "input %q", input)
		}
	})

	t.Run("empty name is not a binding", func(t *testing.T) {
		_, _, ok := parseBinding("@ = 5")
		assert.False(t, ok)
	})
}
