package automata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutomata_Make(t *testing.T) {
	t.Run("MakeEmpty", func(t *testing.T) {
		a, err := defaultAutomata.MakeEmpty()
		require.NoError(t, err)
		assert.False(t, Run(a, ""))
		assert.False(t, Run(a, "a"))
		assert.True(t, IsDFA(a))
	})

	t.Run("MakeEmptyString", func(t *testing.T) {
		a, err := defaultAutomata.MakeEmptyString()
		require.NoError(t, err)
		assert.True(t, Run(a, ""))
		assert.False(t, Run(a, "a"))
	})

	t.Run("MakeString", func(t *testing.T) {
		a, err := defaultAutomata.MakeString("foo")
		require.NoError(t, err)
		assert.Equal(t, 4, a.NumStates())
		assert.True(t, Run(a, "foo"))
		assert.False(t, Run(a, "fo"))
		assert.False(t, Run(a, "fooo"))
		assert.True(t, IsDeterministic(a))
		assert.False(t, IsDFA(a))
	})

	t.Run("MakeAnyString", func(t *testing.T) {
		a, err := defaultAutomata.MakeAnyString('a', 'b')
		require.NoError(t, err)
		assert.True(t, Run(a, ""))
		assert.True(t, Run(a, "abba"))
		assert.False(t, Run(a, "abc"))
		assert.Equal(t, []Symbol{'a', 'b'}, a.Alphabet())
	})
}

func TestAutomata_MinimizeString(t *testing.T) {
	a, err := defaultAutomata.MakeString("mn")
	require.NoError(t, err)

	mini, err := Minimize(a)
	require.NoError(t, err)
	// the chain is already minimal and stays partial
	assert.Equal(t, 3, mini.NumStates())
	assert.True(t, Run(mini, "mn"))
	assert.False(t, Run(mini, "m"))
	assert.False(t, Run(mini, "nm"))
}
