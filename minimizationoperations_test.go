package automata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimize_SevenStates(t *testing.T) {
	big, expected := sevenStateDFA(t)

	mini, err := Minimize(big)
	require.NoError(t, err)
	require.Equal(t, 3, mini.NumStates())

	ids := make([]string, 0)
	for _, s := range mini.States() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"124", "357", "6"}, ids)
	assert.Equal(t, []string{"124"}, targetIDs(mini, "124", '0'))
	assert.Equal(t, []string{"357"}, targetIDs(mini, "124", '1'))
	assert.Equal(t, []string{"6"}, targetIDs(mini, "357", '0'))
	assert.Equal(t, []string{"124"}, targetIDs(mini, "6", '0'))

	ok, err := Equivalent(big, mini)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Equivalent(expected, mini)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMinimize_MostlyFinal(t *testing.T) {
	big, expected := mostlyFinalDFA(t)

	mini, err := Minimize(big)
	require.NoError(t, err)
	assert.Equal(t, 5, mini.NumStates())

	ok, err := Equivalent(mini, expected)
	require.NoError(t, err)
	assert.True(t, ok)

	initial := mini.State(mini.Initial())
	assert.True(t, initial.Initial)
	assert.True(t, initial.Final)
}

func TestMinimize_AlreadyMinimal(t *testing.T) {
	for name, a := range map[string]*Automaton{
		"ab":      abDFA(t),
		"even as": evenAsDFA(t),
	} {
		t.Run(name, func(t *testing.T) {
			mini, err := Minimize(a)
			require.NoError(t, err)
			assert.Equal(t, a.String(), mini.String())
		})
	}
}

func TestMinimize_Idempotent(t *testing.T) {
	big, _ := sevenStateDFA(t)
	nfa, _ := thirdToLastNFA(t)

	for name, a := range map[string]*Automaton{
		"seven states":  big,
		"third to last": nfa,
		"epsilon":       epsilonNFA(t),
		"run of three":  runOfThreeNFA(t),
	} {
		t.Run(name, func(t *testing.T) {
			once, err := Minimize(a)
			require.NoError(t, err)
			twice, err := Minimize(once)
			require.NoError(t, err)

			assert.Equal(t, once.NumStates(), twice.NumStates())
			ok, err := Equivalent(once, twice)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestMinimize_DeterminizesFirst(t *testing.T) {
	nfa, _ := thirdToLastNFA(t)

	mini, err := Minimize(nfa)
	require.NoError(t, err)
	assert.True(t, IsDFA(mini))
	// the subset construction of this language is already minimal
	assert.Equal(t, 8, mini.NumStates())

	dfa, err := Determinize(runOfThreeNFA(t))
	require.NoError(t, err)
	mini, err = Minimize(runOfThreeNFA(t))
	require.NoError(t, err)
	// all final combinations accept everything from then on
	assert.Equal(t, 6, mini.NumStates())
	assert.Less(t, mini.NumStates(), dfa.NumStates())
}

func TestMinimize_PartialDFA(t *testing.T) {
	// deterministic but missing transitions; missing ones stay missing
	a, err := NewBuilder().
		AddState(State{ID: "A", Initial: true}).
		AddState(State{ID: "B"}).
		AddState(State{ID: "C", Final: true}).
		AddTransition("A", 'a', "B").
		AddTransition("B", 'b', "C").
		Build()
	require.NoError(t, err)

	mini, err := Minimize(a)
	require.NoError(t, err)
	assert.Equal(t, 3, mini.NumStates())
	assert.True(t, IsDeterministic(mini))
	assert.Equal(t, a.String(), mini.String())
	assert.True(t, Run(mini, "ab"))
	assert.False(t, Run(mini, "aab"))
}

func TestMinimize_PartialNeverGrows(t *testing.T) {
	tests := []struct {
		name string
		a    *Automaton
		want int
	}{
		{
			name: "one transition",
			a: transitionTable(t, []Symbol{'a'},
				[]State{{ID: "A", Initial: true}, {ID: "B", Final: true}},
				[]string{"A", "B"},
			),
			want: 2,
		},
		{
			name: "dead state dropped",
			a: transitionTable(t, ab,
				[]State{{ID: "A", Initial: true}, {ID: "B", Final: true}, {ID: "D"}},
				[]string{"A", "B", "D"},
				[]string{"D", "D", ""},
			),
			want: 2,
		},
		{
			name: "merged twins",
			a: transitionTable(t, ab,
				[]State{{ID: "A", Initial: true}, {ID: "B", Final: true}, {ID: "C", Final: true}},
				[]string{"A", "B", "C"},
				[]string{"B", "", ""},
				[]string{"C", "", ""},
			),
			want: 2,
		},
		{
			name: "aab",
			a:    aabMachine(t),
			want: 4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, IsDeterministic(tt.a))
			require.False(t, IsDFA(tt.a))

			mini, err := Minimize(tt.a)
			require.NoError(t, err)
			assert.Equal(t, tt.want, mini.NumStates(), "%s", mini)
			assert.LessOrEqual(t, mini.NumStates(), tt.a.NumStates())
			assert.True(t, IsDeterministic(mini))

			for _, w := range words(ab, 5) {
				assert.Equal(t, tt.a.Accepts(w), mini.Accepts(w), "word %q", string(symbolsToRunes(w)))
			}
		})
	}
}

func TestMinimize_DeadInitialState(t *testing.T) {
	a := transitionTable(t, []Symbol{'a'},
		[]State{{ID: "A", Initial: true}, {ID: "B"}},
		[]string{"A", "B"},
	)

	mini, err := Minimize(a)
	require.NoError(t, err)
	require.Equal(t, 1, mini.NumStates())
	assert.True(t, IsEmpty(mini))
	assert.Equal(t, "AB", mini.State(mini.Initial()).ID)
}

func TestMinimize_MergesUnreachableTwin(t *testing.T) {
	// B and C behave the same; only B is reachable
	a := transitionTable(t, ab,
		[]State{{ID: "A", Initial: true}, {ID: "B", Final: true}, {ID: "C", Final: true}},
		[]string{"A", "B", "A"},
		[]string{"B", "B", "A"},
		[]string{"C", "C", "A"},
	)

	mini, err := Minimize(a)
	require.NoError(t, err)
	require.Equal(t, 2, mini.NumStates())
	_, ok := mini.Index("BC")
	assert.True(t, ok, "%s", mini)
}

func TestPairTable_Index(t *testing.T) {
	big, _ := sevenStateDFA(t)
	table := newPairTable(big)

	require.Len(t, table.records, 21)
	for i, r := range table.records {
		assert.Equal(t, uint(i), table.index(r.p, r.q))
		assert.Equal(t, uint(i), table.index(r.q, r.p))
	}
}

func TestPairTable_ChainedDiscards(t *testing.T) {
	// only D is final; A, B and C are told apart one hop at a time
	a := transitionTable(t, []Symbol{'x'},
		[]State{{ID: "A", Initial: true}, {ID: "B"}, {ID: "C"}, {ID: "D", Final: true}},
		[]string{"A", "B"},
		[]string{"B", "C"},
		[]string{"C", "D"},
		[]string{"D", "D"},
	)

	table := newPairTable(a)
	table.crossOut()
	assert.Equal(t, uint(6), table.discarded.Count())
	assert.Len(t, table.classes(), 4)
}
