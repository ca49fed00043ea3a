package automata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	binary = []Symbol{'0', '1'}
	ab     = []Symbol{'a', 'b'}
	// binaryEps has an epsilon column after the binary ones.
	binaryEps = []Symbol{'0', '1', Epsilon}
)

// transitionTable builds an automaton from rows of the form
// {source, targets on symbols[0], targets on symbols[1], ...}; targets are space separated ids.
func transitionTable(t *testing.T, symbols []Symbol, states []State, rows ...[]string) *Automaton {
	t.Helper()

	b := NewBuilder()
	for _, s := range states {
		b.AddState(s)
	}
	for _, row := range rows {
		require.Len(t, row, len(symbols)+1, "row %v", row)
		for i, sym := range symbols {
			if targets := strings.Fields(row[i+1]); len(targets) > 0 {
				b.AddTransition(row[0], sym, targets...)
			}
		}
	}
	a, err := b.Build()
	require.NoError(t, err)
	return a
}

func plain(ids ...string) []State {
	states := make([]State, len(ids))
	for i, id := range ids {
		states[i] = State{ID: id}
	}
	return states
}

// sevenStateDFA returns a 7-state DFA over {0,1} and its 3-state minimal form.
func sevenStateDFA(t *testing.T) (big, mini *Automaton) {
	states := append([]State{{ID: "1", Initial: true}}, plain("2", "3", "4", "5")...)
	states = append(states, State{ID: "6", Final: true}, State{ID: "7"})
	big = transitionTable(t, binary, states,
		[]string{"1", "2", "3"},
		[]string{"2", "4", "5"},
		[]string{"3", "6", "7"},
		[]string{"4", "4", "5"},
		[]string{"5", "6", "7"},
		[]string{"6", "4", "5"},
		[]string{"7", "6", "7"},
	)

	mini = transitionTable(t, binary,
		[]State{{ID: "124", Initial: true}, {ID: "357"}, {ID: "6", Final: true}},
		[]string{"124", "124", "357"},
		[]string{"357", "6", "357"},
		[]string{"6", "124", "357"},
	)
	return big, mini
}

// mostlyFinalDFA returns a 7-state DFA over {0,1} where only a trap state rejects, and its 5-state
// minimal form.
func mostlyFinalDFA(t *testing.T) (big, mini *Automaton) {
	big = transitionTable(t, binary,
		[]State{
			{ID: "6", Initial: true, Final: true},
			{ID: "7", Final: true}, {ID: "8", Final: true}, {ID: "9", Final: true},
			{ID: "10", Final: true}, {ID: "11", Final: true},
			{ID: "12"},
		},
		[]string{"6", "7", "9"},
		[]string{"7", "7", "8"},
		[]string{"8", "7", "10"},
		[]string{"9", "7", "10"},
		[]string{"10", "11", "10"},
		[]string{"11", "12", "10"},
		[]string{"12", "12", "12"},
	)

	mini = transitionTable(t, binary,
		[]State{
			{ID: "A", Initial: true, Final: true},
			{ID: "B", Final: true}, {ID: "C", Final: true}, {ID: "D", Final: true},
			{ID: "E"},
		},
		[]string{"A", "A", "B"},
		[]string{"B", "A", "C"},
		[]string{"C", "D", "C"},
		[]string{"D", "E", "C"},
		[]string{"E", "E", "E"},
	)
	return big, mini
}

// abDFA is a minimal DFA over {a,b}.
func abDFA(t *testing.T) *Automaton {
	return transitionTable(t, ab,
		[]State{{ID: "3", Initial: true, Final: true}, {ID: "4"}, {ID: "5", Final: true}},
		[]string{"3", "4", "3"},
		[]string{"4", "5", "4"},
		[]string{"5", "5", "4"},
	)
}

// evenAsDFA accepts the words over {a,b} with an even number of a.
func evenAsDFA(t *testing.T) *Automaton {
	return transitionTable(t, ab,
		[]State{{ID: "1", Initial: true, Final: true}, {ID: "2"}},
		[]string{"1", "2", "1"},
		[]string{"2", "1", "2"},
	)
}

// thirdToLastNFA accepts the words over {0,1} whose third to last symbol is 1. It also returns an
// equivalent 8-state DFA.
func thirdToLastNFA(t *testing.T) (nfa, dfa *Automaton) {
	nfa = transitionTable(t, binary,
		[]State{{ID: "A", Initial: true}, {ID: "B"}, {ID: "C"}, {ID: "D", Final: true}},
		[]string{"A", "A", "A B"},
		[]string{"B", "C", "C"},
		[]string{"C", "D", "D"},
	)

	dfa = transitionTable(t, binary,
		[]State{
			{ID: "A", Initial: true}, {ID: "AB"}, {ID: "ABC"}, {ID: "AC"},
			{ID: "ABCD", Final: true}, {ID: "ACD", Final: true}, {ID: "ABD", Final: true}, {ID: "AD", Final: true},
		},
		[]string{"A", "A", "AB"},
		[]string{"AB", "AC", "ABC"},
		[]string{"ABC", "ACD", "ABCD"},
		[]string{"ABCD", "ACD", "ABCD"},
		[]string{"ACD", "AD", "ABD"},
		[]string{"ABD", "AC", "ABC"},
		[]string{"AC", "AD", "ABD"},
		[]string{"AD", "A", "AB"},
	)
	return nfa, dfa
}

// epsilonNFA has epsilon transitions and partial symbol transitions.
func epsilonNFA(t *testing.T) *Automaton {
	return transitionTable(t, binaryEps,
		[]State{{ID: "A", Initial: true}, {ID: "B"}, {ID: "C"}, {ID: "D", Final: true}},
		[]string{"A", "A", "B", ""},
		[]string{"B", "C", "B", "A"},
		[]string{"C", "", "D", "B"},
		[]string{"D", "C", "", "B"},
	)
}

// epsilonCycleNFA looks deterministic on symbols but chains every state through an epsilon cycle.
func epsilonCycleNFA(t *testing.T) *Automaton {
	return transitionTable(t, binaryEps,
		[]State{{ID: "A", Initial: true}, {ID: "B"}, {ID: "C"}, {ID: "D", Final: true}},
		[]string{"A", "B", "B", "D"},
		[]string{"B", "C", "C", "A"},
		[]string{"C", "D", "D", "B"},
		[]string{"D", "D", "D", "C"},
	)
}

// runOfThreeNFA accepts the words over {0,1} containing 000 or 111.
func runOfThreeNFA(t *testing.T) *Automaton {
	return transitionTable(t, binary,
		[]State{
			{ID: "A", Initial: true}, {ID: "B"}, {ID: "C"}, {ID: "D"}, {ID: "E"},
			{ID: "F", Final: true},
		},
		[]string{"A", "A B", "A D"},
		[]string{"B", "C", ""},
		[]string{"C", "F", ""},
		[]string{"D", "", "E"},
		[]string{"E", "", "F"},
		[]string{"F", "F", "F"},
	)
}

// words returns every word over alphabet of length up to maxLen, the empty word included.
func words(alphabet []Symbol, maxLen int) [][]Symbol {
	out := [][]Symbol{{}}
	level := [][]Symbol{{}}
	for n := 0; n < maxLen; n++ {
		next := make([][]Symbol, 0, len(level)*len(alphabet))
		for _, w := range level {
			for _, sym := range alphabet {
				word := append(append(make([]Symbol, 0, len(w)+1), w...), sym)
				next = append(next, word)
			}
		}
		out = append(out, next...)
		level = next
	}
	return out
}
