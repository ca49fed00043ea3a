package automata

import "strconv"

type Automata struct {
}

var defaultAutomata = &Automata{}

func stateID(i int) string {
	return "Q" + strconv.Itoa(i)
}

// MakeEmpty
// Returns a new (deterministic) automaton with the empty language.
func (*Automata) MakeEmpty() (*Automaton, error) {
	return NewBuilder().
		AddState(State{ID: stateID(0), Initial: true}).
		Build()
}

// MakeEmptyString
// Returns a new (deterministic) automaton that accepts only the empty string.
func (*Automata) MakeEmptyString() (*Automaton, error) {
	return NewBuilder().
		AddState(State{ID: stateID(0), Initial: true, Final: true}).
		Build()
}

// MakeString
// Returns a new (deterministic) automaton that accepts only s.
func (*Automata) MakeString(s string) (*Automaton, error) {
	word := Word(s)
	b := NewBuilder()
	for i := 0; i <= len(word); i++ {
		b.AddState(State{ID: stateID(i), Initial: i == 0, Final: i == len(word)})
	}
	for i, sym := range word {
		b.AddTransition(stateID(i), sym, stateID(i+1))
	}
	return b.Build()
}

// MakeAnyString
// Returns a new (deterministic) automaton that accepts all strings over alphabet.
func (*Automata) MakeAnyString(alphabet ...Symbol) (*Automaton, error) {
	s := stateID(0)
	b := NewBuilder().AddState(State{ID: s, Initial: true, Final: true})
	for _, sym := range alphabet {
		b.AddTransition(s, sym, s)
	}
	return b.Build()
}
