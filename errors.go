package automata

import "errors"

var (
	ErrNoInitialState        = errors.New("automaton has no initial state")
	ErrMultipleInitialStates = errors.New("automaton must have exactly one initial state")
	ErrDuplicateState        = errors.New("more than one state has the same id")
	ErrUnknownState          = errors.New("transition refers to an unknown state")
	ErrInvalidStateID        = errors.New("invalid state id")

	// ErrNotDeterministic is returned by operations that only accept deterministic automata.
	ErrNotDeterministic = errors.New("automaton is not deterministic")
)
