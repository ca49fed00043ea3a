package automata

import "github.com/bits-and-blooms/bitset"

// IsDeterministic Returns true if no state has an epsilon transition or more than one target for a symbol.
// Missing transitions are allowed.
func IsDeterministic(a *Automaton) bool {
	if a.HasEpsilon() {
		return false
	}
	for _, m := range a.transitions {
		for _, t := range m {
			if t.Count() > 1 {
				return false
			}
		}
	}
	return true
}

// IsDFA Returns true if a is deterministic and every state has exactly one transition for every symbol
// of the alphabet.
func IsDFA(a *Automaton) bool {
	if !IsDeterministic(a) {
		return false
	}
	for s := range a.transitions {
		for _, sym := range a.alphabet {
			if a.Step(s, sym) == -1 {
				return false
			}
		}
	}
	return true
}

// IsEmpty
// Returns true if the given automaton accepts no strings.
func IsEmpty(a *Automaton) bool {
	if a.states[a.initial].Final {
		// Common case: it accepts the empty string
		return false
	}
	live := reachable(a)
	for s, ok := live.NextSet(0); ok; s, ok = live.NextSet(s + 1) {
		if a.states[s].Final {
			return false
		}
	}
	return true
}

// RemoveUnreachable returns a copy of a without the states that cannot be reached from the initial state.
func RemoveUnreachable(a *Automaton) (*Automaton, error) {
	live := reachable(a)
	b := NewBuilder()
	for s, ok := live.NextSet(0); ok; s, ok = live.NextSet(s + 1) {
		b.AddState(a.states[s])
	}
	for s, ok := live.NextSet(0); ok; s, ok = live.NextSet(s + 1) {
		for sym, targets := range a.transitions[s] {
			b.addTargets(a, a.states[s].ID, sym, targets)
		}
	}
	return b.Build()
}

// reachable returns the states reachable from the initial state through any transition.
func reachable(a *Automaton) *bitset.BitSet {
	live := bitset.New(uint(a.NumStates()))
	live.Set(uint(a.initial))
	workList := []int{a.initial}

	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]
		for _, targets := range a.transitions[s] {
			for t, ok := targets.NextSet(0); ok; t, ok = targets.NextSet(t + 1) {
				if !live.Test(t) {
					live.Set(t)
					workList = append(workList, int(t))
				}
			}
		}
	}
	return live
}
