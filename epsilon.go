package automata

import "github.com/bits-and-blooms/bitset"

// RemoveEpsilon returns an automaton without epsilon transitions that accepts the same language.
// Each state receives every non-epsilon transition of the states in its epsilon closure, and becomes
// final when its closure holds a final state. The input is left untouched.
func RemoveEpsilon(a *Automaton) (*Automaton, error) {
	numStates := a.NumStates()
	b := NewBuilder()

	folded := make([]map[Symbol]*bitset.BitSet, numStates)
	for s := 0; s < numStates; s++ {
		state := a.states[s]
		folded[s] = make(map[Symbol]*bitset.BitSet, len(a.transitions[s]))
		fold(folded[s], a.transitions[s])

		closure := a.epsilonClosure(s)
		for r, ok := closure.NextSet(0); ok; r, ok = closure.NextSet(r + 1) {
			fold(folded[s], a.transitions[r])
			if a.states[r].Final {
				state.Final = true
			}
		}
		b.AddState(state)
	}

	for s := 0; s < numStates; s++ {
		for sym, targets := range folded[s] {
			b.addTargets(a, a.states[s].ID, sym, targets)
		}
	}
	return b.Build()
}

// fold unions the non-epsilon transitions of src into dst.
func fold(dst, src map[Symbol]*bitset.BitSet) {
	for sym, targets := range src {
		if sym == Epsilon {
			continue
		}
		if t, ok := dst[sym]; ok {
			t.InPlaceUnion(targets)
		} else {
			dst[sym] = targets.Clone()
		}
	}
}

// epsilonClosure returns the states reachable from s through one or more epsilon transitions. s itself
// is only a member when an epsilon cycle leads back to it.
func (a *Automaton) epsilonClosure(s int) *bitset.BitSet {
	seen := bitset.New(uint(a.NumStates()))
	workList := []int{s}
	for len(workList) > 0 {
		state := workList[0]
		workList = workList[1:]

		eps := a.targets(state, Epsilon)
		if eps == nil {
			continue
		}
		for t, ok := eps.NextSet(0); ok; t, ok = eps.NextSet(t + 1) {
			if !seen.Test(t) {
				seen.Set(t)
				workList = append(workList, int(t))
			}
		}
	}
	return seen
}
