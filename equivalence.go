package automata

import (
	"fmt"
	"slices"
)

// Compatible reports whether two states agree on acceptance.
func Compatible(x, y State) bool {
	return x.Final == y.Final
}

// Equivalent reports whether two deterministic automata accept the same language. It walks pairs of
// states of both automata in lock-step from their initial states and fails on the first pair that is
// incompatible or whose states do not define the same symbols. NFAs are rejected with
// ErrNotDeterministic; determinize them first.
func Equivalent(a, b *Automaton) (bool, error) {
	if !IsDeterministic(a) {
		return false, fmt.Errorf("%w: first automaton", ErrNotDeterministic)
	}
	if !IsDeterministic(b) {
		return false, fmt.Errorf("%w: second automaton", ErrNotDeterministic)
	}

	start := pair{a.initial, b.initial}
	if !Compatible(a.states[start.p], b.states[start.q]) {
		return false, nil
	}

	processed := map[pair]struct{}{start: {}}
	queue := []pair{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if !Compatible(a.states[current.p], b.states[current.q]) {
			return false, nil
		}

		symbols := a.Symbols(current.p)
		if !slices.Equal(symbols, b.Symbols(current.q)) {
			return false, nil
		}
		for _, sym := range symbols {
			next := pair{a.Step(current.p, sym), b.Step(current.q, sym)}
			if _, ok := processed[next]; !ok {
				processed[next] = struct{}{}
				queue = append(queue, next)
			}
		}
	}
	return true, nil
}
