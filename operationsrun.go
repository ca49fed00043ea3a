package automata

import "github.com/bits-and-blooms/bitset"

// Run reports whether a accepts the string s, read one rune per symbol.
func Run(a *Automaton, s string) bool {
	return a.Accepts(Word(s))
}

// Accepts reports whether the automaton recognizes input. Every call starts from a fresh head set
// holding the initial state; for each symbol every head moves along its transitions on that symbol and
// heads without one vanish. The input is accepted if a surviving head is final. Works unchanged for DFAs
// (at most one head) and NFAs. Heads also follow epsilon transitions. Epsilon is never an input symbol:
// a word containing it is rejected.
func (a *Automaton) Accepts(input []Symbol) bool {
	h := newHeads(a)
	for _, sym := range input {
		if len(h.current) == 0 || sym == Epsilon {
			return false
		}
		h.advance(sym)
	}
	return h.accepting()
}

// heads is the scratch state of one recognition call.
type heads struct {
	a       *Automaton
	current []int
	seen    *bitset.BitSet
}

func newHeads(a *Automaton) *heads {
	h := &heads{
		a:    a,
		seen: bitset.New(uint(a.NumStates())),
	}
	h.push(a.initial)
	h.close()
	return h
}

func (h *heads) push(state int) {
	if h.seen.Test(uint(state)) {
		return
	}
	h.seen.Set(uint(state))
	h.current = append(h.current, state)
}

func (h *heads) pushAll(targets *bitset.BitSet) {
	if targets == nil {
		return
	}
	for t, ok := targets.NextSet(0); ok; t, ok = targets.NextSet(t + 1) {
		h.push(int(t))
	}
}

// close adds every state reachable from a head through epsilon transitions.
func (h *heads) close() {
	if !h.a.epsilon {
		return
	}
	for i := 0; i < len(h.current); i++ {
		h.pushAll(h.a.targets(h.current[i], Epsilon))
	}
}

func (h *heads) advance(sym Symbol) {
	previous := h.current
	h.current = make([]int, 0, len(previous))
	h.seen.ClearAll()
	for _, state := range previous {
		h.pushAll(h.a.targets(state, sym))
	}
	h.close()
}

func (h *heads) accepting() bool {
	for _, state := range h.current {
		if h.a.states[state].Final {
			return true
		}
	}
	return false
}
