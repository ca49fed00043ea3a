package automata

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/bits-and-blooms/bitset"
)

// Symbol is a single input character consumed by a transition.
type Symbol rune

// Epsilon is the reserved symbol of transitions taken without reading input.
const Epsilon Symbol = 'ε'

// EmptyID is how the empty state id is displayed and written.
const EmptyID = "∅"

func (s Symbol) String() string {
	return string(rune(s))
}

// Word splits s into the symbols an automaton reads.
func Word(s string) []Symbol {
	word := make([]Symbol, 0, len(s))
	for _, r := range s {
		word = append(word, Symbol(r))
	}
	return word
}

// State describes one state of an automaton. Inside an Automaton states are
// addressed by index; State only carries the identity and the flags.
type State struct {
	ID      string
	Initial bool
	Final   bool
}

// rank places the initial state first and final states last.
func (s State) rank() int {
	switch {
	case s.Initial:
		return 0
	case s.Final:
		return 2
	default:
		return 1
	}
}

func compareStates(x, y State) int {
	if c := cmp.Compare(x.rank(), y.rank()); c != 0 {
		return c
	}
	return strings.Compare(x.ID, y.ID)
}

// Automaton An immutable finite automaton. States live in an arena ordered for display (initial state
// first, final states last, ties broken by id) and transitions refer to them by index, so cyclic graphs
// need no owning pointers. Build one with a Builder.
type Automaton struct {
	states []State

	// transitions[s][sym] holds the indexes of the targets of s on sym.
	// A symbol without targets is never stored.
	transitions []map[Symbol]*bitset.BitSet

	index    map[string]int
	initial  int
	alphabet []Symbol
	epsilon  bool
}

// NumStates How many states this automaton has.
func (a *Automaton) NumStates() int {
	return len(a.states)
}

// State returns the state stored at index i.
func (a *Automaton) State(i int) State {
	return a.states[i]
}

// States returns a copy of all states in display order.
func (a *Automaton) States() []State {
	return slices.Clone(a.states)
}

// Initial returns the index of the initial state.
func (a *Automaton) Initial() int {
	return a.initial
}

// Index looks a state up by id. Ids are case-insensitive.
func (a *Automaton) Index(id string) (int, bool) {
	i, ok := a.index[NormalizeID(id)]
	return i, ok
}

// Alphabet returns the sorted symbols used by any transition, epsilon excluded.
func (a *Automaton) Alphabet() []Symbol {
	return slices.Clone(a.alphabet)
}

// HasEpsilon reports whether any state has an epsilon transition.
func (a *Automaton) HasEpsilon() bool {
	return a.epsilon
}

// Symbols returns the sorted symbols state i has transitions for, epsilon included.
func (a *Automaton) Symbols(i int) []Symbol {
	symbols := make([]Symbol, 0, len(a.transitions[i]))
	for sym := range a.transitions[i] {
		symbols = append(symbols, sym)
	}
	slices.Sort(symbols)
	return symbols
}

// Targets returns the sorted indexes state i moves to on sym, or nil when there is no such transition.
func (a *Automaton) Targets(i int, sym Symbol) []int {
	return indexes(a.targets(i, sym))
}

// Step Performs lookup in transitions, assuming determinism.
// Returns: destination state, -1 if no matching outgoing transition
func (a *Automaton) Step(i int, sym Symbol) int {
	t := a.targets(i, sym)
	if t == nil {
		return -1
	}
	if next, ok := t.NextSet(0); ok {
		return int(next)
	}
	return -1
}

// NumTransitions counts every (source, symbol, target) triple.
func (a *Automaton) NumTransitions() int {
	count := 0
	for _, m := range a.transitions {
		for _, t := range m {
			count += int(t.Count())
		}
	}
	return count
}

func (a *Automaton) targets(i int, sym Symbol) *bitset.BitSet {
	return a.transitions[i][sym]
}

func (a *Automaton) String() string {
	var sb strings.Builder
	for i, s := range a.states {
		if s.Initial {
			sb.WriteByte('>')
		}
		if s.Final {
			sb.WriteByte('*')
		}
		sb.WriteString(displayID(s.ID))
		for _, sym := range a.Symbols(i) {
			ids := make([]string, 0)
			for _, t := range a.Targets(i, sym) {
				ids = append(ids, displayID(a.states[t].ID))
			}
			fmt.Fprintf(&sb, " %s:%s", sym, strings.Join(ids, ","))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func displayID(id string) string {
	if id == "" {
		return EmptyID
	}
	return id
}

func indexes(b *bitset.BitSet) []int {
	if b == nil || b.None() {
		return nil
	}
	out := make([]int, 0, b.Count())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

// NormalizeID returns id the way automata store it: trimmed and upper-cased.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func validateID(id string) error {
	if strings.ContainsFunc(id, func(r rune) bool {
		return unicode.IsSpace(r) || r == '|'
	}) {
		return fmt.Errorf("%w: %q", ErrInvalidStateID, id)
	}
	return nil
}

type edge struct {
	from    string
	symbol  Symbol
	targets []string
}

// Builder collects states and transitions by id and validates them all at once in Build.
type Builder struct {
	states []State
	edges  []edge
}

func NewBuilder() *Builder {
	return &Builder{}
}

// AddState adds a state. Its id is upper-cased.
func (b *Builder) AddState(s State) *Builder {
	s.ID = NormalizeID(s.ID)
	b.states = append(b.states, s)
	return b
}

// AddTransition adds transitions from one state to every given target on sym.
func (b *Builder) AddTransition(from string, sym Symbol, to ...string) *Builder {
	targets := make([]string, len(to))
	for i, id := range to {
		targets[i] = NormalizeID(id)
	}
	b.edges = append(b.edges, edge{from: NormalizeID(from), symbol: sym, targets: targets})
	return b
}

// Build validates the collected states and returns the automaton. It fails when an id is repeated or
// malformed, when there is not exactly one initial state, or when a transition names an absent state.
func (b *Builder) Build() (*Automaton, error) {
	states := slices.Clone(b.states)
	slices.SortStableFunc(states, compareStates)

	a := &Automaton{
		states:      states,
		transitions: make([]map[Symbol]*bitset.BitSet, len(states)),
		index:       make(map[string]int, len(states)),
		initial:     -1,
	}

	initials := make([]string, 0, 1)
	for i, s := range states {
		if err := validateID(s.ID); err != nil {
			return nil, err
		}
		if _, ok := a.index[s.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateState, s.ID)
		}
		a.index[s.ID] = i
		a.transitions[i] = make(map[Symbol]*bitset.BitSet)
		if s.Initial {
			a.initial = i
			initials = append(initials, s.ID)
		}
	}

	switch len(initials) {
	case 0:
		return nil, ErrNoInitialState
	case 1:
	default:
		return nil, fmt.Errorf("%w: found %d (%s)", ErrMultipleInitialStates, len(initials), strings.Join(initials, ", "))
	}

	symbols := make(map[Symbol]struct{})
	for _, e := range b.edges {
		from, ok := a.index[e.from]
		if !ok {
			return nil, fmt.Errorf("%w: transition from %q", ErrUnknownState, e.from)
		}
		for _, id := range e.targets {
			to, ok := a.index[id]
			if !ok {
				return nil, fmt.Errorf("%w: transition %s -%s-> %q", ErrUnknownState, e.from, e.symbol, id)
			}
			t := a.transitions[from][e.symbol]
			if t == nil {
				t = bitset.New(uint(len(states)))
				a.transitions[from][e.symbol] = t
			}
			t.Set(uint(to))
		}
		if len(e.targets) == 0 {
			continue
		}
		if e.symbol == Epsilon {
			a.epsilon = true
		} else {
			symbols[e.symbol] = struct{}{}
		}
	}

	a.alphabet = make([]Symbol, 0, len(symbols))
	for sym := range symbols {
		a.alphabet = append(a.alphabet, sym)
	}
	slices.Sort(a.alphabet)

	return a, nil
}

// addTargets adds a transition from the state named from to every state of a whose index is in targets.
func (b *Builder) addTargets(a *Automaton, from string, sym Symbol, targets *bitset.BitSet) {
	ids := make([]string, 0, targets.Count())
	for t, ok := targets.NextSet(0); ok; t, ok = targets.NextSet(t + 1) {
		ids = append(ids, a.states[t].ID)
	}
	b.AddTransition(from, sym, ids...)
}
