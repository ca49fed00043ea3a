package automata

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Minimize
// Minimizes (and determinizes if not already deterministic) the given automaton using Moore's
// table-filling algorithm. Every pair of states starts out discarded when the two are incompatible;
// discards then spread through successor pairs until nothing changes. The pairs left standing join
// states into equivalence classes, each of which becomes one state of the result.
// A partial DFA stays partial: missing transitions lead to a virtual sink that takes part in the table
// but never in the result, so the state count never grows.
func Minimize(a *Automaton) (*Automaton, error) {
	if !IsDeterministic(a) {
		var err error
		if a, err = Determinize(a); err != nil {
			return nil, err
		}
	}

	table := newPairTable(a)
	table.crossOut()
	classes := table.classes()

	classOf := make([]int, table.numStates)
	for c, class := range classes {
		for _, s := range class.GetArray() {
			classOf[s] = c
		}
	}

	// The class of the sink is dropped unless the initial state is dead too.
	dropped := -1
	if table.sink >= 0 && !classes[classOf[table.sink]].Contains(a.initial) {
		dropped = classOf[table.sink]
	}

	names := newNamer(a)
	ids := make([]string, len(classes))
	members := make([][]int, len(classes))
	b := NewBuilder()
	for c, class := range classes {
		if c == dropped {
			continue
		}
		members[c] = table.states(class)
		state := State{ID: names.name(NewStateSet(a.NumStates(), members[c]...))}
		for _, s := range members[c] {
			state.Initial = state.Initial || a.states[s].Initial
			state.Final = state.Final || a.states[s].Final
		}
		ids[c] = state.ID
		b.AddState(state)
	}

	for c := range classes {
		if c == dropped {
			continue
		}
		first := members[c][0]
		for _, sym := range a.alphabet {
			to := classOf[table.step(a, first, sym)]
			for _, s := range members[c][1:] {
				if classOf[table.step(a, s, sym)] != to {
					return nil, fmt.Errorf("states %s and %s merged but disagree on %s",
						a.states[first].ID, a.states[s].ID, sym)
				}
			}
			if to != dropped {
				b.AddTransition(ids[c], sym, ids[to])
			}
		}
	}

	return b.Build()
}

type pair struct {
	p, q int
}

// pairRecord holds, for every symbol of the alphabet, the pair of states p and q move to.
type pairRecord struct {
	pair
	next []pair
}

// pairTable holds one record for every unordered pair of distinct states of a DFA. When the DFA is
// partial the table has one more state, sink, which is rejecting and loops to itself on every symbol;
// every missing transition leads to it.
type pairTable struct {
	numStates int
	sink      int
	records   []pairRecord
	discarded *bitset.BitSet
}

func newPairTable(a *Automaton) *pairTable {
	n := a.NumStates()
	sink := -1
	if !IsDFA(a) {
		sink = n
		n++
	}
	t := &pairTable{
		numStates: n,
		sink:      sink,
		records:   make([]pairRecord, 0, n*(n-1)/2),
		discarded: bitset.New(uint(n * (n - 1) / 2)),
	}

	for p := 0; p < n; p++ {
		for q := p + 1; q < n; q++ {
			r := pairRecord{pair: pair{p, q}, next: make([]pair, len(a.alphabet))}
			for i, sym := range a.alphabet {
				r.next[i] = pair{t.step(a, p, sym), t.step(a, q, sym)}
			}
			if !t.compatible(a, p, q) {
				t.discarded.Set(uint(len(t.records)))
			}
			t.records = append(t.records, r)
		}
	}
	return t
}

// step is a.Step with missing transitions sent to the sink.
func (t *pairTable) step(a *Automaton, s int, sym Symbol) int {
	if s == t.sink {
		return t.sink
	}
	if next := a.Step(s, sym); next != -1 {
		return next
	}
	return t.sink
}

// compatible is Compatible extended to the sink, which only matches rejecting states. p < q, so the
// sink can only be q.
func (t *pairTable) compatible(a *Automaton, p, q int) bool {
	if q == t.sink {
		return !a.states[p].Final
	}
	return Compatible(a.states[p], a.states[q])
}

// states returns the members of class that are states of the automaton, leaving out the sink.
func (t *pairTable) states(class *StateSet) []int {
	members := class.GetArray()
	if t.sink >= 0 && class.Contains(t.sink) {
		members = members[:len(members)-1]
	}
	return members
}

// index returns the position of the record for {p, q}, in either order.
func (t *pairTable) index(p, q int) uint {
	if p > q {
		p, q = q, p
	}
	return uint(p*t.numStates - p*(p+1)/2 + q - p - 1)
}

// crossOut discards every record with a discarded successor pair, repeating full passes until one
// discards nothing. A successor pair of one state with itself has no record and never discards.
func (t *pairTable) crossOut() {
	for changed := true; changed; {
		changed = false
		for i, r := range t.records {
			if t.discarded.Test(uint(i)) {
				continue
			}
			for _, next := range r.next {
				if next.p != next.q && t.discarded.Test(t.index(next.p, next.q)) {
					t.discarded.Set(uint(i))
					changed = true
					break
				}
			}
		}
	}
}

// classes joins the states of every record left standing and returns the resulting equivalence
// classes ordered by their first member.
func (t *pairTable) classes() []*StateSet {
	parent := make([]int, t.numStates)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}

	for i, r := range t.records {
		if t.discarded.Test(uint(i)) {
			continue
		}
		rp, rq := find(r.p), find(r.q)
		if rp == rq {
			continue
		}
		if rp < rq {
			parent[rq] = rp
		} else {
			parent[rp] = rq
		}
	}

	byRoot := make(map[int]*StateSet)
	classes := make([]*StateSet, 0)
	for s := 0; s < t.numStates; s++ {
		root := find(s)
		class, ok := byRoot[root]
		if !ok {
			class = NewStateSet(t.numStates)
			byRoot[root] = class
			classes = append(classes, class)
		}
		class.Add(s)
	}
	return classes
}
