package automata

// Determinize converts a into an equivalent deterministic automaton by subset construction.
// Epsilon transitions are removed first. Each new state stands for the combination of original
// states reachable on the same input and is named after its sorted member ids; combinations are
// cached by their members so each one is created and expanded once. A symbol that leads nowhere
// yields the empty combination, which is kept like any other, so the result has a transition for
// every symbol of the alphabet in every state.
// Worst case complexity: exponential in number of states.
func Determinize(a *Automaton) (*Automaton, error) {
	if a.HasEpsilon() {
		var err error
		if a, err = RemoveEpsilon(a); err != nil {
			return nil, err
		}
	}

	type combination struct {
		set *StateSet
		id  string
	}

	numStates := a.NumStates()
	alphabet := a.Alphabet()
	names := newNamer(a)
	created := make(map[string]*combination)
	workList := make([]*combination, 0)
	b := NewBuilder()

	get := func(set *StateSet, initial bool) *combination {
		key := set.Key()
		if c, ok := created[key]; ok {
			return c
		}
		c := &combination{set: set, id: names.name(set)}
		created[key] = c
		workList = append(workList, c)
		b.AddState(State{ID: c.id, Initial: initial, Final: set.anyFinal(a)})
		return c
	}

	get(NewStateSet(numStates, a.initial), true)

	for len(workList) > 0 {
		current := workList[0]
		workList = workList[1:]

		members := current.set.GetArray()
		for _, sym := range alphabet {
			next := NewStateSet(numStates)
			for _, s := range members {
				next.AddAll(a.targets(s, sym))
			}
			b.AddTransition(current.id, sym, get(next, false).id)
		}
	}

	return b.Build()
}
