package automata

import (
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bits-and-blooms/bitset"
)

// StateSet A set of state indexes of one automaton. Subset construction uses it for the combination a
// new DFA state stands for and minimization uses it for an equivalence class.
type StateSet struct {
	bits *bitset.BitSet
}

func NewStateSet(numStates int, states ...int) *StateSet {
	s := &StateSet{bits: bitset.New(uint(numStates))}
	for _, state := range states {
		s.Add(state)
	}
	return s
}

func (s *StateSet) Add(state int) {
	s.bits.Set(uint(state))
}

func (s *StateSet) Contains(state int) bool {
	return s.bits.Test(uint(state))
}

// AddAll merges other into the set; a nil other is empty.
func (s *StateSet) AddAll(other *bitset.BitSet) {
	if other != nil {
		s.bits.InPlaceUnion(other)
	}
}

func (s *StateSet) Size() int {
	return int(s.bits.Count())
}

// GetArray returns the members in ascending order.
func (s *StateSet) GetArray() []int {
	out := indexes(s.bits)
	if out == nil {
		return []int{}
	}
	return out
}

// Key is equal for two sets iff they hold the same members.
func (s *StateSet) Key() string {
	var sb strings.Builder
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(i), 10))
	}
	return sb.String()
}

// anyFinal reports whether some member is a final state of a.
func (s *StateSet) anyFinal(a *Automaton) bool {
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		if a.states[i].Final {
			return true
		}
	}
	return false
}

// namer derives the id of a state that stands for a set of states of a source automaton: the sorted
// member ids concatenated. When some source id is longer than one rune plain concatenation is ambiguous,
// so the ids are joined as {A,B} instead. A singleton keeps its member's id.
type namer struct {
	source  *Automaton
	compact bool

	// taken maps every id handed out to the key of the set it names.
	taken map[string]string
}

func newNamer(source *Automaton) *namer {
	compact := true
	for _, s := range source.states {
		if utf8.RuneCountInString(s.ID) != 1 {
			compact = false
			break
		}
	}
	return &namer{
		source:  source,
		compact: compact,
		taken:   make(map[string]string),
	}
}

func (n *namer) name(set *StateSet) string {
	ids := make([]string, 0, set.Size())
	for _, i := range set.GetArray() {
		ids = append(ids, n.source.states[i].ID)
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)

	var id string
	switch {
	case len(ids) == 1:
		id = ids[0]
	case n.compact:
		id = strings.Join(ids, "")
	default:
		id = "{" + strings.Join(ids, ",") + "}"
	}

	// Only reachable with ids that already look like joined sets.
	key := set.Key()
	for {
		owner, ok := n.taken[id]
		if !ok || owner == key {
			break
		}
		id += "'"
	}
	n.taken[id] = key
	return id
}
