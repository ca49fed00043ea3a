package codec

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/geange/automata"
)

type yamlDocument struct {
	States []yamlState `yaml:"states"`
}

type yamlState struct {
	ID          string              `yaml:"id"`
	Initial     bool                `yaml:"initial,omitempty"`
	Final       bool                `yaml:"final,omitempty"`
	Transitions map[string][]string `yaml:"transitions,omitempty"`
}

// DecodeYAML reads a document of the form
//
//	states:
//	  - id: A
//	    initial: true
//	    transitions:
//	      a: [A, B]
//	      ε: [B]
//	  - id: B
//	    final: true
//
// Targets that are never listed as states are added as plain states.
func DecodeYAML(r io.Reader) (*automata.Automaton, error) {
	var doc yamlDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty document", ErrSyntax)
		}
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	decls := newDeclarations()
	for _, s := range doc.States {
		decls.declare(automata.State{ID: decodeID(s.ID), Initial: s.Initial, Final: s.Final})
	}

	type yamlEdge struct {
		from    string
		symbol  automata.Symbol
		targets []string
	}
	edges := make([]yamlEdge, 0)
	for _, s := range doc.States {
		for field, to := range s.Transitions {
			sym, err := decodeSymbol(field)
			if err != nil {
				return nil, fmt.Errorf("%w: state %q: %v", ErrSyntax, s.ID, err)
			}
			targets := make([]string, 0, len(to))
			for _, t := range to {
				id := decodeID(t)
				decls.declare(automata.State{ID: id})
				targets = append(targets, id)
			}
			edges = append(edges, yamlEdge{from: decodeID(s.ID), symbol: sym, targets: targets})
		}
	}

	b := decls.builder()
	for _, e := range edges {
		b.AddTransition(e.from, e.symbol, e.targets...)
	}
	return b.Build()
}

// EncodeYAML writes a as a states list in display order.
func EncodeYAML(w io.Writer, a *automata.Automaton) error {
	doc := yamlDocument{States: make([]yamlState, 0, a.NumStates())}
	for i, s := range a.States() {
		id, err := encodeID(s.ID)
		if err != nil {
			return err
		}
		state := yamlState{ID: id, Initial: s.Initial, Final: s.Final}
		for _, sym := range a.Symbols(i) {
			if state.Transitions == nil {
				state.Transitions = make(map[string][]string)
			}
			var field string
			switch sym {
			case automata.Epsilon:
				field = epsilonSymbol
			case ' ':
				// a blank key reads back as epsilon
				return fmt.Errorf("%w: %q", ErrUnsupportedSymbol, sym)
			default:
				field = sym.String()
			}
			ids, err := encodeTargetIDs(a, i, sym, encodeID)
			if err != nil {
				return err
			}
			state.Transitions[field] = ids
		}
		doc.States = append(doc.States, state)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
