package codec

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/geange/automata"
)

type textEdge struct {
	from    string
	symbol  automata.Symbol
	targets []string
}

// DecodeText reads the text format. Every line is either a transition
//
//	[>][*]ID|SYMBOL|TARGET[,TARGET...]
//
// or a state declaration [>][*]ID. '>' marks the initial state and '*' a final one; markers may be given
// on any line naming the state. Lines starting with '#' and blank lines are skipped.
func DecodeText(r io.Reader) (*automata.Automaton, error) {
	decls := newDeclarations()
	edges := make([]textEdge, 0)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r\n")
		if trimmed := strings.TrimSpace(text); trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		fields := strings.Split(text, "|")
		if len(fields) != 1 && len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d: want ID|SYMBOL|TARGETS, got %d fields", ErrSyntax, line, len(fields))
		}

		state := parseHead(fields[0])
		decls.declare(state)
		if len(fields) == 1 {
			continue
		}

		sym, err := decodeSymbol(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrSyntax, line, err)
		}
		targets := splitTargets(fields[2])
		if len(targets) == 0 {
			return nil, fmt.Errorf("%w: line %d: missing target", ErrSyntax, line)
		}
		for _, t := range targets {
			decls.declare(automata.State{ID: t})
		}
		edges = append(edges, textEdge{from: state.ID, symbol: sym, targets: targets})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	b := decls.builder()
	for _, e := range edges {
		b.AddTransition(e.from, e.symbol, e.targets...)
	}
	return b.Build()
}

// parseHead reads the markers and the id of the source field.
func parseHead(s string) automata.State {
	var state automata.State
	s = strings.TrimSpace(s)
	for len(s) > 0 {
		switch s[0] {
		case '>':
			state.Initial = true
		case '*':
			state.Final = true
		default:
			state.ID = decodeID(s)
			return state
		}
		s = s[1:]
	}
	return state
}

// splitTargets splits a comma separated target list. Commas inside braces belong to ids like {A,B}.
func splitTargets(s string) []string {
	targets := make([]string, 0)
	depth, start := 0, 0
	flush := func(end int) {
		if t := strings.TrimSpace(s[start:end]); t != "" {
			targets = append(targets, decodeID(t))
		}
	}
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(s))
	return targets
}

// EncodeText writes a in the text format: states in display order, one line per symbol in sorted order,
// and a bare declaration for states without transitions. Ids that would read back differently, such as
// a comma outside braces or a leading marker, fail with ErrUnsupportedID.
func EncodeText(w io.Writer, a *automata.Automaton) error {
	bw := bufio.NewWriter(w)
	for i, s := range a.States() {
		head, err := encodeHead(s)
		if err != nil {
			return err
		}
		symbols := a.Symbols(i)
		if len(symbols) == 0 {
			fmt.Fprintln(bw, head)
			continue
		}
		for _, sym := range symbols {
			field, err := encodeSymbol(sym)
			if err != nil {
				return err
			}
			ids, err := encodeTargetIDs(a, i, sym, encodeTextID)
			if err != nil {
				return err
			}
			fmt.Fprintf(bw, "%s|%s|%s\n", head, field, strings.Join(ids, ","))
		}
	}
	return bw.Flush()
}

func encodeHead(s automata.State) (string, error) {
	id, err := encodeTextID(s.ID)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if s.Initial {
		sb.WriteByte('>')
	}
	if s.Final {
		sb.WriteByte('*')
	}
	sb.WriteString(id)
	return sb.String(), nil
}

// encodeTextID is encodeID for ids that parseHead and splitTargets must read back unchanged.
func encodeTextID(id string) (string, error) {
	enc, err := encodeID(id)
	if err != nil {
		return "", err
	}
	if id == "" {
		return enc, nil
	}
	switch id[0] {
	case '>', '*', '#':
		return "", fmt.Errorf("%w: %q starts with %q", ErrUnsupportedID, id, id[0])
	}
	depth := 0
	for _, r := range id {
		switch r {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				return "", fmt.Errorf("%w: %q has a comma outside braces", ErrUnsupportedID, id)
			}
		}
	}
	if depth != 0 {
		return "", fmt.Errorf("%w: %q has an unclosed brace", ErrUnsupportedID, id)
	}
	return enc, nil
}
