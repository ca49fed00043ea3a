// Package codec reads and writes automata as text or YAML documents.
package codec

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/geange/automata"
)

var (
	// ErrSyntax is wrapped by every decoding error caused by malformed input.
	ErrSyntax = errors.New("syntax error")

	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrUnsupportedSymbol = errors.New("symbol cannot be encoded")
	// ErrUnsupportedID is returned when a state id would read back as a different id.
	ErrUnsupportedID = errors.New("state id cannot be encoded")
)

// Format names an encoding of automata.
type Format string

const (
	// FormatText is the line oriented ID|SYMBOL|TARGETS format.
	FormatText Format = "text"
	// FormatYAML is a states list in YAML.
	FormatYAML Format = "yaml"
)

// epsilonSymbol is how epsilon transitions are written.
const epsilonSymbol = "ε"

// ParseFormat accepts "text" or "yaml" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatOf picks the format from the extension of path: .yaml and .yml are YAML, anything else is text.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// Decode reads one automaton in the given format.
func Decode(r io.Reader, format Format) (*automata.Automaton, error) {
	switch format {
	case FormatText:
		return DecodeText(r)
	case FormatYAML:
		return DecodeYAML(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Encode writes a in the given format.
func Encode(w io.Writer, a *automata.Automaton, format Format) error {
	switch format {
	case FormatText:
		return EncodeText(w, a)
	case FormatYAML:
		return EncodeYAML(w, a)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ReadFile decodes the automaton stored at path, in the format its extension names.
func ReadFile(path string) (*automata.Automaton, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := Decode(f, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// WriteFile encodes a to path, replacing any existing file. An empty format is taken from the
// extension of path.
func WriteFile(path string, a *automata.Automaton, format Format) error {
	if format == "" {
		format = FormatOf(path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, a, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func decodeID(s string) string {
	s = strings.TrimSpace(s)
	if s == automata.EmptyID {
		return ""
	}
	return s
}

func encodeID(id string) (string, error) {
	switch id {
	case "":
		return automata.EmptyID, nil
	case automata.EmptyID:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedID, id)
	default:
		return id, nil
	}
}

// encodeTargetIDs returns the encoded ids of the states state i moves to on sym.
func encodeTargetIDs(a *automata.Automaton, i int, sym automata.Symbol, encode func(string) (string, error)) ([]string, error) {
	ids := targetIDs(a, i, sym)
	for j, id := range ids {
		enc, err := encode(id)
		if err != nil {
			return nil, err
		}
		ids[j] = enc
	}
	return ids, nil
}

// decodeSymbol reads a symbol field. An empty field, a blank and ε all mean epsilon.
func decodeSymbol(s string) (automata.Symbol, error) {
	if s == "" || s == " " || s == epsilonSymbol {
		return automata.Epsilon, nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("symbol %q is not a single character", s)
	}
	return automata.Symbol(r), nil
}

func encodeSymbol(sym automata.Symbol) (string, error) {
	switch sym {
	case automata.Epsilon:
		return epsilonSymbol, nil
	case '|', ' ':
		return "", fmt.Errorf("%w: %q", ErrUnsupportedSymbol, sym)
	default:
		return sym.String(), nil
	}
}

// targetIDs returns the ids of the states state i moves to on sym.
func targetIDs(a *automata.Automaton, i int, sym automata.Symbol) []string {
	targets := a.Targets(i, sym)
	ids := make([]string, len(targets))
	for j, t := range targets {
		ids[j] = a.State(t).ID
	}
	return ids
}

// declarations collects states by normalized id in first-seen order, ORing their markers.
type declarations struct {
	states []automata.State
	index  map[string]int
}

func newDeclarations() *declarations {
	return &declarations{index: make(map[string]int)}
}

func (d *declarations) declare(s automata.State) {
	s.ID = automata.NormalizeID(s.ID)
	if i, ok := d.index[s.ID]; ok {
		d.states[i].Initial = d.states[i].Initial || s.Initial
		d.states[i].Final = d.states[i].Final || s.Final
		return
	}
	d.index[s.ID] = len(d.states)
	d.states = append(d.states, s)
}

func (d *declarations) builder() *automata.Builder {
	b := automata.NewBuilder()
	for _, s := range d.states {
		b.AddState(s)
	}
	return b
}
