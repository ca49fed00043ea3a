package cli

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/geange/automata"
	"github.com/geange/automata/codec"
	"github.com/geange/automata/internal/logging"
)

// event starts a log event tagged with the command it belongs to.
func (a *App) event(e *bolt.Event, op string) *logging.LogEvent {
	return logging.NewEvent(e).Add(logging.Component("cli")).Add(logging.Operation(op))
}

// load reads the automaton stored at path.
func (a *App) load(op, path string) (*automata.Automaton, error) {
	start := time.Now()
	in, err := codec.ReadFile(path)
	if err != nil {
		a.event(a.logger.Error(), op).Add(logging.File(path)).Add(logging.ErrorField(err)).Msg("read failed")
		return nil, err
	}
	a.event(a.logger.Debug(), op).
		Add(logging.File(path)).
		Add(logging.Automaton(in)).
		Add(logging.Duration(time.Since(start))).
		Msg("automaton loaded")
	return in, nil
}

// transform applies fn to in and logs the size of the result.
func (a *App) transform(op string, in *automata.Automaton, fn func(*automata.Automaton) (*automata.Automaton, error)) (*automata.Automaton, error) {
	start := time.Now()
	out, err := fn(in)
	if err != nil {
		a.event(a.logger.Error(), op).Add(logging.ErrorField(err)).Msg("operation failed")
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.event(a.logger.Debug(), op).
		Add(logging.Automaton(out)).
		Add(logging.Duration(time.Since(start))).
		Msg("operation done")
	return out, nil
}

// printText writes a to stdout in the text format.
func (a *App) printText(au *automata.Automaton) error {
	return codec.EncodeText(a.stdout, au)
}

// displayWord shows the empty word as ε.
func displayWord(w string) string {
	if w == "" {
		return "ε"
	}
	return w
}
