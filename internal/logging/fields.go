package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/geange/automata"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Component adds a component field for categorization.
func Component(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("component", name)
	}
}

// Operation adds an operation field.
func Operation(op string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("operation", op)
	}
}

// File adds the path of an automaton file.
func File(path string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("file", path)
	}
}

// States adds a state count.
func States(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("states", n)
	}
}

// Automaton adds the size of a together with whether it is a DFA.
func Automaton(a *automata.Automaton) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("states", a.NumStates()).
			Int("transitions", a.NumTransitions()).
			Int("symbols", len(a.Alphabet())).
			Bool("dfa", automata.IsDFA(a))
	}
}

// Duration adds a duration field in microseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_us", d.Microseconds())
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Int adds an int field with custom key.
func Int(key string, value int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int(key, value)
	}
}

// Str adds a string field with custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}
