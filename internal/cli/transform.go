package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geange/automata"
	"github.com/geange/automata/internal/logging"
)

// newDeterminizeCmd creates the determinize command.
func (a *App) newDeterminizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "determinize FILE",
		Short: "Print the DFA built from an automaton by subset construction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transformAndPrint("determinize", args[0], automata.Determinize)
		},
	}
}

// newRemoveEpsilonCmd creates the remove-epsilon command.
func (a *App) newRemoveEpsilonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-epsilon FILE",
		Short: "Print an equivalent automaton without epsilon transitions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transformAndPrint("remove-epsilon", args[0], automata.RemoveEpsilon)
		},
	}
}

func (a *App) transformAndPrint(op, path string, fn func(*automata.Automaton) (*automata.Automaton, error)) error {
	in, err := a.load(op, path)
	if err != nil {
		return err
	}
	out, err := a.transform(op, in, fn)
	if err != nil {
		return err
	}
	return a.printText(out)
}

// newAcceptsCmd creates the accepts command.
func (a *App) newAcceptsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accepts FILE WORD...",
		Short: "Run words through an automaton",
		Long: `Report for every WORD whether the automaton stored in FILE accepts it.

Examples:
  automata accepts dfa.txt 0110 10 ""`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.load("accepts", args[0])
			if err != nil {
				return err
			}
			for _, w := range args[1:] {
				verdict := "rejected"
				if automata.Run(in, w) {
					verdict = "accepted"
				}
				a.event(a.logger.Debug(), "accepts").
					Add(logging.Str("word", w)).
					Add(logging.Str("verdict", verdict)).
					Send()
				fmt.Fprintf(a.stdout, "%s: %s\n", displayWord(w), verdict)
			}
			return nil
		},
	}
}

// newEquivalentCmd creates the equivalent command.
func (a *App) newEquivalentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "equivalent FILE FILE",
		Short: "Report whether two automata accept the same language",
		Long: `Report whether the automata stored in two files accept the same language.

Both are determinized before they are compared, so NFAs are accepted.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dfas := make([]*automata.Automaton, 0, 2)
			for _, path := range args {
				in, err := a.load("equivalent", path)
				if err != nil {
					return err
				}
				dfa, err := a.transform("equivalent", in, automata.Determinize)
				if err != nil {
					return err
				}
				dfas = append(dfas, dfa)
			}

			ok, err := automata.Equivalent(dfas[0], dfas[1])
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintln(a.stdout, "equivalent")
			} else {
				fmt.Fprintln(a.stdout, "not equivalent")
			}
			return nil
		},
	}
}
