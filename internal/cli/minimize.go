package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geange/automata"
	"github.com/geange/automata/codec"
	"github.com/geange/automata/internal/logging"
)

// minimizeOptions holds options for the minimize command.
type minimizeOptions struct {
	output string
	format string
}

// newMinimizeCmd creates the minimize command.
func (a *App) newMinimizeCmd() *cobra.Command {
	opts := &minimizeOptions{}

	cmd := &cobra.Command{
		Use:   "minimize FILE",
		Short: "Minimize an automaton and save the result",
		Long: `Minimize the automaton stored in FILE.

An NFA is determinized first. Both the input and the minimized automaton are
printed, and the minimized one is saved to the output path.

Examples:
  # Minimize and save to minimized_automaton.txt
  automata minimize dfa.txt

  # Save as YAML
  automata minimize nfa.txt -o minimized.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("output") {
				a.config.Output.Path = opts.output
			}
			if cmd.Flags().Changed("format") {
				a.config.Output.Format = opts.format
			}
			if err := a.config.Validate(); err != nil {
				return err
			}
			return a.minimize(args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Path the minimized automaton is saved to")
	cmd.Flags().StringVar(&opts.format, "format", "", "Output format (text, yaml); defaults to the output file extension")

	return cmd
}

func (a *App) minimize(path string) error {
	fmt.Fprintf(a.stdout, "Reading automaton from %s...\n", path)
	in, err := a.load("minimize", path)
	if err != nil {
		return err
	}

	mini, err := a.transform("minimize", in, automata.Minimize)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.stdout, "Given the input automaton:")
	fmt.Fprintln(a.stdout)
	if err := a.printText(in); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout)
	fmt.Fprintln(a.stdout, "The minimized equivalent automaton is:")
	fmt.Fprintln(a.stdout)
	if err := a.printText(mini); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout)

	output := a.config.Output.Path
	fmt.Fprintf(a.stdout, "Saving results to %s...\n", output)
	if err := codec.WriteFile(output, mini, a.config.OutputFormat()); err != nil {
		a.event(a.logger.Error(), "minimize").Add(logging.File(output)).Add(logging.ErrorField(err)).Msg("write failed")
		return fmt.Errorf("saving results: %w", err)
	}
	a.event(a.logger.Info(), "minimize").
		Add(logging.File(output)).
		Add(logging.Int("input_states", in.NumStates())).
		Add(logging.States(mini.NumStates())).
		Msg("minimized automaton saved")

	fmt.Fprintln(a.stdout, "DONE!")
	return nil
}
