package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"qcircuitgrid/internal/engine"
	"qcircuitgrid/internal/measure"
)

// evalResult is the JSON form of an eval run.
type evalResult struct {
	Qubits        int                `json:"qubits"`
	Applied       int                `json:"applied"`
	Rejected      []string           `json:"rejected,omitempty"`
	Measurements  []string           `json:"measurements,omitempty"`
	Operations    []string           `json:"operations"`
	Probabilities map[string]float64 `json:"probabilities"`
}

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [script]",
		Short: "Apply a command script and print the outcome distribution",
		Long: `Apply edit commands headlessly, one per line, and print the result.

Commands:
  move up|down|left|right
  place h|x|y|z|r|rx(a)|ry(a)|rz(a)
  delete
  ctrl            toggle a control at the cursor
  ctrl up|down    move a control
  rotate +|-
  reset
  measure
  collapse N|'|b..b>'

Blank lines and lines starting with '#' are ignored. Reads stdin when no
script is given.`,
		Example: `  printf 'place h\nmove right\nmove down\nplace x\nctrl\n' | qgrid eval`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, closer, err := openLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer.Close()

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening script: %w", err)
				}
				defer f.Close()
				in = f
			}
			cmds, err := engine.ParseScript(in)
			if err != nil {
				return err
			}

			s, err := engine.New(cfg, logger)
			if err != nil {
				return err
			}
			res := runScript(s, cmds)

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printResult(cmd.OutOrStdout(), s, res)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

// runScript applies cmds in order, collecting rejections and measurements.
func runScript(s *engine.Session, cmds []engine.Command) evalResult {
	res := evalResult{Qubits: s.Qubits()}
	for _, c := range cmds {
		if !s.Apply(c) {
			res.Rejected = append(res.Rejected, fmt.Sprintf("%s: %v", c, s.LastError()))
			continue
		}
		res.Applied++
		if _, ok := c.(engine.Measure); ok {
			idx, _ := s.LastOutcome()
			res.Measurements = append(res.Measurements, measure.Bitstring(idx, s.Qubits()))
		}
	}

	for _, op := range s.Program().Operations {
		res.Operations = append(res.Operations, op.String())
	}
	res.Probabilities = make(map[string]float64)
	labels := measure.BasisLabels(s.Qubits())
	for i, p := range s.Probabilities() {
		res.Probabilities[labels[i]] = p
	}
	return res
}

func printResult(w io.Writer, s *engine.Session, res evalResult) {
	fmt.Fprintf(w, "applied %d command(s)", res.Applied)
	if len(res.Rejected) > 0 {
		fmt.Fprintf(w, ", rejected %d", len(res.Rejected))
	}
	fmt.Fprintln(w)
	for _, r := range res.Rejected {
		fmt.Fprintf(w, "  rejected %s\n", r)
	}
	for _, m := range res.Measurements {
		fmt.Fprintf(w, "measured |%s>\n", m)
	}

	if len(res.Operations) > 0 {
		fmt.Fprintln(w, "\ncircuit:")
		for _, op := range res.Operations {
			fmt.Fprintf(w, "  %s\n", op)
		}
	}

	fmt.Fprintln(w, "\nprobabilities:")
	labels := measure.BasisLabels(s.Qubits())
	for i, p := range s.Probabilities() {
		fmt.Fprintf(w, "  |%s>  %.4f\n", labels[i], p)
	}
}
