package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "qgrid",
		Short: "Edit a quantum circuit on a grid and watch its outcome distribution",
		Long: `qgrid lays a small quantum circuit out on a qubit × time grid.

Gates are placed with the cursor, every edit recompiles the grid and
re-simulates the statevector, and the probability of every basis state
is shown live. Measurements sample that distribution.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/qgrid/qgrid.yaml)")
	rootCmd.PersistentFlags().Int("qubits", 0, "Number of qubit rows")
	rootCmd.PersistentFlags().Int("depth", 0, "Number of time columns")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Measurement seed (0 = random)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file")

	rootCmd.AddCommand(
		newVersionCmd(),
		newPlayCmd(),
		newEvalCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "qgrid version %s\n", version)
		},
	}
}
