package main

import (
	"io"

	"github.com/spf13/cobra"

	"qcircuitgrid/internal/engine"
	"qcircuitgrid/internal/tui"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Edit a circuit interactively in the terminal",
		Long: `Start the interactive circuit editor.

The terminal is taken over by the editor, so logs are only written when
--log-file (or log.file in the config) is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, closer, err := openLogger(cfg, io.Discard)
			if err != nil {
				return err
			}
			defer closer.Close()

			s, err := engine.New(cfg, logger)
			if err != nil {
				return err
			}
			logger.Info("starting", "qubits", cfg.Qubits, "depth", cfg.Depth, "version", version)
			return tui.Run(s, logger)
		},
	}
}
