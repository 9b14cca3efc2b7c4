package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"qcircuitgrid/internal/config"
	"qcircuitgrid/internal/logging"
)

// loadConfig reads the config file and environment, then applies any flags
// set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("qubits") {
		cfg.Qubits, _ = flags.GetInt("qubits")
	}
	if flags.Changed("depth") {
		cfg.Depth, _ = flags.GetInt("depth")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-file") {
		cfg.Log.File, _ = flags.GetString("log-file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openLogger builds the logger for a command. Without a log file, output
// goes to fallback. The returned closer is never nil.
func openLogger(cfg *config.Config, fallback io.Writer) (*log.Logger, io.Closer, error) {
	if cfg.Log.File == "" {
		return logging.New(cfg.Log.Level, fallback), io.NopCloser(nil), nil
	}
	l, f, err := logging.OpenFile(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return l, f, nil
}

