package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/NeaByteLab/Trading-Lib-sub003/config"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/logger"
)

// app is the state shared by every subcommand once the root has run.
type app struct {
	cfg *config.Config
	log *slog.Logger

	logLevel string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "tacalc",
		Short: "Technical indicator calculator",
		Long: `tacalc runs batch technical-indicator calculations over OHLCV bars
loaded from SQLite or a Redis stream and prints the most recent values.

Configuration is read from TA_-prefixed environment variables; flags
override it per invocation.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides TA_LOG_LEVEL")

	root.AddCommand(
		newListCmd(a),
		newSeriesCmd(a),
		newComputeCmd(a),
		newImportCmd(a),
	)
	return root
}

func (a *app) init(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	level := cfg.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}
	a.cfg = cfg
	a.log = logger.Init(cfg.ServiceName, logger.ParseLevel(level))
	return nil
}
