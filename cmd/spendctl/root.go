package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/SscSPs/spend_tracker_app/internal/middleware"
)

type rootOptions struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "spendctl",
		Short:         "Spend tracker operator tooling",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Show help when no subcommand is provided
			return cmd.Help()
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger := newCLILogger(opts.verbose)
			slog.SetDefault(logger)
			cmd.SetContext(middleware.WithLogger(contextOrBackground(cmd.Context()), logger))
		},
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newNormalizeCmd(),
		newParseCmd(),
		newTokenCmd(),
		newMigrateCmd(),
	)
	return cmd
}

func newCLILogger(verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return slog.New(log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "spendctl",
		Level:           level,
	}))
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
