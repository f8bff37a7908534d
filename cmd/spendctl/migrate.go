package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/SscSPs/spend_tracker_app/internal/platform/config"
	"github.com/SscSPs/spend_tracker_app/pkg/database"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := migrationConfig()
			if err != nil {
				return err
			}
			return database.MigrateUp(cfg.DatabaseURL, cfg.MigrationsPath, slog.Default())
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the given number of migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := migrationConfig()
			if err != nil {
				return err
			}
			return database.MigrateDown(cfg.DatabaseURL, cfg.MigrationsPath, steps, slog.Default())
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	cmd.AddCommand(down)

	return cmd
}

func migrationConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("PGSQL_URL is not set")
	}
	return cfg, nil
}
