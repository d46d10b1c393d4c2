package main

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/opahours_backend/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadRuntime()
			if err != nil {
				return err
			}
			return migrateUp(cfg.DatabaseURL, cfg.MigrationsPath, logger)
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			cfg, logger, err := loadRuntime()
			if err != nil {
				return err
			}
			return withMigrator(cfg.DatabaseURL, cfg.MigrationsPath, logger, func(m *database.Migrator) error {
				return m.Down(steps)
			})
		},
	}
	down.Flags().Int("steps", 1, "Number of migrations to roll back")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadRuntime()
			if err != nil {
				return err
			}
			return withMigrator(cfg.DatabaseURL, cfg.MigrationsPath, logger, func(m *database.Migrator) error {
				v, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", v, dirty)
				return nil
			})
		},
	}

	migrateCmd.AddCommand(up, down, versionCmd)
	return migrateCmd
}

func migrateUp(databaseURL, sourceURL string, logger *slog.Logger) error {
	return withMigrator(databaseURL, sourceURL, logger, (*database.Migrator).Up)
}

func withMigrator(databaseURL, sourceURL string, logger *slog.Logger, fn func(*database.Migrator) error) error {
	m, err := database.NewMigrator(databaseURL, sourceURL, logger)
	if err != nil {
		return err
	}
	runErr := fn(m)
	if err := m.Close(); err != nil {
		logger.Error("Error closing migrator", slog.String("error", err.Error()))
		if runErr == nil {
			runErr = err
		}
	}
	return runErr
}
