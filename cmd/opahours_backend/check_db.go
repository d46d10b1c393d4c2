package main

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/opahours_backend/pkg/database"
	"github.com/spf13/cobra"
)

func newCheckDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-db",
		Short: "Ping the database and print table row counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadRuntime()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
			if err != nil {
				return err
			}
			defer database.ClosePgxPool(pool, logger)

			counts, err := database.CountRows(ctx, pool)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range counts {
				fmt.Fprintf(out, "%-20s %d\n", c.Table, c.Rows)
			}
			return nil
		},
	}
}
