package main

import (
	"fmt"
	"sort"

	"github.com/ayuraa/wellness-backend/internal/config"
	"github.com/ayuraa/wellness-backend/internal/infrastructure/database/postgres"
	"github.com/ayuraa/wellness-backend/internal/pkg/logger"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var seed, drop bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			log := logger.New(cfg.Logging)

			db, err := postgres.NewConnection(cfg, log)
			if err != nil {
				return err
			}
			defer db.Close()

			m := postgres.NewMigration(db.GetDB(), log)
			if drop {
				if cfg.IsProduction() {
					return fmt.Errorf("refusing to drop tables in production")
				}
				if err := m.DropAllTables(); err != nil {
					return err
				}
			}
			if err := m.RunAutoMigrations(); err != nil {
				return err
			}
			if err := m.CreateIndexes(); err != nil {
				return err
			}
			if seed {
				if err := m.SeedInitialData(); err != nil {
					return err
				}
			}

			counts, err := m.TableCounts()
			if err != nil {
				return err
			}
			tables := make([]string, 0, len(counts))
			for t := range counts {
				tables = append(tables, t)
			}
			sort.Strings(tables)
			for _, t := range tables {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %d\n", t, counts[t])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "seed healers and the demo account")
	cmd.Flags().BoolVar(&drop, "drop", false, "drop every table first")
	return cmd
}
