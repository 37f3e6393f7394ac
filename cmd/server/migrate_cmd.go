package main

import (
	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"utamahr/internal/platform/db"
)

func newMigrateCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL is required")
			}
			pool, err := db.Connect(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := db.Migrate(cmd.Context(), pool, cfg.MigrationsDir, log); err != nil {
				return err
			}
			if !seed {
				return nil
			}
			return db.Seed(cmd.Context(), pool, db.SeedOptions{
				TenantName:    cfg.SeedTenantName,
				AdminEmail:    cfg.SeedAdminEmail,
				AdminPassword: cfg.SeedAdminPassword,
			})
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "Seed the default tenant and admin after migrating")
	return cmd
}
