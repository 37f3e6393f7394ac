package main

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"utamahr/internal/domain/audit"
	"utamahr/internal/platform/db"
	"utamahr/internal/platform/jobs"
)

func newPurgeAuditCmd() *cobra.Command {
	var tenantID string

	cmd := &cobra.Command{
		Use:   "purge-audit",
		Short: "Delete audit events older than AUDIT_RETENTION for one tenant",
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

			svc := jobs.New(pool, audit.New(pool), jobs.Options{AuditRetention: cfg.AuditRetention}, log)
			details, err := svc.RunNow(cmd.Context(), jobs.JobAuditRetention, tenantID, func(ctx context.Context) (any, error) {
				return svc.PurgeAudit(ctx, tenantID)
			})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(details)
		},
	}
	cmd.Flags().StringVar(&tenantID, "tenant", "", "Tenant UUID (required)")
	_ = cmd.MarkFlagRequired("tenant")
	return cmd
}
