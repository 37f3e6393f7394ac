package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"utamahr/internal/platform/config"
	"utamahr/internal/platform/logging"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "utamahr",
		Short:        "UtamaHR document service",
		SilenceUsage: true,
	}
	cmd.AddCommand(newServeCmd(), newMigrateCmd(), newRenderCmd(), newWordsCmd(), newSealCmd(), newPurgeAuditCmd())
	return cmd
}

func loadConfig() (config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logging.New(cfg.LogLevel, cfg.Environment), nil
}
