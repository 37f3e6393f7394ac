package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"utamahr/internal/app/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := server.Run(ctx, cfg, log); err != nil {
				log.WithError(err).Error("server stopped")
				return err
			}
			return nil
		},
	}
}
