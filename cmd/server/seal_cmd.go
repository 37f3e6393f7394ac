package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"utamahr/internal/platform/crypto"
)

// newSealCmd prints a bytea literal for loading NRIC and bank account columns.
func newSealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seal VALUE",
		Short: "Encrypt a value with DATA_ENCRYPTION_KEY for the employees table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			sealer, err := crypto.New(cfg.DataEncryptionKey)
			if err != nil {
				return err
			}
			sealed, err := sealer.Seal(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "\\x%s\n", hex.EncodeToString(sealed))
			return err
		},
	}
}
