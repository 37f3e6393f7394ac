package main

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"utamahr/internal/domain/voucher"
	"utamahr/internal/platform/amount"
)

func newWordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words AMOUNT",
		Short: "Spell a Ringgit amount the way payment vouchers print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := amount.ParseString(args[0])
			if !voucher.Spellable(value) {
				return errors.Errorf("amount %s out of range: must be between 0 and 999999999999.99", args[0])
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), voucher.AmountToWords(value))
			return err
		},
	}
}
