package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
	errs "github.com/turaincash/mobcash-wallet/internal/domain/error"
	"github.com/turaincash/mobcash-wallet/internal/domain/usecase/wizard"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func newUSSDCmd() *cobra.Command {
	var merchant string
	cmd := &cobra.Command{
		Use:   "ussd <amount>",
		Short: "Print the Moov merchant payment code for a deposit amount",
		Example: `  mobcash ussd 10000 --merchant 22990000000
  mobcash ussd 2500.50 -m 22990000000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if merchant == "" {
				return errors.New("--merchant is required")
			}
			amount, err := entity.ParseAmount(args[0])
			if err != nil {
				return err
			}
			if amount <= 0 {
				return fmt.Errorf("%w: must be positive", errs.ErrInvalidAmount)
			}
			printUSSD(cmd.OutOrStdout(), amount, merchant)
			return nil
		},
	}
	cmd.Flags().StringVarP(&merchant, "merchant", "m", "", "Moov merchant phone (moov_marchand_phone setting)")
	return cmd
}

func printUSSD(w io.Writer, amount entity.Amount, merchant string) {
	code := wizard.DeriveMoovUSSD(amount, merchant)
	p := message.NewPrinter(language.French)
	p.Fprintf(w, "Deposit:  %d FCFA\n", amount.Whole())
	p.Fprintf(w, "Dial:     %s\n", code.Code)
	p.Fprintf(w, "Link:     %s\n", code.TelURI)
}
