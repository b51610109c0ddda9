package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
)

func newPhoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phone",
		Short: "Phone number helpers for the supported markets",
	}
	cmd.AddCommand(newPhoneNormalizeCmd(), newPhoneComposeCmd(), newCountriesCmd())
	return cmd
}

func newPhoneNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "normalize <phone>",
		Short:   "Split a stored number into its country and local digits",
		Example: "  mobcash phone normalize '+225 05 00 00 00 00'",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.Join(args, " ")
			country := entity.DetectCountry(raw, entity.Countries)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Digits:   %s\n", entity.FormatDigits(raw))
			fmt.Fprintf(out, "Country:  %s (%s, +%s)\n", country.Name, country.Code, country.CallingCode)
			fmt.Fprintf(out, "Local:    %s\n", entity.StripCountryPrefix(raw, country))
			return nil
		},
	}
}

func newPhoneComposeCmd() *cobra.Command {
	var countryCode string
	cmd := &cobra.Command{
		Use:     "compose <local number>",
		Short:   "Build the full number stored for a local number",
		Example: "  mobcash phone compose 0102030405 --country BF",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.Join(args, " ")
			if err := entity.ValidateLocalPhone(raw); err != nil {
				return err
			}
			country := entity.CountryByCode(countryCode)
			fmt.Fprintln(cmd.OutOrStdout(), entity.ComposeFull(entity.FormatDigits(raw), country))
			return nil
		},
	}
	cmd.Flags().StringVar(&countryCode, "country", entity.DefaultCountry.Code, "ISO code of the market")
	return cmd
}

func newCountriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List the supported markets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, c := range entity.Countries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  +%s  %s\n", c.Code, c.CallingCode, c.Name)
			}
		},
	}
}
