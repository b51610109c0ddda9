package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/config"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	configFile  string
	environment string
}

func (f *rootFlags) load() (*config.Config, error) {
	return config.LoadConfig(config.LoadOptions{File: f.configFile, Environment: f.environment})
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:     "mobcash",
		Short:   "Mobile-money wallet backend for Mobcash deposits and withdrawals",
		Version: version,
		Long: `mobcash runs the wallet API that drives the deposit and withdrawal
wizards against the Mobcash platform, and ships a few offline helpers
for support staff (USSD codes, phone normalization).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "config file (default ./configs/<env>.yaml)")
	root.PersistentFlags().StringVarP(&flags.environment, "env", "e", "", "environment: development, production or test (default $MC_ENV)")

	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newUSSDCmd())
	root.AddCommand(newPhoneCmd())
	root.AddCommand(newConfigCmd(flags))
	return root
}
