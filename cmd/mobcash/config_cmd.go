package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/config"
)

func newConfigCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or check the configuration",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter YAML file with every default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "configs/" + config.Development + ".yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteStarter(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\nSet mobcash.base_url (or MC_MOBCASH_BASE_URL) before running serve.\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Load and validate the configuration serve would use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			source := cfg.Source
			if source == "" {
				source = "defaults and environment only"
			}
			fmt.Fprintf(out, "Environment: %s\nSource:      %s\nMailbox:     %s\nListen:      %s\n",
				cfg.Environment, source, cfg.Mailbox.Driver, cfg.Server.Addr())
			for _, w := range cfg.Warnings() {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			fmt.Fprintln(out, "OK")
			return nil
		},
	}

	cmd.AddCommand(initCmd, checkCmd)
	return cmd
}
