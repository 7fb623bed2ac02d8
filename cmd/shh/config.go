package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RafRunner/shh/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "shh.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to replace it", path)
			}
			if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
				return err
			}
			success(cmd, "Default configuration saved to %s", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "replace an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check <path>",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.LoadConfig(args[0]); err != nil {
				return err
			}
			success(cmd, "%s is valid", args[0])
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd, checkCmd)
	return cmd
}
