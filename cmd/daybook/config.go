package main

import (
	"fmt"
	"os"

	"github.com/daybook-app/daybook/internal/colors"
	"github.com/daybook-app/daybook/internal/config"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command.
func NewConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Locate or create the configuration file",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.ConfigPath())
			return err
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ConfigPath()
			if _, err := os.Stat(path); err == nil {
				colors.Info("configuration already exists at " + path)
				return nil
			}
			if err := config.WriteSample(path); err != nil {
				return err
			}
			colors.Success("configuration written to " + path)
			return nil
		},
	})
	return configCmd
}
