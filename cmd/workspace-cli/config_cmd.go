package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/majidmanzarpour/workspace-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage workspace-cli configuration",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the config file and report problems",
	RunE:  runConfigValidate,
}

func init() {
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	path := findConfigFile()
	if path == "" {
		return fmt.Errorf("no config file found (looked for %s)", defaultConfigFile)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", path)

	return nil
}
