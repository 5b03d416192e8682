// Package main is the entry point for workspace-cli.
package main

import (
	"context"
	"os"
	"path/filepath"

	"charm.land/fang/v2"
	"github.com/spf13/cobra"
)

const (
	defaultConfigFile = "config.yaml"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "workspace-cli",
	Short: "Command-line client for Google Workspace APIs",
	Long: `workspace-cli talks to the Google Workspace REST APIs (Gmail, Drive,
Calendar, Docs, Sheets, Slides, Tasks and more) through a shared request
pipeline with per-service rate limiting, retries with backoff, and
batched requests.`,
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file path (default: ./"+defaultConfigFile+" or ~/.config/workspace-cli/"+defaultConfigFile+")")
}

func main() {
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}

// findConfigFile resolves the effective config path. Returns an empty
// string when no config file exists, which runs with defaults.
func findConfigFile() string {
	if cfgFile != "" {
		return cfgFile
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile
	}
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		p := filepath.Join(home, ".config", "workspace-cli", defaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
