package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "crptgate",
	Short: "Rate-gated client for the CRPT document API",
	Long: `Crptgate submits goods-into-circulation documents to the CRPT marking API
while holding submissions to a configured rate: at most N requests per fixed
time window. Callers past the window's quota wait for the next replenishment
instead of being rejected.

Submissions can be journaled to a local SQLite database for auditing.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
