package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "webflow",
	Short: "webflow assembles and inspects inheritable flow definitions",
	Long: `webflow resolves flow definitions that inherit from parent flows, merges them
into one effective flow and checks the result for broken references.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands). They override webflow.yaml.
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the flow definitions")
	rootCmd.PersistentFlags().String("redis", "", "Redis address to load flows from instead of --dir")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("config", "", "Path to the project configuration (default ./webflow.yaml)")
	rootCmd.PersistentFlags().Bool("strict", false, "Reject states unreachable from the start state")
}
