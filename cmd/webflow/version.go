package main

import (
	"fmt"
	"strings"

	webflow "github.com/mpoindexter/spring-webflow"
	"github.com/mpoindexter/spring-webflow/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of webflow",
	Run: func(cmd *cobra.Command, args []string) {
		if isTerminal(cmd) {
			tui.PrintBanner(cmd.OutOrStdout())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "webflow version %s\n", strings.TrimSpace(webflow.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
