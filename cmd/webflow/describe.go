package main

import (
	"fmt"

	"github.com/mpoindexter/spring-webflow/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <flow-id>",
	Short: "Summarize an assembled flow",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}

		flow, err := a.asm.Assemble(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		render := tui.NewRenderer(isTerminal(cmd))
		out, err := render(tui.Describe(flow))
		if err != nil {
			return fmt.Errorf("failed to render: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
