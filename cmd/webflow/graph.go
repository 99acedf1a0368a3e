package main

import (
	"fmt"

	"github.com/mpoindexter/spring-webflow/internal/presentation/graph"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <flow-id>",
	Short: "Export the flow graph visualization",
	Long: `Assembles a flow and outputs a Mermaid diagram (graph TD) of its states.
States inherited from a parent flow are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		flow, err := a.asm.Assemble(ctx, args[0])
		if err != nil {
			return err
		}

		overlay := &graph.GraphOverlay{}
		overlay.Focus, _ = cmd.Flags().GetString("focus")
		if len(flow.Parents) > 0 {
			declared, err := a.asm.Definition(ctx, args[0])
			if err != nil {
				return err
			}
			overlay.Inherited = graph.InheritedStates(flow, declared)
		}
		if overlay.Focus == "" && len(overlay.Inherited) == 0 {
			overlay = nil
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(flow, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("focus", "", "State to emphasize")
}
