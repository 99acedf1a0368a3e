package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mpoindexter/spring-webflow/internal/compiler"
	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <flow-id>",
	Short: "Print the effective flow after inheritance",
	Long:  `Resolves the parent chain of a flow, merges it and prints the validated result as YAML or JSON.`,
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

		format, _ := cmd.Flags().GetString("format")
		var out []byte
		switch format {
		case "yaml", "yml":
			out, err = compiler.Encode(flow)
		case "json":
			out, err = json.MarshalIndent(compiler.ToDocument(flow), "", "  ")
			out = append(out, '\n')
		default:
			return fmt.Errorf("unknown format %q (want yaml or json)", format)
		}
		if err != nil {
			return fmt.Errorf("failed to encode flow: %w", err)
		}

		if path, _ := cmd.Flags().GetString("out"); path != "" {
			if err := os.WriteFile(path, out, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			a.logger.Info("wrote merged flow", "flow", flow.ID, "path", path)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	mergeCmd.Flags().StringP("format", "f", "yaml", "Output format (yaml or json)")
	mergeCmd.Flags().StringP("out", "o", "", "Write to a file instead of stdout")
}
