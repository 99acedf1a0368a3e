package main

import (
	"fmt"

	"github.com/mpoindexter/spring-webflow/internal/compiler"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff <flow-id> [other-flow-id]",
	Short: "Show what inheritance changes in a flow",
	Long: `With one flow, compares its declared definition with the assembled one, showing
what the parents contribute. With two flows, compares both assembled flows.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		var (
			fromName, toName string
			from, to         []byte
		)
		if len(args) == 1 {
			declared, err := a.asm.Definition(ctx, args[0])
			if err != nil {
				return err
			}
			assembled, err := a.asm.Assemble(ctx, args[0])
			if err != nil {
				return err
			}
			fromName, toName = args[0]+" (declared)", args[0]+" (assembled)"
			if from, err = compiler.Encode(declared); err != nil {
				return err
			}
			if to, err = compiler.Encode(assembled); err != nil {
				return err
			}
		} else {
			for i, id := range args {
				flow, err := a.asm.Assemble(ctx, id)
				if err != nil {
					return err
				}
				encoded, err := compiler.Encode(flow)
				if err != nil {
					return err
				}
				if i == 0 {
					fromName, from = id, encoded
				} else {
					toName, to = id, encoded
				}
			}
		}

		lines, _ := cmd.Flags().GetInt("context")
		text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(from)),
			B:        difflib.SplitLines(string(to)),
			FromFile: fromName,
			ToFile:   toName,
			Context:  lines,
		})
		if err != nil {
			return fmt.Errorf("failed to diff: %w", err)
		}
		if text == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No differences.")
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().IntP("context", "C", 3, "Lines of context")
}
