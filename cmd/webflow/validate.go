package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	webflow "github.com/mpoindexter/spring-webflow"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [flow-id...]",
	Short: "Check flows for consistency",
	Long: `Assembles each flow (all flows when none are named) and reports broken state
references, invalid conditions and badly typed attributes. Abstract flows are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}

		if err := runValidate(cmd.Context(), a.asm, args, cmd.OutOrStdout()); err != nil {
			return err
		}

		if watch, _ := cmd.Flags().GetBool("watch"); !watch {
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		changes, err := a.asm.Watch(ctx)
		if err != nil {
			return err
		}
		a.logger.Info("watching for changes", "dir", a.cfg.Dir)
		for id := range changes {
			a.logger.Info("definition changed", "flow", id)
			if err := runValidate(ctx, a.asm, args, cmd.OutOrStdout()); err != nil {
				a.logger.Warn("validation failed", "error", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolP("watch", "w", false, "Re-validate whenever a definition changes")
}

func runValidate(ctx context.Context, asm *webflow.Assembler, ids []string, out io.Writer) error {
	if len(ids) == 0 {
		var err error
		if ids, err = asm.Inspect(ctx); err != nil {
			return err
		}
	}

	failed := 0
	for _, id := range ids {
		_, err := asm.Assemble(ctx, id)
		switch {
		case err == nil:
			fmt.Fprintf(out, "✅ %s\n", id)
		case errors.Is(err, webflow.ErrAbstractFlow):
			fmt.Fprintf(out, "➖ %s (abstract)\n", id)
		default:
			failed++
			fmt.Fprintf(out, "❌ %s\n", id)
			if problems := webflow.ValidationErrors(err); len(problems) > 0 {
				for _, p := range problems {
					fmt.Fprintf(out, "   - %s\n", p)
				}
			} else {
				fmt.Fprintf(out, "   - %s\n", err)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d flows failed validation", failed, len(ids))
	}
	return nil
}
