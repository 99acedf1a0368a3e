package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mpoindexter/spring-webflow/internal/compiler"
	"github.com/spf13/cobra"
)

var errNoStore = errors.New("publishing requires a Redis store (--redis or redis.addr in webflow.yaml)")

var publishCmd = &cobra.Command{
	Use:   "publish <file>",
	Short: "Store a flow definition in Redis",
	Long:  `Parses a flow document and stores it in Redis under its ID, replacing any previous version.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		if a.store == nil {
			return errNoStore
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		flow, err := compiler.NewParser().Parse(data)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		if err := a.store.SaveFlow(cmd.Context(), flow.ID, data); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Published %s\n", flow.ID)
		return nil
	},
}

var unpublishCmd = &cobra.Command{
	Use:   "unpublish <flow-id>",
	Short: "Remove a flow definition from Redis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		if a.store == nil {
			return errNoStore
		}
		if err := a.store.DeleteFlow(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(publishCmd, unpublishCmd)
}
