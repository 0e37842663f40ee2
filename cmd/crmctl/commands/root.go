// Package commands implements the crmctl command tree.
package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the crmctl command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crmctl",
		Short: "Operator tools for the CRM lead assignment service",
		Long: `crmctl previews lead assignment against CSV files and mints access tokens.

Previews never touch storage; they run the same assignment rules the API uses.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Missing .env is fine; the environment may already be set.
			_ = godotenv.Load()
		},
	}
	cmd.AddCommand(NewPreviewCmd())
	cmd.AddCommand(NewTokenCmd())
	return cmd
}

func Execute() error {
	return NewRootCmd().Execute()
}
