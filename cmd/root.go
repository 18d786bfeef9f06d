package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describer",
		Short: "Book description backfill tool with LLM-powered candidate selection",
		Long: `Describer fills in missing descriptions for book records in a Notion database.

It gathers candidate descriptions from public book APIs, uses an LLM to pick
and clean the best one, and writes the result back to the record.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newInspectCmd())

	return cmd
}
