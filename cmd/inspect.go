package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/shelftools/describer/internal/config"
	"github.com/shelftools/describer/internal/notion"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List book records missing a description (read-only)",
		Long: `Queries the Notion database for book records with an empty Description
property and prints them without changing anything.

Useful for checking what a run would process. Only NOTION_API_KEY and
NOTION_DATABASE_ID are required.`,
		Example: `  # See which records the next run would pick up
  describer inspect`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeInspect(cmd.Context())
		},
	}

	return cmd
}

func executeInspect(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client := notion.NewClient(cfg.NotionAPIKey, cfg.NotionDatabaseID)

	records, err := client.QueryMissingDescriptions(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch records: %w", err)
	}

	fmt.Printf("Found %d records missing a description\n", len(records))
	fmt.Println(strings.Repeat("=", 80))

	for i, record := range records {
		fmt.Printf("RECORD %d/%d\n", i+1, len(records))
		fmt.Println(strings.Repeat("-", 80))
		fmt.Printf("Title:  %s\n", record.Title)
		fmt.Printf("Author: %s\n", record.Author)
		fmt.Printf("URL:    %s\n", record.URL)
		fmt.Println()
	}

	return nil
}
