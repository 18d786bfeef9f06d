package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shelftools/describer/internal/config"
	"github.com/shelftools/describer/internal/enrich"
	"github.com/shelftools/describer/internal/llm"
	"github.com/shelftools/describer/internal/notion"
	"github.com/shelftools/describer/internal/pipeline"
	"github.com/shelftools/describer/internal/report"
	"github.com/shelftools/describer/internal/slack"
	"github.com/shelftools/describer/internal/sources"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var reportDir string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Backfill missing descriptions for book records",
		Long: `Queries the Notion database for book records with an empty Description,
gathers candidate descriptions from Google Books, Open Library, and
optionally Hardcover, falls back to scraping Goodreads when every source
comes up empty, then uses an LLM to pick and clean the best candidate
before writing it back to the record.

A YAML summary of the run is saved locally, and a summary message is
posted to Slack when SLACK_WEBHOOK_URL is set.`,
		Example: `  # Backfill descriptions with the default Anthropic model
  describer run

  # Use Gemini instead
  DESCRIBER_LLM_PROVIDER=gemini describer run

  # Keep run summaries in a custom directory
  describer run --report-dir ./reports`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRun(cmd.Context(), reportDir)
		},
	}

	cmd.Flags().StringVar(&reportDir, "report-dir", "runs", "Directory for YAML run summaries")

	return cmd
}

func executeRun(ctx context.Context, reportDir string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client, err := llm.New(cfg)
	if err != nil {
		return err
	}

	providers := []sources.Provider{
		sources.NewGoogleBooks(),
		sources.NewOpenLibrary(),
	}
	if cfg.HardcoverToken != "" {
		providers = append(providers, sources.NewHardcover(cfg.HardcoverToken))
	} else {
		slog.Info("HARDCOVER_API_TOKEN not set, skipping Hardcover lookups")
	}

	aggregator := sources.NewAggregator(providers, sources.NewGoodreads())
	notionClient := notion.NewClient(cfg.NotionAPIKey, cfg.NotionDatabaseID)

	pipe := pipeline.New(notionClient, aggregator, enrich.NewService(client))

	result, err := pipe.Run(ctx)
	if err != nil {
		return err
	}

	if path, err := report.SaveToYAML(result, reportDir); err != nil {
		slog.Warn("Failed to save run summary", "err", err)
	} else {
		slog.Info("Run summary saved", "path", path)
	}

	notifier := slack.NewNotifier(cfg.SlackWebhookURL, cfg.RunLogURL)
	notifier.Notify(ctx, result)

	fmt.Printf("\nUpdated %d records, skipped %d\n", len(result.Updated), len(result.Skipped))

	return nil
}
