package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shelftools/describer/internal/enrich"
	"github.com/shelftools/describer/internal/notion"
	"github.com/shelftools/describer/internal/report"
	"github.com/shelftools/describer/internal/sources"
)

// maxDescriptionLen caps what gets written back to the database.
const maxDescriptionLen = 2000

// Pipeline processes records strictly sequentially: aggregate
// candidates, select, clean, truncate, persist. One record finishes
// before the next begins.
type Pipeline struct {
	notion      *notion.Client
	aggregator  *sources.Aggregator
	enricher    *enrich.Service
	recordDelay time.Duration
}

// New creates a new pipeline
func New(notionClient *notion.Client, aggregator *sources.Aggregator, enricher *enrich.Service) *Pipeline {
	return &Pipeline{
		notion:      notionClient,
		aggregator:  aggregator,
		enricher:    enricher,
		recordDelay: 2 * time.Second,
	}
}

// Run fetches the records missing a description and processes each in
// turn. A reader failure aborts the run; everything downstream degrades
// to a skip reason on the record.
func (p *Pipeline) Run(ctx context.Context) (*report.RunResult, error) {
	result := report.NewRunResult()

	records, err := p.notion.QueryMissingDescriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}

	slog.Info("Fetched records missing a description", "run_id", result.RunID, "count", len(records))

	for i, record := range records {
		if i > 0 {
			// Rate limiting: pause between records
			time.Sleep(p.recordDelay)
		}

		slog.Info("Processing record", "index", i+1, "total", len(records), "title", record.Title)
		p.process(ctx, record, result)
	}

	result.Finish()
	slog.Info("Run complete", "run_id", result.RunID, "updated", len(result.Updated), "skipped", len(result.Skipped), "duration", result.Duration)

	return result, nil
}

func (p *Pipeline) process(ctx context.Context, record notion.Record, result *report.RunResult) {
	candidates := p.aggregator.Collect(ctx, record.Title, record.Author)
	if len(candidates) == 0 {
		slog.Warn("No descriptions found", "title", record.Title)
		result.Skip(record.Title, record.Author, record.URL, "No descriptions found")
		return
	}

	selected := p.enricher.Select(ctx, record.Title, candidates)
	cleaned := p.enricher.Clean(ctx, selected.Description)
	description := Truncate(cleaned, maxDescriptionLen)

	if err := p.notion.UpdateDescription(ctx, record.ID, description); err != nil {
		slog.Warn("Failed to update record", "title", record.Title, "error", err)
		result.Skip(record.Title, record.Author, record.URL, fmt.Sprintf("update failed: %v", err))
		return
	}

	slog.Info("Updated description", "title", record.Title, "source", selected.Source, "length", len(description))
	result.Update(record.Title, record.Author, record.URL)
}
