package sources

import (
	"context"
	"log/slog"
)

// Candidate is one description obtained from a single provider for one
// record, tagged with the provider that produced it.
type Candidate struct {
	Title       string
	Authors     []string
	Description string
	Source      string
}

// Provider fetches description candidates for a (title, author) pair.
type Provider interface {
	Name() string
	Search(ctx context.Context, title, author string) ([]Candidate, error)
}

// Aggregator queries its providers in order and merges their results.
// The fallback provider is consulted only when every regular provider
// came back empty; it is the fragile scraper, kept off the hot path.
type Aggregator struct {
	providers []Provider
	fallback  Provider
}

// NewAggregator creates an aggregator over the given providers. fallback
// may be nil.
func NewAggregator(providers []Provider, fallback Provider) *Aggregator {
	return &Aggregator{providers: providers, fallback: fallback}
}

// Collect gathers candidates from every provider for the given title and
// author. A provider failure degrades to zero candidates from that
// provider; Collect itself never fails.
func (a *Aggregator) Collect(ctx context.Context, title, author string) []Candidate {
	var candidates []Candidate

	for _, p := range a.providers {
		found, err := p.Search(ctx, title, author)
		if err != nil {
			slog.Warn("Source lookup failed", "source", p.Name(), "title", title, "error", err)
			continue
		}
		if len(found) > 0 {
			slog.Info("Found candidates", "source", p.Name(), "title", title, "count", len(found))
		}
		candidates = append(candidates, found...)
	}

	if len(candidates) == 0 && a.fallback != nil {
		found, err := a.fallback.Search(ctx, title, author)
		if err != nil {
			slog.Warn("Source lookup failed", "source", a.fallback.Name(), "title", title, "error", err)
			return candidates
		}
		if len(found) > 0 {
			slog.Info("Found candidates", "source", a.fallback.Name(), "title", title, "count", len(found))
		}
		candidates = append(candidates, found...)
	}

	return candidates
}
