package sources

import (
	"context"
	"fmt"
	"testing"
)

type stubProvider struct {
	name       string
	candidates []Candidate
	err        error
	calls      int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Search(ctx context.Context, title, author string) ([]Candidate, error) {
	s.calls++
	return s.candidates, s.err
}

func TestCollectMergesInOrder(t *testing.T) {
	first := &stubProvider{name: "first", candidates: []Candidate{{Description: "one", Source: "first"}}}
	second := &stubProvider{name: "second", candidates: []Candidate{{Description: "two", Source: "second"}}}
	fallback := &stubProvider{name: "fallback", candidates: []Candidate{{Description: "scraped", Source: "fallback"}}}

	agg := NewAggregator([]Provider{first, second}, fallback)

	candidates := agg.Collect(context.Background(), "Dune", "Frank Herbert")

	if len(candidates) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].Source != "first" || candidates[1].Source != "second" {
		t.Errorf("Candidates out of order: %+v", candidates)
	}
	if fallback.calls != 0 {
		t.Errorf("Fallback called %d times despite candidates being found", fallback.calls)
	}
}

func TestCollectProviderFailureDegrades(t *testing.T) {
	failing := &stubProvider{name: "failing", err: fmt.Errorf("connection refused")}
	working := &stubProvider{name: "working", candidates: []Candidate{{Description: "two", Source: "working"}}}

	agg := NewAggregator([]Provider{failing, working}, nil)

	candidates := agg.Collect(context.Background(), "Dune", "")

	if len(candidates) != 1 {
		t.Fatalf("Expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].Source != "working" {
		t.Errorf("Unexpected candidate: %+v", candidates[0])
	}
}

func TestCollectFallbackOnTotalMiss(t *testing.T) {
	empty := &stubProvider{name: "empty"}
	failing := &stubProvider{name: "failing", err: fmt.Errorf("timeout")}
	fallback := &stubProvider{name: "fallback", candidates: []Candidate{{Description: "scraped", Source: "fallback"}}}

	agg := NewAggregator([]Provider{empty, failing}, fallback)

	candidates := agg.Collect(context.Background(), "Obscure Title", "")

	if fallback.calls != 1 {
		t.Fatalf("Expected fallback to be called once, got %d", fallback.calls)
	}
	if len(candidates) != 1 || candidates[0].Source != "fallback" {
		t.Errorf("Unexpected candidates: %+v", candidates)
	}
}

func TestCollectFallbackFailure(t *testing.T) {
	empty := &stubProvider{name: "empty"}
	fallback := &stubProvider{name: "fallback", err: fmt.Errorf("markup drift")}

	agg := NewAggregator([]Provider{empty}, fallback)

	candidates := agg.Collect(context.Background(), "Obscure Title", "")

	if len(candidates) != 0 {
		t.Errorf("Expected no candidates, got %+v", candidates)
	}
}

func TestCollectNoFallback(t *testing.T) {
	empty := &stubProvider{name: "empty"}

	agg := NewAggregator([]Provider{empty}, nil)

	if candidates := agg.Collect(context.Background(), "Obscure Title", ""); len(candidates) != 0 {
		t.Errorf("Expected no candidates, got %+v", candidates)
	}
}
