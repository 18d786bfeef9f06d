package report

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one record the run updated.
type Entry struct {
	Title  string
	Author string
	URL    string
}

// SkippedEntry is one record the run left untouched, with the reason.
type SkippedEntry struct {
	Entry
	Reason string
}

// RunResult accumulates what one run did, in processing order. It is
// built once per run, consumed by the notifier and the YAML artifact
// writer, then discarded.
type RunResult struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	Updated   []Entry
	Skipped   []SkippedEntry
}

// NewRunResult starts an empty result with a fresh run ID.
func NewRunResult() *RunResult {
	return &RunResult{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
}

// Update records a successful description write.
func (r *RunResult) Update(title, author, url string) {
	r.Updated = append(r.Updated, Entry{Title: title, Author: author, URL: url})
}

// Skip records a record left untouched and why.
func (r *RunResult) Skip(title, author, url, reason string) {
	r.Skipped = append(r.Skipped, SkippedEntry{
		Entry:  Entry{Title: title, Author: author, URL: url},
		Reason: reason,
	})
}

// Finish stamps the total run duration.
func (r *RunResult) Finish() {
	r.Duration = time.Since(r.StartedAt)
}
