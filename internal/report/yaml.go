package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// runSummary is the YAML shape of a saved run report.
type runSummary struct {
	RunID     string         `yaml:"runid"`
	StartedAt string         `yaml:"startedat"`
	Duration  string         `yaml:"duration"`
	Updated   []entrySummary `yaml:"updated"`
	Skipped   []skipSummary  `yaml:"skipped"`
}

type entrySummary struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author,omitempty"`
	URL    string `yaml:"url"`
}

type skipSummary struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author,omitempty"`
	URL    string `yaml:"url"`
	Reason string `yaml:"reason"`
}

// SaveToYAML writes the run result into dir as run-<timestamp>.yaml and
// returns the file path.
func SaveToYAML(result *RunResult, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	summary := runSummary{
		RunID:     result.RunID,
		StartedAt: result.StartedAt.Format(time.RFC3339),
		Duration:  result.Duration.Round(time.Millisecond).String(),
	}
	for _, e := range result.Updated {
		summary.Updated = append(summary.Updated, entrySummary{Title: e.Title, Author: e.Author, URL: e.URL})
	}
	for _, s := range result.Skipped {
		summary.Skipped = append(summary.Skipped, skipSummary{Title: s.Title, Author: s.Author, URL: s.URL, Reason: s.Reason})
	}

	data, err := yaml.Marshal(&summary)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	filename := filepath.Join(dir, fmt.Sprintf("run-%s.yaml", result.StartedAt.Format("2006-01-02_15-04-05")))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}

	return filename, nil
}
