package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// OpenLibrary searches the Open Library API. Every hit costs a second
// round trip to the work endpoint, so courtesy delays pace the search
// and each per-work fetch.
type OpenLibrary struct {
	baseURL     string
	httpClient  *http.Client
	searchDelay time.Duration
	fetchDelay  time.Duration
}

// NewOpenLibrary creates an Open Library provider
func NewOpenLibrary() *OpenLibrary {
	return &OpenLibrary{
		baseURL: "https://openlibrary.org",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		searchDelay: 1 * time.Second,
		fetchDelay:  500 * time.Millisecond,
	}
}

func (o *OpenLibrary) Name() string { return "Open Library" }

// Search runs the title/author search and fetches each matching work
// record for its description.
func (o *OpenLibrary) Search(ctx context.Context, title, author string) ([]Candidate, error) {
	// Rate limiting: Open Library allows 100 req/5min, so ~1 req/sec is safe
	time.Sleep(o.searchDelay)

	searchURL := fmt.Sprintf("%s/search.json?title=%s&author=%s&limit=3",
		o.baseURL, url.QueryEscape(title), url.QueryEscape(author))

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query Open Library: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("open Library API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Docs []struct {
			Key        string   `json:"key"`
			Title      string   `json:"title"`
			AuthorName []string `json:"author_name"`
		} `json:"docs"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode Open Library response: %w", err)
	}

	var candidates []Candidate
	for _, doc := range result.Docs {
		if doc.Key == "" {
			continue
		}

		// Rate limiting: sleep between per-work fetches
		time.Sleep(o.fetchDelay)

		description, err := o.fetchWorkDescription(ctx, doc.Key)
		if err != nil {
			slog.Warn("Failed to fetch work", "key", doc.Key, "error", err)
			continue
		}
		if description == "" {
			continue
		}

		candidates = append(candidates, Candidate{
			Title:       doc.Title,
			Authors:     doc.AuthorName,
			Description: description,
			Source:      o.Name(),
		})
	}

	return candidates, nil
}

// fetchWorkDescription fetches one work record and returns its
// description, empty if the work has none.
func (o *OpenLibrary) fetchWorkDescription(ctx context.Context, key string) (string, error) {
	workURL := fmt.Sprintf("%s%s.json", o.baseURL, key)

	req, err := http.NewRequestWithContext(ctx, "GET", workURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch work: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("work fetch returned status %d", resp.StatusCode)
	}

	var work struct {
		Description json.RawMessage `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&work); err != nil {
		return "", fmt.Errorf("failed to decode work response: %w", err)
	}

	return decodeDescription(work.Description), nil
}

// decodeDescription normalizes the two shapes Open Library uses for a
// work description: a plain string or a {type, value} object.
func decodeDescription(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return strings.TrimSpace(obj.Value)
	}

	return ""
}
