package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// GoogleBooks searches the Google Books volumes API. No authentication
// is required.
type GoogleBooks struct {
	baseURL    string
	httpClient *http.Client
}

// NewGoogleBooks creates a Google Books provider
func NewGoogleBooks() *GoogleBooks {
	return &GoogleBooks{
		baseURL: "https://www.googleapis.com",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (g *GoogleBooks) Name() string { return "Google Books" }

// Search queries the volumes endpoint and keeps the items that carry a
// description.
func (g *GoogleBooks) Search(ctx context.Context, title, author string) ([]Candidate, error) {
	q := fmt.Sprintf("intitle:%q", title)
	if author != "" {
		q += fmt.Sprintf(" inauthor:%q", author)
	}
	searchURL := fmt.Sprintf("%s/books/v1/volumes?q=%s&maxResults=5", g.baseURL, url.QueryEscape(q))

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query Google Books API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("google Books API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Items []struct {
			VolumeInfo struct {
				Title       string   `json:"title"`
				Authors     []string `json:"authors"`
				Description string   `json:"description"`
			} `json:"volumeInfo"`
		} `json:"items"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode Google Books response: %w", err)
	}

	var candidates []Candidate
	for _, item := range result.Items {
		if item.VolumeInfo.Description == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			Title:       item.VolumeInfo.Title,
			Authors:     item.VolumeInfo.Authors,
			Description: item.VolumeInfo.Description,
			Source:      g.Name(),
		})
	}

	return candidates, nil
}
