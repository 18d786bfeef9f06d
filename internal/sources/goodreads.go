package sources

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// minScrapedLen discards scraped fragments too short to be a real
// description.
const minScrapedLen = 20

var (
	bookLinkRe    = regexp.MustCompile(`href="(/book/show/[^"]+)"`)
	descriptionRe = regexp.MustCompile(`(?s)<div data-testid="description"[^>]*>(.*?)</div>`)
)

// Goodreads scrapes the public Goodreads site. This is the fallback of
// last resort: it pattern-matches markup that can drift, so the
// aggregator only consults it when every API source missed.
type Goodreads struct {
	baseURL     string
	httpClient  *http.Client
	detailDelay time.Duration
	stripper    *bluemonday.Policy
}

// NewGoodreads creates a Goodreads scrape provider
func NewGoodreads() *Goodreads {
	return &Goodreads{
		baseURL: "https://www.goodreads.com",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		detailDelay: 1 * time.Second,
		stripper:    bluemonday.StrictPolicy(),
	}
}

func (g *Goodreads) Name() string { return "Goodreads" }

// Search looks up the book on the search page, follows the first result
// link, and extracts the description region from the book page.
func (g *Goodreads) Search(ctx context.Context, title, author string) ([]Candidate, error) {
	q := strings.TrimSpace(title + " " + author)
	searchURL := fmt.Sprintf("%s/search?q=%s", g.baseURL, url.QueryEscape(q))

	searchHTML, err := g.fetchPage(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("failed to search Goodreads: %w", err)
	}

	match := bookLinkRe.FindStringSubmatch(searchHTML)
	if match == nil {
		return nil, fmt.Errorf("no book link found in search results")
	}

	// Rate limiting: sleep before fetching the book page
	time.Sleep(g.detailDelay)

	bookHTML, err := g.fetchPage(ctx, g.baseURL+match[1])
	if err != nil {
		return nil, fmt.Errorf("failed to fetch book page: %w", err)
	}

	descMatch := descriptionRe.FindStringSubmatch(bookHTML)
	if descMatch == nil {
		return nil, fmt.Errorf("no description region found on book page")
	}

	description := strings.TrimSpace(html.UnescapeString(g.stripper.Sanitize(descMatch[1])))
	if len(description) < minScrapedLen {
		return nil, fmt.Errorf("scraped description too short (%d chars)", len(description))
	}

	var authors []string
	if author != "" {
		authors = []string{author}
	}

	return []Candidate{{
		Title:       title,
		Authors:     authors,
		Description: description,
		Source:      g.Name(),
	}}, nil
}

func (g *Goodreads) fetchPage(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 describer/0.1")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read page body: %w", err)
	}

	return string(body), nil
}
