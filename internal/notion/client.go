package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// apiVersion is the Notion-Version header value sent on every request.
const apiVersion = "2022-06-28"

// pageSize caps how many records a single run will process.
const pageSize = 50

// Property names in the target database.
const (
	propTitle       = "Title"
	propAuthor      = "Author"
	propType        = "Type"
	propDescription = "Description"
)

// Client is a minimal Notion API client covering the two calls the
// pipeline needs: a database query and a page property update.
type Client struct {
	BaseURL    string
	APIKey     string
	DatabaseID string
	httpClient *http.Client
}

// Record is one database entry awaiting a description.
type Record struct {
	ID     string
	Title  string
	Author string
	URL    string
}

// NewClient creates a new Notion client
func NewClient(apiKey, databaseID string) *Client {
	return &Client{
		BaseURL:    "https://api.notion.com",
		APIKey:     apiKey,
		DatabaseID: databaseID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// QueryMissingDescriptions returns the book records whose description is
// empty, ordered by title, capped at one page. Errors here are fatal for
// the run; the caller does not retry.
func (c *Client) QueryMissingDescriptions(ctx context.Context) ([]Record, error) {
	query := map[string]interface{}{
		"filter": map[string]interface{}{
			"and": []map[string]interface{}{
				{
					"property": propType,
					"select":   map[string]interface{}{"equals": "Book"},
				},
				{
					"property":  propDescription,
					"rich_text": map[string]interface{}{"is_empty": true},
				},
			},
		},
		"sorts": []map[string]interface{}{
			{"property": propTitle, "direction": "ascending"},
		},
		"page_size": pageSize,
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	queryURL := fmt.Sprintf("%s/v1/databases/%s/query", c.BaseURL, c.DatabaseID)
	req, err := http.NewRequestWithContext(ctx, "POST", queryURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create query request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query database: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("notion query returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var queryResp struct {
		Results []page `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&queryResp); err != nil {
		return nil, fmt.Errorf("failed to decode query response: %w", err)
	}

	records := make([]Record, 0, len(queryResp.Results))
	for _, p := range queryResp.Results {
		records = append(records, Record{
			ID:     p.ID,
			Title:  p.plainText(propTitle),
			Author: p.plainText(propAuthor),
			URL:    p.URL,
		})
	}

	return records, nil
}

// UpdateDescription writes text into the page's description property.
func (c *Client) UpdateDescription(ctx context.Context, pageID, description string) error {
	update := map[string]interface{}{
		"properties": map[string]interface{}{
			propDescription: map[string]interface{}{
				"rich_text": []map[string]interface{}{
					{"text": map[string]string{"content": description}},
				},
			},
		},
	}

	body, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal update: %w", err)
	}

	updateURL := fmt.Sprintf("%s/v1/pages/%s", c.BaseURL, pageID)
	req, err := http.NewRequestWithContext(ctx, "PATCH", updateURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create update request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to update page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("notion update returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")
}

// page is the subset of a Notion page the pipeline reads.
type page struct {
	ID         string                   `json:"id"`
	URL        string                   `json:"url"`
	Properties map[string]propertyValue `json:"properties"`
}

// propertyValue covers the two rich-text shapes a property can use; at
// most one of the slices is populated for a given property.
type propertyValue struct {
	Title    []richText `json:"title"`
	RichText []richText `json:"rich_text"`
}

type richText struct {
	PlainText string `json:"plain_text"`
}

// plainText concatenates the text fragments of the named property,
// whichever form it uses.
func (p page) plainText(name string) string {
	prop, ok := p.Properties[name]
	if !ok {
		return ""
	}

	fragments := prop.Title
	if len(fragments) == 0 {
		fragments = prop.RichText
	}

	var sb strings.Builder
	for _, rt := range fragments {
		sb.WriteString(rt.PlainText)
	}
	return strings.TrimSpace(sb.String())
}
