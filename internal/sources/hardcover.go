package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Hardcover queries the Hardcover GraphQL API. The provider requires an
// API token; the run command only registers it when one is configured.
type Hardcover struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHardcover creates a Hardcover provider using the given API token
func NewHardcover(token string) *Hardcover {
	return &Hardcover{
		baseURL: "https://api.hardcover.app",
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (h *Hardcover) Name() string { return "Hardcover" }

const bookSearchQuery = `query BookSearch($title: String!) {
  books(where: {title: {_eq: $title}}, limit: 5) {
    title
    description
    contributions {
      author {
        name
      }
    }
  }
}`

// Search runs the book search query and keeps the results that carry a
// description. The author argument is unused; Hardcover's title match is
// already narrow.
func (h *Hardcover) Search(ctx context.Context, title, author string) ([]Candidate, error) {
	requestBody, err := json.Marshal(map[string]interface{}{
		"query":     bookSearchQuery,
		"variables": map[string]string{"title": title},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", h.baseURL+"/v1/graphql", bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.token)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query Hardcover API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("hardcover API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Data struct {
			Books []struct {
				Title         string `json:"title"`
				Description   string `json:"description"`
				Contributions []struct {
					Author struct {
						Name string `json:"name"`
					} `json:"author"`
				} `json:"contributions"`
			} `json:"books"`
		} `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode Hardcover response: %w", err)
	}

	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("hardcover query failed: %s", result.Errors[0].Message)
	}

	var candidates []Candidate
	for _, book := range result.Data.Books {
		if book.Description == "" {
			continue
		}

		var authors []string
		for _, c := range book.Contributions {
			if c.Author.Name != "" {
				authors = append(authors, c.Author.Name)
			}
		}

		candidates = append(candidates, Candidate{
			Title:       book.Title,
			Authors:     authors,
			Description: book.Description,
			Source:      h.Name(),
		})
	}

	return candidates, nil
}
