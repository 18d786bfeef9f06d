package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const goodreadsSearchHTML = `<html><body>
<table class="tableList">
<tr><td><a title="Dune" href="/book/show/44767458-dune?from_search=true">Dune</a></td></tr>
<tr><td><a title="Dune Messiah" href="/book/show/44492285-dune-messiah">Dune Messiah</a></td></tr>
</table>
</body></html>`

const goodreadsBookHTML = `<html><body>
<div class="BookPage">
<div data-testid="description" class="BookPageMetadataSection__description">
<span class="Formatted">Set on the desert planet <i>Arrakis</i>, Dune is the story of the boy Paul Atreides &amp; his rise to power.</span>
</div>
</div>
</body></html>`

func newTestGoodreads(baseURL string) *Goodreads {
	provider := NewGoodreads()
	provider.baseURL = baseURL
	provider.detailDelay = 0
	return provider
}

func TestGoodreadsSearch(t *testing.T) {
	var bookPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "Mozilla/5.0 describer/0.1" {
			t.Errorf("Unexpected User-Agent %q", got)
		}
		switch {
		case r.URL.Path == "/search":
			if got := r.URL.Query().Get("q"); got != "Dune Frank Herbert" {
				t.Errorf("Unexpected search query %q", got)
			}
			_, _ = w.Write([]byte(goodreadsSearchHTML))
		default:
			bookPath = r.URL.Path
			_, _ = w.Write([]byte(goodreadsBookHTML))
		}
	}))
	defer server.Close()

	provider := newTestGoodreads(server.URL)

	candidates, err := provider.Search(context.Background(), "Dune", "Frank Herbert")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if bookPath != "/book/show/44767458-dune" {
		t.Errorf("Expected first result link to be followed, got %s", bookPath)
	}

	if len(candidates) != 1 {
		t.Fatalf("Expected 1 candidate, got %d", len(candidates))
	}

	expected := "Set on the desert planet Arrakis, Dune is the story of the boy Paul Atreides & his rise to power."
	if candidates[0].Description != expected {
		t.Errorf("Expected %q, got %q", expected, candidates[0].Description)
	}
	if candidates[0].Source != "Goodreads" {
		t.Errorf("Unexpected source tag: %s", candidates[0].Source)
	}
}

func TestGoodreadsSearchNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>No results.</body></html>`))
	}))
	defer server.Close()

	provider := newTestGoodreads(server.URL)

	if _, err := provider.Search(context.Background(), "Nonexistent Book", ""); err == nil {
		t.Error("Expected error, got nil")
	}
}

func TestGoodreadsSearchNoDescriptionRegion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/search" {
			_, _ = w.Write([]byte(goodreadsSearchHTML))
			return
		}
		_, _ = w.Write([]byte(`<html><body><div class="BookPage">Nothing here.</div></body></html>`))
	}))
	defer server.Close()

	provider := newTestGoodreads(server.URL)

	if _, err := provider.Search(context.Background(), "Dune", ""); err == nil {
		t.Error("Expected error, got nil")
	}
}

func TestGoodreadsSearchShortDescription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/search" {
			_, _ = w.Write([]byte(goodreadsSearchHTML))
			return
		}
		_, _ = w.Write([]byte(fmt.Sprintf(`<div data-testid="description" class="x"><span>%s</span></div>`, "Too short.")))
	}))
	defer server.Close()

	provider := newTestGoodreads(server.URL)

	if _, err := provider.Search(context.Background(), "Dune", ""); err == nil {
		t.Error("Expected error for sub-20-character description, got nil")
	}
}

func TestGoodreadsSearchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer server.Close()

	provider := newTestGoodreads(server.URL)

	if _, err := provider.Search(context.Background(), "Dune", ""); err == nil {
		t.Error("Expected error, got nil")
	}
}
