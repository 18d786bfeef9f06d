package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaGenerate(t *testing.T) {
	var body struct {
		Model   string `json:"model"`
		Prompt  string `json:"prompt"`
		System  string `json:"system"`
		Stream  bool   `json:"stream"`
		Options struct {
			NumPredict int `json:"num_predict"`
		} `json:"options"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		_, _ = w.Write([]byte(`{"response": "A tale of sand and spice.", "done": true}`))
	}))
	defer server.Close()

	client := NewOllama(server.URL, "mistral-small3.2:24b")

	reply, err := client.Generate(context.Background(), Request{
		System:    "You are a librarian.",
		Prompt:    "Describe Dune.",
		MaxTokens: 64,
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if reply != "A tale of sand and spice." {
		t.Errorf("Unexpected reply: %s", reply)
	}
	if body.Model != "mistral-small3.2:24b" {
		t.Errorf("Unexpected model: %s", body.Model)
	}
	if body.Prompt != "Describe Dune." {
		t.Errorf("Unexpected prompt: %s", body.Prompt)
	}
	if body.System != "You are a librarian." {
		t.Errorf("Unexpected system: %s", body.System)
	}
	if body.Stream {
		t.Error("Expected stream to be false")
	}
	if body.Options.NumPredict != 64 {
		t.Errorf("Unexpected num_predict: %d", body.Options.NumPredict)
	}
}

func TestOllamaGenerateHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewOllama(server.URL, "missing")

	if _, err := client.Generate(context.Background(), Request{Prompt: "Describe Dune."}); err == nil {
		t.Error("Expected error, got nil")
	}
}
