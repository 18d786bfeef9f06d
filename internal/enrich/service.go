package enrich

import (
	"github.com/shelftools/describer/internal/llm"
)

// Token budgets for the two call shapes: the selector answers with a
// single number, the cleaner echoes a description.
const (
	selectionMaxTokens = 16
	cleaningMaxTokens  = 1024
)

// Service selects and cleans description candidates through a
// text-generation client. Every model failure degrades to a
// deterministic fallback; the service never aborts a record.
type Service struct {
	client llm.Client
}

// NewService creates a new enrichment service
func NewService(client llm.Client) *Service {
	return &Service{client: client}
}
