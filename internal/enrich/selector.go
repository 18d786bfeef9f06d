package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/shelftools/describer/internal/llm"
	"github.com/shelftools/describer/internal/sources"
)

const selectionSystemPrompt = "You are a librarian choosing the best description for a book catalog."

// firstIntRe matches the first integer in a model reply.
var firstIntRe = regexp.MustCompile(`\d+`)

// Select picks the best candidate. A single candidate is returned
// directly without a model call. With multiple candidates the model is
// asked to answer with the number of the best one; a failed call or a
// malformed reply falls back to the first candidate.
func (s *Service) Select(ctx context.Context, title string, candidates []sources.Candidate) sources.Candidate {
	if len(candidates) == 1 {
		return candidates[0]
	}

	reply, err := s.client.Generate(ctx, llm.Request{
		System:    selectionSystemPrompt,
		Prompt:    buildSelectionPrompt(title, candidates),
		MaxTokens: selectionMaxTokens,
	})
	if err != nil {
		slog.Warn("Selection call failed, using first candidate", "title", title, "error", err)
		return candidates[0]
	}

	idx := parseSelection(reply, len(candidates))
	slog.Debug("Selected candidate", "title", title, "index", idx, "source", candidates[idx].Source)
	return candidates[idx]
}

// buildSelectionPrompt enumerates the candidates with their provenance
// for the model to choose from.
func buildSelectionPrompt(title string, candidates []sources.Candidate) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Below are %d candidate descriptions for the book %q.\n\n", len(candidates), title)
	for i, c := range candidates {
		fmt.Fprintf(&sb, "%d. [%s] %s\n\n", i+1, c.Source, c.Description)
	}

	sb.WriteString(`Pick the single best candidate. Prefer a description that:
- describes the plot or premise of the book
- is substantive and reads like a jacket blurb
- avoids press quotes, award mentions, and author biography

Respond with ONLY the number of the best candidate.`)

	return sb.String()
}

// parseSelection extracts the first integer from the reply and converts
// it to a zero-based index. Replies with no integer or a value outside
// [1, n] select index 0.
func parseSelection(reply string, n int) int {
	match := firstIntRe.FindString(reply)
	if match == "" {
		slog.Warn("No candidate number in model reply, using first candidate", "reply", reply)
		return 0
	}

	k, err := strconv.Atoi(match)
	if err != nil || k < 1 || k > n {
		slog.Warn("Candidate number out of range, using first candidate", "reply", reply, "count", n)
		return 0
	}

	return k - 1
}
