package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/shelftools/describer/internal/llm"
)

const cleaningSystemPrompt = "You are a careful copy editor for a book catalog."

// Over-aggressive stripping guard: a reply under 20 characters for an
// original over 200 means the model discarded the description, not just
// the promotional content.
const (
	cleanedMinLen    = 20
	originalGuardLen = 200
)

// preambleRe strips a "Here is the cleaned description:" style lead-in
// that models sometimes add despite instructions.
var preambleRe = regexp.MustCompile(`(?i)^here('s| is)[^:\n]*:\s*`)

// Clean strips promotional content from a raw description. The model is
// instructed to keep the remaining wording verbatim; a failed call or an
// implausibly short reply falls back to the original text.
func (s *Service) Clean(ctx context.Context, raw string) string {
	reply, err := s.client.Generate(ctx, llm.Request{
		System:    cleaningSystemPrompt,
		Prompt:    buildCleaningPrompt(raw),
		MaxTokens: cleaningMaxTokens,
	})
	if err != nil {
		slog.Warn("Cleaning call failed, keeping original description", "error", err)
		return raw
	}

	cleaned := strings.TrimSpace(reply)
	cleaned = strings.TrimSpace(preambleRe.ReplaceAllString(cleaned, ""))

	if len(cleaned) < cleanedMinLen && len(raw) > originalGuardLen {
		slog.Warn("Cleaned description implausibly short, keeping original", "cleaned_length", len(cleaned), "original_length", len(raw))
		return raw
	}

	return cleaned
}

// buildCleaningPrompt wraps the raw description in the cleaning
// instructions.
func buildCleaningPrompt(raw string) string {
	return fmt.Sprintf(`Clean the book description below.

Remove:
- press quotes and review excerpts
- award, bestseller, and sales-figure mentions
- third-party endorsements
- "now a major motion picture" style promotional lines
- leading "from the author of ..." framing

Keep every remaining sentence word for word. Do not paraphrase, summarize,
or reorder anything. Strip any HTML tags. Respond with ONLY the cleaned
description, no commentary.

Description:
%s`, raw)
}
