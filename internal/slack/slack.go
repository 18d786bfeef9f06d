package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shelftools/describer/internal/report"
)

// Notifier posts run summaries to a Slack incoming webhook. A Notifier
// without a webhook URL is a no-op.
type Notifier struct {
	WebhookURL string
	RunLogURL  string
	httpClient *http.Client
}

// NewNotifier creates a new Slack notifier
func NewNotifier(webhookURL, runLogURL string) *Notifier {
	return &Notifier{
		WebhookURL: webhookURL,
		RunLogURL:  runLogURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Notify formats the run result and posts it to the webhook. Delivery
// failure is logged, never escalated.
func (n *Notifier) Notify(ctx context.Context, result *report.RunResult) {
	if n.WebhookURL == "" {
		slog.Info("No Slack webhook configured, skipping notification")
		return
	}

	if err := n.post(ctx, n.buildMessage(result)); err != nil {
		slog.Warn("Failed to deliver Slack notification", "error", err)
		return
	}

	slog.Info("Posted run summary to Slack", "updated", len(result.Updated), "skipped", len(result.Skipped))
}

// buildMessage renders the run summary in Slack's mrkdwn flavor.
func (n *Notifier) buildMessage(result *report.RunResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "*Book description run, %s*\n", result.StartedAt.Format("Mon Jan 2 15:04"))

	if len(result.Updated) > 0 {
		fmt.Fprintf(&sb, "\nUpdated %d:\n", len(result.Updated))
		for _, e := range result.Updated {
			sb.WriteString("• " + formatEntry(e) + "\n")
		}
	}

	if len(result.Skipped) > 0 {
		fmt.Fprintf(&sb, "\nSkipped %d:\n", len(result.Skipped))
		for _, s := range result.Skipped {
			sb.WriteString("• " + formatEntry(s.Entry) + ": " + s.Reason + "\n")
		}
	}

	if len(result.Updated) == 0 && len(result.Skipped) == 0 {
		sb.WriteString("\nNothing to process.\n")
	}

	if n.RunLogURL != "" {
		fmt.Fprintf(&sb, "\n<%s|View run log>\n", n.RunLogURL)
	}

	return sb.String()
}

// formatEntry renders one record as a Slack link with its author.
func formatEntry(e report.Entry) string {
	label := e.Title
	if e.Author != "" {
		label += " by " + e.Author
	}
	if e.URL == "" {
		return label
	}
	return fmt.Sprintf("<%s|%s>", e.URL, label)
}

func (n *Notifier) post(ctx context.Context, text string) error {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", n.WebhookURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post to webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
