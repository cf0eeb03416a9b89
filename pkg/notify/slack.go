package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/MrCamelHub/Trade-in/internal/reconcile"
)

// SlackNotifier posts sync summaries to a Slack incoming webhook
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
}

// NewSlackNotifier creates a notifier; an empty URL disables delivery
func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NotifySyncResult posts a per-pass summary of one sync run
func (n *SlackNotifier) NotifySyncResult(ctx context.Context, result *reconcile.FullSyncResult) error {
	if n.webhookURL == "" {
		return nil
	}

	text := formatResult(result)

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("marshal slack payload failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build slack request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("slack request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}

	return nil
}

// formatResult renders the run summary message
func formatResult(result *reconcile.FullSyncResult) string {
	if result.Status == reconcile.RunStatusError {
		return fmt.Sprintf("[tradein-sync] run %s FAILED: %s", result.RunID, result.Error)
	}

	text := fmt.Sprintf("[tradein-sync] run %s completed in %.1fs (dry_run=%v)",
		result.RunID, result.DurationSeconds, result.DryRun)

	if pass := result.InvoiceUpdate; pass != nil && pass.Run != nil {
		text += fmt.Sprintf("\n- invoice update: %d candidates, %d ok, %d failed",
			pass.CandidatesFound, pass.Run.SuccessCount, pass.Run.FailureCount)
	}
	if pass := result.DeliveryCompletion; pass != nil && pass.Run != nil {
		text += fmt.Sprintf("\n- delivery completion: %d candidates, %d ok, %d failed",
			pass.CandidatesFound, pass.Run.SuccessCount, pass.Run.FailureCount)
	}

	return text
}
