package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrCamelHub/Trade-in/internal/reconcile"
)

func completedResult() *reconcile.FullSyncResult {
	return &reconcile.FullSyncResult{
		RunID:           "run-1",
		Status:          reconcile.RunStatusCompleted,
		DurationSeconds: 12.3,
		InvoiceUpdate: &reconcile.PassResult{
			CandidatesFound: 3,
			Run:             &reconcile.RunResult{SuccessCount: 2, FailureCount: 1},
		},
		DeliveryCompletion: &reconcile.PassResult{
			CandidatesFound: 1,
			Run:             &reconcile.RunResult{SuccessCount: 1},
		},
	}
}

func TestNotifySyncResult(t *testing.T) {
	var gotPayload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL)

	require.NoError(t, n.NotifySyncResult(context.Background(), completedResult()))

	text := gotPayload["text"]
	assert.Contains(t, text, "run-1")
	assert.Contains(t, text, "invoice update: 3 candidates, 2 ok, 1 failed")
	assert.Contains(t, text, "delivery completion: 1 candidates, 1 ok, 0 failed")
}

func TestNotifySyncResultFailedRun(t *testing.T) {
	var gotPayload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotPayload)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL)

	err := n.NotifySyncResult(context.Background(), &reconcile.FullSyncResult{
		RunID:  "run-2",
		Status: reconcile.RunStatusError,
		Error:  "nil map write",
	})

	require.NoError(t, err)
	assert.Contains(t, gotPayload["text"], "FAILED")
	assert.Contains(t, gotPayload["text"], "nil map write")
}

func TestNotifySyncResultDisabled(t *testing.T) {
	n := NewSlackNotifier("")

	// no URL, no delivery, no error
	assert.NoError(t, n.NotifySyncResult(context.Background(), completedResult()))
}

func TestNotifySyncResultWebhookError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL)

	assert.Error(t, n.NotifySyncResult(context.Background(), completedResult()))
}
