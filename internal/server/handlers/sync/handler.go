package sync

import (
	"context"

	"github.com/MrCamelHub/Trade-in/internal/business"
	"github.com/MrCamelHub/Trade-in/internal/entity"
	"github.com/MrCamelHub/Trade-in/internal/reconcile"
	"github.com/MrCamelHub/Trade-in/pkg/logger"
)

// JobEnqueuer queue surface the trigger endpoint publishes to
type JobEnqueuer interface {
	Publish(queue string, data []byte, ttl, delay uint32) (string, error)
}

// RunReader run-history surface the status endpoints read from
type RunReader interface {
	GetRun(ctx context.Context, runID string) (*entity.SyncRun, error)
	GetLatestRun(ctx context.Context) (*entity.SyncRun, error)
}

// Handler sync HTTP handlers
type Handler struct {
	syncService *business.SyncService
	enqueuer    JobEnqueuer
	queue       string
	runs        RunReader
	logger      logger.Logger
}

// NewHandler creates the sync handler
func NewHandler(
	syncService *business.SyncService,
	enqueuer JobEnqueuer,
	queue string,
	runs RunReader,
	log logger.Logger,
) *Handler {
	return &Handler{
		syncService: syncService,
		enqueuer:    enqueuer,
		queue:       queue,
		runs:        runs,
		logger:      log,
	}
}

// candidateView trimmed candidate representation for check responses
type candidateView struct {
	OrderNo    string           `json:"order_no"`
	ShippingNo string           `json:"shipping_no"`
	InvoiceNo  string           `json:"invoice_no"`
	Action     reconcile.Action `json:"action"`
	ArrivalAt  string           `json:"arrival_at,omitempty"`
}

// toCandidateViews maps candidates into the response shape, capped at limit
func toCandidateViews(candidates []*reconcile.Candidate, limit int) []candidateView {
	views := make([]candidateView, 0, len(candidates))
	for _, cand := range candidates {
		if len(views) == limit {
			break
		}
		view := candidateView{
			OrderNo:    cand.OrderNo,
			ShippingNo: cand.ShippingNo,
			InvoiceNo:  cand.InvoiceNo,
			Action:     cand.Action,
		}
		if cand.Shipment != nil {
			view.ArrivalAt = cand.Shipment.ArrivalAt
		}
		views = append(views, view)
	}
	return views
}
