package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrCamelHub/Trade-in/pkg/logger"
)

// Orchestrator drives one full sync: the invoice-update pass followed by
// the delivery-completion pass. Per-item failures are isolated inside the
// executor; only a programming/environment fault (panic) aborts a run.
type Orchestrator struct {
	source     *FulfillmentOrderSource
	lookup     *CommerceOrderLookup
	reconciler *Reconciler
	executor   *BatchExecutor
	daysBack   int
	pacing     time.Duration // delay between commerce lookups
	logger     logger.Logger

	sleep func(time.Duration)
}

// NewOrchestrator creates a sync orchestrator
func NewOrchestrator(
	source *FulfillmentOrderSource,
	lookup *CommerceOrderLookup,
	reconciler *Reconciler,
	executor *BatchExecutor,
	daysBack int,
	pacing time.Duration,
	log logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		source:     source,
		lookup:     lookup,
		reconciler: reconciler,
		executor:   executor,
		daysBack:   daysBack,
		pacing:     pacing,
		logger:     log,
		sleep:      time.Sleep,
	}
}

// classifyFunc one row of a decision table
type classifyFunc func(*ShipmentRecord, *OrderDetail) (*Candidate, SkipReason)

// OrdersNeedingInvoiceUpdate discovers orders whose commerce record is
// missing the fulfillment-side tracking number.
func (o *Orchestrator) OrdersNeedingInvoiceUpdate(ctx context.Context) ([]*Candidate, map[SkipReason]int) {
	return o.discover(ctx, o.reconciler.ClassifyInvoiceUpdate)
}

// OrdersNeedingDeliveryCompletion discovers arrived shipments whose
// commerce order can be marked delivered.
func (o *Orchestrator) OrdersNeedingDeliveryCompletion(ctx context.Context) ([]*Candidate, map[SkipReason]int) {
	return o.discover(ctx, o.reconciler.ClassifyCompletion)
}

// discover joins fulfillment records with fresh commerce state and applies
// one decision table. Candidates preserve source order.
func (o *Orchestrator) discover(ctx context.Context, classify classifyFunc) ([]*Candidate, map[SkipReason]int) {
	records := o.source.FetchCandidates(ctx, o.daysBack)

	candidates := make([]*Candidate, 0, len(records))
	skipped := make(map[SkipReason]int)

	for i := range records {
		rec := &records[i]
		itemCtx := logger.WithOrderNo(ctx, rec.OrderNo)

		detail := o.lookup.GetOrderDetail(itemCtx, rec.OrderNo)

		cand, reason := classify(rec, detail)
		if cand != nil {
			o.logger.Infof(itemCtx, "[Orchestrator] candidate %s invoice_no=%s", cand.Action, cand.InvoiceNo)
			candidates = append(candidates, cand)
		} else {
			o.logger.Debugf(itemCtx, "[Orchestrator] skipped: %s", reason)
			skipped[reason]++
		}

		// pacing between commerce lookups
		if i < len(records)-1 {
			o.sleep(o.pacing)
		}
	}

	return candidates, skipped
}

// BatchUpdateOrders applies invoice-update candidates
func (o *Orchestrator) BatchUpdateOrders(ctx context.Context, candidates []*Candidate, dryRun bool) *RunResult {
	return o.executor.Apply(ctx, candidates, dryRun)
}

// BatchCompleteDeliveries applies delivery-completion candidates
func (o *Orchestrator) BatchCompleteDeliveries(ctx context.Context, candidates []*Candidate, dryRun bool) *RunResult {
	return o.executor.Apply(ctx, candidates, dryRun)
}

// RunFullSync runs both passes and returns a combined result. It never
// returns an error: an unexpected panic is the one fault class that is
// surfaced, as status=error with the message, instead of partial results.
func (o *Orchestrator) RunFullSync(ctx context.Context, dryRun bool) (result *FullSyncResult) {
	runID := uuid.NewString()
	ctx = logger.WithRunID(ctx, runID)

	result = &FullSyncResult{
		RunID:     runID,
		Status:    RunStatusCompleted,
		DryRun:    dryRun,
		StartedAt: time.Now(),
	}

	defer func() {
		if r := recover(); r != nil {
			o.logger.Errorf(ctx, "[Orchestrator] fatal fault: %v", r)
			result.Status = RunStatusError
			result.Error = fmt.Sprintf("%v", r)
			result.InvoiceUpdate = nil
			result.DeliveryCompletion = nil
		}
		result.FinishedAt = time.Now()
		result.DurationSeconds = result.FinishedAt.Sub(result.StartedAt).Seconds()
	}()

	o.logger.Infof(ctx, "[Orchestrator] full sync started, dry_run=%v", dryRun)

	// 1. Invoice-update pass.
	updateCandidates, updateSkipped := o.OrdersNeedingInvoiceUpdate(ctx)
	result.InvoiceUpdate = &PassResult{
		CandidatesFound: len(updateCandidates),
		SkippedCounts:   updateSkipped,
		Run:             o.BatchUpdateOrders(ctx, updateCandidates, dryRun),
	}

	// 2. Delivery-completion pass, on fresh state.
	completionCandidates, completionSkipped := o.OrdersNeedingDeliveryCompletion(ctx)
	result.DeliveryCompletion = &PassResult{
		CandidatesFound: len(completionCandidates),
		SkippedCounts:   completionSkipped,
		Run:             o.BatchCompleteDeliveries(ctx, completionCandidates, dryRun),
	}

	o.logger.Infof(ctx, "[Orchestrator] full sync finished: invoice=%d completion=%d duration=%.2fs",
		result.InvoiceUpdate.CandidatesFound, result.DeliveryCompletion.CandidatesFound,
		time.Since(result.StartedAt).Seconds())

	return result
}
