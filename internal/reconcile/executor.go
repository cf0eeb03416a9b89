package reconcile

import (
	"context"
	"time"

	"github.com/MrCamelHub/Trade-in/pkg/errorutil"
	"github.com/MrCamelHub/Trade-in/pkg/infra/shopby"
	"github.com/MrCamelHub/Trade-in/pkg/logger"
)

// OrderMutator commerce API surface the executor depends on
type OrderMutator interface {
	ChangeOrderStatusByShippingNo(ctx context.Context, r shopby.ChangeStatusRequest) error
}

// CarrierMapper maps a fulfillment-side carrier name to a commerce
// deliveryCompanyType code. May be nil; the policy default is used then.
type CarrierMapper interface {
	Map(carrier string) string
}

// BatchExecutor applies candidates strictly sequentially against the
// commerce platform, honoring dry-run and isolating per-item failures.
type BatchExecutor struct {
	mutator OrderMutator
	policy  Policy
	mapper  CarrierMapper
	pacing  time.Duration // delay between mutation calls
	logger  logger.Logger

	// sleep is swappable so tests run without real delays
	sleep func(time.Duration)
}

// NewBatchExecutor creates a batch executor
func NewBatchExecutor(mutator OrderMutator, policy Policy, mapper CarrierMapper, pacing time.Duration, log logger.Logger) *BatchExecutor {
	return &BatchExecutor{
		mutator: mutator,
		policy:  policy,
		mapper:  mapper,
		pacing:  pacing,
		logger:  log,
		sleep:   time.Sleep,
	}
}

// Apply processes the candidates in input order and returns one ItemResult
// per candidate. With dryRun no mutation call is issued at all; every
// candidate is recorded as a simulated success.
func (e *BatchExecutor) Apply(ctx context.Context, candidates []*Candidate, dryRun bool) *RunResult {
	result := &RunResult{
		TotalProcessed: len(candidates),
		DryRun:         dryRun,
		Results:        make([]ItemResult, 0, len(candidates)),
		StartedAt:      time.Now(),
	}

	for i, cand := range candidates {
		itemCtx := logger.WithOrderNo(ctx, cand.OrderNo)
		e.logger.Infof(itemCtx, "[Executor] [%d/%d] %s shipping_no=%s invoice_no=%s dry_run=%v",
			i+1, len(candidates), cand.Action, cand.ShippingNo, cand.InvoiceNo, dryRun)

		item := ItemResult{
			OrderNo:    cand.OrderNo,
			ShippingNo: cand.ShippingNo,
			InvoiceNo:  cand.InvoiceNo,
			Action:     cand.Action,
			Timestamp:  time.Now(),
		}

		if dryRun {
			item.Success = true
		} else {
			// per-item failure is recorded and the batch continues
			if err := e.apply(itemCtx, cand); err != nil {
				e.logger.Errorf(itemCtx, "[Executor] %s failed: %v", cand.Action, err)
				item.Error = err.Error()
				item.Retryable = errorutil.IsRetryable(err)
			} else {
				item.Success = true
			}

			// pacing between mutation calls, skipped after the last item
			if i < len(candidates)-1 {
				e.sleep(e.pacing)
			}
		}

		if item.Success {
			result.SuccessCount++
		} else {
			result.FailureCount++
		}
		result.Results = append(result.Results, item)
	}

	result.FinishedAt = time.Now()
	e.logger.Infof(ctx, "[Executor] batch done: total=%d success=%d failure=%d dry_run=%v",
		result.TotalProcessed, result.SuccessCount, result.FailureCount, dryRun)

	return result
}

// apply issues the mutation call for one candidate
func (e *BatchExecutor) apply(ctx context.Context, cand *Candidate) error {
	carrier := e.policy.DefaultCarrier
	if e.mapper != nil && cand.Shipment.Carrier != "" {
		carrier = e.mapper.Map(cand.Shipment.Carrier)
	}

	return e.mutator.ChangeOrderStatusByShippingNo(ctx, shopby.ChangeStatusRequest{
		ShippingNo:          cand.ShippingNo,
		DeliveryCompanyType: carrier,
		InvoiceNo:           cand.InvoiceNo,
		OrderStatusType:     e.policy.TargetStatus(cand.Action),
	})
}
