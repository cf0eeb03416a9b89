package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrCamelHub/Trade-in/pkg/errorutil"
	"github.com/MrCamelHub/Trade-in/pkg/infra/shopby"
	"github.com/MrCamelHub/Trade-in/pkg/logger"
)

// fakeMutator records every mutation call and fails selected shipping numbers
type fakeMutator struct {
	calls   []shopby.ChangeStatusRequest
	failOn  map[string]bool
	failErr error
}

func (f *fakeMutator) ChangeOrderStatusByShippingNo(_ context.Context, r shopby.ChangeStatusRequest) error {
	f.calls = append(f.calls, r)
	if f.failOn[r.ShippingNo] {
		return f.failErr
	}
	return nil
}

// fakeMapper resolves one known carrier name
type fakeMapper struct{}

func (fakeMapper) Map(carrier string) string {
	if carrier == "우체국택배" {
		return "POST"
	}
	return "ETC"
}

func invoiceCandidates(n int) []*Candidate {
	cands := make([]*Candidate, 0, n)
	for i := 0; i < n; i++ {
		no := string(rune('A' + i))
		cands = append(cands, &Candidate{
			OrderNo:    "order-" + no,
			ShippingNo: "ship-" + no,
			InvoiceNo:  "inv-" + no,
			Action:     ActionUpdateInvoice,
			Shipment:   &ShipmentRecord{Carrier: "우체국택배"},
		})
	}
	return cands
}

func newTestExecutor(mutator OrderMutator) *BatchExecutor {
	e := NewBatchExecutor(mutator, DefaultPolicy(), fakeMapper{}, time.Second, logger.NewNop())
	e.sleep = func(time.Duration) {}
	return e
}

func TestApplyDryRunIssuesNoMutations(t *testing.T) {
	mutator := &fakeMutator{}
	e := newTestExecutor(mutator)

	result := e.Apply(context.Background(), invoiceCandidates(3), true)

	assert.Empty(t, mutator.calls, "dry run must not call the commerce API")
	assert.True(t, result.DryRun)
	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, 3, result.SuccessCount)
	assert.Equal(t, 0, result.FailureCount)
	require.Len(t, result.Results, 3)
	for _, item := range result.Results {
		assert.True(t, item.Success)
		assert.Empty(t, item.Error)
	}
}

func TestApplyFailureIsolation(t *testing.T) {
	mutator := &fakeMutator{
		failOn:  map[string]bool{"ship-B": true},
		failErr: errors.New("status change rejected"),
	}
	e := newTestExecutor(mutator)

	result := e.Apply(context.Background(), invoiceCandidates(3), false)

	// the middle failure does not stop the batch
	require.Len(t, mutator.calls, 3)
	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)

	// results preserve input order
	require.Len(t, result.Results, 3)
	assert.Equal(t, "order-A", result.Results[0].OrderNo)
	assert.Equal(t, "order-B", result.Results[1].OrderNo)
	assert.Equal(t, "order-C", result.Results[2].OrderNo)

	assert.True(t, result.Results[0].Success)
	assert.False(t, result.Results[1].Success)
	assert.Equal(t, "status change rejected", result.Results[1].Error)
	assert.False(t, result.Results[1].Retryable, "plain errors are final")
	assert.True(t, result.Results[2].Success)
}

func TestApplyMarksRetryableFailures(t *testing.T) {
	mutator := &fakeMutator{
		failOn:  map[string]bool{"ship-A": true},
		failErr: errorutil.Retriable("upstream 503"),
	}
	e := newTestExecutor(mutator)

	result := e.Apply(context.Background(), invoiceCandidates(1), false)

	require.Len(t, result.Results, 1)
	assert.False(t, result.Results[0].Success)
	assert.True(t, result.Results[0].Retryable)
}

func TestApplyBuildsMutationPayload(t *testing.T) {
	mutator := &fakeMutator{}
	e := newTestExecutor(mutator)

	cand := &Candidate{
		OrderNo:    "202508141241584834",
		ShippingNo: "30001",
		InvoiceNo:  "6897702053594",
		Action:     ActionUpdateInvoice,
		Shipment:   &ShipmentRecord{Carrier: "우체국택배"},
	}

	e.Apply(context.Background(), []*Candidate{cand}, false)

	require.Len(t, mutator.calls, 1)
	call := mutator.calls[0]
	assert.Equal(t, "30001", call.ShippingNo)
	assert.Equal(t, "POST", call.DeliveryCompanyType)
	assert.Equal(t, "6897702053594", call.InvoiceNo)
	assert.Equal(t, shopby.StatusDeliveryIng, call.OrderStatusType)
}

func TestApplyCompletionTargetStatus(t *testing.T) {
	mutator := &fakeMutator{}
	e := newTestExecutor(mutator)

	cand := &Candidate{
		OrderNo:    "202508141241584834",
		ShippingNo: "30001",
		InvoiceNo:  "6897702053594",
		Action:     ActionCompleteDelivery,
		Shipment:   &ShipmentRecord{Carrier: "우체국택배", ArrivalAt: "2025-08-16T10:21:00"},
	}

	e.Apply(context.Background(), []*Candidate{cand}, false)

	require.Len(t, mutator.calls, 1)
	assert.Equal(t, shopby.StatusDeliveryDone, mutator.calls[0].OrderStatusType)
}

func TestApplyNilMapperFallsBackToDefaultCarrier(t *testing.T) {
	mutator := &fakeMutator{}
	e := NewBatchExecutor(mutator, DefaultPolicy(), nil, 0, logger.NewNop())
	e.sleep = func(time.Duration) {}

	cand := &Candidate{
		OrderNo:    "o1",
		ShippingNo: "s1",
		InvoiceNo:  "i1",
		Action:     ActionUpdateInvoice,
		Shipment:   &ShipmentRecord{Carrier: "한진택배"},
	}

	e.Apply(context.Background(), []*Candidate{cand}, false)

	require.Len(t, mutator.calls, 1)
	assert.Equal(t, "POST", mutator.calls[0].DeliveryCompanyType)
}

func TestApplyEmptyBatch(t *testing.T) {
	mutator := &fakeMutator{}
	e := newTestExecutor(mutator)

	result := e.Apply(context.Background(), nil, false)

	assert.Empty(t, mutator.calls)
	assert.Equal(t, 0, result.TotalProcessed)
	assert.Empty(t, result.Results)
}

func TestApplyPacingSkippedAfterLastItem(t *testing.T) {
	mutator := &fakeMutator{}
	e := NewBatchExecutor(mutator, DefaultPolicy(), fakeMapper{}, time.Second, logger.NewNop())

	slept := 0
	e.sleep = func(time.Duration) { slept++ }

	e.Apply(context.Background(), invoiceCandidates(3), false)

	// 3 items need 2 inter-call delays
	assert.Equal(t, 2, slept)
}
