package reconcile

// Reconciler joins fulfillment and commerce state and classifies each order
// into an action or an explicit skip reason. Both tables are evaluated
// first-match-wins; every combination of inputs lands on exactly one outcome.
type Reconciler struct {
	policy Policy
}

// NewReconciler creates a reconciler bound to a decision policy
func NewReconciler(policy Policy) *Reconciler {
	return &Reconciler{policy: policy}
}

// ClassifyInvoiceUpdate decides whether the commerce order needs the
// fulfillment-side tracking number written to it.
func (r *Reconciler) ClassifyInvoiceUpdate(rec *ShipmentRecord, detail *OrderDetail) (*Candidate, SkipReason) {
	// 1. Fulfillment has not been initiated on the commerce side.
	if detail == nil || detail.ShippingNo == "" {
		return nil, SkipAwaitingFulfillment
	}

	// 2. Order already in or past shipping; never rewrite tracking data
	// behind an in-flight shipment.
	if !r.policy.UpdatableStatuses[detail.OrderStatusType] {
		return nil, SkipAlreadyAdvanced
	}

	// 3. Idempotence short-circuit: tracking numbers already match.
	if detail.InvoiceNo == rec.InvoiceNo {
		return nil, SkipAlreadySynced
	}

	return &Candidate{
		OrderNo:    rec.OrderNo,
		ShippingNo: detail.ShippingNo,
		InvoiceNo:  rec.InvoiceNo,
		Action:     ActionUpdateInvoice,
		Shipment:   rec,
		Detail:     detail,
	}, ""
}

// ClassifyCompletion decides whether an arrived shipment's commerce order
// can be marked delivered.
func (r *Reconciler) ClassifyCompletion(rec *ShipmentRecord, detail *OrderDetail) (*Candidate, SkipReason) {
	// 1. No fulfillment reference on the commerce side.
	if detail == nil || detail.ShippingNo == "" {
		return nil, SkipAwaitingFulfillment
	}

	// 2. Shipment has not arrived yet.
	if rec.ArrivalAt == "" {
		return nil, SkipNotArrived
	}

	// 3. Repeated runs: the order was already marked delivered.
	if detail.OrderStatusType == r.policy.CompletionTargetStatus {
		return nil, SkipAlreadyComplete
	}

	// 4. Only orders currently in delivery can be completed.
	if detail.OrderStatusType != r.policy.InDeliveryStatus {
		return nil, SkipNotInDelivery
	}

	// 5. Some payment providers forbid platform-side completion.
	if r.policy.CompletionBlockedPayTypes[detail.PayType] {
		return nil, SkipBlockedPayType
	}

	return &Candidate{
		OrderNo:    rec.OrderNo,
		ShippingNo: detail.ShippingNo,
		InvoiceNo:  rec.InvoiceNo,
		Action:     ActionCompleteDelivery,
		Shipment:   rec,
		Detail:     detail,
	}, ""
}
