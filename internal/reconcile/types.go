package reconcile

import "time"

// Action mutation category a candidate requires
type Action string

const (
	ActionUpdateInvoice    Action = "update_invoice"
	ActionCompleteDelivery Action = "complete_delivery"
)

// SkipReason why an order was left alone this run
type SkipReason string

const (
	SkipAwaitingFulfillment SkipReason = "awaiting_fulfillment_processing" // no commerce detail or no fulfillment reference yet
	SkipAlreadyAdvanced     SkipReason = "already_advanced"                // order already in or past shipping
	SkipAlreadySynced       SkipReason = "already_synced"                  // tracking numbers already match
	SkipNotArrived          SkipReason = "not_arrived"                     // no arrival timestamp yet
	SkipAlreadyComplete     SkipReason = "already_complete"                // order already marked delivered
	SkipNotInDelivery       SkipReason = "not_in_delivery"                 // order not in DELIVERY_ING
	SkipBlockedPayType      SkipReason = "blocked_pay_type"                // payment provider forbids seller-side completion
)

// ShipmentRecord one fulfillment-side shipment line carrying a tracking code
type ShipmentRecord struct {
	CornerOrderID    int64
	CompanyOrderID   string // composite id: commerce order no plus internal suffix
	OrderNo          string // canonical commerce order no
	InvoiceNo        string // tracking code
	Carrier          string
	PickupCompleteAt string
	ArrivalAt        string
	Status           string
	OrderedAt        string
}

// OrderDetail commerce-side order state, read fresh every pass
type OrderDetail struct {
	OrderNo         string
	ShippingNo      string // fulfillment reference (originalDeliveryNo), empty until fulfillment starts
	InvoiceNo       string // tracking number currently on file
	OrderStatusType string
	PayType         string
}

// Candidate an order classified as needing one state-changing action
type Candidate struct {
	OrderNo    string
	ShippingNo string
	InvoiceNo  string // tracking number to apply
	Action     Action

	// provenance
	Shipment *ShipmentRecord
	Detail   *OrderDetail
}

// SkippedOrder an order classified as needing no action, with the reason
type SkippedOrder struct {
	OrderNo string
	Reason  SkipReason
}

// ItemResult outcome of applying one candidate
type ItemResult struct {
	OrderNo    string    `json:"order_no"`
	ShippingNo string    `json:"shipping_no"`
	InvoiceNo  string    `json:"invoice_no"`
	Action     Action    `json:"action"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
	Retryable  bool      `json:"retryable,omitempty"` // a later run may succeed
	Timestamp  time.Time `json:"timestamp"`
}

// RunResult aggregated outcome of one batch apply
type RunResult struct {
	TotalProcessed int          `json:"total_processed"`
	SuccessCount   int          `json:"success_count"`
	FailureCount   int          `json:"failure_count"`
	DryRun         bool         `json:"dry_run"`
	Results        []ItemResult `json:"results"`
	StartedAt      time.Time    `json:"started_at"`
	FinishedAt     time.Time    `json:"finished_at"`
}

// PassResult one reconciliation pass: discovery plus batch apply
type PassResult struct {
	CandidatesFound int                `json:"candidates_found"`
	SkippedCounts   map[SkipReason]int `json:"skipped_counts,omitempty"`
	Run             *RunResult         `json:"run,omitempty"`
}

// Full-sync run statuses.
const (
	RunStatusCompleted = "completed"
	RunStatusError     = "error"
)

// FullSyncResult combined result of the invoice and completion passes
type FullSyncResult struct {
	RunID              string      `json:"run_id"`
	Status             string      `json:"status"` // completed | error
	Error              string      `json:"error,omitempty"`
	DryRun             bool        `json:"dry_run"`
	DurationSeconds    float64     `json:"duration_seconds"`
	InvoiceUpdate      *PassResult `json:"invoice_update,omitempty"`
	DeliveryCompletion *PassResult `json:"delivery_completion,omitempty"`
	StartedAt          time.Time   `json:"started_at"`
	FinishedAt         time.Time   `json:"finished_at"`
}
