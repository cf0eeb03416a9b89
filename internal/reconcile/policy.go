package reconcile

import (
	"strings"

	"github.com/MrCamelHub/Trade-in/pkg/infra/shopby"
)

// compositeDelimiter separates the commerce order no from the fulfillment
// platform's internal suffix in a composite order id.
const compositeDelimiter = " (N:"

// ExtractOrderNo derives the canonical commerce order number from a
// composite id, e.g. "202508141241584834 (N: 2025081427063970)" ->
// "202508141241584834". An id without the delimiter is returned unchanged.
func ExtractOrderNo(companyOrderID string) string {
	if idx := strings.Index(companyOrderID, compositeDelimiter); idx >= 0 {
		return companyOrderID[:idx]
	}
	return companyOrderID
}

// Policy the status-gated decision rules for both reconciliation passes.
// This is the single authoritative whitelist; the production revisions
// disagreed and product owners confirm changes here.
type Policy struct {
	// UpdatableStatuses commerce statuses that may still receive a tracking
	// number. Anything else is in or past shipping and must not be rewritten.
	UpdatableStatuses map[string]bool

	// InDeliveryStatus the only status eligible for delivery completion.
	InDeliveryStatus string

	// CompletionBlockedPayTypes payment providers that forbid seller-side
	// status changes once the order is in delivery.
	CompletionBlockedPayTypes map[string]bool

	// InvoiceTargetStatus status applied together with a tracking number.
	InvoiceTargetStatus string

	// CompletionTargetStatus status applied when a shipment has arrived.
	CompletionTargetStatus string

	// DefaultCarrier deliveryCompanyType sent with every mutation.
	DefaultCarrier string
}

// DefaultPolicy returns the confirmed production decision policy
func DefaultPolicy() Policy {
	return Policy{
		UpdatableStatuses: map[string]bool{
			shopby.StatusPayDone:        true,
			shopby.StatusProductPrepare: true,
		},
		InDeliveryStatus: shopby.StatusDeliveryIng,
		CompletionBlockedPayTypes: map[string]bool{
			"NAVERPAY": true,
		},
		InvoiceTargetStatus:    shopby.StatusDeliveryIng,
		CompletionTargetStatus: shopby.StatusDeliveryDone,
		DefaultCarrier:         "POST",
	}
}

// TargetStatus maps a candidate action to the status sent to the commerce API
func (p Policy) TargetStatus(action Action) string {
	if action == ActionCompleteDelivery {
		return p.CompletionTargetStatus
	}
	return p.InvoiceTargetStatus
}
