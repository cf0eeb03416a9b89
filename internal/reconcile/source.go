package reconcile

import (
	"context"
	"time"

	"github.com/MrCamelHub/Trade-in/pkg/infra/cornerlogis"
	"github.com/MrCamelHub/Trade-in/pkg/logger"
)

// ShipmentLister fulfillment API surface the source depends on
type ShipmentLister interface {
	ListOrders(ctx context.Context, statusList string, startDate time.Time, page, size int) ([]cornerlogis.Order, error)
}

// FulfillmentOrderSource fetches fulfillment shipments carrying a tracking code
type FulfillmentOrderSource struct {
	lister   ShipmentLister
	pageSize int
	maxPages int // safety cap against a remote pagination bug
	logger   logger.Logger
}

// NewFulfillmentOrderSource creates a source over the fulfillment API
func NewFulfillmentOrderSource(lister ShipmentLister, pageSize, maxPages int, log logger.Logger) *FulfillmentOrderSource {
	return &FulfillmentOrderSource{
		lister:   lister,
		pageSize: pageSize,
		maxPages: maxPages,
		logger:   log,
	}
}

// FetchCandidates returns shipment records with a non-empty tracking code
// from both shipment-status buckets, deduplicated by composite order id.
// An empty result is a valid, non-error outcome.
func (s *FulfillmentOrderSource) FetchCandidates(ctx context.Context, daysBack int) []ShipmentRecord {
	startDate := time.Now().AddDate(0, 0, -daysBack)

	// 1. Fetch both buckets; a failed bucket degrades to partial data.
	progressing := s.fetchBucket(ctx, cornerlogis.StatusProgressingShipments, startDate)
	completed := s.fetchBucket(ctx, cornerlogis.StatusCompletedShipments, startDate)

	s.logger.Infof(ctx, "[Source] progressing: %d, completed: %d", len(progressing), len(completed))

	// 2. Merge and deduplicate by composite order id, keeping first occurrence.
	seen := make(map[string]bool)
	merged := make([]cornerlogis.Order, 0, len(progressing)+len(completed))
	for _, order := range append(progressing, completed...) {
		if seen[order.CompanyOrderID] {
			continue
		}
		seen[order.CompanyOrderID] = true
		merged = append(merged, order)
	}

	// 3. Keep the first line item per order that carries a tracking code.
	// Remaining items of an order are ignored for reconciliation purposes.
	records := make([]ShipmentRecord, 0, len(merged))
	for _, order := range merged {
		for _, item := range order.OrderItems {
			if item.Delivery.Code == "" {
				continue
			}
			records = append(records, ShipmentRecord{
				CornerOrderID:    order.CornerOrderID,
				CompanyOrderID:   order.CompanyOrderID,
				OrderNo:          ExtractOrderNo(order.CompanyOrderID),
				InvoiceNo:        item.Delivery.Code,
				Carrier:          item.Delivery.Carrier,
				PickupCompleteAt: item.Delivery.PickupCompleteAt,
				ArrivalAt:        item.Delivery.ArrivalAt,
				Status:           item.Status,
				OrderedAt:        order.OrderAt,
			})
			break
		}
	}

	s.logger.Infof(ctx, "[Source] %d shipment records with tracking codes", len(records))
	return records
}

// fetchBucket pages through one status bucket until a short page or the page cap.
// A failed page stops this bucket only and returns what was gathered so far.
func (s *FulfillmentOrderSource) fetchBucket(ctx context.Context, statusList string, startDate time.Time) []cornerlogis.Order {
	orders := make([]cornerlogis.Order, 0)

	for page := 1; page <= s.maxPages; page++ {
		chunk, err := s.lister.ListOrders(ctx, statusList, startDate, page, s.pageSize)
		if err != nil {
			s.logger.Warnf(ctx, "[Source] %s page %d fetch failed, stopping bucket: %v", statusList, page, err)
			break
		}

		orders = append(orders, chunk...)

		// short page means end of data
		if len(chunk) < s.pageSize {
			break
		}

		if page == s.maxPages {
			s.logger.Warnf(ctx, "[Source] %s hit page cap %d, stopping bucket", statusList, s.maxPages)
		}
	}

	return orders
}
