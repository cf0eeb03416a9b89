package reconcile

import (
	"context"

	"github.com/MrCamelHub/Trade-in/pkg/infra/shopby"
	"github.com/MrCamelHub/Trade-in/pkg/logger"
)

// OrderGetter commerce API surface the lookup depends on
type OrderGetter interface {
	GetOrder(ctx context.Context, orderNo string) (*shopby.Order, error)
	ListOrders(ctx context.Context, startYmd, endYmd string) ([]shopby.Order, error)
}

// CommerceOrderLookup retrieves commerce-side order state by order number
type CommerceOrderLookup struct {
	getter OrderGetter
	logger logger.Logger
}

// NewCommerceOrderLookup creates a lookup over the commerce API
func NewCommerceOrderLookup(getter OrderGetter, log logger.Logger) *CommerceOrderLookup {
	return &CommerceOrderLookup{
		getter: getter,
		logger: log,
	}
}

// GetOrderDetail returns the order's current state, or nil when the order
// cannot be evaluated (not found, unreachable). Never returns an error:
// the reconciler treats nil as "skip".
func (l *CommerceOrderLookup) GetOrderDetail(ctx context.Context, orderNo string) *OrderDetail {
	order, err := l.getter.GetOrder(ctx, orderNo)
	if err != nil {
		l.logger.Warnf(ctx, "[Lookup] order %s lookup failed: %v", orderNo, err)
		return nil
	}

	// Direct lookup missed: scan the listing window derived from the
	// date prefix of the order number and match by id.
	if order == nil {
		order = l.findInWindow(ctx, orderNo)
	}
	if order == nil {
		l.logger.Warnf(ctx, "[Lookup] order %s not found", orderNo)
		return nil
	}

	return adaptOrder(orderNo, order)
}

// findInWindow scans the date-windowed listing for the order number
func (l *CommerceOrderLookup) findInWindow(ctx context.Context, orderNo string) *shopby.Order {
	ymd := orderDateYmd(orderNo)
	if ymd == "" {
		return nil
	}

	orders, err := l.getter.ListOrders(ctx, ymd, ymd)
	if err != nil {
		l.logger.Warnf(ctx, "[Lookup] window scan for %s failed: %v", orderNo, err)
		return nil
	}

	for i := range orders {
		if orders[i].OrderNo == orderNo {
			return &orders[i]
		}
	}
	return nil
}

// orderDateYmd extracts the yyyy-MM-dd window from the order number's
// leading date prefix (order numbers start with yyyyMMdd).
func orderDateYmd(orderNo string) string {
	if len(orderNo) < 8 {
		return ""
	}
	for _, r := range orderNo[:8] {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return orderNo[:4] + "-" + orderNo[4:6] + "-" + orderNo[6:8]
}

// adaptOrder maps the external payload to the internal detail type once,
// at the boundary, with explicit defaulting.
func adaptOrder(orderNo string, order *shopby.Order) *OrderDetail {
	detail := &OrderDetail{
		OrderNo:         orderNo,
		ShippingNo:      order.OriginalDeliveryNo,
		OrderStatusType: order.OrderStatusType,
		PayType:         order.PayType,
	}

	// first delivery group's tracking number, absent if none on file
	if len(order.DeliveryGroups) > 0 {
		detail.InvoiceNo = order.DeliveryGroups[0].InvoiceNo
	}

	return detail
}
