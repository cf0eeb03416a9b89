package shopby

// Order status codes used by the reconciliation policy.
const (
	StatusPayDone        = "PAY_DONE"
	StatusProductPrepare = "PRODUCT_PREPARE"
	StatusDeliveryIng    = "DELIVERY_ING"
	StatusDeliveryDone   = "DELIVERY_DONE"
)

// Order commerce-side order detail as returned by GET /orders/{orderNo}
type Order struct {
	OrderNo            string          `json:"orderNo"`
	OriginalDeliveryNo string          `json:"originalDeliveryNo"` // fulfillment reference, empty until fulfillment starts
	OrderStatusType    string          `json:"orderStatusType"`
	PayType            string          `json:"payType"`
	DeliveryGroups     []DeliveryGroup `json:"deliveryGroups"`
}

// DeliveryGroup one delivery group of an order
type DeliveryGroup struct {
	InvoiceNo           string `json:"invoiceNo"`
	DeliveryCompanyType string `json:"deliveryCompanyType"`
}

// ChangeStatusRequest payload of PUT /orders/change-status/by-shipping-no
type ChangeStatusRequest struct {
	ShippingNo          string `json:"shippingNo"`
	DeliveryCompanyType string `json:"deliveryCompanyType"`
	InvoiceNo           string `json:"invoiceNo"`
	OrderStatusType     string `json:"orderStatusType"`
}

// listResponse envelope of the date-windowed order listing
type listResponse struct {
	Contents []Order `json:"contents"`
}
