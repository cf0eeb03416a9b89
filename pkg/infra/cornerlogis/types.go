package cornerlogis

// Shipment status buckets exposed by the fulfillment API.
const (
	StatusProgressingShipments = "PROGRESSING_SHIPMENTS"
	StatusCompletedShipments   = "COMPLETED_SHIPMENTS"
)

// Order one fulfillment-side order as returned by getOrders
type Order struct {
	CornerOrderID  int64       `json:"cornerOrderId"`
	CompanyOrderID string      `json:"companyOrderId"`
	OrderAt        string      `json:"orderAt"`
	Customer       string      `json:"customer"`
	OrderItems     []OrderItem `json:"orderItems"`
}

// OrderItem one shipment line within an order
type OrderItem struct {
	Status   string   `json:"status"`
	SKU      string   `json:"sku"`
	Delivery Delivery `json:"delivery"`
}

// Delivery tracking data attached to a shipment line
type Delivery struct {
	Code             string `json:"code"` // tracking (invoice) number
	Carrier          string `json:"carrier"`
	PickupCompleteAt string `json:"pickupCompleteAt"`
	ArrivalAt        string `json:"arrivalAt"`
}

// listResponse envelope of the getOrders endpoint
type listResponse struct {
	Data struct {
		List []Order `json:"list"`
	} `json:"data"`
}
