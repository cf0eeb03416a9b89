package cornerlogis

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOrders(t *testing.T) {
	var gotReq *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": {
				"list": [
					{
						"cornerOrderId": 91001,
						"companyOrderId": "202508141241584834 (N: 2025081427063970)",
						"orderAt": "2025-08-14T12:41:58",
						"orderItems": [
							{
								"status": "SHIPPED",
								"delivery": {
									"code": "6897702053594",
									"carrier": "우체국택배",
									"arrivalAt": "2025-08-16T10:21:00"
								}
							}
						]
					}
				]
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "api-key-123")
	start := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	orders, err := client.ListOrders(context.Background(), StatusProgressingShipments, start, 2, 100)

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(91001), orders[0].CornerOrderID)
	assert.Equal(t, "202508141241584834 (N: 2025081427063970)", orders[0].CompanyOrderID)
	require.Len(t, orders[0].OrderItems, 1)
	assert.Equal(t, "6897702053594", orders[0].OrderItems[0].Delivery.Code)

	require.NotNil(t, gotReq)
	assert.Equal(t, "/api/v1/order/getOrders", gotReq.URL.Path)
	assert.Equal(t, "api-key-123", gotReq.Header.Get("Authorization"))

	query := gotReq.URL.Query()
	assert.Equal(t, StatusProgressingShipments, query.Get("statusList"))
	assert.Equal(t, "2025-08-01", query.Get("startDate"))
	assert.Equal(t, "2", query.Get("page"))
	assert.Equal(t, "100", query.Get("size"))
}

func TestListOrdersEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data":{"list":[]}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key")

	orders, err := client.ListOrders(context.Background(), StatusCompletedShipments, time.Now(), 1, 100)

	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestListOrdersUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key")

	_, err := client.ListOrders(context.Background(), StatusProgressingShipments, time.Now(), 1, 100)

	assert.ErrorContains(t, err, "502")
}
