package shopby

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrCamelHub/Trade-in/pkg/errorutil"
)

func TestGetOrder(t *testing.T) {
	var gotReq *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		w.Write([]byte(`{
			"orderNo": "202508141241584834",
			"originalDeliveryNo": "30001",
			"orderStatusType": "PAY_DONE",
			"payType": "CREDIT_CARD",
			"deliveryGroups": [{"invoiceNo": "6897702053594", "deliveryCompanyType": "POST"}]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sys-key", "auth-token", "1.1")

	order, err := client.GetOrder(context.Background(), "202508141241584834")

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, "30001", order.OriginalDeliveryNo)
	assert.Equal(t, StatusPayDone, order.OrderStatusType)
	require.Len(t, order.DeliveryGroups, 1)
	assert.Equal(t, "6897702053594", order.DeliveryGroups[0].InvoiceNo)

	require.NotNil(t, gotReq)
	assert.Equal(t, "/orders/202508141241584834", gotReq.URL.Path)
	assert.Equal(t, "1.1", gotReq.Header.Get("Version"))
	assert.Equal(t, "sys-key", gotReq.Header.Get("systemKey"))
	assert.Equal(t, "Bearer auth-token", gotReq.Header.Get("Authorization"))
}

func TestGetOrderNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k", "t", "1.1")

	order, err := client.GetOrder(context.Background(), "999")

	// absent order is not an error
	assert.NoError(t, err)
	assert.Nil(t, order)
}

func TestGetOrderFillsMissingOrderNo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"orderStatusType": "PAY_DONE"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k", "t", "1.1")

	order, err := client.GetOrder(context.Background(), "202508141241584834")

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, "202508141241584834", order.OrderNo)
}

func TestListOrdersWindow(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"contents": [{"orderNo": "A"}, {"orderNo": "B"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k", "t", "1.1")

	orders, err := client.ListOrders(context.Background(), "2025-08-14", "2025-08-14")

	require.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Contains(t, gotQuery, "startYmd=2025-08-14")
	assert.Contains(t, gotQuery, "endYmd=2025-08-14")
}

func TestChangeOrderStatusByShippingNo(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody ChangeStatusRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k", "t", "1.1")

	err := client.ChangeOrderStatusByShippingNo(context.Background(), ChangeStatusRequest{
		ShippingNo:          "30001",
		DeliveryCompanyType: "POST",
		InvoiceNo:           "6897702053594",
		OrderStatusType:     StatusDeliveryIng,
	})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/orders/change-status/by-shipping-no", gotPath)
	assert.Equal(t, "30001", gotBody.ShippingNo)
	assert.Equal(t, "POST", gotBody.DeliveryCompanyType)
	assert.Equal(t, "6897702053594", gotBody.InvoiceNo)
	assert.Equal(t, StatusDeliveryIng, gotBody.OrderStatusType)
}

func TestChangeOrderStatusRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"invalid status transition"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k", "t", "1.1")

	err := client.ChangeOrderStatusByShippingNo(context.Background(), ChangeStatusRequest{ShippingNo: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "invalid status transition")
	assert.False(t, errorutil.IsRetryable(err), "a rejected transition is final")
}

func TestChangeOrderStatusUpstreamFaultIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k", "t", "1.1")

	err := client.ChangeOrderStatusByShippingNo(context.Background(), ChangeStatusRequest{ShippingNo: "x"})

	require.Error(t, err)
	assert.True(t, errorutil.IsRetryable(err))
}
