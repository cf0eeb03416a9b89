package shopby

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/MrCamelHub/Trade-in/pkg/errorutil"
)

// Client commerce platform admin API client
type Client struct {
	baseURL    string
	systemKey  string
	authToken  string
	version    string
	httpClient *http.Client
}

// NewClient creates a commerce API client
func NewClient(baseURL, systemKey, authToken, version string) *Client {
	return &Client{
		baseURL:   baseURL,
		systemKey: systemKey,
		authToken: authToken,
		version:   version,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// setHeaders applies the admin API auth headers
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Version", c.version)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("systemKey", c.systemKey)
	req.Header.Set("Authorization", "Bearer "+c.authToken)
}

// GetOrder fetches one order by order number.
// Returns (nil, nil) when the order does not exist.
func (c *Client) GetOrder(ctx context.Context, orderNo string) (*Order, error) {
	endpoint := fmt.Sprintf("%s/orders/%s", c.baseURL, url.PathEscape(orderNo))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build get order request failed: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get order request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get order returned status %d", resp.StatusCode)
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("decode order response failed: %w", err)
	}
	if order.OrderNo == "" {
		order.OrderNo = orderNo
	}

	return &order, nil
}

// ListOrders fetches the date-windowed order listing.
// Used as a fallback when direct lookup by order number misses.
func (c *Client) ListOrders(ctx context.Context, startYmd, endYmd string) ([]Order, error) {
	endpoint := fmt.Sprintf("%s/orders", c.baseURL)

	params := url.Values{}
	params.Set("startYmd", startYmd)
	params.Set("endYmd", endYmd)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build list orders request failed: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list orders request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list orders returned status %d", resp.StatusCode)
	}

	var envelope listResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode list orders response failed: %w", err)
	}

	return envelope.Contents, nil
}

// ChangeOrderStatusByShippingNo applies a tracking number and target status
// to every order line under the given shipping number.
func (c *Client) ChangeOrderStatusByShippingNo(ctx context.Context, r ChangeStatusRequest) error {
	endpoint := fmt.Sprintf("%s/orders/change-status/by-shipping-no", c.baseURL)

	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal change-status payload failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build change-status request failed: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("change-status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		message := fmt.Sprintf("change-status returned status %d: %s", resp.StatusCode, string(body))
		// 5xx is worth retrying on a later run; 4xx means the transition
		// itself was rejected and will not succeed by repetition
		if resp.StatusCode >= 500 {
			return errorutil.Retriable(message)
		}
		return errorutil.NonRetriable(message)
	}

	return nil
}
