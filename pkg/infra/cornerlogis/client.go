package cornerlogis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client fulfillment platform API client
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a fulfillment API client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListOrders fetches one page of orders in the given shipment-status bucket.
// startDate bounds the listing window; page is 1-based.
func (c *Client) ListOrders(ctx context.Context, statusList string, startDate time.Time, page, size int) ([]Order, error) {
	endpoint := fmt.Sprintf("%s/api/v1/order/getOrders", c.baseURL)

	params := url.Values{}
	params.Set("statusList", statusList)
	params.Set("startDate", startDate.Format("2006-01-02"))
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build getOrders request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	req.Header.Set("Accept", "application/json;charset=UTF-8")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("getOrders request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("getOrders returned status %d", resp.StatusCode)
	}

	var envelope listResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode getOrders response failed: %w", err)
	}

	return envelope.Data.List, nil
}
