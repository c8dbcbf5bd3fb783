package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/izajlabs/go-adminlist/components/listview"
	"github.com/izajlabs/go-adminlist/components/reports"
)

// Config configures the HTTP backend client.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient talks to the storefront REST API. It implements both the
// listview Source/Mutator contracts and the report repositories.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var (
	_ listview.Source  = (*HTTPClient)(nil)
	_ listview.Mutator = (*HTTPClient)(nil)
	_ Client           = (*HTTPClient)(nil)
)

// NewHTTPClient builds a client capable of hitting the live backend API.
func NewHTTPClient(cfg Config) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// FetchCollection implements listview.Source via GET /api/<resource>.
func (c *HTTPClient) FetchCollection(ctx context.Context, resource string) ([]listview.Item, error) {
	var resp collectionResponse
	if err := c.do(ctx, http.MethodGet, "/api/"+resource, nil, &resp); err != nil {
		return nil, err
	}
	if err := resp.err(); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// UpdateStatus implements listview.Mutator via PATCH on the item.
func (c *HTTPClient) UpdateStatus(ctx context.Context, resource, itemID, field string, value any) error {
	payload := map[string]any{field: value}
	var resp statusResponse
	if err := c.do(ctx, http.MethodPatch, itemPath(resource, itemID), payload, &resp); err != nil {
		return err
	}
	return resp.err()
}

// DeleteItem implements listview.Mutator via DELETE on the item.
func (c *HTTPClient) DeleteItem(ctx context.Context, resource, itemID string) error {
	var resp statusResponse
	if err := c.do(ctx, http.MethodDelete, itemPath(resource, itemID), nil, &resp); err != nil {
		return err
	}
	return resp.err()
}

// Reply implements listview.Mutator via POST on the item's reply endpoint.
func (c *HTTPClient) Reply(ctx context.Context, resource, itemID, message string) error {
	payload := map[string]any{"message": message}
	var resp statusResponse
	if err := c.do(ctx, http.MethodPost, itemPath(resource, itemID)+"/reply", payload, &resp); err != nil {
		return err
	}
	return resp.err()
}

// SetMaintenance toggles the storefront maintenance flag.
func (c *HTTPClient) SetMaintenance(ctx context.Context, enabled bool) error {
	payload := map[string]any{"enabled": enabled}
	var resp statusResponse
	if err := c.do(ctx, http.MethodPut, "/api/"+listview.MaintenanceResource, payload, &resp); err != nil {
		return err
	}
	return resp.err()
}

// FetchOrders implements OrdersClient.
func (c *HTTPClient) FetchOrders(ctx context.Context) ([]reports.Order, error) {
	items, err := c.FetchCollection(ctx, "orders")
	if err != nil {
		return nil, err
	}
	orders := make([]reports.Order, len(items))
	for i, item := range items {
		orders[i] = reports.Order{
			ID:          item.ID(),
			Status:      item.Text("status"),
			TotalAmount: item.Number("total_amount"),
			CreatedAt:   parseTimestamp(item.Text("created_at")),
		}
	}
	return orders, nil
}

// FetchOrderItems implements OrderItemsClient via a query endpoint.
func (c *HTTPClient) FetchOrderItems(ctx context.Context, orderIDs []string) ([]reports.OrderItem, error) {
	payload := map[string]any{"order_ids": orderIDs}
	var resp collectionResponse
	if err := c.do(ctx, http.MethodPost, "/api/order-items/query", payload, &resp); err != nil {
		return nil, err
	}
	if err := resp.err(); err != nil {
		return nil, err
	}
	lines := make([]reports.OrderItem, len(resp.Data))
	for i, item := range resp.Data {
		lines[i] = reports.OrderItem{
			OrderID:     item.Text("order_id"),
			ProductID:   item.Text("product_id"),
			ProductName: item.Text("product_name"),
			Category:    item.Text("category"),
			Quantity:    item.Number("quantity"),
			UnitPrice:   item.Number("unit_price"),
		}
	}
	return lines, nil
}

// FetchReviews implements ReviewsClient.
func (c *HTTPClient) FetchReviews(ctx context.Context, productID string) ([]reports.Review, error) {
	path := "/api/reviews?product_id=" + url.QueryEscape(productID)
	var resp collectionResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if err := resp.err(); err != nil {
		return nil, err
	}
	reviews := make([]reports.Review, len(resp.Data))
	for i, item := range resp.Data {
		reviews[i] = reports.Review{
			ProductID: item.Text("product_id"),
			Rating:    item.Number("rating"),
		}
	}
	return reviews, nil
}

// FetchProfiles implements ProfilesClient.
func (c *HTTPClient) FetchProfiles(ctx context.Context) ([]reports.Profile, error) {
	items, err := c.FetchCollection(ctx, "profiles")
	if err != nil {
		return nil, err
	}
	profiles := make([]reports.Profile, len(items))
	for i, item := range items {
		profiles[i] = reports.Profile{
			ID:        item.ID(),
			CreatedAt: parseTimestamp(item.Text("created_at")),
		}
	}
	return profiles, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("backend: encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("backend: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("backend: decode response: %w", err)
	}
	return nil
}

func itemPath(resource, itemID string) string {
	return "/api/" + resource + "/" + url.PathEscape(itemID)
}

// parseTimestamp accepts the backend's RFC3339 timestamps; malformed values
// degrade to the zero time instead of failing a report.
func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts
	}
	if ts, err := time.Parse("2006-01-02T15:04:05", value); err == nil {
		return ts
	}
	return time.Time{}
}

type collectionResponse struct {
	Success bool            `json:"success"`
	Data    []listview.Item `json:"data"`
	Error   string          `json:"error"`
}

func (r collectionResponse) err() error {
	if r.Success {
		return nil
	}
	if r.Error != "" {
		return fmt.Errorf("backend: %s", r.Error)
	}
	return fmt.Errorf("backend: request was not successful")
}

type statusResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (r statusResponse) err() error {
	if r.Success {
		return nil
	}
	if r.Error != "" {
		return fmt.Errorf("backend: %s", r.Error)
	}
	return fmt.Errorf("backend: request was not successful")
}
