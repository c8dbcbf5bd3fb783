package backend

import (
	"context"
	"fmt"
	"sync"

	"github.com/izajlabs/go-adminlist/components/listview"
	"github.com/izajlabs/go-adminlist/components/reports"
)

// MockData seeds deterministic backend responses for tests or local demos.
type MockData struct {
	Collections map[string][]listview.Item
	Orders      []reports.Order
	OrderItems  []reports.OrderItem
	Reviews     map[string][]reports.Review
	Profiles    []reports.Profile
}

// MockClient implements the Source/Mutator contracts and the report clients
// using in-memory fixtures. Mutations are recorded, not applied; FailWith
// makes every call fail, mimicking a backend outage.
type MockClient struct {
	mu        sync.RWMutex
	data      MockData
	FailWith  error
	Mutations []string
}

var (
	_ listview.Source  = (*MockClient)(nil)
	_ listview.Mutator = (*MockClient)(nil)
	_ Client           = (*MockClient)(nil)
)

// NewMockClient builds a mock backend from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// SetCollection replaces one resource's fixture collection.
func (c *MockClient) SetCollection(resource string, items []listview.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data.Collections == nil {
		c.data.Collections = map[string][]listview.Item{}
	}
	c.data.Collections[resource] = items
}

// FetchCollection returns the fixture collection for a resource.
func (c *MockClient) FetchCollection(_ context.Context, resource string) ([]listview.Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.FailWith != nil {
		return nil, c.FailWith
	}
	items := c.data.Collections[resource]
	return append([]listview.Item(nil), items...), nil
}

func (c *MockClient) UpdateStatus(_ context.Context, resource, itemID, field string, value any) error {
	return c.record(fmt.Sprintf("update %s/%s %s=%v", resource, itemID, field, value))
}

func (c *MockClient) DeleteItem(_ context.Context, resource, itemID string) error {
	return c.record(fmt.Sprintf("delete %s/%s", resource, itemID))
}

func (c *MockClient) Reply(_ context.Context, resource, itemID, message string) error {
	return c.record(fmt.Sprintf("reply %s/%s %q", resource, itemID, message))
}

func (c *MockClient) SetMaintenance(_ context.Context, enabled bool) error {
	return c.record(fmt.Sprintf("maintenance %v", enabled))
}

// FetchOrders returns the fixture orders.
func (c *MockClient) FetchOrders(context.Context) ([]reports.Order, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.FailWith != nil {
		return nil, c.FailWith
	}
	return append([]reports.Order(nil), c.data.Orders...), nil
}

// FetchOrderItems returns fixture line items belonging to the given orders.
func (c *MockClient) FetchOrderItems(_ context.Context, orderIDs []string) ([]reports.OrderItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.FailWith != nil {
		return nil, c.FailWith
	}
	wanted := make(map[string]struct{}, len(orderIDs))
	for _, id := range orderIDs {
		wanted[id] = struct{}{}
	}
	var items []reports.OrderItem
	for _, item := range c.data.OrderItems {
		if _, ok := wanted[item.OrderID]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

// FetchReviews returns fixture reviews for one product.
func (c *MockClient) FetchReviews(_ context.Context, productID string) ([]reports.Review, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.FailWith != nil {
		return nil, c.FailWith
	}
	return append([]reports.Review(nil), c.data.Reviews[productID]...), nil
}

// FetchProfiles returns the fixture profiles.
func (c *MockClient) FetchProfiles(context.Context) ([]reports.Profile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.FailWith != nil {
		return nil, c.FailWith
	}
	return append([]reports.Profile(nil), c.data.Profiles...), nil
}

func (c *MockClient) record(entry string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.FailWith != nil {
		return c.FailWith
	}
	c.Mutations = append(c.Mutations, entry)
	return nil
}
