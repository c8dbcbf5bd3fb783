package backend

import (
	"context"

	"github.com/izajlabs/go-adminlist/components/reports"
)

// NewOrderRepository adapts a backend client into a reports repository.
func NewOrderRepository(client OrdersClient) reports.OrderRepository {
	return &orderRepository{client: client}
}

type orderRepository struct {
	client OrdersClient
}

func (r *orderRepository) FetchOrders(ctx context.Context) ([]reports.Order, error) {
	return r.client.FetchOrders(ctx)
}

// NewOrderItemRepository adapts the backend client for line-item reports.
func NewOrderItemRepository(client OrderItemsClient) reports.OrderItemRepository {
	return &orderItemRepository{client: client}
}

type orderItemRepository struct {
	client OrderItemsClient
}

func (r *orderItemRepository) FetchOrderItems(ctx context.Context, orderIDs []string) ([]reports.OrderItem, error) {
	return r.client.FetchOrderItems(ctx, orderIDs)
}

// NewReviewRepository adapts the backend client for review joins.
func NewReviewRepository(client ReviewsClient) reports.ReviewRepository {
	return &reviewRepository{client: client}
}

type reviewRepository struct {
	client ReviewsClient
}

func (r *reviewRepository) FetchReviews(ctx context.Context, productID string) ([]reports.Review, error) {
	return r.client.FetchReviews(ctx, productID)
}

// NewProfileRepository adapts the backend client for customer stats.
func NewProfileRepository(client ProfilesClient) reports.ProfileRepository {
	return &profileRepository{client: client}
}

type profileRepository struct {
	client ProfilesClient
}

func (r *profileRepository) FetchProfiles(ctx context.Context) ([]reports.Profile, error) {
	return r.client.FetchProfiles(ctx)
}
