package backend

import (
	"context"

	"github.com/izajlabs/go-adminlist/components/reports"
)

// OrdersClient fetches the orders collection from the storefront backend.
type OrdersClient interface {
	FetchOrders(ctx context.Context) ([]reports.Order, error)
}

// OrderItemsClient fetches line items for the given order ids.
type OrderItemsClient interface {
	FetchOrderItems(ctx context.Context, orderIDs []string) ([]reports.OrderItem, error)
}

// ReviewsClient fetches reviews for one product.
type ReviewsClient interface {
	FetchReviews(ctx context.Context, productID string) ([]reports.Review, error)
}

// ProfilesClient fetches customer profiles.
type ProfilesClient interface {
	FetchProfiles(ctx context.Context) ([]reports.Profile, error)
}

// Client is a convenience union for services that implement all report calls.
type Client interface {
	OrdersClient
	OrderItemsClient
	ReviewsClient
	ProfilesClient
}
