// Package reports recomputes the admin dashboard analytics (customer, order,
// and earnings stats plus sales breakdowns) from raw backend collections.
package reports

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Order is one row of the orders collection.
type Order struct {
	ID          string
	Status      string
	TotalAmount float64
	CreatedAt   time.Time
}

// OrderItem is one line item belonging to an order.
type OrderItem struct {
	OrderID     string
	ProductID   string
	ProductName string
	Category    string
	Quantity    float64
	UnitPrice   float64
}

// Review is a customer rating for a product.
type Review struct {
	ProductID string
	Rating    float64
}

// Profile is a customer account record.
type Profile struct {
	ID        string
	CreatedAt time.Time
}

// OrderRepository fetches the orders collection.
type OrderRepository interface {
	FetchOrders(ctx context.Context) ([]Order, error)
}

// OrderItemRepository fetches line items for the given order ids.
type OrderItemRepository interface {
	FetchOrderItems(ctx context.Context, orderIDs []string) ([]OrderItem, error)
}

// ReviewRepository fetches reviews for one product.
type ReviewRepository interface {
	FetchReviews(ctx context.Context, productID string) ([]Review, error)
}

// ProfileRepository fetches customer profiles.
type ProfileRepository interface {
	FetchProfiles(ctx context.Context) ([]Profile, error)
}

// StatusComplete marks orders that count toward sales reports.
const StatusComplete = "complete"

// Currency is the storefront currency code.
const Currency = "PHP"

// CustomerStats summarizes customer growth for a period.
type CustomerStats struct {
	Total      int     `json:"total"`
	Period     int     `json:"period"`
	Percentage float64 `json:"percentage"`
}

// OrderStats buckets orders by status.
type OrderStats struct {
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	InTransit int `json:"in_transit"`
	Complete  int `json:"complete"`
	Cancelled int `json:"cancelled"`
	Total     int `json:"total"`
}

// EarningsStats carries formatted earnings figures.
type EarningsStats struct {
	Total    string `json:"total"`
	Period   string `json:"period"`
	Growth   string `json:"growth"`
	Currency string `json:"currency"`
}

// DashboardStats is the top-of-dashboard summary.
type DashboardStats struct {
	Customers CustomerStats `json:"customers"`
	Orders    OrderStats    `json:"orders"`
	Earnings  EarningsStats `json:"earnings"`
}

// SalesMonth is one bucket of the yearly sales report.
type SalesMonth struct {
	Month  string  `json:"month"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
	Growth string  `json:"growth"`
}

// SalesSummary aggregates the yearly report.
type SalesSummary struct {
	TotalSales    string `json:"totalSales"`
	TotalOrders   int    `json:"totalOrders"`
	AverageGrowth string `json:"averageGrowth"`
}

// SalesReport is the monthly sales chart payload.
type SalesReport struct {
	Monthly []SalesMonth `json:"monthly"`
	Summary SalesSummary `json:"summary"`
	Year    int          `json:"year"`
}

// BestSeller is one product row of the best-selling report.
type BestSeller struct {
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	TotalQuantity int     `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
	OrderCount    int     `json:"order_count"`
	ReviewCount   int     `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}

// CategorySales is one category row of the category report.
type CategorySales struct {
	Category      string  `json:"category"`
	TotalQuantity int     `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
	ProductCount  int     `json:"product_count"`
}

// Options configures the reports Service.
type Options struct {
	Orders     OrderRepository
	OrderItems OrderItemRepository
	Reviews    ReviewRepository
	Profiles   ProfileRepository
	// Now overrides the clock for period calculations; defaults to time.Now.
	Now func() time.Time
}

// Service derives dashboard reports from the repositories.
type Service struct {
	opts Options
}

// NewService builds a reports service.
func NewService(opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{opts: opts}
}

// DashboardStats computes the overall dashboard summary for a period of
// "week", "month", or "year" (anything else means month).
func (s *Service) DashboardStats(ctx context.Context, period string) (DashboardStats, error) {
	if s.opts.Orders == nil || s.opts.Profiles == nil {
		return DashboardStats{}, fmt.Errorf("reports: order and profile repositories are required")
	}
	now := s.opts.Now()
	start := periodStart(now, period)

	profiles, err := s.opts.Profiles.FetchProfiles(ctx)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("reports: fetch profiles: %w", err)
	}
	periodCustomers := 0
	for _, profile := range profiles {
		if !profile.CreatedAt.Before(start) {
			periodCustomers++
		}
	}

	orders, err := s.opts.Orders.FetchOrders(ctx)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("reports: fetch orders: %w", err)
	}

	var orderStats OrderStats
	var totalEarnings, periodEarnings float64
	for _, order := range orders {
		orderStats.Total++
		switch order.Status {
		case "pending":
			orderStats.Pending++
		case "approved":
			orderStats.Approved++
		case "in_transit":
			orderStats.InTransit++
		case StatusComplete:
			orderStats.Complete++
		case "cancelled":
			orderStats.Cancelled++
		}
		totalEarnings += order.TotalAmount
		if !order.CreatedAt.Before(start) {
			periodEarnings += order.TotalAmount
		}
	}

	previous := totalEarnings - periodEarnings
	growth := 0.0
	if previous > 0 {
		growth = (periodEarnings - previous) / previous * 100
	}

	percentage := 0.0
	if len(profiles) > 0 {
		percentage = round1(float64(periodCustomers) / float64(len(profiles)) * 100)
	}

	return DashboardStats{
		Customers: CustomerStats{
			Total:      len(profiles),
			Period:     periodCustomers,
			Percentage: percentage,
		},
		Orders: orderStats,
		Earnings: EarningsStats{
			Total:    fmt.Sprintf("%.2f", totalEarnings),
			Period:   fmt.Sprintf("%.2f", periodEarnings),
			Growth:   fmt.Sprintf("%.1f", growth),
			Currency: Currency,
		},
	}, nil
}

// SalesReport buckets the year's completed orders by month with per-month
// growth against the previous month.
func (s *Service) SalesReport(ctx context.Context, year int) (SalesReport, error) {
	if s.opts.Orders == nil {
		return SalesReport{}, fmt.Errorf("reports: order repository is required")
	}
	if year == 0 {
		year = s.opts.Now().Year()
	}

	orders, err := s.opts.Orders.FetchOrders(ctx)
	if err != nil {
		return SalesReport{}, fmt.Errorf("reports: fetch orders: %w", err)
	}

	var sales [12]float64
	var counts [12]int
	for _, order := range orders {
		if order.Status != StatusComplete || order.CreatedAt.Year() != year {
			continue
		}
		idx := int(order.CreatedAt.Month()) - 1
		sales[idx] += order.TotalAmount
		counts[idx]++
	}

	monthly := make([]SalesMonth, 12)
	for i := 0; i < 12; i++ {
		growth := "0"
		if i > 0 && sales[i-1] > 0 {
			growth = fmt.Sprintf("%.1f", (sales[i]-sales[i-1])/sales[i-1]*100)
		}
		monthly[i] = SalesMonth{
			Month:  time.Month(i + 1).String(),
			Sales:  sales[i],
			Orders: counts[i],
			Growth: growth,
		}
	}

	var totalSales float64
	var totalOrders int
	var growthSum float64
	var growthCount int
	for i, month := range monthly {
		totalSales += month.Sales
		totalOrders += month.Orders
		if i == 0 || month.Growth == "0" {
			continue
		}
		if value, err := strconv.ParseFloat(month.Growth, 64); err == nil {
			growthSum += value
			growthCount++
		}
	}
	averageGrowth := "0"
	if growthCount > 0 {
		averageGrowth = fmt.Sprintf("%.1f", growthSum/float64(growthCount))
	}

	return SalesReport{
		Monthly: monthly,
		Summary: SalesSummary{
			TotalSales:    fmt.Sprintf("%.2f", totalSales),
			TotalOrders:   totalOrders,
			AverageGrowth: averageGrowth,
		},
		Year: year,
	}, nil
}

// MonthlyEarnings returns the year's completed-order earnings per month.
func (s *Service) MonthlyEarnings(ctx context.Context, year int) ([]float64, error) {
	if s.opts.Orders == nil {
		return nil, fmt.Errorf("reports: order repository is required")
	}
	if year == 0 {
		year = s.opts.Now().Year()
	}
	orders, err := s.opts.Orders.FetchOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("reports: fetch orders: %w", err)
	}
	earnings := make([]float64, 12)
	for _, order := range orders {
		if order.Status != StatusComplete || order.CreatedAt.Year() != year {
			continue
		}
		earnings[int(order.CreatedAt.Month())-1] += order.TotalAmount
	}
	return earnings, nil
}

// BestSellers groups completed-order line items by product, joins review
// figures, and returns the top products by quantity sold. Review fetch
// failures degrade to zero counts instead of failing the report.
func (s *Service) BestSellers(ctx context.Context, limit int, category string) ([]BestSeller, error) {
	if s.opts.Orders == nil || s.opts.OrderItems == nil {
		return nil, fmt.Errorf("reports: order and order-item repositories are required")
	}
	if limit <= 0 {
		limit = 10
	}
	items, err := s.completedOrderItems(ctx)
	if err != nil {
		return nil, err
	}
	if category != "" {
		filtered := items[:0:0]
		for _, item := range items {
			if strings.EqualFold(item.Category, category) {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}
	if len(items) == 0 {
		return []BestSeller{}, nil
	}

	grouped := map[string]*BestSeller{}
	for _, item := range items {
		entry, ok := grouped[item.ProductID]
		if !ok {
			entry = &BestSeller{ProductID: item.ProductID, ProductName: item.ProductName}
			grouped[item.ProductID] = entry
		}
		entry.TotalQuantity += int(item.Quantity)
		entry.TotalRevenue += item.Quantity * item.UnitPrice
		entry.OrderCount++
	}

	ranked := make([]BestSeller, 0, len(grouped))
	for _, entry := range grouped {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalQuantity != ranked[j].TotalQuantity {
			return ranked[i].TotalQuantity > ranked[j].TotalQuantity
		}
		return ranked[i].ProductID < ranked[j].ProductID
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	if s.opts.Reviews != nil {
		for i := range ranked {
			reviews, err := s.opts.Reviews.FetchReviews(ctx, ranked[i].ProductID)
			if err != nil {
				continue
			}
			ranked[i].ReviewCount = len(reviews)
			if len(reviews) > 0 {
				var sum float64
				for _, review := range reviews {
					sum += review.Rating
				}
				ranked[i].AverageRating = round1(sum / float64(len(reviews)))
			}
		}
	}
	return ranked, nil
}

// CategorySales groups completed-order line items by the first word of the
// product name and returns the top categories by quantity sold.
func (s *Service) CategorySales(ctx context.Context, limit int) ([]CategorySales, error) {
	if s.opts.Orders == nil || s.opts.OrderItems == nil {
		return nil, fmt.Errorf("reports: order and order-item repositories are required")
	}
	if limit <= 0 {
		limit = 10
	}
	items, err := s.completedOrderItems(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []CategorySales{}, nil
	}

	type bucket struct {
		quantity float64
		revenue  float64
		products map[string]struct{}
	}
	grouped := map[string]*bucket{}
	for _, item := range items {
		category := firstWordCategory(item.ProductName)
		entry, ok := grouped[category]
		if !ok {
			entry = &bucket{products: map[string]struct{}{}}
			grouped[category] = entry
		}
		entry.quantity += item.Quantity
		entry.revenue += item.Quantity * item.UnitPrice
		entry.products[item.ProductID] = struct{}{}
	}

	ranked := make([]CategorySales, 0, len(grouped))
	for category, entry := range grouped {
		ranked = append(ranked, CategorySales{
			Category:      category,
			TotalQuantity: int(entry.quantity),
			TotalRevenue:  entry.revenue,
			ProductCount:  len(entry.products),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalQuantity != ranked[j].TotalQuantity {
			return ranked[i].TotalQuantity > ranked[j].TotalQuantity
		}
		return ranked[i].Category < ranked[j].Category
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (s *Service) completedOrderItems(ctx context.Context) ([]OrderItem, error) {
	orders, err := s.opts.Orders.FetchOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("reports: fetch orders: %w", err)
	}
	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		if order.Status == StatusComplete {
			ids = append(ids, order.ID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	items, err := s.opts.OrderItems.FetchOrderItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("reports: fetch order items: %w", err)
	}
	return items, nil
}

// firstWordCategory derives a category label from the product name until the
// catalog grows a real category column.
func firstWordCategory(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "Uncategorized"
	}
	return fields[0]
}

func periodStart(now time.Time, period string) time.Time {
	switch period {
	case "week":
		return now.AddDate(0, 0, -7)
	case "year":
		return now.AddDate(0, 0, -365)
	default:
		return now.AddDate(0, 0, -30)
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
