// Package dashboard assembles the sales summary for the admin dashboard.
// It is read-only: everything comes from one aggregation port implemented
// by the persistence layer.
package dashboard

import (
	"context"
	"time"

	"storefront/domain/order"
)

// DailyPoint is one day of the order/revenue series.
type DailyPoint struct {
	Day     string `json:"day"` // YYYY-MM-DD
	Orders  int64  `json:"orders"`
	Revenue int64  `json:"revenue"`
}

// RegionCount is an order count for one shipping region.
type RegionCount struct {
	Region string `json:"region"`
	Orders int64  `json:"orders"`
}

// Query is the aggregation port the dashboard reads through.
type Query interface {
	CountsByStatus(ctx context.Context) (map[order.Status]int64, error)
	// Revenue sums total_price over the given statuses; a zero since means
	// all time.
	Revenue(ctx context.Context, statuses []order.Status, since time.Time) (int64, error)
	DailySeries(ctx context.Context, since time.Time) ([]DailyPoint, error)
	RevenueByStatus(ctx context.Context) (map[order.Status]int64, error)
	CountByDeliveryMethod(ctx context.Context) (map[string]int64, error)
	TopRegions(ctx context.Context, limit int) ([]RegionCount, error)
}

// Summary is the full dashboard payload.
type Summary struct {
	TotalOrders      int64                  `json:"total_orders"`
	TodayOrders      int64                  `json:"today_orders"`
	OrdersByStatus   map[order.Status]int64 `json:"orders_by_status"`
	TotalRevenue     int64                  `json:"total_revenue"`
	MonthRevenue     int64                  `json:"month_revenue"`
	RevenueByStatus  map[order.Status]int64 `json:"revenue_by_status"`
	CancellationRate float64                `json:"cancellation_rate"`
	DailySeries      []DailyPoint           `json:"daily_series"`
	ByDeliveryMethod map[string]int64       `json:"by_delivery_method"`
	TopRegions       []RegionCount          `json:"top_regions"`
}

// revenueStatuses are the statuses that count as realized revenue.
var revenueStatuses = []order.Status{order.StatusConfirmed, order.StatusDelivered}

const (
	seriesDays      = 30
	topRegionsLimit = 5
)

type Service struct {
	query Query
}

func NewService(query Query) *Service {
	return &Service{query: query}
}

// GetSummary aggregates the dashboard. Revenue counts confirmed and
// delivered orders only; the series covers the last 30 days.
func (s *Service) GetSummary(ctx context.Context) (*Summary, error) {
	counts, err := s.query.CountsByStatus(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	revenue, err := s.query.Revenue(ctx, revenueStatuses, time.Time{})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthRevenue, err := s.query.Revenue(ctx, revenueStatuses, monthStart)
	if err != nil {
		return nil, err
	}

	revenueByStatus, err := s.query.RevenueByStatus(ctx)
	if err != nil {
		return nil, err
	}

	since := now.AddDate(0, 0, -seriesDays)
	series, err := s.query.DailySeries(ctx, since)
	if err != nil {
		return nil, err
	}

	byMethod, err := s.query.CountByDeliveryMethod(ctx)
	if err != nil {
		return nil, err
	}

	topRegions, err := s.query.TopRegions(ctx, topRegionsLimit)
	if err != nil {
		return nil, err
	}

	var cancellationRate float64
	if total > 0 {
		cancellationRate = float64(counts[order.StatusCancelled]) / float64(total)
	}

	var todayOrders int64
	today := now.Format("2006-01-02")
	for _, point := range series {
		if point.Day == today {
			todayOrders = point.Orders
			break
		}
	}

	return &Summary{
		TotalOrders:      total,
		TodayOrders:      todayOrders,
		OrdersByStatus:   counts,
		TotalRevenue:     revenue,
		MonthRevenue:     monthRevenue,
		RevenueByStatus:  revenueByStatus,
		CancellationRate: cancellationRate,
		DailySeries:      series,
		ByDeliveryMethod: byMethod,
		TopRegions:       topRegions,
	}, nil
}
