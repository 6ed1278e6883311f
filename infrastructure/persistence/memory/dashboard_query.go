package memory

import (
	"context"
	"sort"
	"time"

	"storefront/application/dashboard"
	"storefront/domain/order"
)

// DashboardQuery aggregates over the in-memory order repository.
type DashboardQuery struct {
	orders *OrderRepository
}

func NewDashboardQuery(orders *OrderRepository) *DashboardQuery {
	return &DashboardQuery{orders: orders}
}

func (q *DashboardQuery) snapshot() []order.ReconstructionDTO {
	q.orders.mu.RLock()
	defer q.orders.mu.RUnlock()

	dtos := make([]order.ReconstructionDTO, 0, len(q.orders.orders))
	for _, dto := range q.orders.orders {
		dtos = append(dtos, dto)
	}
	return dtos
}

func (q *DashboardQuery) CountsByStatus(ctx context.Context) (map[order.Status]int64, error) {
	counts := make(map[order.Status]int64)
	for _, dto := range q.snapshot() {
		counts[dto.Status]++
	}
	return counts, nil
}

func (q *DashboardQuery) Revenue(ctx context.Context, statuses []order.Status, since time.Time) (int64, error) {
	included := make(map[order.Status]bool, len(statuses))
	for _, s := range statuses {
		included[s] = true
	}

	var revenue int64
	for _, dto := range q.snapshot() {
		if !included[dto.Status] {
			continue
		}
		if !since.IsZero() && dto.CreatedAt.Before(since) {
			continue
		}
		revenue += dto.TotalPrice
	}
	return revenue, nil
}

func (q *DashboardQuery) DailySeries(ctx context.Context, since time.Time) ([]dashboard.DailyPoint, error) {
	byDay := make(map[string]*dashboard.DailyPoint)
	for _, dto := range q.snapshot() {
		if dto.CreatedAt.Before(since) {
			continue
		}
		day := dto.CreatedAt.Format("2006-01-02")
		point, exists := byDay[day]
		if !exists {
			point = &dashboard.DailyPoint{Day: day}
			byDay[day] = point
		}
		point.Orders++
		point.Revenue += dto.TotalPrice
	}

	series := make([]dashboard.DailyPoint, 0, len(byDay))
	for _, point := range byDay {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Day < series[j].Day })
	return series, nil
}

func (q *DashboardQuery) RevenueByStatus(ctx context.Context) (map[order.Status]int64, error) {
	revenue := make(map[order.Status]int64)
	for _, dto := range q.snapshot() {
		revenue[dto.Status] += dto.TotalPrice
	}
	return revenue, nil
}

func (q *DashboardQuery) CountByDeliveryMethod(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, dto := range q.snapshot() {
		counts[string(dto.DeliveryMethod)]++
	}
	return counts, nil
}

func (q *DashboardQuery) TopRegions(ctx context.Context, limit int) ([]dashboard.RegionCount, error) {
	counts := make(map[string]int64)
	for _, dto := range q.snapshot() {
		counts[dto.Region]++
	}

	regions := make([]dashboard.RegionCount, 0, len(counts))
	for region, n := range counts {
		regions = append(regions, dashboard.RegionCount{Region: region, Orders: n})
	}
	sort.Slice(regions, func(i, j int) bool {
		if regions[i].Orders != regions[j].Orders {
			return regions[i].Orders > regions[j].Orders
		}
		return regions[i].Region < regions[j].Region
	})
	if limit > 0 && len(regions) > limit {
		regions = regions[:limit]
	}
	return regions, nil
}

var _ dashboard.Query = (*DashboardQuery)(nil)
