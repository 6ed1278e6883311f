package mysql

import (
	"context"
	"time"

	"storefront/application/dashboard"
	"storefront/domain/order"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// DashboardQuery aggregates orders with SQL; nothing here touches the
// aggregates.
type DashboardQuery struct {
	db *gorm.DB
}

func NewDashboardQuery(db *gorm.DB) *DashboardQuery {
	return &DashboardQuery{db: db}
}

func (q *DashboardQuery) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return q.db.WithContext(ctx)
}

type statusCountRow struct {
	Status string
	N      int64
}

func (q *DashboardQuery) CountsByStatus(ctx context.Context) (map[order.Status]int64, error) {
	var rows []statusCountRow
	err := q.getDB(ctx).Model(&po.OrderPO{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[order.Status]int64, len(rows))
	for _, row := range rows {
		counts[order.Status(row.Status)] = row.N
	}
	return counts, nil
}

func (q *DashboardQuery) Revenue(ctx context.Context, statuses []order.Status, since time.Time) (int64, error) {
	var revenue int64
	query := q.getDB(ctx).Model(&po.OrderPO{}).
		Select("COALESCE(SUM(total_price), 0)").
		Where("status IN ?", statusStrings(statuses))
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}
	err := query.Scan(&revenue).Error
	return revenue, err
}

type dailyRow struct {
	Day     string
	Orders  int64
	Revenue int64
}

func (q *DashboardQuery) DailySeries(ctx context.Context, since time.Time) ([]dashboard.DailyPoint, error) {
	var rows []dailyRow
	err := q.getDB(ctx).Model(&po.OrderPO{}).
		Select("DATE_FORMAT(created_at, '%Y-%m-%d') AS day, COUNT(*) AS orders, COALESCE(SUM(total_price), 0) AS revenue").
		Where("created_at >= ?", since).
		Group("day").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	series := make([]dashboard.DailyPoint, len(rows))
	for i, row := range rows {
		series[i] = dashboard.DailyPoint{Day: row.Day, Orders: row.Orders, Revenue: row.Revenue}
	}
	return series, nil
}

type statusRevenueRow struct {
	Status  string
	Revenue int64
}

func (q *DashboardQuery) RevenueByStatus(ctx context.Context) (map[order.Status]int64, error) {
	var rows []statusRevenueRow
	err := q.getDB(ctx).Model(&po.OrderPO{}).
		Select("status, COALESCE(SUM(total_price), 0) AS revenue").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	revenue := make(map[order.Status]int64, len(rows))
	for _, row := range rows {
		revenue[order.Status(row.Status)] = row.Revenue
	}
	return revenue, nil
}

type methodCountRow struct {
	DeliveryMethod string
	N              int64
}

func (q *DashboardQuery) CountByDeliveryMethod(ctx context.Context) (map[string]int64, error) {
	var rows []methodCountRow
	err := q.getDB(ctx).Model(&po.OrderPO{}).
		Select("delivery_method, COUNT(*) AS n").
		Group("delivery_method").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.DeliveryMethod] = row.N
	}
	return counts, nil
}

type regionCountRow struct {
	Region string
	N      int64
}

func (q *DashboardQuery) TopRegions(ctx context.Context, limit int) ([]dashboard.RegionCount, error) {
	var rows []regionCountRow
	err := q.getDB(ctx).Model(&po.OrderPO{}).
		Select("region, COUNT(*) AS n").
		Group("region").
		Order("n DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	regions := make([]dashboard.RegionCount, len(rows))
	for i, row := range rows {
		regions[i] = dashboard.RegionCount{Region: row.Region, Orders: row.N}
	}
	return regions, nil
}

func statusStrings(statuses []order.Status) []string {
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	return values
}

var _ dashboard.Query = (*DashboardQuery)(nil)
