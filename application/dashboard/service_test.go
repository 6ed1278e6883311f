package dashboard_test

import (
	"context"
	"testing"
	"time"

	"storefront/application/dashboard"
	"storefront/domain/order"
	"storefront/domain/shipping"
	"storefront/infrastructure/persistence/memory"
)

func seedOrder(t *testing.T, repo *memory.OrderRepository, status order.Status, total int64, region string, method shipping.DeliveryMethod) {
	t.Helper()
	o, err := order.NewOrder(order.NewOrderParams{
		ProductID:      "prod-1",
		ProductName:    "Trail Runner",
		VariantSku:     "TR-42",
		Quantity:       1,
		UnitPrice:      total,
		ShippingFee:    0,
		TotalPrice:     total,
		CustomerName:   "Amine B",
		CustomerPhone:  "0551234567",
		Region:         region,
		DeliveryMethod: method,
		Address:        "12 rue Didouche Mourad",
	})
	if err != nil {
		t.Fatalf("NewOrder failed: %v", err)
	}
	if status != order.StatusPending {
		o.ChangeStatus(status)
	}
	if err := repo.Save(context.Background(), o); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
}

func TestGetSummary(t *testing.T) {
	orders := memory.NewOrderRepository()
	seedOrder(t, orders, order.StatusPending, 5000, "ALGER", shipping.DeliveryHome)
	seedOrder(t, orders, order.StatusConfirmed, 8000, "ALGER", shipping.DeliveryHome)
	seedOrder(t, orders, order.StatusDelivered, 12000, "ORAN", shipping.DeliveryPickup)
	seedOrder(t, orders, order.StatusCancelled, 3000, "ORAN", shipping.DeliveryHome)

	service := dashboard.NewService(memory.NewDashboardQuery(orders))
	summary, err := service.GetSummary(context.Background())
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}

	if summary.TotalOrders != 4 {
		t.Errorf("expected 4 orders, got %d", summary.TotalOrders)
	}
	if summary.OrdersByStatus[order.StatusConfirmed] != 1 {
		t.Errorf("expected 1 confirmed order, got %d", summary.OrdersByStatus[order.StatusConfirmed])
	}

	// Revenue counts confirmed and delivered only. All orders are placed
	// now, so this month's revenue matches the total.
	if summary.TotalRevenue != 20000 {
		t.Errorf("expected revenue 20000, got %d", summary.TotalRevenue)
	}
	if summary.MonthRevenue != 20000 {
		t.Errorf("expected month revenue 20000, got %d", summary.MonthRevenue)
	}
	if summary.TodayOrders != 4 {
		t.Errorf("expected 4 orders today, got %d", summary.TodayOrders)
	}
	if summary.RevenueByStatus[order.StatusCancelled] != 3000 {
		t.Errorf("expected cancelled bucket 3000, got %d", summary.RevenueByStatus[order.StatusCancelled])
	}

	if summary.CancellationRate != 0.25 {
		t.Errorf("expected cancellation rate 0.25, got %f", summary.CancellationRate)
	}

	if summary.ByDeliveryMethod["home"] != 3 || summary.ByDeliveryMethod["pickup-point"] != 1 {
		t.Errorf("unexpected delivery split: %v", summary.ByDeliveryMethod)
	}

	if len(summary.TopRegions) != 2 || summary.TopRegions[0].Region != "ALGER" {
		t.Errorf("unexpected top regions: %v", summary.TopRegions)
	}

	// All four orders were placed today, so the series has one point.
	today := time.Now().Format("2006-01-02")
	if len(summary.DailySeries) != 1 || summary.DailySeries[0].Day != today {
		t.Fatalf("unexpected daily series: %v", summary.DailySeries)
	}
	if summary.DailySeries[0].Orders != 4 {
		t.Errorf("expected 4 orders today, got %d", summary.DailySeries[0].Orders)
	}
}

func TestGetSummaryEmpty(t *testing.T) {
	service := dashboard.NewService(memory.NewDashboardQuery(memory.NewOrderRepository()))
	summary, err := service.GetSummary(context.Background())
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if summary.TotalOrders != 0 || summary.TotalRevenue != 0 || summary.CancellationRate != 0 {
		t.Errorf("expected empty summary, got %+v", summary)
	}
}
