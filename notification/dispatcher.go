// Package notification delivers customer-facing messages. Delivery is
// always best-effort: callers log failures and never propagate them into
// the transaction that triggered the message.
package notification

import (
	"context"

	"storefront/pkg/logger"

	"go.uber.org/zap"
)

// PlacementNotice confirms a newly placed order to the customer.
type PlacementNotice struct {
	OrderID       string
	CustomerName  string
	CustomerEmail string
	ProductName   string
	VariantName   string
	Quantity      int
	TotalPrice    int64
}

// StatusNotice informs the customer of a status change.
type StatusNotice struct {
	OrderID       string
	CustomerName  string
	CustomerEmail string
	NewStatus     string
}

// Dispatcher sends customer notifications.
type Dispatcher interface {
	SendPlacementNotice(ctx context.Context, notice PlacementNotice) error
	SendStatusNotice(ctx context.Context, notice StatusNotice) error
}

// LogDispatcher writes notifications to the log instead of sending them.
// Used in development and whenever SMTP is disabled.
type LogDispatcher struct{}

func NewLogDispatcher() *LogDispatcher { return &LogDispatcher{} }

func (d *LogDispatcher) SendPlacementNotice(ctx context.Context, notice PlacementNotice) error {
	logger.Info("order confirmation notice",
		zap.String("order_id", notice.OrderID),
		zap.String("email", notice.CustomerEmail),
		zap.String("product", notice.ProductName),
		zap.Int("quantity", notice.Quantity),
		zap.Int64("total_price", notice.TotalPrice))
	return nil
}

func (d *LogDispatcher) SendStatusNotice(ctx context.Context, notice StatusNotice) error {
	logger.Info("order status notice",
		zap.String("order_id", notice.OrderID),
		zap.String("email", notice.CustomerEmail),
		zap.String("status", notice.NewStatus))
	return nil
}

var _ Dispatcher = (*LogDispatcher)(nil)
