package order

import "time"

// OrderPlacedEvent is recorded when a new order is created.
type OrderPlacedEvent struct {
	OrderID     string    `json:"order_id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	VariantSku  string    `json:"variant_sku"`
	Quantity    int       `json:"quantity"`
	TotalPrice  int64     `json:"total_price"`
	PlacedAt    time.Time `json:"placed_at"`
}

func NewOrderPlacedEvent(orderID, productID, productName, variantSku string, quantity int, totalPrice int64) OrderPlacedEvent {
	return OrderPlacedEvent{
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		VariantSku:  variantSku,
		Quantity:    quantity,
		TotalPrice:  totalPrice,
		PlacedAt:    time.Now(),
	}
}

func (e OrderPlacedEvent) EventName() string      { return "order.placed" }
func (e OrderPlacedEvent) OccurredOn() time.Time  { return e.PlacedAt }
func (e OrderPlacedEvent) GetAggregateID() string { return e.OrderID }

// OrderStatusChangedEvent is recorded on every effective status transition.
type OrderStatusChangedEvent struct {
	OrderID    string    `json:"order_id"`
	FromStatus Status    `json:"from_status"`
	ToStatus   Status    `json:"to_status"`
	ChangedAt  time.Time `json:"changed_at"`
}

func NewOrderStatusChangedEvent(orderID string, from, to Status) OrderStatusChangedEvent {
	return OrderStatusChangedEvent{
		OrderID:    orderID,
		FromStatus: from,
		ToStatus:   to,
		ChangedAt:  time.Now(),
	}
}

func (e OrderStatusChangedEvent) EventName() string      { return "order.status_changed" }
func (e OrderStatusChangedEvent) OccurredOn() time.Time  { return e.ChangedAt }
func (e OrderStatusChangedEvent) GetAggregateID() string { return e.OrderID }
