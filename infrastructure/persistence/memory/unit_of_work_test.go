package memory

import (
	"context"
	"testing"

	"storefront/domain/order"
	"storefront/domain/shipping"
)

func placedOrder(t *testing.T, customer string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(order.NewOrderParams{
		ProductID:      "product-1",
		ProductName:    "Trail Runner",
		VariantSku:     "TR-42",
		Quantity:       1,
		UnitPrice:      8900,
		ShippingFee:    600,
		TotalPrice:     9500,
		CustomerName:   customer,
		CustomerPhone:  "0551234567",
		Region:         "ALGER",
		DeliveryMethod: shipping.DeliveryHome,
		Address:        "12 rue Didouche Mourad",
	})
	if err != nil {
		t.Fatalf("NewOrder failed: %v", err)
	}
	return o
}

func TestExecuteRecordsEvents(t *testing.T) {
	factory := NewUnitOfWorkFactory()
	o := placedOrder(t, "Amine B")

	uow := factory.New()
	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		uow.RegisterNew(o)
		return nil
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	events := factory.Events()
	if len(events) != 1 || events[0].EventName() != "order.placed" {
		t.Fatalf("expected one order.placed event, got %v", events)
	}
}

func TestExecuteFailureDropsEvents(t *testing.T) {
	factory := NewUnitOfWorkFactory()
	o := placedOrder(t, "Amine B")

	uow := factory.New()
	wantErr := context.Canceled
	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		uow.RegisterNew(o)
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("expected the callback error, got %v", err)
	}
	if events := factory.Events(); len(events) != 0 {
		t.Fatalf("expected no events after a failed execute, got %v", events)
	}
}

func TestConcurrentExecutesKeepSeparateRegistrations(t *testing.T) {
	factory := NewUnitOfWorkFactory()
	first := placedOrder(t, "Amine B")
	second := placedOrder(t, "Lina K")

	firstUow := factory.New()
	secondUow := factory.New()

	// The second operation runs to completion while the first is still
	// in flight. Each unit of work must keep its own registrations.
	err := firstUow.Execute(context.Background(), func(ctx context.Context) error {
		firstUow.RegisterNew(first)
		return secondUow.Execute(ctx, func(ctx context.Context) error {
			secondUow.RegisterNew(second)
			return nil
		})
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	recorded := make(map[string]bool)
	for _, event := range factory.Events() {
		recorded[event.GetAggregateID()] = true
	}
	if !recorded[first.ID()] || !recorded[second.ID()] {
		t.Fatalf("expected events for both orders, got first=%t second=%t",
			recorded[first.ID()], recorded[second.ID()])
	}
}
