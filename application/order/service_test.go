package order

import (
	"context"
	"errors"
	"testing"

	"storefront/domain/catalog"
	"storefront/domain/order"
	"storefront/domain/pricing"
	"storefront/domain/shipping"
	"storefront/infrastructure/persistence/memory"
	apperrors "storefront/pkg/errors"
)

type fixture struct {
	service    *ApplicationService
	products   *memory.ProductRepository
	orders     *memory.OrderRepository
	uowFactory *memory.UnitOfWorkFactory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	products := memory.NewProductRepository()
	orders := memory.NewOrderRepository()
	regions := memory.NewShippingRegionRepository()
	regions.Seed(
		shipping.NewRegion("Alger", 600, 400),
		shipping.NewRegion("Oran", 800, 500),
	)
	uowFactory := memory.NewUnitOfWorkFactory()
	resolver := pricing.NewResolver(products, regions)

	return &fixture{
		service:    NewApplicationService(orders, products, resolver, uowFactory, nil),
		products:   products,
		orders:     orders,
		uowFactory: uowFactory,
	}
}

func (f *fixture) seedProduct(t *testing.T, price int64, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(catalog.NewProductParams{
		Slug:        "trail-runner",
		Name:        "Trail Runner",
		Description: "Lightweight trail running shoe",
		Variants: []catalog.VariantInput{
			{SKU: "TR-42", Name: "Size 42", Price: price, Stock: stock, IsDefault: true},
		},
	})
	if err != nil {
		t.Fatalf("NewProduct failed: %v", err)
	}
	if err := f.products.Save(context.Background(), product); err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	return product
}

func placeRequest(productID string) PlaceOrderRequest {
	return PlaceOrderRequest{
		ProductID:      productID,
		VariantSku:     "TR-42",
		Quantity:       2,
		CustomerName:   "Amine B",
		CustomerPhone:  "0551234567",
		CustomerEmail:  "amine@example.com",
		Region:         "alger",
		DeliveryMethod: "home",
		Address:        "12 rue Didouche Mourad",
	}
}

func (f *fixture) variantStock(t *testing.T, productID string) int {
	t.Helper()
	product, err := f.products.FindByID(context.Background(), productID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	v, ok := product.VariantBySKU("TR-42")
	if !ok {
		t.Fatal("variant TR-42 missing")
	}
	return v.Stock()
}

func TestPlaceOrder(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, 8900, 10)

	resp, err := f.service.PlaceOrder(context.Background(), placeRequest(product.ID()))
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	if resp.Status != "pending" {
		t.Errorf("expected status pending, got %s", resp.Status)
	}
	if resp.UnitPrice != 8900 || resp.ShippingFee != 600 || resp.TotalPrice != 18400 {
		t.Errorf("unexpected snapshot: unit=%d fee=%d total=%d", resp.UnitPrice, resp.ShippingFee, resp.TotalPrice)
	}
	if resp.Region != "ALGER" {
		t.Errorf("expected canonical region ALGER, got %s", resp.Region)
	}

	// Placement never touches stock.
	if got := f.variantStock(t, product.ID()); got != 10 {
		t.Errorf("expected stock 10 after placement, got %d", got)
	}

	// The placed event reached the outbox.
	events := f.uowFactory.Events()
	if len(events) != 1 || events[0].EventName() != "order.placed" {
		t.Fatalf("expected one order.placed event, got %v", events)
	}
}

func TestPlaceOrderMissingFields(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.PlaceOrder(context.Background(), PlaceOrderRequest{})
	if !apperrors.Is(err, apperrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPlaceOrderInvalidPhone(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, 8900, 10)

	req := placeRequest(product.ID())
	req.CustomerPhone = "0451234567"
	_, err := f.service.PlaceOrder(context.Background(), req)
	if !errors.Is(err, order.ErrInvalidPhone) {
		t.Fatalf("expected ErrInvalidPhone, got %v", err)
	}
}

func TestPlaceOrderUnknownRegion(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, 8900, 10)

	req := placeRequest(product.ID())
	req.Region = "Atlantis"
	_, err := f.service.PlaceOrder(context.Background(), req)
	if !errors.Is(err, shipping.ErrUnknownRegion) {
		t.Fatalf("expected ErrUnknownRegion, got %v", err)
	}
}

func TestPlaceOrderFreeShipping(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, 10000, 10)

	resp, err := f.service.PlaceOrder(context.Background(), placeRequest(product.ID()))
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	if resp.ShippingFee != 0 {
		t.Errorf("expected free shipping at threshold, got %d", resp.ShippingFee)
	}
	if resp.TotalPrice != 20000 {
		t.Errorf("expected total 20000, got %d", resp.TotalPrice)
	}
}

func TestConfirmDecrementsStock(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, 8900, 10)

	placed, err := f.service.PlaceOrder(context.Background(), placeRequest(product.ID()))
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	resp, err := f.service.UpdateStatus(context.Background(), placed.ID, "confirmed")
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if resp.Status != "confirmed" {
		t.Errorf("expected status confirmed, got %s", resp.Status)
	}
	if got := f.variantStock(t, product.ID()); got != 8 {
		t.Errorf("expected stock 8 after confirmation, got %d", got)
	}
}

func TestConfirmInsufficientStockAborts(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, 8900, 1)

	placed, err := f.service.PlaceOrder(context.Background(), placeRequest(product.ID()))
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	_, err = f.service.UpdateStatus(context.Background(), placed.ID, "confirmed")
	if !errors.Is(err, catalog.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	// The whole transition aborted: status and stock unchanged.
	stored, err := f.service.GetOrder(context.Background(), placed.ID)
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	if stored.Status != "pending" {
		t.Errorf("expected status still pending, got %s", stored.Status)
	}
	if got := f.variantStock(t, product.ID()); got != 1 {
		t.Errorf("expected stock 1, got %d", got)
	}
}

func TestConfirmAfterProductDeleted(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, 8900, 10)

	placed, err := f.service.PlaceOrder(context.Background(), placeRequest(product.ID()))
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	if err := f.products.Remove(context.Background(), product.ID()); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	_, err = f.service.UpdateStatus(context.Background(), placed.ID, "confirmed")
	if !errors.Is(err, catalog.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	// The transition aborted, the order stays pending.
	stored, err := f.service.GetOrder(context.Background(), placed.ID)
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	if stored.Status != "pending" {
		t.Errorf("expected status still pending, got %s", stored.Status)
	}
}

func TestConfirmAfterVariantReplaced(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, 8900, 10)

	placed, err := f.service.PlaceOrder(context.Background(), placeRequest(product.ID()))
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	// A catalog edit swaps out the ordered SKU.
	stored, err := f.products.FindByID(context.Background(), product.ID())
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	err = stored.Update(catalog.UpdateParams{
		Name:        stored.Name(),
		Description: stored.Description(),
		Variants: []catalog.VariantInput{
			{SKU: "TR-43", Name: "Size 43", Price: 8900, Stock: 10, IsDefault: true},
		},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := f.products.Save(context.Background(), stored); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	_, err = f.service.UpdateStatus(context.Background(), placed.ID, "confirmed")
	if !errors.Is(err, catalog.ErrVariantNotFound) {
		t.Fatalf("expected ErrVariantNotFound, got %v", err)
	}

	after, err := f.service.GetOrder(context.Background(), placed.ID)
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	if after.Status != "pending" {
		t.Errorf("expected status still pending, got %s", after.Status)
	}
}

func TestCancelFromConfirmedRestoresStock(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, 8900, 10)

	placed, err := f.service.PlaceOrder(context.Background(), placeRequest(product.ID()))
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	if _, err := f.service.UpdateStatus(context.Background(), placed.ID, "confirmed"); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if _, err := f.service.UpdateStatus(context.Background(), placed.ID, "cancelled"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if got := f.variantStock(t, product.ID()); got != 10 {
		t.Errorf("expected stock restored to 10, got %d", got)
	}
}

func TestCancelFromPendingLeavesStock(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, 8900, 10)

	placed, err := f.service.PlaceOrder(context.Background(), placeRequest(product.ID()))
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	if _, err := f.service.UpdateStatus(context.Background(), placed.ID, "cancelled"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if got := f.variantStock(t, product.ID()); got != 10 {
		t.Errorf("pending orders never reserved stock, expected 10, got %d", got)
	}
}

func TestSameStatusIsNoOp(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, 8900, 10)

	placed, err := f.service.PlaceOrder(context.Background(), placeRequest(product.ID()))
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	if _, err := f.service.UpdateStatus(context.Background(), placed.ID, "confirmed"); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	// Confirming again must not decrement a second time.
	resp, err := f.service.UpdateStatus(context.Background(), placed.ID, "confirmed")
	if err != nil {
		t.Fatalf("repeat confirm failed: %v", err)
	}
	if resp.Status != "confirmed" {
		t.Errorf("expected status confirmed, got %s", resp.Status)
	}
	if got := f.variantStock(t, product.ID()); got != 8 {
		t.Errorf("expected stock 8 after single decrement, got %d", got)
	}
}

func TestTerminalStatusRejectsTransitions(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, 8900, 10)

	placed, err := f.service.PlaceOrder(context.Background(), placeRequest(product.ID()))
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	for _, status := range []string{"confirmed", "shipped", "delivered"} {
		if _, err := f.service.UpdateStatus(context.Background(), placed.ID, status); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}

	// Delivered is terminal: cancel is a no-op and stock stays consumed.
	resp, err := f.service.UpdateStatus(context.Background(), placed.ID, "cancelled")
	if err != nil {
		t.Fatalf("cancel after delivery errored: %v", err)
	}
	if resp.Status != "delivered" {
		t.Errorf("expected status delivered, got %s", resp.Status)
	}
	if got := f.variantStock(t, product.ID()); got != 8 {
		t.Errorf("expected stock 8, got %d", got)
	}
}

func TestUpdateStatusInvalidTarget(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.UpdateStatus(context.Background(), "order-1", "refunded")
	if !errors.Is(err, order.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdateStatusMissingOrder(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.UpdateStatus(context.Background(), "order-missing", "confirmed")
	if !errors.Is(err, order.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestListOrders(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, 8900, 100)

	first, err := f.service.PlaceOrder(context.Background(), placeRequest(product.ID()))
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	second := placeRequest(product.ID())
	second.CustomerName = "Lina K"
	second.CustomerPhone = "0661234567"
	if _, err := f.service.PlaceOrder(context.Background(), second); err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	if _, err := f.service.UpdateStatus(context.Background(), first.ID, "confirmed"); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	all, err := f.service.ListOrders(context.Background(), ListOrdersRequest{Status: "all"})
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if all.Total != 2 {
		t.Errorf("expected 2 orders, got %d", all.Total)
	}

	confirmed, err := f.service.ListOrders(context.Background(), ListOrdersRequest{Status: "confirmed"})
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if confirmed.Total != 1 || confirmed.Orders[0].ID != first.ID {
		t.Errorf("expected only the confirmed order, got %+v", confirmed)
	}

	search, err := f.service.ListOrders(context.Background(), ListOrdersRequest{Search: "lina"})
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if search.Total != 1 || search.Orders[0].CustomerName != "Lina K" {
		t.Errorf("expected search to match Lina K, got %+v", search)
	}

	_, err = f.service.ListOrders(context.Background(), ListOrdersRequest{Status: "bogus"})
	if !errors.Is(err, order.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus for bogus filter, got %v", err)
	}
}
