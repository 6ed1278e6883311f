package pricing

import (
	"context"
	"errors"
	"testing"

	"storefront/domain/catalog"
	"storefront/domain/shipping"
)

type stubProducts struct {
	product *catalog.Product
}

func (s *stubProducts) Save(ctx context.Context, p *catalog.Product) error { return nil }
func (s *stubProducts) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	if s.product == nil || s.product.ID() != id {
		return nil, catalog.NewProductNotFoundError(id)
	}
	return s.product, nil
}
func (s *stubProducts) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	return nil, catalog.NewProductNotFoundError(slug)
}
func (s *stubProducts) SlugExists(ctx context.Context, slug string) (bool, error) { return false, nil }
func (s *stubProducts) NameExists(ctx context.Context, name, excludeID string) (bool, error) {
	return false, nil
}
func (s *stubProducts) List(ctx context.Context, f catalog.ListFilter) ([]*catalog.Product, int64, error) {
	return nil, 0, nil
}
func (s *stubProducts) Remove(ctx context.Context, id string) error { return nil }

type stubRegions struct {
	regions map[string]shipping.Region
}

func (s *stubRegions) FindByName(ctx context.Context, name string) (shipping.Region, error) {
	r, ok := s.regions[shipping.CanonicalName(name)]
	if !ok {
		return shipping.Region{}, shipping.NewUnknownRegionError(name)
	}
	return r, nil
}

func newTestResolver(t *testing.T, price int64) (*Resolver, *catalog.Product) {
	t.Helper()
	product, err := catalog.NewProduct(catalog.NewProductParams{
		Slug:        "trail-runner",
		Name:        "Trail Runner",
		Description: "Lightweight trail running shoe",
		Variants: []catalog.VariantInput{
			{SKU: "TR-42", Name: "Size 42", Price: price, Stock: 10, IsDefault: true},
		},
	})
	if err != nil {
		t.Fatalf("NewProduct failed: %v", err)
	}
	regions := &stubRegions{regions: map[string]shipping.Region{
		"ALGER": shipping.NewRegion("Alger", 600, 400),
		"ORAN":  shipping.NewRegion("Oran", 800, 500),
	}}
	return NewResolver(&stubProducts{product: product}, regions), product
}

func TestResolveHomeDelivery(t *testing.T) {
	resolver, product := newTestResolver(t, 8900)

	quote, err := resolver.Resolve(context.Background(), product.ID(), "TR-42", 2, "Alger", shipping.DeliveryHome)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if quote.UnitPrice != 8900 {
		t.Errorf("expected unit price 8900, got %d", quote.UnitPrice)
	}
	if quote.Subtotal != 17800 {
		t.Errorf("expected subtotal 17800, got %d", quote.Subtotal)
	}
	if quote.ShippingFee != 600 {
		t.Errorf("expected home fee 600, got %d", quote.ShippingFee)
	}
	if quote.TotalPrice != 18400 {
		t.Errorf("expected total 18400, got %d", quote.TotalPrice)
	}
}

func TestResolvePickupFee(t *testing.T) {
	resolver, product := newTestResolver(t, 8900)

	quote, err := resolver.Resolve(context.Background(), product.ID(), "TR-42", 1, "Oran", shipping.DeliveryPickup)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if quote.ShippingFee != 500 {
		t.Errorf("expected pickup fee 500, got %d", quote.ShippingFee)
	}
}

func TestResolveFreeShippingThreshold(t *testing.T) {
	resolver, product := newTestResolver(t, 10000)

	// Exactly at the threshold: free.
	quote, err := resolver.Resolve(context.Background(), product.ID(), "TR-42", 2, "Alger", shipping.DeliveryHome)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if quote.ShippingFee != 0 {
		t.Errorf("expected free shipping at threshold, got fee %d", quote.ShippingFee)
	}
	if quote.TotalPrice != 20000 {
		t.Errorf("expected total 20000, got %d", quote.TotalPrice)
	}

	// One unit below: fee applies.
	resolver, product = newTestResolver(t, 19999)
	quote, err = resolver.Resolve(context.Background(), product.ID(), "TR-42", 1, "Alger", shipping.DeliveryHome)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if quote.ShippingFee != 600 {
		t.Errorf("expected fee 600 below threshold, got %d", quote.ShippingFee)
	}
}

func TestResolveRegionCaseInsensitive(t *testing.T) {
	resolver, product := newTestResolver(t, 8900)
	for _, name := range []string{"alger", "ALGER", "Alger"} {
		if _, err := resolver.Resolve(context.Background(), product.ID(), "TR-42", 1, name, shipping.DeliveryHome); err != nil {
			t.Errorf("Resolve(%q) unexpected error: %v", name, err)
		}
	}
}

func TestResolveErrors(t *testing.T) {
	resolver, product := newTestResolver(t, 8900)
	ctx := context.Background()

	_, err := resolver.Resolve(ctx, "prod-missing", "TR-42", 1, "Alger", shipping.DeliveryHome)
	if !errors.Is(err, catalog.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}

	_, err = resolver.Resolve(ctx, product.ID(), "TR-99", 1, "Alger", shipping.DeliveryHome)
	if !errors.Is(err, catalog.ErrVariantNotFound) {
		t.Errorf("expected ErrVariantNotFound, got %v", err)
	}

	_, err = resolver.Resolve(ctx, product.ID(), "TR-42", 1, "Atlantis", shipping.DeliveryHome)
	if !errors.Is(err, shipping.ErrUnknownRegion) {
		t.Errorf("expected ErrUnknownRegion, got %v", err)
	}

	_, err = resolver.Resolve(ctx, product.ID(), "TR-42", 0, "Alger", shipping.DeliveryHome)
	if !errors.Is(err, catalog.ErrInvalidProduct) {
		t.Errorf("expected ErrInvalidProduct for zero quantity, got %v", err)
	}
}
