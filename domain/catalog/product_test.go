package catalog

import (
	"errors"
	"testing"
)

func sampleParams() NewProductParams {
	return NewProductParams{
		Slug:        "trail-runner",
		Name:        "Trail Runner",
		Description: "Lightweight trail running shoe",
		Brand:       "Northpeak",
		Tags:        []string{"running", "outdoor"},
		Variants: []VariantInput{
			{SKU: "TR-42", Name: "Size 42", Price: 8900, Stock: 10, IsDefault: true},
			{SKU: "TR-43", Name: "Size 43", Price: 9200, Stock: 4},
		},
	}
}

func TestNewProduct(t *testing.T) {
	p, err := NewProduct(sampleParams())
	if err != nil {
		t.Fatalf("NewProduct failed: %v", err)
	}
	if p.ID() == "" {
		t.Error("expected generated ID")
	}
	if !p.IsNew() {
		t.Error("expected new product to report IsNew")
	}
	if p.Version() != 0 {
		t.Errorf("expected version 0, got %d", p.Version())
	}
	if p.BasePrice() != 8900 {
		t.Errorf("expected base price from default variant, got %d", p.BasePrice())
	}
	if got := p.DefaultVariant().SKU(); got != "TR-42" {
		t.Errorf("expected default variant TR-42, got %s", got)
	}
}

func TestNewProductValidation(t *testing.T) {
	params := sampleParams()
	params.Name = "  "
	if _, err := NewProduct(params); !errors.Is(err, ErrInvalidProduct) {
		t.Errorf("expected ErrInvalidProduct for blank name, got %v", err)
	}

	params = sampleParams()
	params.Variants = nil
	if _, err := NewProduct(params); !errors.Is(err, ErrNoVariants) {
		t.Errorf("expected ErrNoVariants, got %v", err)
	}

	params = sampleParams()
	params.Variants[1].SKU = "TR-42"
	if _, err := NewProduct(params); !errors.Is(err, ErrInvalidProduct) {
		t.Errorf("expected ErrInvalidProduct for duplicate SKU, got %v", err)
	}

	params = sampleParams()
	params.Variants[0].Price = -1
	if _, err := NewProduct(params); !errors.Is(err, ErrInvalidProduct) {
		t.Errorf("expected ErrInvalidProduct for negative price, got %v", err)
	}
}

func TestDefaultVariantInvariant(t *testing.T) {
	// No variant marked default: the first is promoted.
	params := sampleParams()
	params.Variants[0].IsDefault = false
	p, err := NewProduct(params)
	if err != nil {
		t.Fatalf("NewProduct failed: %v", err)
	}
	if got := p.DefaultVariant().SKU(); got != "TR-42" {
		t.Errorf("expected first variant promoted to default, got %s", got)
	}
	if p.BasePrice() != 8900 {
		t.Errorf("expected base price 8900, got %d", p.BasePrice())
	}

	// Several marked default: the first marked wins.
	params = sampleParams()
	params.Variants[1].IsDefault = true
	p, err = NewProduct(params)
	if err != nil {
		t.Fatalf("NewProduct failed: %v", err)
	}
	defaults := 0
	for _, v := range p.Variants() {
		if v.IsDefault() {
			defaults++
		}
	}
	if defaults != 1 {
		t.Errorf("expected exactly one default variant, got %d", defaults)
	}
	if got := p.DefaultVariant().SKU(); got != "TR-42" {
		t.Errorf("expected first marked variant to win, got %s", got)
	}
}

func TestUpdateRecomputesBasePrice(t *testing.T) {
	p, err := NewProduct(sampleParams())
	if err != nil {
		t.Fatalf("NewProduct failed: %v", err)
	}
	err = p.Update(UpdateParams{
		Name:        p.Name(),
		Description: p.Description(),
		Brand:       p.Brand(),
		Variants: []VariantInput{
			{SKU: "TR-42", Name: "Size 42", Price: 9500, Stock: 10, IsDefault: true},
		},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if p.BasePrice() != 9500 {
		t.Errorf("expected base price 9500 after update, got %d", p.BasePrice())
	}
}

func TestDecrementStock(t *testing.T) {
	p, err := NewProduct(sampleParams())
	if err != nil {
		t.Fatalf("NewProduct failed: %v", err)
	}

	if err := p.DecrementStock("TR-42", 3); err != nil {
		t.Fatalf("DecrementStock failed: %v", err)
	}
	v, _ := p.VariantBySKU("TR-42")
	if v.Stock() != 7 {
		t.Errorf("expected stock 7, got %d", v.Stock())
	}

	err = p.DecrementStock("TR-43", 5)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}
	v, _ = p.VariantBySKU("TR-43")
	if v.Stock() != 4 {
		t.Errorf("stock must be untouched on rejection, got %d", v.Stock())
	}

	err = p.DecrementStock("TR-99", 1)
	if !errors.Is(err, ErrVariantNotFound) {
		t.Errorf("expected ErrVariantNotFound, got %v", err)
	}

	err = p.DecrementStock("TR-42", 0)
	if !errors.Is(err, ErrInvalidProduct) {
		t.Errorf("expected ErrInvalidProduct for zero quantity, got %v", err)
	}
}

func TestRestoreStock(t *testing.T) {
	p, err := NewProduct(sampleParams())
	if err != nil {
		t.Fatalf("NewProduct failed: %v", err)
	}
	if err := p.RestoreStock("TR-43", 2); err != nil {
		t.Fatalf("RestoreStock failed: %v", err)
	}
	v, _ := p.VariantBySKU("TR-43")
	if v.Stock() != 6 {
		t.Errorf("expected stock 6, got %d", v.Stock())
	}
	if err := p.RestoreStock("TR-99", 1); !errors.Is(err, ErrVariantNotFound) {
		t.Errorf("expected ErrVariantNotFound, got %v", err)
	}
}

func TestInStock(t *testing.T) {
	params := sampleParams()
	params.Variants = []VariantInput{
		{SKU: "TR-42", Name: "Size 42", Price: 8900, Stock: 0, IsDefault: true},
	}
	p, err := NewProduct(params)
	if err != nil {
		t.Fatalf("NewProduct failed: %v", err)
	}
	if p.InStock() {
		t.Error("expected product with zero stock to report out of stock")
	}
	if err := p.RestoreStock("TR-42", 1); err != nil {
		t.Fatalf("RestoreStock failed: %v", err)
	}
	if !p.InStock() {
		t.Error("expected product in stock after restore")
	}
}

func TestRebuildFromDTO(t *testing.T) {
	p := RebuildFromDTO(ReconstructionDTO{
		ID:        "prod-1",
		Slug:      "trail-runner",
		Name:      "Trail Runner",
		BasePrice: 1, // stale on purpose; rebuild must renormalize
		Variants: []Variant{
			RebuildVariant("TR-42", "Size 42", 8900, 10, nil, true),
		},
		Version: 3,
	})
	if p.IsNew() {
		t.Error("rebuilt product must not be new")
	}
	if p.Version() != 3 {
		t.Errorf("expected version 3, got %d", p.Version())
	}
	if p.BasePrice() != 8900 {
		t.Errorf("expected base price recomputed to 8900, got %d", p.BasePrice())
	}
}
