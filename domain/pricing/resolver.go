// Package pricing computes the price and shipping snapshot an order is
// placed with. It is a domain service over the catalog and shipping
// repositories; it never mutates anything.
package pricing

import (
	"context"

	"storefront/domain/catalog"
	"storefront/domain/shipping"
)

// FreeShippingThreshold is the subtotal at which shipping becomes free.
const FreeShippingThreshold int64 = 20000

// Quote is the immutable price snapshot for one prospective order line.
type Quote struct {
	ProductName string
	VariantName string
	UnitPrice   int64
	Subtotal    int64
	ShippingFee int64
	TotalPrice  int64
}

// Resolver resolves quotes against the current catalog and region table.
type Resolver struct {
	products catalog.Repository
	regions  shipping.Repository
}

func NewResolver(products catalog.Repository, regions shipping.Repository) *Resolver {
	return &Resolver{products: products, regions: regions}
}

// Resolve prices qty units of the given variant shipped to region by
// method. The unit price is read once here and snapshotted into the quote;
// later catalog changes do not affect orders placed from it.
func (r *Resolver) Resolve(ctx context.Context, productID, sku string, qty int, region string, method shipping.DeliveryMethod) (Quote, error) {
	if qty < 1 {
		return Quote{}, catalog.NewInvalidProductError("quantity", "quantity must be at least 1")
	}

	product, err := r.products.FindByID(ctx, productID)
	if err != nil {
		return Quote{}, err
	}
	variant, ok := product.VariantBySKU(sku)
	if !ok {
		return Quote{}, catalog.NewVariantNotFoundError(productID, sku)
	}

	reg, err := r.regions.FindByName(ctx, region)
	if err != nil {
		return Quote{}, err
	}

	subtotal := variant.Price() * int64(qty)
	fee := reg.FeeFor(method)
	if subtotal >= FreeShippingThreshold {
		fee = 0
	}

	return Quote{
		ProductName: product.Name(),
		VariantName: variant.Name(),
		UnitPrice:   variant.Price(),
		Subtotal:    subtotal,
		ShippingFee: fee,
		TotalPrice:  subtotal + fee,
	}, nil
}
