/*
Package catalog is the product subdomain.

Product is the aggregate root. It exclusively owns its list of Variants:
variants have no identity of their own and are only reachable through the
product. Two invariants are maintained on every write:

 1. Exactly one variant carries isDefault = true. If none is marked, the
    first variant is promoted; if several are marked, the first marked one
    wins and the rest are cleared.
 2. basePrice always equals the default variant's price.
*/
package catalog

import (
	"fmt"
	"strings"
	"time"

	"storefront/domain/shared"

	"github.com/google/uuid"
)

// Variant is a purchasable configuration of a product. Value object within
// the aggregate: addressed by SKU, unique within the owning product only.
type Variant struct {
	sku       string
	name      string
	price     int64
	stock     int
	images    []string
	isDefault bool
}

func (v Variant) SKU() string      { return v.sku }
func (v Variant) Name() string     { return v.name }
func (v Variant) Price() int64     { return v.price }
func (v Variant) Stock() int       { return v.stock }
func (v Variant) IsDefault() bool  { return v.isDefault }
func (v Variant) Images() []string {
	images := make([]string, len(v.images))
	copy(images, v.images)
	return images
}

// Product aggregate root.
type Product struct {
	id          string
	slug        string
	name        string
	description string
	brand       string
	tags        []string
	images      []string
	isFeatured  bool
	basePrice   int64
	variants    []Variant
	version     int
	createdAt   time.Time
	updatedAt   time.Time

	events []shared.DomainEvent
	isNew  bool
}

// VariantInput describes one variant in a create or update request.
type VariantInput struct {
	SKU       string
	Name      string
	Price     int64
	Stock     int
	Images    []string
	IsDefault bool
}

// NewProductParams carries everything needed to create a product. The slug
// is resolved by the application layer, which owns uniqueness against the
// store.
type NewProductParams struct {
	Slug        string
	Name        string
	Description string
	Brand       string
	Tags        []string
	Images      []string
	IsFeatured  bool
	Variants    []VariantInput
}

// NewProduct is the only way to create a Product. The aggregate is valid on
// return: variants are checked and the default/basePrice invariant holds.
func NewProduct(params NewProductParams) (*Product, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, NewInvalidProductError("name", "product name is required")
	}
	if strings.TrimSpace(params.Description) == "" {
		return nil, NewInvalidProductError("description", "product description is required")
	}
	if strings.TrimSpace(params.Slug) == "" {
		return nil, NewInvalidProductError("slug", "product slug is required")
	}

	variants, err := buildVariants(params.Variants)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate product ID: %w", err)
	}

	now := time.Now()
	p := &Product{
		id:          "prod-" + id.String(),
		slug:        params.Slug,
		name:        strings.TrimSpace(params.Name),
		description: params.Description,
		brand:       params.Brand,
		tags:        append([]string(nil), params.Tags...),
		images:      append([]string(nil), params.Images...),
		isFeatured:  params.IsFeatured,
		variants:    variants,
		version:     0,
		createdAt:   now,
		updatedAt:   now,
		isNew:       true,
	}
	p.normalize()

	return p, nil
}

func buildVariants(inputs []VariantInput) ([]Variant, error) {
	if len(inputs) == 0 {
		return nil, ErrNoVariants
	}

	seen := make(map[string]struct{}, len(inputs))
	variants := make([]Variant, len(inputs))
	for i, in := range inputs {
		sku := strings.TrimSpace(in.SKU)
		if sku == "" {
			return nil, NewInvalidProductError("variants", "variant SKU is required")
		}
		if _, dup := seen[sku]; dup {
			return nil, NewInvalidProductError("variants", "duplicate variant SKU: "+sku)
		}
		seen[sku] = struct{}{}
		if in.Price < 0 {
			return nil, NewInvalidProductError("variants", "variant price must not be negative: "+sku)
		}
		if in.Stock < 0 {
			return nil, NewInvalidProductError("variants", "variant stock must not be negative: "+sku)
		}
		variants[i] = Variant{
			sku:       sku,
			name:      strings.TrimSpace(in.Name),
			price:     in.Price,
			stock:     in.Stock,
			images:    append([]string(nil), in.Images...),
			isDefault: in.IsDefault,
		}
	}
	return variants, nil
}

// normalize re-establishes the default-variant and basePrice invariants.
// Called after every mutation; repositories rely on the aggregate always
// being normalized before save.
func (p *Product) normalize() {
	defaultIdx := -1
	for i := range p.variants {
		if p.variants[i].isDefault {
			if defaultIdx == -1 {
				defaultIdx = i
			} else {
				p.variants[i].isDefault = false
			}
		}
	}
	if defaultIdx == -1 && len(p.variants) > 0 {
		p.variants[0].isDefault = true
		defaultIdx = 0
	}
	if defaultIdx >= 0 {
		p.basePrice = p.variants[defaultIdx].price
	}
}

// UpdateParams carries a full product update. Variants are replaced
// wholesale; there is no partial variant edit.
type UpdateParams struct {
	Slug        string // new slug when the name changed, otherwise the current one
	Name        string
	Description string
	Brand       string
	Tags        []string
	Images      []string
	IsFeatured  bool
	Variants    []VariantInput
}

// Update applies a full update to the product.
func (p *Product) Update(params UpdateParams) error {
	if strings.TrimSpace(params.Name) == "" {
		return NewInvalidProductError("name", "product name is required")
	}
	if strings.TrimSpace(params.Description) == "" {
		return NewInvalidProductError("description", "product description is required")
	}
	variants, err := buildVariants(params.Variants)
	if err != nil {
		return err
	}

	p.name = strings.TrimSpace(params.Name)
	if params.Slug != "" {
		p.slug = params.Slug
	}
	p.description = params.Description
	p.brand = params.Brand
	p.tags = append([]string(nil), params.Tags...)
	p.images = append([]string(nil), params.Images...)
	p.isFeatured = params.IsFeatured
	p.variants = variants
	p.updatedAt = time.Now()
	p.normalize()

	return nil
}

// DecrementStock removes qty units from the variant's stock. It is the
// check half of check-and-decrement: the repository's version-guarded save
// makes the pair atomic against concurrent writers.
func (p *Product) DecrementStock(sku string, qty int) error {
	if qty <= 0 {
		return NewInvalidProductError("quantity", "quantity must be positive")
	}
	idx := p.variantIndex(sku)
	if idx == -1 {
		return NewVariantNotFoundError(p.id, sku)
	}
	if p.variants[idx].stock < qty {
		return NewInsufficientStockError(p.name, p.variants[idx].name, p.variants[idx].stock, qty)
	}
	p.variants[idx].stock -= qty
	p.updatedAt = time.Now()
	p.normalize()
	return nil
}

// RestoreStock returns qty units to the variant's stock. Unconditional:
// there is no upper bound to restore against (see the cancellation notes in
// the order subdomain).
func (p *Product) RestoreStock(sku string, qty int) error {
	if qty <= 0 {
		return NewInvalidProductError("quantity", "quantity must be positive")
	}
	idx := p.variantIndex(sku)
	if idx == -1 {
		return NewVariantNotFoundError(p.id, sku)
	}
	p.variants[idx].stock += qty
	p.updatedAt = time.Now()
	p.normalize()
	return nil
}

func (p *Product) variantIndex(sku string) int {
	for i := range p.variants {
		if p.variants[i].sku == sku {
			return i
		}
	}
	return -1
}

// VariantBySKU resolves a variant by SKU within this product.
func (p *Product) VariantBySKU(sku string) (Variant, bool) {
	idx := p.variantIndex(sku)
	if idx == -1 {
		return Variant{}, false
	}
	return p.variants[idx], true
}

// DefaultVariant returns the variant marked default. The invariant
// guarantees there is exactly one for any product with variants.
func (p *Product) DefaultVariant() Variant {
	for _, v := range p.variants {
		if v.isDefault {
			return v
		}
	}
	return Variant{}
}

// InStock reports whether any variant has stock available.
func (p *Product) InStock() bool {
	for _, v := range p.variants {
		if v.stock > 0 {
			return true
		}
	}
	return false
}

func (p *Product) ID() string          { return p.id }
func (p *Product) Slug() string        { return p.slug }
func (p *Product) Name() string        { return p.name }
func (p *Product) Description() string { return p.description }
func (p *Product) Brand() string       { return p.brand }
func (p *Product) IsFeatured() bool    { return p.isFeatured }
func (p *Product) BasePrice() int64    { return p.basePrice }
func (p *Product) Version() int        { return p.version }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }

func (p *Product) Tags() []string {
	tags := make([]string, len(p.tags))
	copy(tags, p.tags)
	return tags
}

func (p *Product) Images() []string {
	images := make([]string, len(p.images))
	copy(images, p.images)
	return images
}

// Variants returns a copy of the variant list, keeping the aggregate
// boundary: callers cannot mutate stock or prices directly.
func (p *Product) Variants() []Variant {
	variants := make([]Variant, len(p.variants))
	copy(variants, p.variants)
	return variants
}

// IsNew reports whether the aggregate was created in this session rather
// than loaded. The repository uses it to choose INSERT over the
// version-guarded UPDATE.
func (p *Product) IsNew() bool { return p.isNew }

// IncrementVersionForSave is called by the repository after a successful
// version-guarded update.
func (p *Product) IncrementVersionForSave() {
	p.version++
}

// ClearNewFlag is called by the repository after the first successful save.
func (p *Product) ClearNewFlag() { p.isNew = false }

// PullEvents returns and clears recorded domain events.
func (p *Product) PullEvents() []shared.DomainEvent {
	events := p.events
	p.events = nil
	return events
}

// ReconstructionDTO rebuilds a Product from storage. Repository use only:
// it bypasses creation validation because the stored state was validated
// when written.
type ReconstructionDTO struct {
	ID          string
	Slug        string
	Name        string
	Description string
	Brand       string
	Tags        []string
	Images      []string
	IsFeatured  bool
	BasePrice   int64
	Variants    []Variant
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RebuildFromDTO reconstructs the aggregate from persisted state.
func RebuildFromDTO(dto ReconstructionDTO) *Product {
	p := &Product{
		id:          dto.ID,
		slug:        dto.Slug,
		name:        dto.Name,
		description: dto.Description,
		brand:       dto.Brand,
		tags:        dto.Tags,
		images:      dto.Images,
		isFeatured:  dto.IsFeatured,
		basePrice:   dto.BasePrice,
		variants:    dto.Variants,
		version:     dto.Version,
		createdAt:   dto.CreatedAt,
		updatedAt:   dto.UpdatedAt,
		isNew:       false,
	}
	p.normalize()
	return p
}

// RebuildVariant reconstructs a Variant from persisted state.
func RebuildVariant(sku, name string, price int64, stock int, images []string, isDefault bool) Variant {
	return Variant{
		sku:       sku,
		name:      name,
		price:     price,
		stock:     stock,
		images:    images,
		isDefault: isDefault,
	}
}

var _ shared.AggregateRoot = (*Product)(nil)
