// Package po holds the persistence objects for the MySQL schema. POs are
// pure database mappings: no business logic and no GORM associations,
// aggregates are reassembled explicitly in the repositories.
package po

import (
	"encoding/json"
	"time"

	"storefront/domain/catalog"
)

// ProductPO maps the products table.
type ProductPO struct {
	ID          string    `gorm:"primaryKey;size:64"`
	Slug        string    `gorm:"size:255;uniqueIndex;not null"`
	Name        string    `gorm:"size:255;not null"`
	Description string    `gorm:"type:text;not null"`
	Brand       string    `gorm:"size:128;index"`
	Tags        string    `gorm:"type:json"` // JSON array of strings
	Images      string    `gorm:"type:json"` // JSON array of URLs
	IsFeatured  bool      `gorm:"default:false;index"`
	BasePrice   int64     `gorm:"not null;index"`
	Version     int       `gorm:"default:0"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (ProductPO) TableName() string {
	return "products"
}

// ProductVariantPO maps the product_variants table. Variants belong to
// exactly one product; the composite key is (product_id, sku).
type ProductVariantPO struct {
	ProductID string `gorm:"primaryKey;size:64"`
	SKU       string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"size:255;not null"`
	Price     int64  `gorm:"not null"`
	Stock     int    `gorm:"not null"`
	Images    string `gorm:"type:json"`
	IsDefault bool   `gorm:"default:false;not null"`
	Position  int    `gorm:"not null"` // preserves variant order
}

func (ProductVariantPO) TableName() string {
	return "product_variants"
}

// FromProductDomain converts the aggregate into its persistence rows.
func FromProductDomain(p *catalog.Product) (*ProductPO, []ProductVariantPO, error) {
	tags, err := marshalStrings(p.Tags())
	if err != nil {
		return nil, nil, err
	}
	images, err := marshalStrings(p.Images())
	if err != nil {
		return nil, nil, err
	}

	productPO := &ProductPO{
		ID:          p.ID(),
		Slug:        p.Slug(),
		Name:        p.Name(),
		Description: p.Description(),
		Brand:       p.Brand(),
		Tags:        tags,
		Images:      images,
		IsFeatured:  p.IsFeatured(),
		BasePrice:   p.BasePrice(),
		Version:     p.Version(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}

	variants := p.Variants()
	variantPOs := make([]ProductVariantPO, len(variants))
	for i, v := range variants {
		variantImages, err := marshalStrings(v.Images())
		if err != nil {
			return nil, nil, err
		}
		variantPOs[i] = ProductVariantPO{
			ProductID: p.ID(),
			SKU:       v.SKU(),
			Name:      v.Name(),
			Price:     v.Price(),
			Stock:     v.Stock(),
			Images:    variantImages,
			IsDefault: v.IsDefault(),
			Position:  i,
		}
	}

	return productPO, variantPOs, nil
}

// ToDomain reassembles the aggregate. variantPOs must be ordered by
// position.
func (po *ProductPO) ToDomain(variantPOs []ProductVariantPO) *catalog.Product {
	variants := make([]catalog.Variant, len(variantPOs))
	for i, vp := range variantPOs {
		variants[i] = catalog.RebuildVariant(vp.SKU, vp.Name, vp.Price, vp.Stock, unmarshalStrings(vp.Images), vp.IsDefault)
	}

	return catalog.RebuildFromDTO(catalog.ReconstructionDTO{
		ID:          po.ID,
		Slug:        po.Slug,
		Name:        po.Name,
		Description: po.Description,
		Brand:       po.Brand,
		Tags:        unmarshalStrings(po.Tags),
		Images:      unmarshalStrings(po.Images),
		IsFeatured:  po.IsFeatured,
		BasePrice:   po.BasePrice,
		Variants:    variants,
		Version:     po.Version,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	})
}

func marshalStrings(values []string) (string, error) {
	if len(values) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalStrings(raw string) []string {
	if raw == "" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	return values
}
