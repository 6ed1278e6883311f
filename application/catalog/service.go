// Package catalog orchestrates product management for the admin API:
// creation and updates with slug handling, deletion, and the storefront
// listing with its filters.
package catalog

import (
	"context"
	"fmt"
	"time"

	"storefront/domain/catalog"
	"storefront/domain/shared"

	"github.com/gosimple/slug"
)

type ApplicationService struct {
	productRepo catalog.Repository
	uowFactory  shared.UnitOfWorkFactory
}

func NewApplicationService(productRepo catalog.Repository, uowFactory shared.UnitOfWorkFactory) *ApplicationService {
	return &ApplicationService{
		productRepo: productRepo,
		uowFactory:  uowFactory,
	}
}

// VariantRequest is one variant in a create or update payload.
type VariantRequest struct {
	SKU       string   `json:"sku"`
	Name      string   `json:"name"`
	Price     int64    `json:"price"`
	Stock     int      `json:"stock"`
	Images    []string `json:"images"`
	IsDefault bool     `json:"is_default"`
}

// CreateProductRequest is the admin creation payload.
type CreateProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Brand       string           `json:"brand"`
	Tags        []string         `json:"tags"`
	Images      []string         `json:"images"`
	IsFeatured  bool             `json:"is_featured"`
	Variants    []VariantRequest `json:"variants"`
}

// UpdateProductRequest is the admin full-update payload.
type UpdateProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Brand       string           `json:"brand"`
	Tags        []string         `json:"tags"`
	Images      []string         `json:"images"`
	IsFeatured  bool             `json:"is_featured"`
	Variants    []VariantRequest `json:"variants"`
}

// VariantResponse is the variant DTO.
type VariantResponse struct {
	SKU       string   `json:"sku"`
	Name      string   `json:"name"`
	Price     int64    `json:"price"`
	Stock     int      `json:"stock"`
	Images    []string `json:"images,omitempty"`
	IsDefault bool     `json:"is_default"`
}

// ProductResponse is the product DTO.
type ProductResponse struct {
	ID          string            `json:"id"`
	Slug        string            `json:"slug"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Brand       string            `json:"brand,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Images      []string          `json:"images,omitempty"`
	IsFeatured  bool              `json:"is_featured"`
	BasePrice   int64             `json:"base_price"`
	InStock     bool              `json:"in_stock"`
	Variants    []VariantResponse `json:"variants"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ListProductsRequest filters the storefront listing.
type ListProductsRequest struct {
	Brand      string `form:"brand"`
	MinPrice   *int64 `form:"min_price"`
	MaxPrice   *int64 `form:"max_price"`
	InStock    *bool  `form:"in_stock"`
	IsFeatured *bool  `form:"is_featured"`
	Search     string `form:"search"`
	Page       int    `form:"page"`
	PageSize   int    `form:"limit"`
}

// ListProductsResponse is one page of products.
type ListProductsResponse struct {
	Products []*ProductResponse `json:"products"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// generateSlug derives a unique slug from the product name, appending -2,
// -3, ... until it is free.
func (s *ApplicationService) generateSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	candidate := base
	for i := 2; ; i++ {
		exists, err := s.productRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func toVariantInputs(requests []VariantRequest) []catalog.VariantInput {
	inputs := make([]catalog.VariantInput, len(requests))
	for i, r := range requests {
		inputs[i] = catalog.VariantInput{
			SKU:       r.SKU,
			Name:      r.Name,
			Price:     r.Price,
			Stock:     r.Stock,
			Images:    r.Images,
			IsDefault: r.IsDefault,
		}
	}
	return inputs
}

// CreateProduct creates a product. Names are unique case-insensitively;
// the slug is generated from the name.
func (s *ApplicationService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	var product *catalog.Product

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		taken, err := s.productRepo.NameExists(ctx, req.Name, "")
		if err != nil {
			return err
		}
		if taken {
			return catalog.NewDuplicateNameError(req.Name)
		}

		productSlug, err := s.generateSlug(ctx, req.Name)
		if err != nil {
			return err
		}

		product, err = catalog.NewProduct(catalog.NewProductParams{
			Slug:        productSlug,
			Name:        req.Name,
			Description: req.Description,
			Brand:       req.Brand,
			Tags:        req.Tags,
			Images:      req.Images,
			IsFeatured:  req.IsFeatured,
			Variants:    toVariantInputs(req.Variants),
		})
		if err != nil {
			return err
		}

		if err := s.productRepo.Save(ctx, product); err != nil {
			return err
		}
		uow.RegisterNew(product)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return convertProduct(product), nil
}

// UpdateProduct replaces the product's content. The slug is regenerated
// only when the name changed.
func (s *ApplicationService) UpdateProduct(ctx context.Context, productID string, req UpdateProductRequest) (*ProductResponse, error) {
	var product *catalog.Product

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		product, err = s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return err
		}

		newSlug := product.Slug()
		if req.Name != product.Name() {
			taken, err := s.productRepo.NameExists(ctx, req.Name, productID)
			if err != nil {
				return err
			}
			if taken {
				return catalog.NewDuplicateNameError(req.Name)
			}
			newSlug, err = s.generateSlug(ctx, req.Name)
			if err != nil {
				return err
			}
		}

		if err := product.Update(catalog.UpdateParams{
			Slug:        newSlug,
			Name:        req.Name,
			Description: req.Description,
			Brand:       req.Brand,
			Tags:        req.Tags,
			Images:      req.Images,
			IsFeatured:  req.IsFeatured,
			Variants:    toVariantInputs(req.Variants),
		}); err != nil {
			return err
		}

		if err := s.productRepo.Save(ctx, product); err != nil {
			return err
		}
		uow.RegisterDirty(product)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return convertProduct(product), nil
}

// DeleteProduct removes the product physically. Existing orders keep
// their snapshots and are unaffected.
func (s *ApplicationService) DeleteProduct(ctx context.Context, productID string) error {
	return s.productRepo.Remove(ctx, productID)
}

// GetProduct returns one product by ID.
func (s *ApplicationService) GetProduct(ctx context.Context, productID string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return convertProduct(product), nil
}

// GetProductBySlug returns one product by its storefront slug.
func (s *ApplicationService) GetProductBySlug(ctx context.Context, productSlug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, productSlug)
	if err != nil {
		return nil, err
	}
	return convertProduct(product), nil
}

// ListProducts returns a filtered page of the catalog, newest first.
func (s *ApplicationService) ListProducts(ctx context.Context, req ListProductsRequest) (*ListProductsResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 12
	}

	products, total, err := s.productRepo.List(ctx, catalog.ListFilter{
		Brand:      req.Brand,
		MinPrice:   req.MinPrice,
		MaxPrice:   req.MaxPrice,
		InStock:    req.InStock,
		IsFeatured: req.IsFeatured,
		Search:     req.Search,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = convertProduct(p)
	}
	return &ListProductsResponse{
		Products: responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func convertProduct(p *catalog.Product) *ProductResponse {
	variants := p.Variants()
	variantResponses := make([]VariantResponse, len(variants))
	for i, v := range variants {
		variantResponses[i] = VariantResponse{
			SKU:       v.SKU(),
			Name:      v.Name(),
			Price:     v.Price(),
			Stock:     v.Stock(),
			Images:    v.Images(),
			IsDefault: v.IsDefault(),
		}
	}

	return &ProductResponse{
		ID:          p.ID(),
		Slug:        p.Slug(),
		Name:        p.Name(),
		Description: p.Description(),
		Brand:       p.Brand(),
		Tags:        p.Tags(),
		Images:      p.Images(),
		IsFeatured:  p.IsFeatured(),
		BasePrice:   p.BasePrice(),
		InStock:     p.InStock(),
		Variants:    variantResponses,
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}
