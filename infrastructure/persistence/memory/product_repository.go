// Package memory is the in-memory persistence used in development and
// tests. The repositories keep the same optimistic-locking contract as the
// MySQL implementations so the application layer behaves identically in
// both modes.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"storefront/domain/catalog"
)

type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]catalog.ReconstructionDTO
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[string]catalog.ReconstructionDTO),
	}
}

func snapshotProduct(p *catalog.Product) catalog.ReconstructionDTO {
	return catalog.ReconstructionDTO{
		ID:          p.ID(),
		Slug:        p.Slug(),
		Name:        p.Name(),
		Description: p.Description(),
		Brand:       p.Brand(),
		Tags:        p.Tags(),
		Images:      p.Images(),
		IsFeatured:  p.IsFeatured(),
		BasePrice:   p.BasePrice(),
		Variants:    p.Variants(),
		Version:     p.Version(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func (r *ProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.IsNew() {
		for _, existing := range r.products {
			if existing.Slug == product.Slug() {
				return catalog.NewDuplicateNameError(product.Name())
			}
		}
	} else {
		stored, exists := r.products[product.ID()]
		if !exists {
			return catalog.NewProductNotFoundError(product.ID())
		}
		if stored.Version != product.Version() {
			return catalog.NewConcurrentModificationError(product.ID())
		}
		product.IncrementVersionForSave()
	}

	r.products[product.ID()] = snapshotProduct(product)
	product.ClearNewFlag()
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, exists := r.products[id]
	if !exists {
		return nil, catalog.NewProductNotFoundError(id)
	}
	return catalog.RebuildFromDTO(dto), nil
}

func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, dto := range r.products {
		if dto.Slug == slug {
			return catalog.RebuildFromDTO(dto), nil
		}
	}
	return nil, catalog.NewProductNotFoundError(slug)
}

func (r *ProductRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, dto := range r.products {
		if dto.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *ProductRepository) NameExists(ctx context.Context, name string, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, dto := range r.products {
		if id != excludeID && strings.EqualFold(dto.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *ProductRepository) List(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Product, int64, error) {
	if ctx.Err() != nil {
		return nil, 0, ctx.Err()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []catalog.ReconstructionDTO
	for _, dto := range r.products {
		if matchesFilter(dto, filter) {
			matched = append(matched, dto)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 12
	}

	start := (page - 1) * pageSize
	if start >= len(matched) {
		return []*catalog.Product{}, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}

	products := make([]*catalog.Product, 0, end-start)
	for _, dto := range matched[start:end] {
		products = append(products, catalog.RebuildFromDTO(dto))
	}
	return products, total, nil
}

func matchesFilter(dto catalog.ReconstructionDTO, filter catalog.ListFilter) bool {
	if filter.Brand != "" && !strings.EqualFold(dto.Brand, filter.Brand) {
		return false
	}
	if filter.MinPrice != nil && dto.BasePrice < *filter.MinPrice {
		return false
	}
	if filter.MaxPrice != nil && dto.BasePrice > *filter.MaxPrice {
		return false
	}
	if filter.IsFeatured != nil && dto.IsFeatured != *filter.IsFeatured {
		return false
	}
	if filter.InStock != nil {
		inStock := false
		for _, v := range dto.Variants {
			if v.Stock() > 0 {
				inStock = true
				break
			}
		}
		if inStock != *filter.InStock {
			return false
		}
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(dto.Name), needle) &&
			!strings.Contains(strings.ToLower(dto.Slug), needle) {
			return false
		}
	}
	return true
}

func (r *ProductRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[id]; !exists {
		return catalog.NewProductNotFoundError(id)
	}
	delete(r.products, id)
	return nil
}

var _ catalog.Repository = (*ProductRepository)(nil)
