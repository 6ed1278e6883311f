package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"storefront/domain/order"
	"storefront/domain/shipping"
)

type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]order.ReconstructionDTO
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]order.ReconstructionDTO),
	}
}

func snapshotOrder(o *order.Order) order.ReconstructionDTO {
	return order.ReconstructionDTO{
		ID:             o.ID(),
		ProductID:      o.ProductID(),
		VariantSku:     o.VariantSku(),
		Quantity:       o.Quantity(),
		UnitPrice:      o.UnitPrice(),
		ShippingFee:    o.ShippingFee(),
		TotalPrice:     o.TotalPrice(),
		CustomerName:   o.CustomerName(),
		CustomerPhone:  o.CustomerPhone(),
		CustomerEmail:  o.CustomerEmail(),
		Region:         o.Region(),
		DeliveryMethod: shipping.DeliveryMethod(o.DeliveryMethod()),
		Address:        o.Address(),
		Note:           o.Note(),
		Status:         o.Status(),
		Version:        o.Version(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
	}
}

func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if !o.IsNew() {
		stored, exists := r.orders[o.ID()]
		if !exists {
			return order.NewOrderNotFoundError(o.ID())
		}
		if stored.Version != o.Version() {
			return order.NewConcurrentModificationError(o.ID())
		}
		o.IncrementVersionForSave()
	}

	r.orders[o.ID()] = snapshotOrder(o)
	o.ClearNewFlag()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, exists := r.orders[id]
	if !exists {
		return nil, order.NewOrderNotFoundError(id)
	}
	return order.RebuildFromDTO(dto), nil
}

func (r *OrderRepository) List(ctx context.Context, filter order.ListFilter) ([]*order.Order, int64, error) {
	if ctx.Err() != nil {
		return nil, 0, ctx.Err()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []order.ReconstructionDTO
	for _, dto := range r.orders {
		if filter.Status != "" && filter.Status != "all" && string(dto.Status) != filter.Status {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(dto.CustomerName), needle) &&
				!strings.Contains(strings.ToLower(dto.CustomerPhone), needle) &&
				!strings.Contains(strings.ToLower(dto.CustomerEmail), needle) {
				continue
			}
		}
		matched = append(matched, dto)
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
		pageSize = 10
	}

	start := (page - 1) * pageSize
	if start >= len(matched) {
		return []*order.Order{}, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}

	orders := make([]*order.Order, 0, end-start)
	for _, dto := range matched[start:end] {
		orders = append(orders, order.RebuildFromDTO(dto))
	}
	return orders, total, nil
}

var _ order.Repository = (*OrderRepository)(nil)
