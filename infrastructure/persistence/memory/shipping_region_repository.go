package memory

import (
	"context"
	"sync"

	"storefront/domain/shipping"
)

type ShippingRegionRepository struct {
	mu      sync.RWMutex
	regions map[string]shipping.Region
}

func NewShippingRegionRepository() *ShippingRegionRepository {
	return &ShippingRegionRepository{
		regions: make(map[string]shipping.Region),
	}
}

// Seed registers regions, keyed by canonical name.
func (r *ShippingRegionRepository) Seed(regions ...shipping.Region) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, region := range regions {
		r.regions[region.Name()] = region
	}
}

func (r *ShippingRegionRepository) FindByName(ctx context.Context, name string) (shipping.Region, error) {
	if ctx.Err() != nil {
		return shipping.Region{}, ctx.Err()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	region, exists := r.regions[shipping.CanonicalName(name)]
	if !exists {
		return shipping.Region{}, shipping.NewUnknownRegionError(name)
	}
	return region, nil
}

var _ shipping.Repository = (*ShippingRegionRepository)(nil)
