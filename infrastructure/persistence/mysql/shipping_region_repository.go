package mysql

import (
	"context"
	"errors"

	"storefront/domain/shipping"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShippingRegionRepository backs the shipping_regions reference table.
type ShippingRegionRepository struct {
	db *gorm.DB
}

func NewShippingRegionRepository(db *gorm.DB) *ShippingRegionRepository {
	return &ShippingRegionRepository{db: db}
}

func (r *ShippingRegionRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Seed inserts missing shipping regions. Existing rows are left untouched
// so fee adjustments made in the database survive restarts.
func (r *ShippingRegionRepository) Seed(ctx context.Context, regions ...shipping.Region) error {
	for _, region := range regions {
		result := r.getDB(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(po.FromRegionDomain(region))
		if result.Error != nil {
			return result.Error
		}
	}
	return nil
}

func (r *ShippingRegionRepository) FindByName(ctx context.Context, name string) (shipping.Region, error) {
	if ctx.Err() != nil {
		return shipping.Region{}, ctx.Err()
	}

	var regionPO po.ShippingRegionPO
	result := r.getDB(ctx).First(&regionPO, "name = ?", shipping.CanonicalName(name))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return shipping.Region{}, shipping.NewUnknownRegionError(name)
		}
		return shipping.Region{}, result.Error
	}

	return regionPO.ToDomain(), nil
}

var _ shipping.Repository = (*ShippingRegionRepository)(nil)
