package mysql

import (
	"storefront/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every persistence object.
// Shipping regions are reference data seeded outside the application.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&po.ProductPO{},
		&po.ProductVariantPO{},
		&po.OrderPO{},
		&po.ShippingRegionPO{},
		&po.OutboxEventPO{},
	)
}
