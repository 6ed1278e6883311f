package po

import (
	"storefront/domain/shipping"
)

// ShippingRegionPO maps the shipping_regions reference table. Names are
// stored canonical upper case; lookups are case-insensitive.
type ShippingRegionPO struct {
	Name      string `gorm:"primaryKey;size:128"`
	HomeFee   int64  `gorm:"not null"`
	PickupFee int64  `gorm:"not null"`
}

func (ShippingRegionPO) TableName() string {
	return "shipping_regions"
}

func FromRegionDomain(r shipping.Region) *ShippingRegionPO {
	return &ShippingRegionPO{
		Name:      r.Name(),
		HomeFee:   r.HomeFee(),
		PickupFee: r.PickupFee(),
	}
}

func (po *ShippingRegionPO) ToDomain() shipping.Region {
	return shipping.NewRegion(po.Name, po.HomeFee, po.PickupFee)
}
