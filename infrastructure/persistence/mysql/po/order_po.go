package po

import (
	"time"

	"storefront/domain/order"
	"storefront/domain/shipping"
)

// OrderPO maps the orders table. The product is referenced by ID and SKU
// only; prices are placement-time snapshots and never recomputed.
type OrderPO struct {
	ID             string    `gorm:"primaryKey;size:64"`
	ProductID      string    `gorm:"size:64;index;not null"`
	VariantSku     string    `gorm:"size:64;not null"`
	Quantity       int       `gorm:"not null"`
	UnitPrice      int64     `gorm:"not null"`
	ShippingFee    int64     `gorm:"not null"`
	TotalPrice     int64     `gorm:"not null"`
	CustomerName   string    `gorm:"size:255;not null;index"`
	CustomerPhone  string    `gorm:"size:32;not null;index"`
	CustomerEmail  string    `gorm:"size:255;index"`
	Region         string    `gorm:"size:128;not null"`
	DeliveryMethod string    `gorm:"size:32;not null"`
	Address        string    `gorm:"size:512;not null"`
	Note           string    `gorm:"type:text"`
	Status         string    `gorm:"size:20;not null;index"`
	Version        int       `gorm:"default:0"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (OrderPO) TableName() string {
	return "orders"
}

// FromOrderDomain converts the aggregate into its persistence row.
func FromOrderDomain(o *order.Order) *OrderPO {
	return &OrderPO{
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
		DeliveryMethod: string(o.DeliveryMethod()),
		Address:        o.Address(),
		Note:           o.Note(),
		Status:         string(o.Status()),
		Version:        o.Version(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
	}
}

// ToDomain reassembles the aggregate.
func (po *OrderPO) ToDomain() *order.Order {
	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:             po.ID,
		ProductID:      po.ProductID,
		VariantSku:     po.VariantSku,
		Quantity:       po.Quantity,
		UnitPrice:      po.UnitPrice,
		ShippingFee:    po.ShippingFee,
		TotalPrice:     po.TotalPrice,
		CustomerName:   po.CustomerName,
		CustomerPhone:  po.CustomerPhone,
		CustomerEmail:  po.CustomerEmail,
		Region:         po.Region,
		DeliveryMethod: shipping.DeliveryMethod(po.DeliveryMethod),
		Address:        po.Address,
		Note:           po.Note,
		Status:         order.Status(po.Status),
		Version:        po.Version,
		CreatedAt:      po.CreatedAt,
		UpdatedAt:      po.UpdatedAt,
	})
}
