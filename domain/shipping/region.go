// Package shipping holds the delivery reference data: destination regions
// with their per-method fees. Regions are managed outside this service and
// are read-only here.
package shipping

import (
	"context"
	"strings"
)

// DeliveryMethod is how an order reaches the customer.
type DeliveryMethod string

const (
	DeliveryHome   DeliveryMethod = "home"
	DeliveryPickup DeliveryMethod = "pickup-point"
)

// ParseDeliveryMethod validates a raw delivery method string.
func ParseDeliveryMethod(raw string) (DeliveryMethod, error) {
	switch DeliveryMethod(raw) {
	case DeliveryHome, DeliveryPickup:
		return DeliveryMethod(raw), nil
	default:
		return "", NewInvalidDeliveryMethodError(raw)
	}
}

// Region maps a destination region to its delivery fees. Value object:
// identified by its canonical (upper case) name.
type Region struct {
	name      string
	homeFee   int64
	pickupFee int64
}

// NewRegion canonicalizes the name to upper case, mirroring how the
// reference data is stored.
func NewRegion(name string, homeFee, pickupFee int64) Region {
	return Region{
		name:      CanonicalName(name),
		homeFee:   homeFee,
		pickupFee: pickupFee,
	}
}

func (r Region) Name() string     { return r.name }
func (r Region) HomeFee() int64   { return r.homeFee }
func (r Region) PickupFee() int64 { return r.pickupFee }

// FeeFor returns the configured fee for the delivery method.
func (r Region) FeeFor(method DeliveryMethod) int64 {
	if method == DeliveryPickup {
		return r.pickupFee
	}
	return r.homeFee
}

// CanonicalName normalizes a region name for matching: trimmed, upper case.
func CanonicalName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Repository reads shipping reference data. Lookups are case-insensitive
// against the canonical region names.
type Repository interface {
	FindByName(ctx context.Context, name string) (Region, error)
}
