// Package order is the order subdomain: the Order aggregate, the status
// lifecycle, and the rules coupling transitions to variant stock.
//
// An order references its product by ID and variant SKU only. Prices are
// snapshots taken at placement; later catalog edits never change what an
// existing order charges.
package order

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"storefront/domain/shared"
	"storefront/domain/shipping"

	"github.com/google/uuid"
)

// phonePattern accepts national mobile numbers (05/06/07 + 8 digits) and
// the same in international +213 form. Spaces and hyphens are stripped
// before matching.
var phonePattern = regexp.MustCompile(`^(0[5-7]\d{8}|\+213[5-7]\d{8})$`)

// ValidatePhone normalizes and checks a customer phone number.
func ValidatePhone(raw string) (string, error) {
	normalized := strings.NewReplacer(" ", "", "-", "").Replace(raw)
	if !phonePattern.MatchString(normalized) {
		return "", NewInvalidPhoneError(raw)
	}
	return normalized, nil
}

// Order aggregate root.
type Order struct {
	id             string
	productID      string
	variantSku     string
	quantity       int
	unitPrice      int64
	shippingFee    int64
	totalPrice     int64
	customerName   string
	customerPhone  string
	customerEmail  string
	region         string
	deliveryMethod shipping.DeliveryMethod
	address        string
	note           string
	status         Status
	version        int
	createdAt      time.Time
	updatedAt      time.Time

	events []shared.DomainEvent
	isNew  bool
}

// NewOrderParams carries everything needed to place an order. Prices are
// the already-resolved snapshot; the aggregate does not recompute them.
type NewOrderParams struct {
	ProductID      string
	ProductName    string
	VariantSku     string
	Quantity       int
	UnitPrice      int64
	ShippingFee    int64
	TotalPrice     int64
	CustomerName   string
	CustomerPhone  string // already normalized via ValidatePhone
	CustomerEmail  string
	Region         string
	DeliveryMethod shipping.DeliveryMethod
	Address        string
	Note           string
}

// NewOrder places a new order in status pending and records an
// OrderPlacedEvent.
func NewOrder(params NewOrderParams) (*Order, error) {
	if params.Quantity < 1 {
		return nil, NewInvalidOrderError("quantity", "quantity must be at least 1")
	}
	if strings.TrimSpace(params.CustomerName) == "" {
		return nil, NewInvalidOrderError("customerName", "customer name is required")
	}
	if strings.TrimSpace(params.Address) == "" {
		return nil, NewInvalidOrderError("address", "address is required")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order ID: %w", err)
	}

	now := time.Now()
	o := &Order{
		id:             "order-" + id.String(),
		productID:      params.ProductID,
		variantSku:     params.VariantSku,
		quantity:       params.Quantity,
		unitPrice:      params.UnitPrice,
		shippingFee:    params.ShippingFee,
		totalPrice:     params.TotalPrice,
		customerName:   strings.TrimSpace(params.CustomerName),
		customerPhone:  params.CustomerPhone,
		customerEmail:  strings.TrimSpace(params.CustomerEmail),
		region:         params.Region,
		deliveryMethod: params.DeliveryMethod,
		address:        strings.TrimSpace(params.Address),
		note:           params.Note,
		status:         StatusPending,
		version:        0,
		createdAt:      now,
		updatedAt:      now,
		isNew:          true,
	}
	o.recordEvent(NewOrderPlacedEvent(o.id, params.ProductID, params.ProductName, params.VariantSku, params.Quantity, params.TotalPrice))

	return o, nil
}

// ChangeStatus moves the order to target and reports whether anything
// changed. Same-status targets and transitions out of a terminal status are
// no-ops: the caller must skip stock mutation, saving and notification when
// false is returned.
func (o *Order) ChangeStatus(target Status) bool {
	if o.status == target || o.status.IsTerminal() {
		return false
	}
	prev := o.status
	o.status = target
	o.updatedAt = time.Now()
	o.recordEvent(NewOrderStatusChangedEvent(o.id, prev, target))
	return true
}

func (o *Order) ID() string                              { return o.id }
func (o *Order) ProductID() string                       { return o.productID }
func (o *Order) VariantSku() string                      { return o.variantSku }
func (o *Order) Quantity() int                           { return o.quantity }
func (o *Order) UnitPrice() int64                        { return o.unitPrice }
func (o *Order) ShippingFee() int64                      { return o.shippingFee }
func (o *Order) TotalPrice() int64                       { return o.totalPrice }
func (o *Order) CustomerName() string                    { return o.customerName }
func (o *Order) CustomerPhone() string                   { return o.customerPhone }
func (o *Order) CustomerEmail() string                   { return o.customerEmail }
func (o *Order) Region() string                          { return o.region }
func (o *Order) DeliveryMethod() shipping.DeliveryMethod { return o.deliveryMethod }
func (o *Order) Address() string                         { return o.address }
func (o *Order) Note() string                            { return o.note }
func (o *Order) Status() Status                          { return o.status }
func (o *Order) Version() int                            { return o.version }
func (o *Order) CreatedAt() time.Time                    { return o.createdAt }
func (o *Order) UpdatedAt() time.Time                    { return o.updatedAt }

func (o *Order) IsNew() bool { return o.isNew }

// IncrementVersionForSave is called by the repository after a successful
// version-guarded update.
func (o *Order) IncrementVersionForSave() { o.version++ }

// ClearNewFlag is called by the repository after the first successful save.
func (o *Order) ClearNewFlag() { o.isNew = false }

func (o *Order) recordEvent(event shared.DomainEvent) {
	o.events = append(o.events, event)
}

// PullEvents returns and clears recorded domain events.
func (o *Order) PullEvents() []shared.DomainEvent {
	events := o.events
	o.events = nil
	return events
}

// ReconstructionDTO rebuilds an Order from storage. Repository use only.
type ReconstructionDTO struct {
	ID             string
	ProductID      string
	VariantSku     string
	Quantity       int
	UnitPrice      int64
	ShippingFee    int64
	TotalPrice     int64
	CustomerName   string
	CustomerPhone  string
	CustomerEmail  string
	Region         string
	DeliveryMethod shipping.DeliveryMethod
	Address        string
	Note           string
	Status         Status
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RebuildFromDTO reconstructs the aggregate from persisted state.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	return &Order{
		id:             dto.ID,
		productID:      dto.ProductID,
		variantSku:     dto.VariantSku,
		quantity:       dto.Quantity,
		unitPrice:      dto.UnitPrice,
		shippingFee:    dto.ShippingFee,
		totalPrice:     dto.TotalPrice,
		customerName:   dto.CustomerName,
		customerPhone:  dto.CustomerPhone,
		customerEmail:  dto.CustomerEmail,
		region:         dto.Region,
		deliveryMethod: dto.DeliveryMethod,
		address:        dto.Address,
		note:           dto.Note,
		status:         dto.Status,
		version:        dto.Version,
		createdAt:      dto.CreatedAt,
		updatedAt:      dto.UpdatedAt,
		isNew:          false,
	}
}

var _ shared.AggregateRoot = (*Order)(nil)
