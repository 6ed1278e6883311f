package shipping

import (
	"errors"

	"storefront/domain/shared"
)

var (
	// ErrUnknownRegion means the destination has no shipping record.
	// Usable with errors.Is(err, ErrUnknownRegion).
	ErrUnknownRegion = errors.New("unknown shipping region")

	// ErrInvalidDeliveryMethod means the delivery method is not one of the
	// supported values.
	ErrInvalidDeliveryMethod = errors.New("invalid delivery method")
)

// NewUnknownRegionError creates an unknown-region error carrying the
// requested name and the creation stack.
func NewUnknownRegionError(name string) error {
	return &shippingError{
		sentinel: ErrUnknownRegion,
		message:  "shipping region not found: " + name,
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidDeliveryMethodError creates an invalid-delivery-method error.
func NewInvalidDeliveryMethodError(raw string) error {
	return &shippingError{
		sentinel: ErrInvalidDeliveryMethod,
		message:  "invalid delivery method: " + raw + " (expected home or pickup-point)",
		stack:    shared.CaptureStack(3),
	}
}

type shippingError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *shippingError) Error() string { return e.message }

func (e *shippingError) Unwrap() error { return e.sentinel }

// Stack implements shared.Stacker.
func (e *shippingError) Stack() []string {
	return shared.FormatStack(e.stack)
}
