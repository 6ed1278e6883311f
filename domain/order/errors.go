package order

import (
	"errors"
	"fmt"

	"storefront/domain/shared"
)

var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrInvalidStatus          = errors.New("invalid order status")
	ErrInvalidPhone           = errors.New("invalid phone number")
	ErrInvalidOrder           = errors.New("invalid order")
	ErrConcurrentModification = errors.New("order was modified concurrently")
)

type orderError struct {
	err     error
	message string
	stack   []uintptr
}

func (e *orderError) Error() string   { return e.message }
func (e *orderError) Unwrap() error   { return e.err }
func (e *orderError) Stack() []string { return shared.FormatStack(e.stack) }

func newOrderError(sentinel error, message string) *orderError {
	return &orderError{
		err:     sentinel,
		message: message,
		stack:   shared.CaptureStack(3),
	}
}

func NewOrderNotFoundError(id string) error {
	return newOrderError(ErrOrderNotFound, fmt.Sprintf("order not found: %s", id))
}

func NewInvalidStatusError(raw string) error {
	return newOrderError(ErrInvalidStatus, fmt.Sprintf("invalid order status: %q", raw))
}

func NewInvalidPhoneError(raw string) error {
	return newOrderError(ErrInvalidPhone, fmt.Sprintf("invalid phone number: %q", raw))
}

func NewInvalidOrderError(field, message string) error {
	return newOrderError(ErrInvalidOrder, fmt.Sprintf("%s: %s", field, message))
}

func NewConcurrentModificationError(id string) error {
	return newOrderError(ErrConcurrentModification,
		fmt.Sprintf("order %s was modified by another transaction", id))
}

var _ shared.Stacker = (*orderError)(nil)
