package catalog

import (
	"errors"
	"fmt"

	"storefront/domain/shared"
)

// Sentinel errors for the catalog subdomain. Callers classify with
// errors.Is; the structured constructors below add context and a stack.
var (
	ErrProductNotFound        = errors.New("product not found")
	ErrVariantNotFound        = errors.New("variant not found")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrDuplicateName          = errors.New("product name already exists")
	ErrNoVariants             = errors.New("product must have at least one variant")
	ErrInvalidProduct         = errors.New("invalid product")
	ErrConcurrentModification = errors.New("product was modified concurrently")
)

type catalogError struct {
	err     error
	message string
	stack   []uintptr
}

func (e *catalogError) Error() string   { return e.message }
func (e *catalogError) Unwrap() error   { return e.err }
func (e *catalogError) Stack() []string { return shared.FormatStack(e.stack) }

func newCatalogError(sentinel error, message string) *catalogError {
	return &catalogError{
		err:     sentinel,
		message: message,
		stack:   shared.CaptureStack(3),
	}
}

func NewProductNotFoundError(ref string) error {
	return newCatalogError(ErrProductNotFound, fmt.Sprintf("product not found: %s", ref))
}

func NewVariantNotFoundError(productID, sku string) error {
	return newCatalogError(ErrVariantNotFound, fmt.Sprintf("variant %s not found in product %s", sku, productID))
}

func NewInsufficientStockError(productName, variantName string, available, requested int) error {
	return newCatalogError(ErrInsufficientStock,
		fmt.Sprintf("insufficient stock for %s (%s): %d available, %d requested", productName, variantName, available, requested))
}

func NewDuplicateNameError(name string) error {
	return newCatalogError(ErrDuplicateName, fmt.Sprintf("product name already exists: %s", name))
}

func NewInvalidProductError(field, message string) error {
	return newCatalogError(ErrInvalidProduct, fmt.Sprintf("%s: %s", field, message))
}

func NewConcurrentModificationError(productID string) error {
	return newCatalogError(ErrConcurrentModification,
		fmt.Sprintf("product %s was modified by another transaction", productID))
}

var _ shared.Stacker = (*catalogError)(nil)
