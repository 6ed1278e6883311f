// Package errors defines the application error type and the mapping from
// domain errors to transport-facing codes. Domain packages never import
// this; the translation happens at the application/api boundary.
package errors

import (
	"errors"
	"net/http"

	"storefront/domain/catalog"
	"storefront/domain/order"
	"storefront/domain/shared"
	"storefront/domain/shipping"
)

// ErrorCode is a stable machine-readable error identifier.
type ErrorCode string

const (
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"

	CodeProductNotFound   ErrorCode = "PRODUCT_NOT_FOUND"
	CodeOrderNotFound     ErrorCode = "ORDER_NOT_FOUND"
	CodeInvalidVariant    ErrorCode = "INVALID_VARIANT"
	CodeInvalidStatus     ErrorCode = "INVALID_STATUS"
	CodeUnknownRegion     ErrorCode = "UNKNOWN_REGION"
	CodeInvalidPhone      ErrorCode = "INVALID_PHONE"
	CodeInsufficientStock ErrorCode = "INSUFFICIENT_STOCK"
	CodeDuplicateName     ErrorCode = "DUPLICATE_NAME"
	CodeConcurrentModify  ErrorCode = "CONCURRENT_MODIFICATION"
)

// AppError is the error shape the api layer renders.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return string(e.Code) + ": " + e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// HTTPStatusCode maps the code to an HTTP status.
func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation, CodeInvalidStatus, CodeInvalidPhone, CodeInvalidVariant, CodeUnknownRegion:
		return http.StatusBadRequest
	case CodeNotFound, CodeProductNotFound, CodeOrderNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeDuplicateName, CodeConcurrentModify:
		return http.StatusConflict
	case CodeInsufficientStock:
		return http.StatusUnprocessableEntity
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError      { return New(CodeBadRequest, message) }
func Validation(message string) *AppError      { return New(CodeValidation, message) }
func NotFound(message string) *AppError        { return New(CodeNotFound, message) }
func Conflict(message string) *AppError        { return New(CodeConflict, message) }
func Internal(message string) *AppError        { return New(CodeInternal, message) }
func TooManyRequests(message string) *AppError { return New(CodeTooManyRequest, message) }

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// FromDomainError translates a domain error into an AppError by sentinel
// identity. Unrecognized errors map to an internal error so no raw
// message leaks to clients.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		return Wrap(err, CodeProductNotFound, err.Error())
	case errors.Is(err, order.ErrOrderNotFound):
		return Wrap(err, CodeOrderNotFound, err.Error())
	case errors.Is(err, catalog.ErrVariantNotFound):
		return Wrap(err, CodeInvalidVariant, err.Error())
	case errors.Is(err, catalog.ErrInsufficientStock):
		return Wrap(err, CodeInsufficientStock, err.Error())
	case errors.Is(err, catalog.ErrDuplicateName):
		return Wrap(err, CodeDuplicateName, err.Error())
	case errors.Is(err, catalog.ErrNoVariants), errors.Is(err, catalog.ErrInvalidProduct):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, catalog.ErrConcurrentModification), errors.Is(err, order.ErrConcurrentModification):
		return Wrap(err, CodeConcurrentModify, "the record was modified concurrently, please retry")
	case errors.Is(err, order.ErrInvalidStatus):
		return Wrap(err, CodeInvalidStatus, err.Error())
	case errors.Is(err, order.ErrInvalidPhone):
		return Wrap(err, CodeInvalidPhone, err.Error())
	case errors.Is(err, order.ErrInvalidOrder):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, shipping.ErrUnknownRegion):
		return Wrap(err, CodeUnknownRegion, err.Error())
	case errors.Is(err, shipping.ErrInvalidDeliveryMethod):
		return Wrap(err, CodeBadRequest, err.Error())
	case errors.Is(err, shared.ErrInvalidInput):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, err.Error())
	case errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, err.Error())
	default:
		return Wrap(err, CodeInternal, "internal server error")
	}
}
