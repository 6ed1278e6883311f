package errors

import (
	"errors"
	"net/http"
	"testing"

	"storefront/domain/catalog"
	"storefront/domain/order"
	"storefront/domain/shipping"
)

func TestFromDomainError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   ErrorCode
		status int
	}{
		{"product not found", catalog.NewProductNotFoundError("prod-1"), CodeProductNotFound, http.StatusNotFound},
		{"order not found", order.NewOrderNotFoundError("order-1"), CodeOrderNotFound, http.StatusNotFound},
		{"variant not found", catalog.NewVariantNotFoundError("prod-1", "SKU-1"), CodeInvalidVariant, http.StatusBadRequest},
		{"insufficient stock", catalog.NewInsufficientStockError("p", "v", 1, 2), CodeInsufficientStock, http.StatusUnprocessableEntity},
		{"duplicate name", catalog.NewDuplicateNameError("p"), CodeDuplicateName, http.StatusConflict},
		{"no variants", catalog.ErrNoVariants, CodeValidation, http.StatusBadRequest},
		{"concurrent product", catalog.NewConcurrentModificationError("prod-1"), CodeConcurrentModify, http.StatusConflict},
		{"concurrent order", order.NewConcurrentModificationError("order-1"), CodeConcurrentModify, http.StatusConflict},
		{"invalid status", order.NewInvalidStatusError("refunded"), CodeInvalidStatus, http.StatusBadRequest},
		{"invalid phone", order.NewInvalidPhoneError("123"), CodeInvalidPhone, http.StatusBadRequest},
		{"unknown region", shipping.NewUnknownRegionError("Atlantis"), CodeUnknownRegion, http.StatusBadRequest},
		{"invalid method", shipping.NewInvalidDeliveryMethodError("drone"), CodeBadRequest, http.StatusBadRequest},
		{"unexpected", errors.New("boom"), CodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		appErr := FromDomainError(tc.err)
		if appErr.Code != tc.code {
			t.Errorf("%s: expected code %s, got %s", tc.name, tc.code, appErr.Code)
		}
		if got := appErr.HTTPStatusCode(); got != tc.status {
			t.Errorf("%s: expected status %d, got %d", tc.name, tc.status, got)
		}
	}
}

func TestFromDomainErrorPassesThroughAppError(t *testing.T) {
	original := TooManyRequests("slow down")
	if got := FromDomainError(original); got != original {
		t.Error("existing AppError must pass through unchanged")
	}
	if FromDomainError(nil) != nil {
		t.Error("nil must map to nil")
	}
}

func TestInternalErrorHidesMessage(t *testing.T) {
	appErr := FromDomainError(errors.New("dsn=root:secret@tcp(db:3306)"))
	if appErr.Message != "internal server error" {
		t.Errorf("internal errors must not leak details, got %q", appErr.Message)
	}
	if !errors.Is(appErr, appErr.Err) {
		t.Error("wrapped cause must stay reachable for logging")
	}
}

func TestIs(t *testing.T) {
	err := error(Validation("missing fields"))
	if !Is(err, CodeValidation) {
		t.Error("expected Is to match CodeValidation")
	}
	if Is(err, CodeNotFound) {
		t.Error("Is must not match a different code")
	}
	if Is(errors.New("plain"), CodeInternal) {
		t.Error("plain errors carry no code")
	}
}
