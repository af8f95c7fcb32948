// Package apperr defines the error taxonomy shared by the services and the
// HTTP layer. Services return these (possibly wrapped); handlers translate
// them to statuses in one place and never echo internal error text.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrConflict          = errors.New("already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrInvalidPayment    = errors.New("invalid payment method")
	ErrInvalidTotal      = errors.New("invalid total")
)

// ValidationError carries a client-safe message for malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validation builds a ValidationError.
func Validation(msg string) error { return &ValidationError{Message: msg} }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// HTTPStatus maps a service error to the status the storefront API uses for
// it. Unknown errors map to 500; callers log them and reply with a generic
// message.
func HTTPStatus(err error) int {
	switch {
	case IsValidation(err),
		errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrInvalidPayment),
		errors.Is(err, ErrInvalidTotal):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrCustomerNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredential):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
