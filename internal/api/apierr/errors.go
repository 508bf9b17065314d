package apierr

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mcoot/pizzeria/internal/api/request"
	"github.com/mcoot/pizzeria/internal/model"
	"github.com/mcoot/pizzeria/internal/services/access"
	"github.com/mcoot/pizzeria/internal/services/catalog"
	"github.com/mcoot/pizzeria/internal/services/identity"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeDuplicateHandle    = "DUPLICATE_HANDLE"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidRole        = "INVALID_ROLE"
	CodeAccessDenied       = "ACCESS_DENIED"
	CodeInvalidPromotion   = "INVALID_PROMOTION"
	CodeAccountNotFound    = "ACCOUNT_NOT_FOUND"
	CodeAddressNotFound    = "ADDRESS_NOT_FOUND"
	CodePaymentNotFound    = "PAYMENT_NOT_FOUND"
	CodeProductNotFound    = "PRODUCT_NOT_FOUND"
	CodePromotionNotFound  = "PROMOTION_NOT_FOUND"
	CodeRecordNotFound     = "RECORD_NOT_FOUND"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status WriteError would use for err
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Identity and access
	case errors.Is(err, identity.ErrDuplicateHandle):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateHandle, "An account with this email already exists"}}
	case errors.Is(err, identity.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid email or password"}}
	case errors.Is(err, identity.ErrInvalidRole):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRole, "Unknown role"}}
	case errors.Is(err, access.ErrAccessDenied):
		return &httpError{http.StatusForbidden, APIError{CodeAccessDenied, "Access denied"}}

	// Validation
	case errors.Is(err, request.ErrInvalid):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, validationMessage(err)}}
	case errors.Is(err, catalog.ErrInvalidPromotion):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPromotion, "Promotion must reference an existing product and size"}}

	// Not found
	case errors.Is(err, model.ErrAccountNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeAccountNotFound, "Account not found"}}
	case errors.Is(err, model.ErrAddressNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeAddressNotFound, "Address not found"}}
	case errors.Is(err, model.ErrPaymentNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePaymentNotFound, "Payment not found"}}
	case errors.Is(err, model.ErrProductNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeProductNotFound, "Product not found"}}
	case errors.Is(err, model.ErrPromotionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePromotionNotFound, "Promotion not found"}}
	case errors.Is(err, model.ErrRecordNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRecordNotFound, "Record not found"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// validationMessage strips the sentinel prefix from a request validation error
func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), request.ErrInvalid.Error()+": ")
	if msg == "" {
		return "Invalid request"
	}
	return msg
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewNotFoundError creates a generic not found error for unknown routes
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Not found"}}
}

// NewMethodNotAllowedError creates a method not allowed error
func NewMethodNotAllowedError() error {
	return &httpError{http.StatusMethodNotAllowed, APIError{CodeMethodNotAllowed, "Method not allowed"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
