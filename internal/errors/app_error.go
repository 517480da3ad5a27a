package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeEmptyCart          = "EMPTY_CART"
	ErrCodeInvalidAddress     = "INVALID_ADDRESS"
	ErrCodeSellerConflict     = "SELLER_CONFLICT"
	ErrCodeSubmissionFailed   = "SUBMISSION_FAILED"
	ErrCodeCancellationFailed = "CANCELLATION_FAILED"
	ErrCodeUpstreamError      = "UPSTREAM_ERROR"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

// EmptyCartError is the local precondition raised when checkout is attempted
// with zero items. It never causes a round-trip to the ordering backend.
func EmptyCartError() *AppError {
	return NewAppError(ErrCodeEmptyCart, "Cannot place an order with an empty cart", http.StatusBadRequest)
}

func InvalidAddressError(message string) *AppError {
	return NewAppError(ErrCodeInvalidAddress, message, http.StatusBadRequest)
}

// SellerConflictError signals an attempt to mix meals from two sellers in one
// cart. Checkout assumes a single seller per order, so the add is rejected
// and the cart is left untouched.
func SellerConflictError() *AppError {
	return NewAppError(ErrCodeSellerConflict, "You can only order meals from one seller at a time", http.StatusConflict)
}

func SubmissionFailedError(message string) *AppError {
	return NewAppError(ErrCodeSubmissionFailed, message, http.StatusBadGateway)
}

func CancellationFailedError(message string) *AppError {
	return NewAppError(ErrCodeCancellationFailed, message, http.StatusBadGateway)
}

func UpstreamError(message string) *AppError {
	return NewAppError(ErrCodeUpstreamError, message, http.StatusBadGateway)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}
