package models

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrRecordNotFound is returned by repositories when a lookup matches no row.
var ErrRecordNotFound = errors.New("record not found")

// ErrCartRestaurantMismatch is returned by the cart store when an item from a
// second restaurant is added to a locked cart.
var ErrCartRestaurantMismatch = errors.New("cart belongs to another restaurant")

// ErrCartQuantityLimit is returned when merging a line would push its
// quantity past MaxCartQuantity.
var ErrCartQuantityLimit = errors.New("cart line quantity limit exceeded")

// ErrCartChanged is returned when a cart was mutated between validation and
// conversion into an order.
var ErrCartChanged = errors.New("cart changed during checkout")

const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeBadRequest          = "BAD_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeInternal            = "INTERNAL_ERROR"
	CodeDifferentRestaurant = "DIFFERENT_RESTAURANT"
	CodeInvalidTransition   = "INVALID_TRANSITION"
	CodeStatusChanged       = "STATUS_CHANGED"
	CodeCartChanged         = "CART_CHANGED"
	CodeEmptyCart           = "EMPTY_CART"
	CodeRestaurantClosed    = "RESTAURANT_CLOSED"
	CodeBelowMinimum        = "BELOW_MINIMUM_ORDER"
	CodePhoneTaken          = "PHONE_TAKEN"
	CodeQuantityLimit       = "QUANTITY_LIMIT"
)

// AppError is a domain failure surfaced to API callers as status, code and message.
type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WithCode returns a copy of the error carrying a more specific code.
func (e *AppError) WithCode(code string) *AppError {
	return &AppError{Status: e.Status, Code: code, Message: e.Message}
}

func NotFound(format string, args ...interface{}) *AppError {
	return newAppError(http.StatusNotFound, CodeNotFound, format, args...)
}

func BadRequest(format string, args ...interface{}) *AppError {
	return newAppError(http.StatusBadRequest, CodeBadRequest, format, args...)
}

func Forbidden(format string, args ...interface{}) *AppError {
	return newAppError(http.StatusForbidden, CodeForbidden, format, args...)
}

func Unauthorized(format string, args ...interface{}) *AppError {
	return newAppError(http.StatusUnauthorized, CodeUnauthorized, format, args...)
}

func Conflict(format string, args ...interface{}) *AppError {
	return newAppError(http.StatusConflict, CodeConflict, format, args...)
}

func newAppError(status int, code, format string, args ...interface{}) *AppError {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &AppError{Status: status, Code: code, Message: msg}
}

// AsAppError unwraps err into an *AppError when it carries one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
