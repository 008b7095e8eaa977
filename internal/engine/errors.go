package engine

import (
	"errors"
	"fmt"
)

// TransitionError is a typed failure from an engine operation.
//
// Operations fail before touching the document, so a TransitionError
// always means the document is unchanged.
type TransitionError struct {
	// Code identifies the failure category.
	Code TransitionErrorCode

	// Message is a human-readable description.
	Message string

	// ProductID identifies the offending product (stock errors).
	ProductID string

	// Requested and Available describe the failing quantity check
	// (stock errors only).
	Requested int
	Available int

	// Details carries additional context.
	Details map[string]string
}

// TransitionErrorCode categorizes transition failures.
type TransitionErrorCode string

const (
	// ErrCodeInsufficientStock means a sale or purchase return would
	// drive a product's stock negative.
	ErrCodeInsufficientStock TransitionErrorCode = "INSUFFICIENT_STOCK"

	// ErrCodeNotFound means a referenced product, contact, or original
	// document does not exist.
	ErrCodeNotFound TransitionErrorCode = "NOT_FOUND"

	// ErrCodeValidation means the payload failed a semantic check the
	// struct validator cannot express (e.g. total mismatch).
	ErrCodeValidation TransitionErrorCode = "VALIDATION"

	// ErrCodeConflict means a return exceeds what the original document
	// has left to return.
	ErrCodeConflict TransitionErrorCode = "CONFLICT"
)

// Error implements the error interface.
func (e *TransitionError) Error() string {
	if e.ProductID != "" {
		return fmt.Sprintf("%s: %s (product=%s)", e.Code, e.Message, e.ProductID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInsufficientStock reports whether err is a stock-floor violation.
// Uses errors.As to handle wrapped errors.
func IsInsufficientStock(err error) bool {
	var te *TransitionError
	return errors.As(err, &te) && te.Code == ErrCodeInsufficientStock
}

// IsNotFound reports whether err is a missing-reference failure.
func IsNotFound(err error) bool {
	var te *TransitionError
	return errors.As(err, &te) && te.Code == ErrCodeNotFound
}

// IsConflict reports whether err is a return-reconciliation failure.
func IsConflict(err error) bool {
	var te *TransitionError
	return errors.As(err, &te) && te.Code == ErrCodeConflict
}

// CodeOf extracts the transition error code, or "" for other errors.
func CodeOf(err error) TransitionErrorCode {
	var te *TransitionError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

// NewInsufficientStockError reports a quantity that exceeds available stock.
func NewInsufficientStockError(productID string, requested, available int) *TransitionError {
	return &TransitionError{
		Code:      ErrCodeInsufficientStock,
		Message:   fmt.Sprintf("requested %d, available %d", requested, available),
		ProductID: productID,
		Requested: requested,
		Available: available,
	}
}

// NewNotFoundError reports a missing referenced entity.
func NewNotFoundError(kind, id string) *TransitionError {
	return &TransitionError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s %q does not exist", kind, id),
		Details: map[string]string{"kind": kind, "id": id},
	}
}

// NewValidationError reports a semantic payload failure.
func NewValidationError(format string, args ...any) *TransitionError {
	return &TransitionError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewConflictError reports a return that exceeds the original quantity.
func NewConflictError(productID string, requested, available int) *TransitionError {
	return &TransitionError{
		Code:      ErrCodeConflict,
		Message:   fmt.Sprintf("return of %d exceeds remaining original quantity %d", requested, available),
		ProductID: productID,
		Requested: requested,
		Available: available,
	}
}
