// Package apperror defines the error type every layer returns to the HTTP boundary.
// The HTTP layer renders Code, Message and Details; Err is logged and never sent.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes.
const (
	CodeInternal = "INTERNAL_ERROR"

	CodeValidation = "VALIDATION_ERROR"

	CodeSequenceExhausted = "SEQUENCE_EXHAUSTED"

	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"

	CodeNotFound = "NOT_FOUND"

	CodeConflict               = "CONFLICT"
	CodeDuplicate              = "DUPLICATE_ENTRY"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"
)

// AppError is a classified error with an HTTP status.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details carries the offending field, value, bucket and so on
	Details map[string]any `json:"details,omitempty"`

	HTTPStatus int   `json:"-"`
	Err        error `json:"-"`
}

func newError(code string, status int, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// Error implements error.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the cause.
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to Details.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error.
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// NewValidation creates a 400 error.
func NewValidation(message string) *AppError {
	return newError(CodeValidation, http.StatusBadRequest, message)
}

// NewNotFound creates a 404 error for entity identified by id (an ID or a natural key).
func NewNotFound(entity string, id any) *AppError {
	return newError(CodeNotFound, http.StatusNotFound, entity+" not found").
		WithDetail("entity", entity).
		WithDetail("id", id)
}

// NewSequenceExhausted is returned when a kode bucket has no free sequence left.
func NewSequenceExhausted(bucket string, limit int) *AppError {
	return newError(CodeSequenceExhausted, http.StatusUnprocessableEntity,
		fmt.Sprintf("sequence for %s exceeds %d", bucket, limit)).
		WithDetail("bucket", bucket).
		WithDetail("limit", limit)
}

// NewAllocationBusy is returned when the bucket lock was not acquired in time.
func NewAllocationBusy(bucket string, cause error) *AppError {
	return NewConflict("kode allocation is busy, try again").
		WithDetail("bucket", bucket).
		WithCause(cause)
}

// NewAllocationCollision is returned when every allocation attempt hit an existing kode ID.
func NewAllocationCollision(itemTypeCode string, attempts int, cause error) *AppError {
	return NewConflict("could not allocate a unique kode ID").
		WithDetail("kodeItem", itemTypeCode).
		WithDetail("attempts", attempts).
		WithCause(cause)
}

// NewConcurrentModification creates an optimistic locking error.
func NewConcurrentModification(entity string, id any) *AppError {
	return newError(CodeConcurrentModification, http.StatusConflict,
		"Record was modified by another user. Please refresh and try again.").
		WithDetail("entity", entity).
		WithDetail("id", id)
}

// NewInternal wraps err as a 500 whose message hides the cause.
func NewInternal(err error) *AppError {
	return newError(CodeInternal, http.StatusInternalServerError, "Internal server error").WithCause(err)
}

// NewUnauthorized creates a 401 error.
func NewUnauthorized(message string) *AppError {
	return newError(CodeUnauthorized, http.StatusUnauthorized, message)
}

// NewForbidden creates a 403 error.
func NewForbidden(message string) *AppError {
	return newError(CodeForbidden, http.StatusForbidden, message)
}

// NewConflict creates a 409 error.
func NewConflict(message string) *AppError {
	return newError(CodeConflict, http.StatusConflict, message)
}

// NewDuplicate reports a unique constraint hit on field.
func NewDuplicate(entity, field, value string) *AppError {
	return newError(CodeDuplicate, http.StatusConflict,
		fmt.Sprintf("%s with this %s already exists", entity, field)).
		WithDetail("entity", entity).
		WithDetail("field", field).
		WithDetail("value", value)
}

// IsAppError reports whether err wraps an AppError.
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// AsAppError extracts the first AppError from the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns the status for err, 500 for anything unclassified.
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

func hasCode(err error, code string) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// IsNotFound reports a NOT_FOUND error.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsDuplicate reports a DUPLICATE_ENTRY error.
func IsDuplicate(err error) bool { return hasCode(err, CodeDuplicate) }

// IsConcurrentModification reports a CONCURRENT_MODIFICATION error.
func IsConcurrentModification(err error) bool { return hasCode(err, CodeConcurrentModification) }
