// Package errors provides the standardized error taxonomy for the RFQ intake
// pipeline and its mapping onto the HTTP contract.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrCodeAuthRequired         ErrorCode = "AUTH_REQUIRED"
	ErrCodeQuotaExceeded        ErrorCode = "QUOTA_EXCEEDED"
	ErrCodeVerificationRequired ErrorCode = "VERIFICATION_REQUIRED"
	ErrCodeNotFound             ErrorCode = "NOT_FOUND"
	ErrCodeDependencyFailure    ErrorCode = "DEPENDENCY_FAILURE"
	ErrCodeInternal             ErrorCode = "INTERNAL_ERROR"
)

// AppError is a structured application error. Everything the intake
// orchestrator surfaces to a caller is one of these; anything else is wrapped
// as ErrCodeInternal at the HTTP boundary.
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Meta      map[string]interface{} `json:"meta,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("AppError[%s]: %s", e.Code, e.Message)
}

// HTTPStatus maps the error code to the status code external callers depend on.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeAuthRequired:
		return http.StatusUnauthorized
	case ErrCodeQuotaExceeded:
		return http.StatusPaymentRequired
	case ErrCodeVerificationRequired:
		return http.StatusForbidden
	case ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// IsFatal reports whether the error must short-circuit the request before any
// RFQ row is written. DependencyFailure is the one soft code: once the RFQ
// exists it is logged and the pipeline continues degraded.
func (e *AppError) IsFatal() bool {
	return e.Code != ErrCodeDependencyFailure
}

// NewValidationError creates a fatal 400 error, caught before any side effect.
func NewValidationError(details string) *AppError {
	return &AppError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthRequiredError creates a fatal 401 error for requests with no buyer.
func NewAuthRequiredError() *AppError {
	return &AppError{
		Code:      ErrCodeAuthRequired,
		Message:   "A signed-in buyer is required to submit a request for quote",
		Timestamp: time.Now().UTC(),
	}
}

// NewQuotaExceededError creates the terminal-but-not-fatal 402 outcome. The
// meta carries the current count and limit so the caller can render a payment
// prompt.
func NewQuotaExceededError(currentCount, limit int) *AppError {
	return &AppError{
		Code:    ErrCodeQuotaExceeded,
		Message: "Monthly free RFQ limit reached",
		Details: fmt.Sprintf("%d of %d free submissions used this month", currentCount, limit),
		Meta: map[string]interface{}{
			"current_count": currentCount,
			"limit":         limit,
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewVerificationRequiredError creates a fatal 403 business-rule error.
func NewVerificationRequiredError(buyerID string) *AppError {
	return &AppError{
		Code:      ErrCodeVerificationRequired,
		Message:   "Contact verification is required before submitting an RFQ",
		Details:   fmt.Sprintf("buyerId: %s", buyerID),
		Timestamp: time.Now().UTC(),
	}
}

// NewNotFoundError creates a fatal 404 error for a missing referenced entity.
func NewNotFoundError(entity, id string) *AppError {
	return &AppError{
		Code:      ErrCodeNotFound,
		Message:   fmt.Sprintf("%s not found", entity),
		Details:   fmt.Sprintf("%s: %s", entity, id),
		Timestamp: time.Now().UTC(),
	}
}

// NewDependencyFailureError creates the soft error used for matching,
// assignment and notification faults after the RFQ row is committed. It is
// logged, never propagated to the caller.
func NewDependencyFailureError(component string, err error) *AppError {
	return &AppError{
		Code:      ErrCodeDependencyFailure,
		Message:   fmt.Sprintf("Dependency '%s' failed", component),
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps anything unexpected at the orchestrator boundary.
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected internal error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// AsAppError extracts an *AppError from an error chain, wrapping unknown
// errors as internal so the HTTP boundary always has a status to emit.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(err)
}
