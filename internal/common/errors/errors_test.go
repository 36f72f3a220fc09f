package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_HTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeValidationFailed, http.StatusBadRequest},
		{ErrCodeAuthRequired, http.StatusUnauthorized},
		{ErrCodeQuotaExceeded, http.StatusPaymentRequired},
		{ErrCodeVerificationRequired, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeDependencyFailure, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := &AppError{Code: tt.code}
			assert.Equal(t, tt.want, err.HTTPStatus())
		})
	}
}

func TestAppError_IsFatal(t *testing.T) {
	assert.True(t, NewValidationError("x").IsFatal())
	assert.True(t, NewQuotaExceededError(3, 3).IsFatal())
	assert.False(t, NewDependencyFailureError("matching", stderrors.New("down")).IsFatal())
}

func TestNewQuotaExceededError_Meta(t *testing.T) {
	err := NewQuotaExceededError(3, 3)

	assert.Equal(t, 3, err.Meta["current_count"])
	assert.Equal(t, 3, err.Meta["limit"])
	assert.Contains(t, err.Details, "3 of 3")
}

func TestAsAppError(t *testing.T) {
	appErr := NewNotFoundError("Buyer", "buyer-001")
	wrapped := fmt.Errorf("create rfq: %w", appErr)

	assert.Equal(t, appErr, AsAppError(wrapped))

	plain := stderrors.New("boom")
	converted := AsAppError(plain)
	assert.Equal(t, ErrCodeInternal, converted.Code)
	assert.Equal(t, "boom", converted.Details)
}
