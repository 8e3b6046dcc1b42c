package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := New("WAL_001", "Invalid amount", http.StatusBadRequest)
	assert.Equal(t, "[WAL_001] Invalid amount", err.Error())

	wrapped := Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, errors.New("db down"))
	assert.Contains(t, wrapped.Error(), "SYS_001")
	assert.Contains(t, wrapped.Error(), "db down")
}

func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := InternalError(fmt.Errorf("ping: %w", inner))

	assert.True(t, errors.Is(err, inner))
}

func TestAppError_As(t *testing.T) {
	var appErr *AppError
	err := fmt.Errorf("handler: %w", ErrInsufficientBalance())

	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "WAL_002", appErr.Code)
	assert.Equal(t, http.StatusPaymentRequired, appErr.HTTPStatus)
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		err    *AppError
		code   string
		status int
	}{
		{ErrInvalidAmount(), "WAL_001", http.StatusBadRequest},
		{ErrInsufficientBalance(), "WAL_002", http.StatusPaymentRequired},
		{ErrNotFound("account"), "WAL_003", http.StatusNotFound},
		{ErrUnsupportedCurrency("XYZ"), "FX_001", http.StatusBadRequest},
		{ErrRateLookupFailed(nil), "FX_002", http.StatusBadGateway},
		{ErrGatewayUnavailable(nil), "GW_001", http.StatusBadGateway},
		{ErrOrderNotFound(), "GW_002", http.StatusBadRequest},
		{ErrInvalidPaymentSignature(), "GW_003", http.StatusBadRequest},
		{ErrAmountMismatch(), "GW_004", http.StatusBadRequest},
		{ErrInvalidCredentials(), "AUTH_001", http.StatusUnauthorized},
		{ErrEmailExists(), "AUTH_002", http.StatusConflict},
		{ErrInvalidToken(), "AUTH_003", http.StatusUnauthorized},
		{ErrRateLimitExceeded(), "RATE_001", http.StatusTooManyRequests},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, tt.err.Code)
		assert.Equal(t, tt.status, tt.err.HTTPStatus)
	}
}

func TestErrNotFound_Message(t *testing.T) {
	assert.Equal(t, "account not found", ErrNotFound("account").Message)
}
