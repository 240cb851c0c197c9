package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorStringIncludesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternal(cause)

	assert.Contains(t, err.Error(), CodeInternal)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("boom")
	err := NewHistoryWrite(fmt.Errorf("snapshot lookup: %w", cause))

	assert.True(t, errors.Is(err, cause))
}

func TestAsAppErrorThroughWrapping(t *testing.T) {
	inner := NewNotFound("placement", 42)
	wrapped := fmt.Errorf("resolve placement: %w", inner)

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, appErr.Code)
	assert.True(t, IsNotFound(wrapped))
}

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidation("bad input"), http.StatusBadRequest},
		{"not found", NewNotFound("batch", 1), http.StatusNotFound},
		{"duplicate", NewDuplicate("placement", "name", "A1"), http.StatusConflict},
		{"resolution", NewResolution("placement", "loc-1", errors.New("db down")), http.StatusUnprocessableEntity},
		{"history write", NewHistoryWrite(errors.New("db down")), http.StatusInternalServerError},
		{"plain error", errors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.err))
		})
	}
}

func TestWithDetailAccumulates(t *testing.T) {
	err := NewValidation("amount out of range").
		WithDetail("field", "amount").
		WithDetail("max", 100)

	assert.Equal(t, "amount", err.Details["field"])
	assert.Equal(t, 100, err.Details["max"])
}

func TestNewDuplicateCarriesFieldDetails(t *testing.T) {
	err := NewDuplicate("batch", "batch", "LOT-7")

	assert.Equal(t, CodeDuplicate, err.Code)
	assert.Equal(t, "batch", err.Details["entity"])
	assert.Equal(t, "LOT-7", err.Details["value"])
}
