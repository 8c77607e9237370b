package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeConcurrencyConflict, http.StatusConflict},
		{ErrCodeInvalidTransition, http.StatusUnprocessableEntity},
		{ErrCodeUnlinkedProduct, http.StatusUnprocessableEntity},
		{ErrCodeNotForwardable, http.StatusUnprocessableEntity},
		{ErrCodeRemoteFailure, http.StatusBadGateway},
		{ErrCodeSyncAlreadyRunning, http.StatusOK},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"CONCURRENCY_CONFLICT", ErrCodeConcurrencyConflict},
		{"INVALID_TRANSITION", ErrCodeInvalidTransition},
		{"UNLINKED_PRODUCT", ErrCodeUnlinkedProduct},
		{"REMOTE_FAILURE", ErrCodeRemoteFailure},
		{"SYNC_ALREADY_RUNNING", ErrCodeSyncAlreadyRunning},
		{ErrCodeNotFound, ErrCodeNotFound},
		{"EMPTY_ORDER", "ERR_EMPTY_ORDER"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestStatusForDomainCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusForDomainCode("NOT_FOUND"))
	assert.Equal(t, http.StatusBadGateway, StatusForDomainCode("REMOTE_FAILURE"))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusForDomainCode("INVALID_QUANTITY"))
}

func TestErrorCodeConstants(t *testing.T) {
	for code := range ErrorCodeHTTPStatus {
		t.Run(code, func(t *testing.T) {
			assert.Contains(t, code, "ERR_")
		})
	}
}

func TestNewErrorResponseWithDetails(t *testing.T) {
	resp := NewErrorResponseWithDetails(ErrCodeInvalidTransition, "Illegal", "req-1",
		TransitionDetails{Current: "DELIVERED", Attempted: "PAID"})

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, false, decoded["success"])
	errBody := decoded["error"].(map[string]any)
	assert.Equal(t, ErrCodeInvalidTransition, errBody["code"])
	assert.Equal(t, "req-1", errBody["request_id"])
	details := errBody["details"].(map[string]any)
	assert.Equal(t, "DELIVERED", details["current"])
	assert.Equal(t, "PAID", details["attempted"])
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-789", []ValidationDetail{
		{Field: "status", Message: "This field is required"},
	})

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Fields, 1)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, shared.NewPageMeta(41, 1, 20))

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"lastPage":3`)
	assert.Contains(t, string(data), `"hasNextPage":true`)
	assert.NotContains(t, string(data), `"error"`)
}

func TestNewRefusalResponse(t *testing.T) {
	resp := NewRefusalResponse(map[string]any{"accepted": false}, ErrCodeSyncAlreadyRunning, "already running")

	assert.False(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Equal(t, ErrCodeSyncAlreadyRunning, resp.Error.Code)
}
