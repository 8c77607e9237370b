package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]HealthCheck
		wantStatus int
		wantState  string
	}{
		{"no checks", nil, http.StatusOK, "ok"},
		{
			name: "all healthy",
			checks: map[string]HealthCheck{
				"database": func(context.Context) error { return nil },
			},
			wantStatus: http.StatusOK,
			wantState:  "ok",
		},
		{
			name: "redis down",
			checks: map[string]HealthCheck{
				"database": func(context.Context) error { return nil },
				"redis":    func(context.Context) error { return errors.New("connection refused") },
			},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler("sneakersflash-admin", "test", tt.checks)
			router := gin.New()
			router.GET("/health", h.Health)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var health HealthResponse
			require.NoError(t, json.Unmarshal(decodeResponse(t, rec).Data, &health))
			assert.Equal(t, tt.wantState, health.Status)
			assert.Equal(t, "test", health.Version)
			if tt.wantState == "degraded" {
				assert.Equal(t, "connection refused", health.Checks["redis"])
				assert.Equal(t, "ok", health.Checks["database"])
			}
		})
	}
}
