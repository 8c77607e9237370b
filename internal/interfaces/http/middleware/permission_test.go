package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/infrastructure/auth"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func withClaims(claims *auth.Claims) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims != nil {
			c.Set(JWTClaimsKey, claims)
		}
		c.Next()
	}
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		name     string
		claims   *auth.Claims
		expected int
	}{
		{"no claims", nil, http.StatusForbidden},
		{"missing permission", &auth.Claims{Role: auth.RoleStaff, Permissions: []string{auth.PermissionOrdersRead}}, http.StatusForbidden},
		{"granted", &auth.Claims{Role: auth.RoleStaff, Permissions: []string{auth.PermissionMarketplaceSync}}, http.StatusOK},
		{"admin bypass", &auth.Claims{Role: auth.RoleAdmin}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(withClaims(tt.claims))
			router.POST("/sync", RequirePermissionWithConfig(auth.PermissionMarketplaceSync,
				PermissionConfig{Logger: zap.NewNop()}), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sync", nil))

			assert.Equal(t, tt.expected, rec.Code)
			if tt.expected == http.StatusForbidden {
				assert.Equal(t, dto.ErrCodeForbidden, decodeError(t, rec).Code)
			}
		})
	}
}

func TestRequireAllPermissions(t *testing.T) {
	claims := &auth.Claims{Permissions: []string{auth.PermissionOrdersRead}}

	router := gin.New()
	router.Use(withClaims(claims))
	router.GET("/both", RequireAllPermissions(auth.PermissionOrdersRead, auth.PermissionOrdersTransition), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/any", RequireAnyPermission(auth.PermissionOrdersRead, auth.PermissionOrdersTransition), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/both", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/any", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
