package auth

import (
	"testing"
	"time"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars"

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{Secret: testSecret, Issuer: "sneakersflash"})
}

func signTestToken(t *testing.T, claims *Claims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newTestClaims(role string, permissions ...string) *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    "sneakersflash",
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		Role:        role,
		Permissions: permissions,
		TokenType:   TokenTypeAccess,
	}
}

func TestJWTService_ValidateAccessToken(t *testing.T) {
	svc := newTestJWTService()

	t.Run("valid token", func(t *testing.T) {
		claims := newTestClaims(RoleStaff, PermissionOrdersRead)
		got, err := svc.ValidateAccessToken(signTestToken(t, claims, testSecret))
		require.NoError(t, err)
		assert.Equal(t, claims.Subject, got.UserID, "user id falls back to sub")
		assert.Equal(t, RoleStaff, got.Role)
		_, err = got.GetUserUUID()
		assert.NoError(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(signTestToken(t, newTestClaims(RoleAdmin), "another-secret-another-secret-xx"))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		claims := newTestClaims(RoleAdmin)
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		_, err := svc.ValidateAccessToken(signTestToken(t, claims, testSecret))
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("not yet valid", func(t *testing.T) {
		claims := newTestClaims(RoleAdmin)
		claims.NotBefore = jwt.NewNumericDate(time.Now().Add(time.Hour))
		_, err := svc.ValidateAccessToken(signTestToken(t, claims, testSecret))
		assert.ErrorIs(t, err, ErrTokenNotYetValid)
	})

	t.Run("missing expiry", func(t *testing.T) {
		claims := newTestClaims(RoleAdmin)
		claims.ExpiresAt = nil
		_, err := svc.ValidateAccessToken(signTestToken(t, claims, testSecret))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		claims := newTestClaims(RoleAdmin)
		claims.Issuer = "someone-else"
		_, err := svc.ValidateAccessToken(signTestToken(t, claims, testSecret))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		claims := newTestClaims(RoleAdmin)
		claims.TokenType = "refresh"
		_, err := svc.ValidateAccessToken(signTestToken(t, claims, testSecret))
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})

	t.Run("missing user", func(t *testing.T) {
		claims := newTestClaims(RoleAdmin)
		claims.Subject = ""
		_, err := svc.ValidateAccessToken(signTestToken(t, claims, testSecret))
		assert.ErrorIs(t, err, ErrMissingUserID)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestClaims_Permissions(t *testing.T) {
	staff := newTestClaims(RoleStaff, PermissionOrdersRead, PermissionMarketplaceRead)
	assert.True(t, staff.HasPermission(PermissionOrdersRead))
	assert.False(t, staff.HasPermission(PermissionOrdersTransition))
	assert.True(t, staff.HasAnyPermission(PermissionOrdersTransition, PermissionMarketplaceRead))
	assert.False(t, staff.HasAllPermissions(PermissionOrdersRead, PermissionMarketplaceSync))

	admin := newTestClaims(RoleAdmin)
	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.HasAllPermissions(PermissionOrdersTransition, PermissionMarketplaceSync))
}

func TestClaims_Times(t *testing.T) {
	c := newTestClaims(RoleStaff)
	assert.False(t, c.GetIssuedAtTime().IsZero())
	assert.Greater(t, c.GetRemainingTTL(), 14*time.Minute)

	c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	assert.Zero(t, c.GetRemainingTTL())
}
