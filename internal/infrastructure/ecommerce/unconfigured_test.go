package ecommerce

import (
	"context"
	"testing"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
	"github.com/stretchr/testify/assert"
)

func TestUnconfiguredGateway_RefusesEveryCall(t *testing.T) {
	g := NewUnconfiguredGateway("ginee")
	ctx := context.Background()

	assert.Equal(t, "ginee", g.Name())
	assert.ErrorIs(t, g.Ping(ctx), integration.ErrPlatformNotConfigured)

	_, err := g.PushProduct(ctx, &integration.PushProductRequest{Name: "Samba OG"})
	assert.ErrorIs(t, err, integration.ErrPlatformNotConfigured)

	_, err = g.GetProduct(ctx, "G-1")
	assert.ErrorIs(t, err, integration.ErrPlatformNotConfigured)

	_, err = g.ListStock(ctx, []string{"SKU-1"})
	assert.ErrorIs(t, err, integration.ErrPlatformNotConfigured)

	_, err = g.PushOrder(ctx, &integration.PushOrderRequest{OrderNumber: "SF-1"})
	assert.ErrorIs(t, err, integration.ErrPlatformNotConfigured)
}
