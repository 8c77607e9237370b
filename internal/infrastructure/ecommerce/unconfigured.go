package ecommerce

import (
	"context"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
)

// UnconfiguredGateway stands in for the marketplace when no credentials are
// set. Every call fails with integration.ErrPlatformNotConfigured so the
// admin API stays up and sync attempts are logged as failures.
type UnconfiguredGateway struct {
	name string
}

// NewUnconfiguredGateway returns a gateway that refuses every call
func NewUnconfiguredGateway(name string) *UnconfiguredGateway {
	return &UnconfiguredGateway{name: name}
}

// Name returns the configured provider name
func (g *UnconfiguredGateway) Name() string { return g.name }

func (g *UnconfiguredGateway) Ping(context.Context) error {
	return integration.ErrPlatformNotConfigured
}

func (g *UnconfiguredGateway) PushProduct(context.Context, *integration.PushProductRequest) (*integration.PushProductResult, error) {
	return nil, integration.ErrPlatformNotConfigured
}

func (g *UnconfiguredGateway) GetProduct(context.Context, string) (*integration.RemoteProduct, error) {
	return nil, integration.ErrPlatformNotConfigured
}

func (g *UnconfiguredGateway) ListStock(context.Context, []string) ([]integration.RemoteStock, error) {
	return nil, integration.ErrPlatformNotConfigured
}

func (g *UnconfiguredGateway) PushOrder(context.Context, *integration.PushOrderRequest) (*integration.PushOrderResult, error) {
	return nil, integration.ErrPlatformNotConfigured
}

var _ integration.MarketplaceGateway = (*UnconfiguredGateway)(nil)
