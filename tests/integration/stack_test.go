package integration

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	integrationapp "github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/application/integration"
	orderapp "github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/application/order"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/infrastructure/auth"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/infrastructure/config"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/infrastructure/persistence"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/interfaces/http/handler"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/interfaces/http/middleware"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/interfaces/http/router"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/tests/testutil"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// stack is the application wired onto one database
type stack struct {
	orders   *persistence.GormOrderRepository
	products *persistence.GormProductRepository
	links    *persistence.GormMarketplaceLinkRepository
	logs     *persistence.GormSyncLogRepository
	leases   *persistence.GormLeaseStore
	sync     *integrationapp.SyncOrchestrator
	orderSvc *orderapp.OrderService
}

func newStack(tdb *TestDB, gw integration.MarketplaceGateway) *stack {
	s := &stack{
		orders:   persistence.NewGormOrderRepository(tdb.DB),
		products: persistence.NewGormProductRepository(tdb.DB),
		links:    persistence.NewGormMarketplaceLinkRepository(tdb.DB),
		logs:     persistence.NewGormSyncLogRepository(tdb.DB),
		leases:   persistence.NewGormLeaseStore(tdb.DB),
	}
	s.sync = integrationapp.NewSyncOrchestrator(gw, s.products, s.links, s.logs, s.orders, s.leases,
		persistence.NewGormTransactionScope(tdb.DB),
		integrationapp.SyncConfig{Workers: 2, PageSize: 2})
	s.orderSvc = orderapp.NewOrderService(s.orders, zap.NewNop())
	return s
}

// handler mounts the versioned API behind JWT auth
func (s *stack) handler() http.Handler {
	engine := gin.New()
	jwtAuth := middleware.JWTAuthMiddleware(auth.NewJWTService(config.JWTConfig{
		Secret: testutil.TestJWTSecret,
		Issuer: testutil.TestJWTIssuer,
	}))
	marketplace := handler.NewMarketplaceHandler(s.sync, integrationapp.NewSyncLogService(s.logs))
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Use(jwtAuth).
		Register(
			router.OrderRoutes(handler.NewOrderHandler(s.orderSvc)),
			router.MarketplaceRoutes(marketplace),
			router.ProductRoutes(marketplace),
		).
		Setup()
	return engine
}

// stubGateway is an in-memory marketplace. Ping blocks while gate is set.
type stubGateway struct {
	mu       sync.Mutex
	products map[string]*integration.RemoteProduct
	pushed   []*integration.PushOrderRequest
	gate     chan struct{}
	nextID   int
}

func newStubGateway() *stubGateway {
	return &stubGateway{products: map[string]*integration.RemoteProduct{}}
}

func (g *stubGateway) put(p *integration.RemoteProduct) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.products[p.ExternalID] = p
}

func (g *stubGateway) Name() string { return "stub" }

func (g *stubGateway) Ping(ctx context.Context) error {
	if g.gate == nil {
		return nil
	}
	select {
	case <-g.gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *stubGateway) PushProduct(_ context.Context, req *integration.PushProductRequest) (*integration.PushProductResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := req.ExternalID
	created := id == ""
	if created {
		g.nextID++
		id = fmt.Sprintf("GN-%03d", g.nextID)
	}
	g.products[id] = &integration.RemoteProduct{ExternalID: id, Name: req.Name, Variants: req.Variants}
	return &integration.PushProductResult{ExternalID: id, Created: created}, nil
}

func (g *stubGateway) GetProduct(_ context.Context, externalID string) (*integration.RemoteProduct, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.products[externalID]
	if !ok {
		return nil, integration.NewRemoteError("get_product", integration.ErrPlatformNotFound)
	}
	return p, nil
}

func (g *stubGateway) ListStock(_ context.Context, skus []string) ([]integration.RemoteStock, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []integration.RemoteStock
	for _, p := range g.products {
		for _, v := range p.Variants {
			for _, sku := range skus {
				if v.SKU == sku {
					out = append(out, integration.RemoteStock{SKU: v.SKU, Stock: v.Stock})
				}
			}
		}
	}
	return out, nil
}

func (g *stubGateway) PushOrder(_ context.Context, req *integration.PushOrderRequest) (*integration.PushOrderResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pushed = append(g.pushed, req)
	return &integration.PushOrderResult{ExternalOrderID: "GO-" + req.OrderNumber, Accepted: true}, nil
}

var _ integration.MarketplaceGateway = (*stubGateway)(nil)
