package integration

import (
	"context"
	"time"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/catalog"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/order"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockGateway is a mock MarketplaceGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Name() string { return "mock" }

func (m *MockGateway) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockGateway) PushProduct(ctx context.Context, req *integration.PushProductRequest) (*integration.PushProductResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.PushProductResult), args.Error(1)
}

func (m *MockGateway) GetProduct(ctx context.Context, externalID string) (*integration.RemoteProduct, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.RemoteProduct), args.Error(1)
}

func (m *MockGateway) ListStock(ctx context.Context, skus []string) ([]integration.RemoteStock, error) {
	args := m.Called(ctx, skus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.RemoteStock), args.Error(1)
}

func (m *MockGateway) PushOrder(ctx context.Context, req *integration.PushOrderRequest) (*integration.PushOrderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.PushOrderResult), args.Error(1)
}

// MockProductRepository is a mock catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]*catalog.Product, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) UpdateVariants(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

// MockLinkRepository is a mock integration.MarketplaceLinkRepository
type MockLinkRepository struct {
	mock.Mock
}

func (m *MockLinkRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*integration.MarketplaceLink, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.MarketplaceLink), args.Error(1)
}

func (m *MockLinkRepository) FindByExternalID(ctx context.Context, externalID string) (*integration.MarketplaceLink, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.MarketplaceLink), args.Error(1)
}

func (m *MockLinkRepository) FindByProductIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*integration.MarketplaceLink, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*integration.MarketplaceLink), args.Error(1)
}

func (m *MockLinkRepository) FindLinked(ctx context.Context) ([]*integration.MarketplaceLink, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*integration.MarketplaceLink), args.Error(1)
}

func (m *MockLinkRepository) SaveWithLock(ctx context.Context, link *integration.MarketplaceLink) error {
	return m.Called(ctx, link).Error(0)
}

// MockSyncLogRepository is a mock integration.SyncLogRepository
type MockSyncLogRepository struct {
	mock.Mock
}

func (m *MockSyncLogRepository) Append(ctx context.Context, log *integration.SyncLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *MockSyncLogRepository) FindByID(ctx context.Context, id int64) (*integration.SyncLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.SyncLog), args.Error(1)
}

func (m *MockSyncLogRepository) List(ctx context.Context, filter integration.SyncLogFilter) ([]*integration.SyncLog, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*integration.SyncLog), args.Get(1).(int64), args.Error(2)
}

// MockOrderRepository is a mock order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter order.Filter) ([]*order.Order, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*order.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context) (map[order.Status]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[order.Status]int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

// MockLeaseStore is a mock integration.LeaseStore
type MockLeaseStore struct {
	mock.Mock
}

func (m *MockLeaseStore) Acquire(ctx context.Context, name, holder string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, name, holder, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeaseStore) Renew(ctx context.Context, name, holder string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, name, holder, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeaseStore) Release(ctx context.Context, name, holder string) error {
	return m.Called(ctx, name, holder).Error(0)
}

func (m *MockLeaseStore) Current(ctx context.Context, name string) (*integration.Lease, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.Lease), args.Error(1)
}

var (
	_ integration.MarketplaceGateway        = (*MockGateway)(nil)
	_ catalog.ProductRepository             = (*MockProductRepository)(nil)
	_ integration.MarketplaceLinkRepository = (*MockLinkRepository)(nil)
	_ integration.SyncLogRepository         = (*MockSyncLogRepository)(nil)
	_ order.Repository                      = (*MockOrderRepository)(nil)
	_ integration.LeaseStore                = (*MockLeaseStore)(nil)
)
