package integration

import (
	"context"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/catalog"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
)

// TransactionScope runs a unit of sync work atomically. Product updates, the
// marketplace link projection and the sync log entry either all commit or
// none do.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes repositories bound to one transaction
type TransactionalRepositories interface {
	ProductRepo() catalog.ProductRepository
	LinkRepo() integration.MarketplaceLinkRepository
	SyncLogRepo() integration.SyncLogRepository
}

// NoOpTransactionScope hands out the given repositories without a transaction.
// Useful for tests.
type NoOpTransactionScope struct {
	productRepo catalog.ProductRepository
	linkRepo    integration.MarketplaceLinkRepository
	syncLogRepo integration.SyncLogRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	linkRepo integration.MarketplaceLinkRepository,
	syncLogRepo integration.SyncLogRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{productRepo: productRepo, linkRepo: linkRepo, syncLogRepo: syncLogRepo}
}

// Execute calls fn directly
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository         { return s.productRepo }
func (s *NoOpTransactionScope) LinkRepo() integration.MarketplaceLinkRepository { return s.linkRepo }
func (s *NoOpTransactionScope) SyncLogRepo() integration.SyncLogRepository      { return s.syncLogRepo }

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
