package persistence

import (
	"context"

	appintegration "github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/application/integration"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/catalog"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
	"gorm.io/gorm"
)

// GormTransactionScope implements the sync TransactionScope using GORM transactions.
// Product changes, the link projection and the sync log entry commit together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appintegration.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// ProductRepo returns the product repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// LinkRepo returns the marketplace link repository scoped to the current transaction.
func (r *gormTransactionalRepositories) LinkRepo() integration.MarketplaceLinkRepository {
	return NewGormMarketplaceLinkRepository(r.tx)
}

// SyncLogRepo returns the sync log repository scoped to the current transaction.
func (r *gormTransactionalRepositories) SyncLogRepo() integration.SyncLogRepository {
	return NewGormSyncLogRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appintegration.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appintegration.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
