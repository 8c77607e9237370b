package cache

import (
	"fmt"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/infrastructure/config"
	"go.uber.org/zap"
)

// LeaseStoreFactory picks the lease backend named in configuration
type LeaseStoreFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowDatabaseFallback bool
}

// LeaseStoreFactoryOption is a functional option for configuring the factory
type LeaseStoreFactoryOption func(*LeaseStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) LeaseStoreFactoryOption {
	return func(f *LeaseStoreFactory) {
		f.logger = logger
	}
}

// WithDatabaseFallback controls whether an unreachable Redis falls back to
// the database lease table. Default is true.
func WithDatabaseFallback(allow bool) LeaseStoreFactoryOption {
	return func(f *LeaseStoreFactory) {
		f.allowDatabaseFallback = allow
	}
}

// NewLeaseStoreFactory creates a new factory
func NewLeaseStoreFactory(cfg config.RedisConfig, opts ...LeaseStoreFactoryOption) *LeaseStoreFactory {
	f := &LeaseStoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowDatabaseFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRedisStore connects to Redis and returns a lease store on it
func (f *LeaseStoreFactory) CreateRedisStore() (*RedisLeaseStore, error) {
	store, err := NewRedisLeaseStore(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis lease store: %w", err)
	}
	return store, nil
}

// CreateStore returns the lease store for backend. database is the
// table-backed store used for the database backend and as the Redis fallback.
// The in-memory store only excludes runs inside this process.
func (f *LeaseStoreFactory) CreateStore(backend string, database integration.LeaseStore) (integration.LeaseStore, error) {
	switch backend {
	case config.LeaseBackendMemory:
		f.logger.Warn("using in-memory lease store; sync-all runs are only exclusive within this process")
		return NewInMemoryLeaseStore(), nil
	case config.LeaseBackendRedis:
		store, err := f.CreateRedisStore()
		if err == nil {
			f.logger.Info("using Redis lease store")
			return store, nil
		}
		if !f.allowDatabaseFallback || database == nil {
			return nil, fmt.Errorf("Redis required for leases but unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to database lease store", zap.Error(err))
		return database, nil
	case config.LeaseBackendDatabase, "":
		if database == nil {
			return nil, fmt.Errorf("database lease store not provided")
		}
		f.logger.Info("using database lease store")
		return database, nil
	default:
		return nil, fmt.Errorf("unknown lease backend %q", backend)
	}
}
