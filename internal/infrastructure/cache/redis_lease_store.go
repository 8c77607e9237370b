package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
	"github.com/redis/go-redis/v9"
)

const defaultLeaseKeyPrefix = "sneakersflash:lease:"

// renewScript extends the key only while the caller still holds it
var renewScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// releaseScript deletes the key only while the caller still holds it
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLeaseStore implements integration.LeaseStore on Redis keys.
// The key value is the holder; the key TTL is the lease expiry.
type RedisLeaseStore struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisLeaseStore connects to Redis and verifies the connection
func NewRedisLeaseStore(cfg RedisConfig) (*RedisLeaseStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisLeaseStore{client: client, keyPrefix: defaultLeaseKeyPrefix}, nil
}

// NewRedisLeaseStoreWithClient creates a store with an existing Redis client
func NewRedisLeaseStoreWithClient(client *redis.Client, keyPrefix string) *RedisLeaseStore {
	if keyPrefix == "" {
		keyPrefix = defaultLeaseKeyPrefix
	}
	return &RedisLeaseStore{client: client, keyPrefix: keyPrefix}
}

// Acquire sets the key only if it does not exist (SET NX PX)
func (s *RedisLeaseStore) Acquire(ctx context.Context, name, holder string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.keyPrefix+name, holder, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lease %s: %w", name, err)
	}
	return ok, nil
}

// Renew pushes the expiry out by ttl if holder still owns the lease
func (s *RedisLeaseStore) Renew(ctx context.Context, name, holder string, ttl time.Duration) (bool, error) {
	n, err := renewScript.Run(ctx, s.client, []string{s.keyPrefix + name}, holder, ttl.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("failed to renew lease %s: %w", name, err)
	}
	return n == 1, nil
}

// Release deletes the lease if holder owns it
func (s *RedisLeaseStore) Release(ctx context.Context, name, holder string) error {
	if err := releaseScript.Run(ctx, s.client, []string{s.keyPrefix + name}, holder).Err(); err != nil {
		return fmt.Errorf("failed to release lease %s: %w", name, err)
	}
	return nil
}

// Current reads the holder and remaining TTL of a live lease
func (s *RedisLeaseStore) Current(ctx context.Context, name string) (*integration.Lease, error) {
	key := s.keyPrefix + name
	pipe := s.client.Pipeline()
	get := pipe.Get(ctx, key)
	pttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to read lease %s: %w", name, err)
	}

	holder, err := get.Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	remaining := pttl.Val()
	if remaining <= 0 {
		return nil, nil
	}
	return &integration.Lease{
		Name:      name,
		Holder:    holder,
		ExpiresAt: time.Now().Add(remaining),
	}, nil
}

// Close closes the Redis client
func (s *RedisLeaseStore) Close() error {
	return s.client.Close()
}

// GetClient returns the underlying Redis client
func (s *RedisLeaseStore) GetClient() *redis.Client {
	return s.client
}

// Ensure RedisLeaseStore implements integration.LeaseStore
var _ integration.LeaseStore = (*RedisLeaseStore)(nil)
