package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList reports tokens the issuer revoked before expiry.
// The issuing service writes the entries; this service only reads them.
type RevocationList interface {
	// IsBlacklisted checks if a token's JTI was revoked
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
	// IsUserTokenInvalidated reports whether every token of the user issued
	// at or before the stored invalidation time was revoked
	IsUserTokenInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error)
}

const defaultBlacklistPrefix = "token:blacklist:"

// RedisTokenBlacklist reads the issuer's revocation keys from Redis
type RedisTokenBlacklist struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisTokenBlacklistWithClient creates a revocation reader on an existing client
func NewRedisTokenBlacklistWithClient(client *redis.Client, keyPrefix string) *RedisTokenBlacklist {
	if keyPrefix == "" {
		keyPrefix = defaultBlacklistPrefix
	}
	return &RedisTokenBlacklist{client: client, keyPrefix: keyPrefix}
}

func (b *RedisTokenBlacklist) jtiKey(jti string) string {
	return b.keyPrefix + "jti:" + jti
}

func (b *RedisTokenBlacklist) userKey(userID string) string {
	return b.keyPrefix + "user:" + userID
}

// IsBlacklisted checks if a token's JTI key exists
func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	exists, err := b.client.Exists(ctx, b.jtiKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return exists > 0, nil
}

// IsUserTokenInvalidated compares issuedAt with the stored unix timestamp
func (b *RedisTokenBlacklist) IsUserTokenInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	raw, err := b.client.Get(ctx, b.userKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user token invalidation: %w", err)
	}
	invalidatedAt, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("failed to parse invalidation timestamp: %w", err)
	}
	return tokenIssuedAt.Unix() <= invalidatedAt, nil
}

// Ensure RedisTokenBlacklist implements RevocationList
var _ RevocationList = (*RedisTokenBlacklist)(nil)

// InMemoryTokenBlacklist is a RevocationList for tests and single-node setups
type InMemoryTokenBlacklist struct {
	mu          sync.RWMutex
	jtis        map[string]time.Time
	invalidated map[string]time.Time
}

// NewInMemoryTokenBlacklist creates an empty list
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		jtis:        make(map[string]time.Time),
		invalidated: make(map[string]time.Time),
	}
}

// Revoke marks a jti as revoked for ttl
func (b *InMemoryTokenBlacklist) Revoke(jti string, ttl time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.jtis[jti] = time.Now().Add(ttl)
}

// InvalidateUser revokes every token of the user issued up to now
func (b *InMemoryTokenBlacklist) InvalidateUser(userID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.invalidated[userID] = time.Now()
}

// IsBlacklisted checks if a jti is revoked and not yet expired
func (b *InMemoryTokenBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	exp, ok := b.jtis[jti]
	return ok && time.Now().Before(exp), nil
}

// IsUserTokenInvalidated checks issuedAt against the invalidation time
func (b *InMemoryTokenBlacklist) IsUserTokenInvalidated(_ context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	at, ok := b.invalidated[userID]
	return ok && !tokenIssuedAt.After(at), nil
}

// Ensure InMemoryTokenBlacklist implements RevocationList
var _ RevocationList = (*InMemoryTokenBlacklist)(nil)
