package cache

import (
	"context"
	"sync"
	"time"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
)

// InMemoryLeaseStore implements integration.LeaseStore with a map.
// Suitable for single-instance deployments and tests.
type InMemoryLeaseStore struct {
	mu     sync.Mutex
	leases map[string]integration.Lease
	now    func() time.Time
}

// NewInMemoryLeaseStore creates an empty store
func NewInMemoryLeaseStore() *InMemoryLeaseStore {
	return &InMemoryLeaseStore{
		leases: make(map[string]integration.Lease),
		now:    time.Now,
	}
}

// Acquire takes the lease if it is free or expired
func (s *InMemoryLeaseStore) Acquire(_ context.Context, name, holder string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if l, ok := s.leases[name]; ok && !l.IsExpired(now) {
		return false, nil
	}
	s.leases[name] = integration.Lease{Name: name, Holder: holder, ExpiresAt: now.Add(ttl)}
	return true, nil
}

// Renew extends a live lease owned by holder
func (s *InMemoryLeaseStore) Renew(_ context.Context, name, holder string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	l, ok := s.leases[name]
	if !ok || l.Holder != holder || l.IsExpired(now) {
		return false, nil
	}
	l.ExpiresAt = now.Add(ttl)
	s.leases[name] = l
	return true, nil
}

// Release drops the lease if holder owns it
func (s *InMemoryLeaseStore) Release(_ context.Context, name, holder string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.leases[name]; ok && l.Holder == holder {
		delete(s.leases, name)
	}
	return nil
}

// Current returns a copy of the live lease, or nil
func (s *InMemoryLeaseStore) Current(_ context.Context, name string) (*integration.Lease, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.leases[name]
	if !ok || l.IsExpired(s.now()) {
		return nil, nil
	}
	return &l, nil
}

// Ensure InMemoryLeaseStore implements integration.LeaseStore
var _ integration.LeaseStore = (*InMemoryLeaseStore)(nil)
