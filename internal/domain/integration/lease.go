package integration

import (
	"context"
	"time"
)

// SyncAllLeaseName guards the catalog-wide reconcile
const SyncAllLeaseName = "ginee:sync_all"

// Lease is a named, expiring claim held by one run
type Lease struct {
	Name      string    `json:"name"`
	Holder    string    `json:"holder"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsExpired reports whether the lease has lapsed at now
func (l *Lease) IsExpired(now time.Time) bool {
	return l == nil || !now.Before(l.ExpiresAt)
}

// LeaseStore hands out mutually exclusive leases.
// Acquire succeeds when the name is free or its previous lease expired.
// Renew and Release only act for the current holder.
type LeaseStore interface {
	Acquire(ctx context.Context, name, holder string, ttl time.Duration) (bool, error)
	Renew(ctx context.Context, name, holder string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, name, holder string) error
	// Current returns the live lease, or nil when the name is free.
	Current(ctx context.Context, name string) (*Lease, error)
}
