package integration

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LinkSyncStatus is the last recorded push/pull outcome for a linked product
type LinkSyncStatus string

const (
	LinkSyncStatusSynced  LinkSyncStatus = "synced"
	LinkSyncStatusPending LinkSyncStatus = "pending"
	LinkSyncStatusFailed  LinkSyncStatus = "failed"
)

// SyncBadge is what the admin panel shows next to a product
type SyncBadge string

const (
	SyncBadgeUnlinked SyncBadge = "unlinked"
	SyncBadgeSynced   SyncBadge = "synced"
	SyncBadgePending  SyncBadge = "pending"
	SyncBadgeFailed   SyncBadge = "failed"
)

// MarketplaceLink maps a local product to its marketplace listing.
// It is also the read-optimized projection behind the sync badge.
type MarketplaceLink struct {
	ProductID         uuid.UUID
	ExternalProductID *string
	SyncStatus        LinkSyncStatus
	LastSyncedAt      *time.Time
	LastError         *string
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewMarketplaceLink creates an unlinked entry for a product. Version 0
// means the link has not been stored yet.
func NewMarketplaceLink(productID uuid.UUID) *MarketplaceLink {
	now := time.Now()
	return &MarketplaceLink{
		ProductID: productID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsLinked returns true once an external id has been assigned
func (l *MarketplaceLink) IsLinked() bool {
	return l != nil && l.ExternalProductID != nil && *l.ExternalProductID != ""
}

// ExternalID returns the external id or "" when unlinked
func (l *MarketplaceLink) ExternalID() string {
	if !l.IsLinked() {
		return ""
	}
	return *l.ExternalProductID
}

// Link assigns the external id. Only the first assignment sticks.
func (l *MarketplaceLink) Link(externalID string) bool {
	externalID = strings.TrimSpace(externalID)
	if l.IsLinked() || externalID == "" {
		return false
	}
	l.ExternalProductID = &externalID
	l.UpdatedAt = time.Now()
	return true
}

// MarkPending flags an in-flight push/pull. Persisting it is what claims the
// product for a single writer.
func (l *MarketplaceLink) MarkPending(now time.Time) {
	l.SyncStatus = LinkSyncStatusPending
	l.UpdatedAt = now
}

// InFlight reports whether another push/pull marked the link pending less
// than ttl ago. Older marks belong to a run that died and may be taken over.
func (l *MarketplaceLink) InFlight(now time.Time, ttl time.Duration) bool {
	return l != nil && l.SyncStatus == LinkSyncStatusPending && now.Sub(l.UpdatedAt) < ttl
}

// Restore puts back the status that was current before MarkPending
func (l *MarketplaceLink) Restore(status LinkSyncStatus, now time.Time) {
	l.SyncStatus = status
	l.UpdatedAt = now
}

// RecordSuccess stores a successful push/pull
func (l *MarketplaceLink) RecordSuccess(now time.Time) {
	l.SyncStatus = LinkSyncStatusSynced
	l.LastSyncedAt = &now
	l.LastError = nil
	l.UpdatedAt = now
}

// RecordFailure stores a failed push/pull
func (l *MarketplaceLink) RecordFailure(msg string, now time.Time) {
	l.SyncStatus = LinkSyncStatusFailed
	l.LastError = &msg
	l.UpdatedAt = now
}

// Badge derives the admin badge. A nil link is unlinked; a linked product
// without a recorded outcome reads as pending.
func (l *MarketplaceLink) Badge() SyncBadge {
	if !l.IsLinked() {
		return SyncBadgeUnlinked
	}
	switch l.SyncStatus {
	case LinkSyncStatusSynced:
		return SyncBadgeSynced
	case LinkSyncStatusFailed:
		return SyncBadgeFailed
	default:
		return SyncBadgePending
	}
}

// MarketplaceLinkRepository stores links.
//
// SaveWithLock inserts a link whose Version is 0 and otherwise updates the row
// only while its stored version still equals link.Version. A writer that lost
// the race gets shared.ErrConcurrencyConflict. On success link.Version holds
// the stored version.
type MarketplaceLinkRepository interface {
	FindByProductID(ctx context.Context, productID uuid.UUID) (*MarketplaceLink, error)
	FindByExternalID(ctx context.Context, externalID string) (*MarketplaceLink, error)
	FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*MarketplaceLink, error)
	FindLinked(ctx context.Context) ([]*MarketplaceLink, error)
	SaveWithLock(ctx context.Context, link *MarketplaceLink) error
}
