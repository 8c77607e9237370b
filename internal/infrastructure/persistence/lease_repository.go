package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLeaseStore implements integration.LeaseStore on the sync_leases table.
// It survives restarts and is shared by every instance using the database.
type GormLeaseStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormLeaseStore creates a new GormLeaseStore
func NewGormLeaseStore(db *gorm.DB) *GormLeaseStore {
	return &GormLeaseStore{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Acquire takes the lease if it is free or expired
func (s *GormLeaseStore) Acquire(ctx context.Context, name, holder string, ttl time.Duration) (bool, error) {
	now := s.now()
	acquired := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("name = ? AND expires_at <= ?", name, now).
			Delete(&models.SyncLeaseModel{}).Error; err != nil {
			return err
		}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.SyncLeaseModel{
			Name:       name,
			Holder:     holder,
			ExpiresAt:  now.Add(ttl),
			AcquiredAt: now,
		})
		if result.Error != nil {
			return result.Error
		}
		acquired = result.RowsAffected == 1
		return nil
	})
	if err != nil {
		return false, err
	}
	return acquired, nil
}

// Renew extends the lease if holder still owns it and it has not expired
func (s *GormLeaseStore) Renew(ctx context.Context, name, holder string, ttl time.Duration) (bool, error) {
	now := s.now()
	result := s.db.WithContext(ctx).
		Model(&models.SyncLeaseModel{}).
		Where("name = ? AND holder = ? AND expires_at > ?", name, holder, now).
		Update("expires_at", now.Add(ttl))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Release drops the lease if holder owns it
func (s *GormLeaseStore) Release(ctx context.Context, name, holder string) error {
	return s.db.WithContext(ctx).
		Where("name = ? AND holder = ?", name, holder).
		Delete(&models.SyncLeaseModel{}).Error
}

// Current returns the live lease for name, or nil
func (s *GormLeaseStore) Current(ctx context.Context, name string) (*integration.Lease, error) {
	var model models.SyncLeaseModel
	err := s.db.WithContext(ctx).
		Where("name = ? AND expires_at > ?", name, s.now()).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormLeaseStore implements integration.LeaseStore
var _ integration.LeaseStore = (*GormLeaseStore)(nil)
