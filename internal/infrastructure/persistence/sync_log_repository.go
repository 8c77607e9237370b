package persistence

import (
	"context"
	"errors"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSyncLogRepository implements integration.SyncLogRepository using GORM.
// Rows are only ever inserted.
type GormSyncLogRepository struct {
	db *gorm.DB
}

// NewGormSyncLogRepository creates a new GormSyncLogRepository
func NewGormSyncLogRepository(db *gorm.DB) *GormSyncLogRepository {
	return &GormSyncLogRepository{db: db}
}

// Append inserts a log entry and sets its ID
func (r *GormSyncLogRepository) Append(ctx context.Context, log *integration.SyncLog) error {
	model := &models.SyncLogModel{}
	model.FromDomain(log)
	model.ID = 0
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	log.ID = model.ID
	return nil
}

// FindByID finds a log entry by its ID
func (r *GormSyncLogRepository) FindByID(ctx context.Context, id int64) (*integration.SyncLog, error) {
	var model models.SyncLogModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, integration.ErrSyncLogNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns one page of log entries, newest first by default
func (r *GormSyncLogRepository) List(ctx context.Context, filter integration.SyncLogFilter) ([]*integration.SyncLog, int64, error) {
	filter.Normalize()
	base := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&models.SyncLogModel{})
		if filter.Type != "" {
			query = query.Where("type = ?", filter.Type)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		return query
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column := ValidateSortField(filter.OrderBy, SyncLogSortFields, "created_at")
	dir := ValidateSortOrder(filter.OrderDir)
	var rows []models.SyncLogModel
	if err := base().
		Order(column + " " + dir).
		Order("id " + dir).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	logs := make([]*integration.SyncLog, len(rows))
	for i := range rows {
		logs[i] = rows[i].ToDomain()
	}
	return logs, total, nil
}

// Ensure GormSyncLogRepository implements integration.SyncLogRepository
var _ integration.SyncLogRepository = (*GormSyncLogRepository)(nil)
