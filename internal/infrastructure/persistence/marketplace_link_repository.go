package persistence

import (
	"context"
	"errors"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/shared"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMarketplaceLinkRepository implements integration.MarketplaceLinkRepository using GORM
type GormMarketplaceLinkRepository struct {
	db *gorm.DB
}

// NewGormMarketplaceLinkRepository creates a new GormMarketplaceLinkRepository
func NewGormMarketplaceLinkRepository(db *gorm.DB) *GormMarketplaceLinkRepository {
	return &GormMarketplaceLinkRepository{db: db}
}

// FindByProductID returns the link for a product, or shared.ErrNotFound
func (r *GormMarketplaceLinkRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*integration.MarketplaceLink, error) {
	var model models.MarketplaceLinkModel
	if err := r.db.WithContext(ctx).First(&model, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByExternalID resolves a marketplace product id to its link
func (r *GormMarketplaceLinkRepository) FindByExternalID(ctx context.Context, externalID string) (*integration.MarketplaceLink, error) {
	var model models.MarketplaceLinkModel
	if err := r.db.WithContext(ctx).First(&model, "external_product_id = ?", externalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProductIDs returns links keyed by product id. Products without a row are absent.
func (r *GormMarketplaceLinkRepository) FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*integration.MarketplaceLink, error) {
	links := make(map[uuid.UUID]*integration.MarketplaceLink, len(productIDs))
	if len(productIDs) == 0 {
		return links, nil
	}
	var rows []models.MarketplaceLinkModel
	if err := r.db.WithContext(ctx).Where("product_id IN ?", productIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		links[rows[i].ProductID] = rows[i].ToDomain()
	}
	return links, nil
}

// FindLinked returns every link that has an external id
func (r *GormMarketplaceLinkRepository) FindLinked(ctx context.Context) ([]*integration.MarketplaceLink, error) {
	var rows []models.MarketplaceLinkModel
	if err := r.db.WithContext(ctx).
		Where("external_product_id IS NOT NULL AND external_product_id <> ''").
		Order("product_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	links := make([]*integration.MarketplaceLink, len(rows))
	for i := range rows {
		links[i] = rows[i].ToDomain()
	}
	return links, nil
}

// SaveWithLock inserts a new link (Version 0) or updates a stored one while
// its version is unchanged. An external id that is already stored is never
// replaced.
func (r *GormMarketplaceLinkRepository) SaveWithLock(ctx context.Context, link *integration.MarketplaceLink) error {
	model := &models.MarketplaceLinkModel{}
	model.FromDomain(link)

	if link.Version == 0 {
		model.Version = 1
		result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		link.Version = 1
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(&models.MarketplaceLinkModel{}).
		Where("product_id = ? AND version = ?", link.ProductID, link.Version).
		Updates(map[string]any{
			"external_product_id": gorm.Expr("COALESCE(external_product_id, ?)", model.ExternalProductID),
			"sync_status":         model.SyncStatus,
			"last_synced_at":      model.LastSyncedAt,
			"last_error":          model.LastError,
			"version":             gorm.Expr("version + 1"),
			"updated_at":          model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.MarketplaceLinkModel{}).
			Where("product_id = ?", link.ProductID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrConcurrencyConflict
	}
	link.Version++
	return nil
}

// Ensure GormMarketplaceLinkRepository implements integration.MarketplaceLinkRepository
var _ integration.MarketplaceLinkRepository = (*GormMarketplaceLinkRepository)(nil)
