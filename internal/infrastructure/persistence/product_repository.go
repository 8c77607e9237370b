package persistence

import (
	"context"
	"errors"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/catalog"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/shared"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product with its variants
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Preload("Variants", orderVariants).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs loads several products; ids that do not exist are skipped
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Product, error) {
	if len(ids) == 0 {
		return []*catalog.Product{}, nil
	}
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).
		Preload("Variants", orderVariants).
		Where("id IN ?", ids).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// FindActive pages through active products
func (r *GormProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]*catalog.Product, int64, error) {
	filter.Normalize()
	base := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("is_active = ?", true)
		if filter.Search != "" {
			query = query.Where("LOWER(name) LIKE ?", likePattern(filter.Search))
		}
		return query
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column := ValidateSortField(filter.OrderBy, ProductSortFields, "created_at")
	var rows []models.ProductModel
	if err := base().
		Preload("Variants", orderVariants).
		Order(column + " " + ValidateSortOrder(filter.OrderDir)).
		Order("id ASC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toProducts(rows), total, nil
}

// Save creates a product and its variants
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(model).Error
	})
}

// UpdateVariants writes variant stock and price plus the product base price.
// The write only lands while the stored product version still equals
// product.Version; a stale snapshot gets shared.ErrConcurrencyConflict.
// Variants are never added or removed here.
func (r *GormProductRepository) UpdateVariants(ctx context.Context, product *catalog.Product) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ProductModel{}).
			Where("id = ? AND version = ?", product.ID, product.Version).
			Updates(map[string]any{
				"base_price": product.BasePrice,
				"version":    gorm.Expr("version + 1"),
				"updated_at": product.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.ProductModel{}).Where("id = ?", product.ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return catalog.ErrProductNotFound
			}
			return shared.ErrConcurrencyConflict
		}

		for _, v := range product.Variants {
			if err := tx.Model(&models.ProductVariantModel{}).
				Where("id = ? AND product_id = ?", v.ID, product.ID).
				Updates(map[string]any{
					"price":      v.Price,
					"stock":      v.Stock,
					"updated_at": v.UpdatedAt,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	product.Version++
	return nil
}

func orderVariants(db *gorm.DB) *gorm.DB {
	return db.Order("sku ASC")
}

func toProducts(rows []models.ProductModel) []*catalog.Product {
	products := make([]*catalog.Product, len(rows))
	for i := range rows {
		products[i] = rows[i].ToDomain()
	}
	return products
}

// Ensure GormProductRepository implements catalog.ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
