package catalog

import (
	"context"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID loads a product with its variants
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs loads several products; missing ids are skipped
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Product, error)

	// FindActive pages through active products ordered by creation time
	FindActive(ctx context.Context, filter shared.Filter) ([]*Product, int64, error)

	// Save creates a product and its variants
	Save(ctx context.Context, product *Product) error

	// UpdateVariants persists variant stock/price and the product base price.
	// It returns shared.ErrConcurrencyConflict when product.Version is stale.
	UpdateVariants(ctx context.Context, product *Product) error
}

// ErrProductNotFound is returned when a product does not exist
var ErrProductNotFound = shared.NewDomainError("NOT_FOUND", "Product not found")
