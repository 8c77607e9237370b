package order

import (
	"context"
	"time"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/shared"
	"github.com/google/uuid"
)

// Filter narrows an order listing
type Filter struct {
	shared.Filter
	Status        Status
	PaymentMethod PaymentMethod
	StartDate     *time.Time
	EndDate       *time.Time
}

// Repository is the order store. Orders are never deleted.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context, filter Filter) ([]*Order, int64, error)
	CountByStatus(ctx context.Context) (map[Status]int64, error)
	Save(ctx context.Context, o *Order) error
	// SaveWithLock persists a status change only if the stored version still
	// matches o.Version, then bumps the version. A lost race returns
	// shared.ErrConcurrencyConflict.
	SaveWithLock(ctx context.Context, o *Order) error
}
