package integration

import (
	"time"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/catalog"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
	"github.com/google/uuid"
)

// ReasonAlreadyRunning is reported when a sync-all is refused
const ReasonAlreadyRunning = "already running"

// StartResult answers a sync-all request
type StartResult struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
	RunID    string `json:"runId,omitempty"`
	DryRun   bool   `json:"dryRun"`
}

// ItemOutcome is what sync-all did with one product
type ItemOutcome string

const (
	ItemUpdated   ItemOutcome = "updated"
	ItemUnchanged ItemOutcome = "unchanged"
	ItemSkipped   ItemOutcome = "skipped"
	ItemFailed    ItemOutcome = "failed"
)

// ItemResult is the per-product line of a sync-all summary
type ItemResult struct {
	ProductID         uuid.UUID               `json:"productId"`
	ExternalProductID string                  `json:"externalProductId,omitempty"`
	Outcome           ItemOutcome             `json:"outcome"`
	Changes           []catalog.VariantChange `json:"changes,omitempty"`
	Error             string                  `json:"error,omitempty"`
}

// SyncAllSummary is stored as the response of the sync_all log entry
type SyncAllSummary struct {
	RunID      string       `json:"runId"`
	DryRun     bool         `json:"dryRun"`
	StartedAt  time.Time    `json:"startedAt"`
	FinishedAt time.Time    `json:"finishedAt"`
	Total      int          `json:"total"`
	Updated    int          `json:"updated"`
	Unchanged  int          `json:"unchanged"`
	Skipped    int          `json:"skipped"`
	Failed     int          `json:"failed"`
	Error      string       `json:"error,omitempty"`
	Items      []ItemResult `json:"items"`
}

func (s *SyncAllSummary) add(item ItemResult) {
	s.Total++
	switch item.Outcome {
	case ItemUpdated:
		s.Updated++
	case ItemUnchanged:
		s.Unchanged++
	case ItemSkipped:
		s.Skipped++
	case ItemFailed:
		s.Failed++
	}
	s.Items = append(s.Items, item)
}

// Status classifies the run: completed when nothing failed, partial when some
// items failed and some succeeded, failed otherwise.
func (s *SyncAllSummary) Status() integration.SyncLogStatus {
	succeeded := s.Updated + s.Unchanged
	failed := s.Failed
	if s.Error != "" {
		failed++
	}
	switch {
	case failed == 0:
		return integration.SyncLogStatusCompleted
	case succeeded > 0:
		return integration.SyncLogStatusPartial
	default:
		return integration.SyncLogStatusFailed
	}
}

// SyncAllPayload is stored as the payload of the sync_all log entry
type SyncAllPayload struct {
	RunID  string `json:"runId"`
	DryRun bool   `json:"dryRun"`
	Mode   string `json:"mode"`
}

func syncMode(dryRun bool) string {
	if dryRun {
		return "dry-run"
	}
	return "live"
}

// PullResult describes a pull-product outcome
type PullResult struct {
	ProductID         uuid.UUID               `json:"productId"`
	ExternalProductID string                  `json:"externalProductId"`
	Changes           []catalog.VariantChange `json:"changes"`
	Badge             integration.SyncBadge   `json:"badge"`
}

// PushResult describes a push-product outcome
type PushResult struct {
	ProductID         uuid.UUID             `json:"productId"`
	ExternalProductID string                `json:"externalProductId"`
	Created           bool                  `json:"created"`
	Badge             integration.SyncBadge `json:"badge"`
}

// StockResult describes a pull-stock outcome
type StockResult struct {
	Products int                     `json:"products"`
	Changes  []catalog.VariantChange `json:"changes"`
}

// OrderPushResult describes a push-order outcome
type OrderPushResult struct {
	OrderID         uuid.UUID `json:"orderId"`
	OrderNumber     string    `json:"orderNumber"`
	ExternalOrderID string    `json:"externalOrderId,omitempty"`
}

// SyncStatus reports whether a sync-all is currently running
type SyncStatus struct {
	Running   bool       `json:"running"`
	RunID     string     `json:"runId,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// BadgeResult is the sync badge of a product
type BadgeResult struct {
	ProductID         uuid.UUID             `json:"productId"`
	ExternalProductID string                `json:"externalProductId,omitempty"`
	Badge             integration.SyncBadge `json:"badge"`
	LastSyncedAt      *time.Time            `json:"lastSyncedAt,omitempty"`
	LastError         string                `json:"lastError,omitempty"`
}

type productPayload struct {
	ProductID  uuid.UUID                       `json:"productId"`
	ExternalID string                          `json:"externalProductId,omitempty"`
	Request    *integration.PushProductRequest `json:"request,omitempty"`
}

type pullResponse struct {
	Remote  *integration.RemoteProduct `json:"remote"`
	Changes []catalog.VariantChange    `json:"changes"`
}

type stockPayload struct {
	ProductIDs []uuid.UUID `json:"productIds"`
	SKUs       []string    `json:"skus"`
}

type stockResponse struct {
	Stock   []integration.RemoteStock `json:"stock"`
	Changes []catalog.VariantChange   `json:"changes"`
}

type orderPayload struct {
	OrderID uuid.UUID                     `json:"orderId"`
	Request *integration.PushOrderRequest `json:"request"`
}
