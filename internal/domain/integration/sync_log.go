package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/shared"
)

// SyncLogType identifies the kind of synchronization attempt
type SyncLogType string

const (
	SyncLogTypePullStock   SyncLogType = "pull_stock"
	SyncLogTypePushOrder   SyncLogType = "push_order"
	SyncLogTypePullProduct SyncLogType = "pull_product"
	SyncLogTypePushProduct SyncLogType = "push_product"
	SyncLogTypeSyncAll     SyncLogType = "sync_all"
)

// IsValid returns true if the type is known
func (t SyncLogType) IsValid() bool {
	switch t {
	case SyncLogTypePullStock, SyncLogTypePushOrder, SyncLogTypePullProduct,
		SyncLogTypePushProduct, SyncLogTypeSyncAll:
		return true
	}
	return false
}

// SyncLogStatus is the outcome of a synchronization attempt
type SyncLogStatus string

const (
	SyncLogStatusSuccess   SyncLogStatus = "success"
	SyncLogStatusFailed    SyncLogStatus = "failed"
	SyncLogStatusCompleted SyncLogStatus = "completed"
	SyncLogStatusPartial   SyncLogStatus = "partial"
)

// IsValid returns true if the status is known
func (s SyncLogStatus) IsValid() bool {
	switch s {
	case SyncLogStatusSuccess, SyncLogStatusFailed, SyncLogStatusCompleted, SyncLogStatusPartial:
		return true
	}
	return false
}

// AllowsStatus reports whether a log of this type may carry status.
// Batch runs report completed/partial/failed; single operations success/failed.
func (t SyncLogType) AllowsStatus(s SyncLogStatus) bool {
	if t == SyncLogTypeSyncAll {
		return s == SyncLogStatusCompleted || s == SyncLogStatusPartial || s == SyncLogStatusFailed
	}
	return s == SyncLogStatusSuccess || s == SyncLogStatusFailed
}

// SyncLog is an immutable record of one synchronization attempt.
// It is correlated to products/orders through its payload, not by key.
type SyncLog struct {
	ID               int64
	Type             SyncLogType
	Status           SyncLogStatus
	ErrorMessage     *string
	PayloadSent      json.RawMessage
	ResponseReceived json.RawMessage
	CreatedAt        time.Time
}

// NewSyncLog builds a log entry. payload and response are snapshotted as JSON;
// a non-nil cause is stored as the error message.
func NewSyncLog(typ SyncLogType, status SyncLogStatus, payload, response any, cause error) (*SyncLog, error) {
	if !typ.IsValid() {
		return nil, shared.NewDomainError("INVALID_SYNC_LOG_TYPE", fmt.Sprintf("Unknown sync log type %q", typ))
	}
	if !typ.AllowsStatus(status) {
		return nil, shared.NewDomainError(ErrInvalidLogStatus.Code,
			fmt.Sprintf("Status %q is not valid for %s logs", status, typ))
	}

	sent, err := snapshot(payload)
	if err != nil {
		return nil, fmt.Errorf("snapshot payload: %w", err)
	}
	received, err := snapshot(response)
	if err != nil {
		return nil, fmt.Errorf("snapshot response: %w", err)
	}

	log := &SyncLog{
		Type:             typ,
		Status:           status,
		PayloadSent:      sent,
		ResponseReceived: received,
		CreatedAt:        time.Now(),
	}
	if cause != nil {
		msg := cause.Error()
		log.ErrorMessage = &msg
	}
	return log, nil
}

func snapshot(v any) (json.RawMessage, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return t, nil
	case []byte:
		if json.Valid(t) {
			return json.RawMessage(t), nil
		}
		return json.Marshal(string(t))
	}
	return json.Marshal(v)
}

// SyncLogFilter narrows a sync log listing
type SyncLogFilter struct {
	shared.Filter
	Type   SyncLogType
	Status SyncLogStatus
}

// SyncLogRepository is append-only: there is no update or delete.
type SyncLogRepository interface {
	Append(ctx context.Context, log *SyncLog) error
	FindByID(ctx context.Context, id int64) (*SyncLog, error)
	List(ctx context.Context, filter SyncLogFilter) ([]*SyncLog, int64, error)
}
