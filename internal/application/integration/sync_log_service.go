package integration

import (
	"context"
	"fmt"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/shared"
)

// SyncLogList is a page of sync log entries
type SyncLogList struct {
	Items []*integration.SyncLog
	Meta  shared.PageMeta
}

// SyncLogService reads the append-only sync log
type SyncLogService struct {
	logs integration.SyncLogRepository
}

// NewSyncLogService creates a SyncLogService
func NewSyncLogService(logs integration.SyncLogRepository) *SyncLogService {
	return &SyncLogService{logs: logs}
}

// List returns the newest entries first, optionally narrowed by type and status
func (s *SyncLogService) List(ctx context.Context, filter integration.SyncLogFilter) (*SyncLogList, error) {
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, fmt.Sprintf("Unknown sync log type %q", filter.Type))
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, fmt.Sprintf("Unknown sync log status %q", filter.Status))
	}
	filter.Normalize()

	items, total, err := s.logs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &SyncLogList{Items: items, Meta: shared.NewPageMeta(total, filter.Page, filter.PageSize)}, nil
}

// Get returns one entry
func (s *SyncLogService) Get(ctx context.Context, id int64) (*integration.SyncLog, error) {
	if id <= 0 {
		return nil, integration.ErrSyncLogNotFound
	}
	return s.logs.FindByID(ctx, id)
}
