package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	appintegration "github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/application/integration"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
)

// SyncAllStarter starts a catalog-wide reconcile
type SyncAllStarter interface {
	StartSyncAll(ctx context.Context, dryRun bool) (*appintegration.StartResult, error)
}

// SyncAllSchedulerConfig holds configuration for the periodic sync-all
type SyncAllSchedulerConfig struct {
	// Interval between triggers
	Interval time.Duration
	// DryRun triggers diff-only runs
	DryRun bool
	// TriggerTimeout bounds the lease acquisition of one trigger
	TriggerTimeout time.Duration
}

// DefaultSyncAllSchedulerConfig returns default configuration
func DefaultSyncAllSchedulerConfig() SyncAllSchedulerConfig {
	return SyncAllSchedulerConfig{
		Interval:       6 * time.Hour,
		TriggerTimeout: 30 * time.Second,
	}
}

// Validate validates the configuration
func (c *SyncAllSchedulerConfig) Validate() error {
	if c.Interval < time.Minute {
		return ErrInvalidConfig
	}
	if c.TriggerTimeout <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// TriggerRecord is the outcome of one scheduled trigger
type TriggerRecord struct {
	At       time.Time
	Accepted bool
	RunID    string
	Reason   string
	Error    string
}

// SyncAllScheduler triggers sync-all on a fixed interval. Overlap with a
// running reconcile, on this or another instance, is rejected by the lease.
type SyncAllScheduler struct {
	config  SyncAllSchedulerConfig
	starter SyncAllStarter
	logger  *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	historyMu  sync.RWMutex
	history    []TriggerRecord
	maxHistory int
}

// NewSyncAllScheduler creates a new scheduler
func NewSyncAllScheduler(config SyncAllSchedulerConfig, starter SyncAllStarter, logger *zap.Logger) (*SyncAllScheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncAllScheduler{
		config:     config,
		starter:    starter,
		logger:     logger,
		history:    make([]TriggerRecord, 0, 20),
		maxHistory: 20,
	}, nil
}

// Start begins the ticker loop
func (s *SyncAllScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return nil
	}
	s.isRunning = true

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("Sync-all scheduler started",
		zap.Duration("interval", s.config.Interval),
		zap.Bool("dry_run", s.config.DryRun),
	)
	return nil
}

// Stop cancels the loop and waits for it to exit
func (s *SyncAllScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	cancel := s.cancel
	s.mu.Unlock()

	cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Sync-all scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Sync-all scheduler stop timed out")
		return ctx.Err()
	}
}

// IsRunning reports whether the loop is active
func (s *SyncAllScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// TriggerNow runs one trigger outside the ticker
func (s *SyncAllScheduler) TriggerNow(ctx context.Context) (TriggerRecord, error) {
	if !s.IsRunning() {
		return TriggerRecord{}, ErrSchedulerNotRunning
	}
	return s.trigger(ctx), nil
}

func (s *SyncAllScheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.trigger(ctx)
		}
	}
}

// trigger asks for a run and records what happened. A held lease is normal.
func (s *SyncAllScheduler) trigger(ctx context.Context) TriggerRecord {
	ctx, cancel := context.WithTimeout(ctx, s.config.TriggerTimeout)
	defer cancel()

	record := TriggerRecord{At: time.Now()}
	res, err := s.starter.StartSyncAll(ctx, s.config.DryRun)
	switch {
	case errors.Is(err, integration.ErrSyncAlreadyRunning):
		record.Reason = appintegration.ReasonAlreadyRunning
		s.logger.Info("Scheduled sync-all skipped; a run is already in progress")
	case err != nil:
		record.Error = err.Error()
		s.logger.Error("Scheduled sync-all failed to start", zap.Error(err))
	default:
		record.Accepted = res.Accepted
		record.RunID = res.RunID
		s.logger.Info("Scheduled sync-all started",
			zap.String("run_id", res.RunID),
			zap.Bool("dry_run", res.DryRun),
		)
	}

	s.addToHistory(record)
	return record
}

func (s *SyncAllScheduler) addToHistory(r TriggerRecord) {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	s.history = append([]TriggerRecord{r}, s.history...)
	if len(s.history) > s.maxHistory {
		s.history = s.history[:s.maxHistory]
	}
}

// History returns the most recent triggers, newest first
func (s *SyncAllScheduler) History(limit int) []TriggerRecord {
	s.historyMu.RLock()
	defer s.historyMu.RUnlock()

	if limit <= 0 || limit > len(s.history) {
		limit = len(s.history)
	}
	result := make([]TriggerRecord, limit)
	copy(result, s.history[:limit])
	return result
}
