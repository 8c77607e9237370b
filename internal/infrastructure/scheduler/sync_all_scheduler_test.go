package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appintegration "github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/application/integration"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
)

// ---------------------------------------------------------------------------
// Test Helpers
// ---------------------------------------------------------------------------

type MockSyncAllStarter struct {
	mock.Mock
}

func (m *MockSyncAllStarter) StartSyncAll(ctx context.Context, dryRun bool) (*appintegration.StartResult, error) {
	args := m.Called(ctx, dryRun)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appintegration.StartResult), args.Error(1)
}

var _ SyncAllStarter = (*MockSyncAllStarter)(nil)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

// ---------------------------------------------------------------------------
// Config Tests
// ---------------------------------------------------------------------------

func TestSyncAllSchedulerConfig_Validate(t *testing.T) {
	cfg := DefaultSyncAllSchedulerConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Interval = 10 * time.Second
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultSyncAllSchedulerConfig()
	cfg.TriggerTimeout = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

// ---------------------------------------------------------------------------
// Scheduler Tests
// ---------------------------------------------------------------------------

func TestSyncAllScheduler_Trigger(t *testing.T) {
	ctx := context.Background()

	t.Run("records accepted run", func(t *testing.T) {
		starter := new(MockSyncAllStarter)
		starter.On("StartSyncAll", mock.Anything, true).
			Return(&appintegration.StartResult{Accepted: true, RunID: "run-1", DryRun: true}, nil)

		cfg := DefaultSyncAllSchedulerConfig()
		cfg.DryRun = true
		s, err := NewSyncAllScheduler(cfg, starter, newTestLogger())
		require.NoError(t, err)
		require.NoError(t, s.Start(ctx))
		defer func() { _ = s.Stop(ctx) }()

		rec, err := s.TriggerNow(ctx)
		require.NoError(t, err)
		assert.True(t, rec.Accepted)
		assert.Equal(t, "run-1", rec.RunID)
		assert.Len(t, s.History(0), 1)
	})

	t.Run("held lease is not an error", func(t *testing.T) {
		starter := new(MockSyncAllStarter)
		starter.On("StartSyncAll", mock.Anything, false).
			Return(&appintegration.StartResult{Accepted: false, Reason: appintegration.ReasonAlreadyRunning}, integration.ErrSyncAlreadyRunning)

		s, err := NewSyncAllScheduler(DefaultSyncAllSchedulerConfig(), starter, nil)
		require.NoError(t, err)
		require.NoError(t, s.Start(ctx))
		defer func() { _ = s.Stop(ctx) }()

		rec, err := s.TriggerNow(ctx)
		require.NoError(t, err)
		assert.False(t, rec.Accepted)
		assert.Equal(t, appintegration.ReasonAlreadyRunning, rec.Reason)
		assert.Empty(t, rec.Error)
	})

	t.Run("start failure is recorded", func(t *testing.T) {
		starter := new(MockSyncAllStarter)
		starter.On("StartSyncAll", mock.Anything, false).Return(nil, errors.New("db down"))

		s, err := NewSyncAllScheduler(DefaultSyncAllSchedulerConfig(), starter, nil)
		require.NoError(t, err)
		require.NoError(t, s.Start(ctx))
		defer func() { _ = s.Stop(ctx) }()

		rec, err := s.TriggerNow(ctx)
		require.NoError(t, err)
		assert.Equal(t, "db down", rec.Error)
	})

	t.Run("stopped scheduler rejects triggers", func(t *testing.T) {
		s, err := NewSyncAllScheduler(DefaultSyncAllSchedulerConfig(), new(MockSyncAllStarter), nil)
		require.NoError(t, err)
		_, err = s.TriggerNow(ctx)
		assert.ErrorIs(t, err, ErrSchedulerNotRunning)
	})
}

func TestSyncAllScheduler_StartStop(t *testing.T) {
	ctx := context.Background()
	s, err := NewSyncAllScheduler(DefaultSyncAllSchedulerConfig(), new(MockSyncAllStarter), nil)
	require.NoError(t, err)

	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))
	require.NoError(t, s.Stop(stopCtx))
	assert.False(t, s.IsRunning())
}

func TestSyncAllScheduler_History(t *testing.T) {
	starter := new(MockSyncAllStarter)
	starter.On("StartSyncAll", mock.Anything, false).
		Return(&appintegration.StartResult{Accepted: true, RunID: "r"}, nil)
	s, err := NewSyncAllScheduler(DefaultSyncAllSchedulerConfig(), starter, nil)
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	defer func() { _ = s.Stop(context.Background()) }()

	for range 25 {
		_, err := s.TriggerNow(context.Background())
		require.NoError(t, err)
	}
	assert.Len(t, s.History(0), 20)
	assert.Len(t, s.History(3), 3)
}
