package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendLog(t *testing.T, repo *GormSyncLogRepository, typ integration.SyncLogType, status integration.SyncLogStatus, at time.Time) *integration.SyncLog {
	t.Helper()
	var cause error
	if status == integration.SyncLogStatusFailed {
		cause = errors.New("remote 500")
	}
	entry, err := integration.NewSyncLog(typ, status, map[string]string{"productId": "p-1"}, map[string]int{"code": 200}, cause)
	require.NoError(t, err)
	entry.CreatedAt = at
	require.NoError(t, repo.Append(context.Background(), entry))
	return entry
}

func TestGormSyncLogRepository_AppendAndFind(t *testing.T) {
	repo := NewGormSyncLogRepository(setupSQLiteDB(t))
	ctx := context.Background()

	entry := appendLog(t, repo, integration.SyncLogTypePushProduct, integration.SyncLogStatusFailed, time.Now())
	require.NotZero(t, entry.ID)

	got, err := repo.FindByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, integration.SyncLogTypePushProduct, got.Type)
	assert.JSONEq(t, `{"productId":"p-1"}`, string(got.PayloadSent))
	assert.JSONEq(t, `{"code":200}`, string(got.ResponseReceived))
	require.NotNil(t, got.ErrorMessage)
	assert.Equal(t, "remote 500", *got.ErrorMessage)

	_, err = repo.FindByID(ctx, entry.ID+100)
	assert.ErrorIs(t, err, integration.ErrSyncLogNotFound)
}

func TestGormSyncLogRepository_List(t *testing.T) {
	repo := NewGormSyncLogRepository(setupSQLiteDB(t))
	ctx := context.Background()
	base := time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)

	appendLog(t, repo, integration.SyncLogTypePullStock, integration.SyncLogStatusSuccess, base)
	appendLog(t, repo, integration.SyncLogTypePullStock, integration.SyncLogStatusFailed, base.Add(time.Minute))
	appendLog(t, repo, integration.SyncLogTypeSyncAll, integration.SyncLogStatusPartial, base.Add(2*time.Minute))
	newest := appendLog(t, repo, integration.SyncLogTypePushOrder, integration.SyncLogStatusSuccess, base.Add(3*time.Minute))

	t.Run("newest first", func(t *testing.T) {
		logs, total, err := repo.List(ctx, integration.SyncLogFilter{Filter: shared.Filter{PageSize: 2}})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		require.Len(t, logs, 2)
		assert.Equal(t, newest.ID, logs[0].ID)
	})

	t.Run("by type and status", func(t *testing.T) {
		logs, total, err := repo.List(ctx, integration.SyncLogFilter{Type: integration.SyncLogTypePullStock})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, logs, 2)

		_, total, err = repo.List(ctx, integration.SyncLogFilter{
			Type: integration.SyncLogTypePullStock, Status: integration.SyncLogStatusFailed,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})
}
