package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormLeaseStore(t *testing.T) {
	store := NewGormLeaseStore(setupSQLiteDB(t))
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	const name = "ginee:sync_all"

	ok, err := store.Acquire(ctx, name, "run-a", 10*time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Acquire(ctx, name, "run-b", 10*time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second holder must not acquire a live lease")

	lease, err := store.Current(ctx, name)
	require.NoError(t, err)
	require.NotNil(t, lease)
	assert.Equal(t, "run-a", lease.Holder)

	ok, err = store.Renew(ctx, name, "run-b", 10*time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	now = now.Add(5 * time.Minute)
	ok, err = store.Renew(ctx, name, "run-a", 10*time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Release(ctx, name, "run-b"))
	lease, err = store.Current(ctx, name)
	require.NoError(t, err)
	require.NotNil(t, lease, "release by a non-holder is a no-op")

	require.NoError(t, store.Release(ctx, name, "run-a"))
	lease, err = store.Current(ctx, name)
	require.NoError(t, err)
	assert.Nil(t, lease)
}

func TestGormLeaseStore_ExpiredLeaseIsReclaimed(t *testing.T) {
	store := NewGormLeaseStore(setupSQLiteDB(t))
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	const name = "ginee:sync_all"

	ok, err := store.Acquire(ctx, name, "crashed-run", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	lease, err := store.Current(ctx, name)
	require.NoError(t, err)
	assert.Nil(t, lease)

	ok, err = store.Renew(ctx, name, "crashed-run", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Acquire(ctx, name, "next-run", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
