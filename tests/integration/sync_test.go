package integration

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	orderapp "github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/application/order"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/catalog"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/order"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/shared"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedLinked stores a product with the given SKUs and links it to externalID
func seedLinked(t *testing.T, s *stack, externalID string, skus ...string) *catalog.Product {
	t.Helper()
	ctx := context.Background()

	p := testutil.NewProduct(t, "Air Jordan 1 "+externalID, 2500000, 3, skus...)
	require.NoError(t, s.products.Save(ctx, p))
	if externalID != "" {
		link := integration.NewMarketplaceLink(p.ID)
		link.Link(externalID)
		require.NoError(t, s.links.SaveWithLock(ctx, link))
	}
	return p
}

func logsOf(t *testing.T, s *stack, typ integration.SyncLogType) []*integration.SyncLog {
	t.Helper()
	logs, _, err := s.logs.List(context.Background(), integration.SyncLogFilter{
		Filter: shared.Filter{Page: 1, PageSize: 50},
		Type:   typ,
	})
	require.NoError(t, err)
	return logs
}

func TestPullProduct_CommitsVariantsLinkAndLog(t *testing.T) {
	tdb := NewTestDB(t)
	gw := newStubGateway()
	s := newStack(tdb, gw)
	ctx := context.Background()

	p := seedLinked(t, s, "GN-100", "AJ1-42", "AJ1-43")
	gw.put(&integration.RemoteProduct{ExternalID: "GN-100", Variants: []integration.RemoteVariant{
		{SKU: "AJ1-42", Price: decimal.NewFromInt(2400000), Stock: 7},
		{SKU: "AJ1-43", Price: decimal.NewFromInt(2500000), Stock: 3},
		{SKU: "UNKNOWN", Price: decimal.NewFromInt(1), Stock: 1},
	}})

	res, err := s.sync.PullProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, integration.SyncBadgeSynced, res.Badge)
	assert.Len(t, res.Changes, 2)

	stored, err := s.products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	v := stored.VariantBySKU("AJ1-42")
	require.NotNil(t, v)
	assert.Equal(t, 7, v.Stock)
	assert.True(t, decimal.NewFromInt(2400000).Equal(v.Price))
	assert.Nil(t, stored.VariantBySKU("UNKNOWN"))

	badge, err := s.sync.GetSyncBadge(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, integration.SyncBadgeSynced, badge.Badge)
	assert.NotNil(t, badge.LastSyncedAt)

	logs := logsOf(t, s, integration.SyncLogTypePullProduct)
	require.Len(t, logs, 1)
	assert.Equal(t, integration.SyncLogStatusSuccess, logs[0].Status)
	assert.Nil(t, logs[0].ErrorMessage)
}

func TestPullProduct_RemoteFailureMarksBadgeAndLogs(t *testing.T) {
	tdb := NewTestDB(t)
	s := newStack(tdb, newStubGateway())
	ctx := context.Background()

	p := seedLinked(t, s, "GN-GONE", "AJ1-42")

	_, err := s.sync.PullProduct(ctx, p.ID)
	var remoteErr *integration.RemoteError
	require.ErrorAs(t, err, &remoteErr)

	badge, err := s.sync.GetSyncBadge(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, integration.SyncBadgeFailed, badge.Badge)
	assert.NotEmpty(t, badge.LastError)

	logs := logsOf(t, s, integration.SyncLogTypePullProduct)
	require.Len(t, logs, 1)
	assert.Equal(t, integration.SyncLogStatusFailed, logs[0].Status)
	require.NotNil(t, logs[0].ErrorMessage)

	stored, err := s.products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.VariantBySKU("AJ1-42").Stock)
}

func TestPullProduct_UnlinkedWritesNoLog(t *testing.T) {
	tdb := NewTestDB(t)
	s := newStack(tdb, newStubGateway())

	p := seedLinked(t, s, "", "AJ1-42")

	_, err := s.sync.PullProduct(context.Background(), p.ID)
	assert.ErrorIs(t, err, integration.ErrUnlinkedProduct)
	assert.Empty(t, logsOf(t, s, ""))
}

func TestPushProduct_FirstPushLinksProduct(t *testing.T) {
	tdb := NewTestDB(t)
	gw := newStubGateway()
	s := newStack(tdb, gw)
	ctx := context.Background()

	p := seedLinked(t, s, "", "AJ1-42")

	res, err := s.sync.PushProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "GN-001", res.ExternalProductID)

	again, err := s.sync.PushProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, "GN-001", again.ExternalProductID)

	link, err := s.links.FindByExternalID(ctx, "GN-001")
	require.NoError(t, err)
	assert.Equal(t, p.ID, link.ProductID)
	assert.Len(t, logsOf(t, s, integration.SyncLogTypePushProduct), 2)
}

func TestPushOrder_ForwardsAfterTransition(t *testing.T) {
	tdb := NewTestDB(t)
	gw := newStubGateway()
	s := newStack(tdb, gw)
	s.orderSvc.SetOrderPusher(s.sync, true)
	ctx := context.Background()

	o := testutil.NewOrder(t, order.StatusPaid, testutil.WithOrderNumber("SF-PUSH-1"))
	require.NoError(t, s.orders.Save(ctx, o))

	_, err := s.orderSvc.Transition(ctx, o.ID, orderapp.TransitionRequest{Status: order.StatusProcessing})
	require.NoError(t, err)

	require.Len(t, gw.pushed, 1)
	assert.Equal(t, "SF-PUSH-1", gw.pushed[0].OrderNumber)
	assert.Equal(t, string(order.StatusProcessing), gw.pushed[0].Status)

	logs := logsOf(t, s, integration.SyncLogTypePushOrder)
	require.Len(t, logs, 1)
	assert.Equal(t, integration.SyncLogStatusSuccess, logs[0].Status)
}

func TestSyncAll_LeaseExcludesSecondInstance(t *testing.T) {
	tdb := NewTestDB(t)
	gw := newStubGateway()
	gw.gate = make(chan struct{})
	first := newStack(tdb, gw)
	second := newStack(tdb, gw)
	ctx := testutil.Context(t, 30*time.Second)

	linked := seedLinked(t, first, "GN-1", "AJ1-42")
	seedLinked(t, first, "GN-2", "AJ1-43")
	seedLinked(t, first, "", "AJ1-44")
	gw.put(&integration.RemoteProduct{ExternalID: "GN-1", Variants: []integration.RemoteVariant{
		{SKU: "AJ1-42", Price: decimal.NewFromInt(2500000), Stock: 9},
	}})
	gw.put(&integration.RemoteProduct{ExternalID: "GN-2", Variants: []integration.RemoteVariant{
		{SKU: "AJ1-43", Price: decimal.NewFromInt(2500000), Stock: 3},
	}})

	started, err := first.sync.StartSyncAll(ctx, false)
	require.NoError(t, err)
	require.True(t, started.Accepted)

	refused, err := second.sync.StartSyncAll(ctx, false)
	assert.ErrorIs(t, err, integration.ErrSyncAlreadyRunning)
	require.NotNil(t, refused)
	assert.False(t, refused.Accepted)

	status, err := second.sync.SyncAllStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.Running)
	assert.Equal(t, started.RunID, status.RunID)

	close(gw.gate)
	require.NoError(t, first.sync.Wait(ctx))

	status, err = second.sync.SyncAllStatus(ctx)
	require.NoError(t, err)
	assert.False(t, status.Running)

	logs := logsOf(t, first, integration.SyncLogTypeSyncAll)
	require.Len(t, logs, 1)
	assert.Equal(t, integration.SyncLogStatusCompleted, logs[0].Status)

	stored, err := first.products.FindByID(ctx, linked.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, stored.VariantBySKU("AJ1-42").Stock)

	again, err := second.sync.StartSyncAll(ctx, true)
	require.NoError(t, err)
	assert.True(t, again.Accepted)
	require.NoError(t, second.sync.Wait(ctx))
}

func TestSyncAll_DryRunLeavesCatalogUntouched(t *testing.T) {
	tdb := NewTestDB(t)
	gw := newStubGateway()
	s := newStack(tdb, gw)
	ctx := testutil.Context(t, 30*time.Second)

	p := seedLinked(t, s, "GN-1", "AJ1-42")
	gw.put(&integration.RemoteProduct{ExternalID: "GN-1", Variants: []integration.RemoteVariant{
		{SKU: "AJ1-42", Price: decimal.NewFromInt(1999000), Stock: 0},
	}})

	started, err := s.sync.StartSyncAll(ctx, true)
	require.NoError(t, err)
	assert.True(t, started.DryRun)
	require.NoError(t, s.sync.Wait(ctx))

	stored, err := s.products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.VariantBySKU("AJ1-42").Stock)

	logs := logsOf(t, s, integration.SyncLogTypeSyncAll)
	require.Len(t, logs, 1)
	var summary struct {
		DryRun  bool `json:"dryRun"`
		Updated int  `json:"updated"`
	}
	require.NoError(t, json.Unmarshal(logs[0].ResponseReceived, &summary))
	assert.True(t, summary.DryRun)
	assert.Equal(t, 1, summary.Updated)
}
