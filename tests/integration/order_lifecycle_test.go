package integration

import (
	"context"
	"errors"
	"sync"
	"testing"

	orderapp "github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/application/order"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/order"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/shared"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_RoundTripsAggregate(t *testing.T) {
	tdb := NewTestDB(t)
	s := newStack(tdb, newStubGateway())
	ctx := context.Background()

	o := testutil.NewOrder(t, order.StatusPaid, testutil.WithOrderNumber("SF-RT-001"))
	require.NoError(t, s.orders.Save(ctx, o))

	got, err := s.orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "SF-RT-001", got.OrderNumber)
	assert.Equal(t, order.StatusPaid, got.Status)
	assert.True(t, o.Total.Equal(got.Total), "total %s != %s", o.Total, got.Total)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "SAMBA-42", got.Items[0].VariantSKU)
	assert.Equal(t, "Jakarta Selatan", got.ShippingAddress.City)
	assert.NoError(t, got.ValidateTotals())
}

func TestOrderRepository_StaleWriterLoses(t *testing.T) {
	tdb := NewTestDB(t)
	s := newStack(tdb, newStubGateway())
	ctx := context.Background()

	o := testutil.NewOrder(t, order.StatusPaid)
	require.NoError(t, s.orders.Save(ctx, o))

	first, err := s.orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	second, err := s.orders.FindByID(ctx, o.ID)
	require.NoError(t, err)

	require.NoError(t, first.RequestTransition(order.StatusProcessing, "", ""))
	require.NoError(t, s.orders.SaveWithLock(ctx, first))

	require.NoError(t, second.RequestTransition(order.StatusCancelled, "", "customer asked"))
	err = s.orders.SaveWithLock(ctx, second)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

	stored, err := s.orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusProcessing, stored.Status)
	assert.Equal(t, first.Version, stored.Version)
	assert.Nil(t, stored.CancelledAt)
}

func TestOrderService_ConcurrentTransitionsApplyOnce(t *testing.T) {
	tdb := NewTestDB(t)
	s := newStack(tdb, newStubGateway())
	ctx := context.Background()

	o := testutil.NewOrder(t, order.StatusPaid)
	require.NoError(t, s.orders.Save(ctx, o))

	const workers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		applied  int
		rejected int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.orderSvc.Transition(ctx, o.ID, orderapp.TransitionRequest{Status: order.StatusProcessing})
			var transitionErr *order.InvalidTransitionError
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				applied++
			case errors.As(err, &transitionErr):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, applied)
	assert.Equal(t, workers-1, rejected)

	stored, err := s.orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusProcessing, stored.Status)
	assert.Equal(t, o.Version+1, stored.Version)
}

func TestOrderService_FulfillmentPath(t *testing.T) {
	tdb := NewTestDB(t)
	s := newStack(tdb, newStubGateway())
	ctx := context.Background()

	o := testutil.NewOrder(t, order.StatusPaid)
	require.NoError(t, s.orders.Save(ctx, o))

	_, err := s.orderSvc.Transition(ctx, o.ID, orderapp.TransitionRequest{Status: order.StatusProcessing})
	require.NoError(t, err)
	resp, err := s.orderSvc.Transition(ctx, o.ID, orderapp.TransitionRequest{
		Status:         order.StatusShipped,
		TrackingNumber: " JNE0001 ",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.TrackingNumber)
	assert.Equal(t, "JNE0001", *resp.TrackingNumber)
	assert.NotNil(t, resp.ShippedAt)

	_, err = s.orderSvc.Transition(ctx, o.ID, orderapp.TransitionRequest{Status: order.StatusDelivered})
	require.NoError(t, err)

	_, err = s.orderSvc.Transition(ctx, o.ID, orderapp.TransitionRequest{Status: order.StatusCancelled})
	var transitionErr *order.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, order.StatusDelivered, transitionErr.Current)
}

func TestOrderService_ListAndStats(t *testing.T) {
	tdb := NewTestDB(t)
	s := newStack(tdb, newStubGateway())
	ctx := context.Background()

	for _, st := range []order.Status{order.StatusPaid, order.StatusPaid, order.StatusShipped, order.StatusCancelled} {
		require.NoError(t, s.orders.Save(ctx, testutil.NewOrder(t, st)))
	}
	require.NoError(t, s.orders.Save(ctx, testutil.NewOrder(t, order.StatusPaid,
		testutil.WithOrderNumber("SF-FIND-ME"),
		testutil.WithPaymentMethod(order.PaymentMethodCOD))))

	items, meta, err := s.orderSvc.List(ctx, orderapp.ListOrdersQuery{Page: 1, Limit: 2, Status: order.StatusPaid})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(3), meta.Total)
	assert.True(t, meta.HasNextPage)

	items, _, err = s.orderSvc.List(ctx, orderapp.ListOrdersQuery{Page: 1, Limit: 10, Search: "find-me"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, order.PaymentMethodCOD, items[0].PaymentMethod)

	stats, err := s.orderSvc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.Total)
	assert.Equal(t, int64(3), stats.ByStatus[order.StatusPaid])
	assert.Equal(t, int64(1), stats.ByStatus[order.StatusCancelled])
}
