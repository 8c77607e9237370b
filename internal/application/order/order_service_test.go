package order

import (
	"context"
	"errors"
	"testing"
	"time"

	appintegration "github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/application/integration"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/order"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter order.Filter) ([]*order.Order, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*order.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context) (map[order.Status]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[order.Status]int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

type MockOrderPusher struct {
	mock.Mock
}

func (m *MockOrderPusher) PushOrder(ctx context.Context, id uuid.UUID) (*appintegration.OrderPushResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appintegration.OrderPushResult), args.Error(1)
}

type MockTransitionMetrics struct {
	mock.Mock
}

func (m *MockTransitionMetrics) RecordTransition(ctx context.Context, from, to, outcome string) {
	m.Called(ctx, from, to, outcome)
}

var (
	_ order.Repository  = (*MockOrderRepository)(nil)
	_ OrderPusher       = (*MockOrderPusher)(nil)
	_ TransitionMetrics = (*MockTransitionMetrics)(nil)
)

func newTestOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	o, err := order.New(order.NewOrderInput{
		OrderNumber:   "SF-0001",
		PaymentMethod: order.PaymentMethodGopay,
		Courier:       order.CourierInfo{Name: "SiCepat", Service: "BEST", Cost: decimal.NewFromInt(15000)},
		Items: []order.NewLineItem{
			{ProductName: "Dunk Low Panda", VariantSKU: "DUNK-41", Quantity: 2, UnitPrice: decimal.NewFromInt(1800000)},
		},
	})
	require.NoError(t, err)
	o.Status = status
	return o
}

func TestOrderService_List(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewOrderService(repo, nil)

	o := newTestOrder(t, order.StatusPaid)
	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f order.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.OrderDir == "desc" && f.Status == order.StatusPaid
	})).Return([]*order.Order{o}, int64(41), nil)

	items, meta, err := svc.List(context.Background(), ListOrdersQuery{Status: order.StatusPaid})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3615000.0, items[0].Total)
	assert.Equal(t, []order.Status{order.StatusProcessing, order.StatusCancelled}, items[0].NextStatuses)
	assert.Equal(t, int64(41), meta.Total)
	assert.Equal(t, 3, meta.LastPage)
	assert.True(t, meta.HasNextPage)
	assert.False(t, meta.HasPrevPage)
}

func TestOrderService_ListValidation(t *testing.T) {
	svc := NewOrderService(new(MockOrderRepository), nil)

	_, _, err := svc.List(context.Background(), ListOrdersQuery{Status: "LOST"})
	assert.ErrorIs(t, err, order.ErrInvalidStatus)

	_, _, err = svc.List(context.Background(), ListOrdersQuery{PaymentMethod: "barter"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	start := time.Now()
	end := start.Add(-time.Hour)
	_, _, err = svc.List(context.Background(), ListOrdersQuery{StartDate: &start, EndDate: &end})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestOrderService_Stats(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewOrderService(repo, nil)
	repo.On("CountByStatus", mock.Anything).Return(map[order.Status]int64{
		order.StatusPaid: 3, order.StatusShipped: 2, order.StatusCancelled: 1,
	}, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(6), stats.Total)
}

func TestOrderService_Transition(t *testing.T) {
	t.Run("ships with tracking number", func(t *testing.T) {
		repo := new(MockOrderRepository)
		metrics := new(MockTransitionMetrics)
		svc := NewOrderService(repo, nil)
		svc.SetMetrics(metrics)

		o := newTestOrder(t, order.StatusProcessing)
		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		repo.On("SaveWithLock", mock.Anything, o).Return(nil)
		metrics.On("RecordTransition", mock.Anything, "PROCESSING", "SHIPPED", OutcomeApplied).Return()

		resp, err := svc.Transition(context.Background(), o.ID, TransitionRequest{
			Status: order.StatusShipped, TrackingNumber: " JNE0042 ",
		})
		require.NoError(t, err)
		assert.Equal(t, order.StatusShipped, resp.Status)
		require.NotNil(t, resp.TrackingNumber)
		assert.Equal(t, "JNE0042", *resp.TrackingNumber)
		assert.NotNil(t, resp.ShippedAt)
		metrics.AssertExpectations(t)
	})

	t.Run("illegal transition leaves order untouched", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := NewOrderService(repo, nil)

		o := newTestOrder(t, order.StatusDelivered)
		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, err := svc.Transition(context.Background(), o.ID, TransitionRequest{Status: order.StatusCancelled})
		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
		var ite *order.InvalidTransitionError
		require.True(t, errors.As(err, &ite))
		assert.Equal(t, order.StatusDelivered, ite.Current)
		repo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := NewOrderService(repo, nil)
		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, order.ErrOrderNotFound)

		_, err := svc.Transition(context.Background(), id, TransitionRequest{Status: order.StatusProcessing})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderService_TransitionRace(t *testing.T) {
	t.Run("loser gets invalid transition against fresh status", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := NewOrderService(repo, nil)

		stale := newTestOrder(t, order.StatusPaid)
		fresh := newTestOrder(t, order.StatusCancelled)
		fresh.ID = stale.ID

		repo.On("FindByID", mock.Anything, stale.ID).Return(stale, nil).Once()
		repo.On("SaveWithLock", mock.Anything, stale).Return(shared.ErrConcurrencyConflict)
		repo.On("FindByID", mock.Anything, stale.ID).Return(fresh, nil).Once()

		_, err := svc.Transition(context.Background(), stale.ID, TransitionRequest{Status: order.StatusProcessing})
		var ite *order.InvalidTransitionError
		require.True(t, errors.As(err, &ite))
		assert.Equal(t, order.StatusCancelled, ite.Current)
		assert.Equal(t, order.StatusProcessing, ite.Attempted)
	})

	t.Run("loser gets conflict when target still legal", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := NewOrderService(repo, nil)

		stale := newTestOrder(t, order.StatusPaid)
		fresh := newTestOrder(t, order.StatusPaid)
		fresh.ID = stale.ID

		repo.On("FindByID", mock.Anything, stale.ID).Return(stale, nil).Once()
		repo.On("SaveWithLock", mock.Anything, stale).Return(shared.ErrConcurrencyConflict)
		repo.On("FindByID", mock.Anything, stale.ID).Return(fresh, nil).Once()

		_, err := svc.Transition(context.Background(), stale.ID, TransitionRequest{Status: order.StatusProcessing})
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestOrderService_PushOnTransition(t *testing.T) {
	t.Run("pushes forwardable status", func(t *testing.T) {
		repo := new(MockOrderRepository)
		pusher := new(MockOrderPusher)
		svc := NewOrderService(repo, nil)
		svc.SetOrderPusher(pusher, true)

		o := newTestOrder(t, order.StatusPaid)
		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		repo.On("SaveWithLock", mock.Anything, o).Return(nil)
		pusher.On("PushOrder", mock.Anything, o.ID).Return(&appintegration.OrderPushResult{OrderID: o.ID}, nil)

		_, err := svc.Transition(context.Background(), o.ID, TransitionRequest{Status: order.StatusProcessing})
		require.NoError(t, err)
		pusher.AssertExpectations(t)
	})

	t.Run("push failure does not fail the transition", func(t *testing.T) {
		repo := new(MockOrderRepository)
		pusher := new(MockOrderPusher)
		svc := NewOrderService(repo, nil)
		svc.SetOrderPusher(pusher, true)

		o := newTestOrder(t, order.StatusPaid)
		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		repo.On("SaveWithLock", mock.Anything, o).Return(nil)
		pusher.On("PushOrder", mock.Anything, o.ID).Return(nil, integration.NewRemoteError("push_order", integration.ErrPlatformUnavailable))

		resp, err := svc.Transition(context.Background(), o.ID, TransitionRequest{Status: order.StatusCancelled})
		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, resp.Status)
	})

	t.Run("disabled by config", func(t *testing.T) {
		repo := new(MockOrderRepository)
		pusher := new(MockOrderPusher)
		svc := NewOrderService(repo, nil)
		svc.SetOrderPusher(pusher, false)

		o := newTestOrder(t, order.StatusPaid)
		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		repo.On("SaveWithLock", mock.Anything, o).Return(nil)

		_, err := svc.Transition(context.Background(), o.ID, TransitionRequest{Status: order.StatusProcessing})
		require.NoError(t, err)
		pusher.AssertNotCalled(t, "PushOrder", mock.Anything, mock.Anything)
	})
}
