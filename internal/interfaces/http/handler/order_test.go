package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	orderapp "github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/application/order"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/order"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/shared"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository implements order.Repository for testing
type MockOrderRepository struct {
	mock.Mock
}

var _ order.Repository = (*MockOrderRepository)(nil)

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

func newHandlerTestOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	o, err := order.New(order.NewOrderInput{
		OrderNumber:   "SF-20260101-0001",
		PaymentMethod: order.PaymentMethodQRIS,
		Courier:       order.CourierInfo{Name: "JNE", Service: "REG", Cost: decimal.NewFromInt(20000)},
		Items: []order.NewLineItem{
			{ProductName: "Samba OG", VariantSKU: "SAMBA-42", Quantity: 1, UnitPrice: decimal.NewFromInt(2200000)},
		},
	})
	require.NoError(t, err)
	o.Status = status
	return o
}

func setupOrderTestRouter() (*gin.Engine, *MockOrderRepository) {
	repo := new(MockOrderRepository)
	h := NewOrderHandler(orderapp.NewOrderService(repo, nil))

	router := gin.New()
	api := router.Group("/api/v1")
	api.GET("/orders/admin", h.List)
	api.GET("/orders/admin/stats", h.Stats)
	api.GET("/orders/:id", h.GetByID)
	api.PATCH("/orders/:id/status", h.UpdateStatus)
	return router, repo
}

func TestOrderHandler_List(t *testing.T) {
	router, repo := setupOrderTestRouter()
	o := newHandlerTestOrder(t, order.StatusPaid)

	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f order.Filter) bool {
		return f.Page == 2 && f.PageSize == 10 &&
			f.Search == "samba" &&
			f.Status == order.StatusPaid &&
			f.PaymentMethod == order.PaymentMethodQRIS &&
			f.OrderBy == "total" && f.OrderDir == "asc" &&
			f.StartDate != nil && f.StartDate.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) &&
			f.EndDate != nil && f.EndDate.After(time.Date(2026, 1, 31, 23, 59, 0, 0, time.UTC))
	})).Return([]*order.Order{o}, int64(25), nil)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/orders/admin?page=2&limit=10&search=%20samba%20&status=PAID&paymentMethod=qris&startDate=2026-01-01&endDate=2026-01-31&sortBy=total&sortOrder=asc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(25), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.LastPage)
	assert.True(t, resp.Meta.HasNextPage)
	assert.True(t, resp.Meta.HasPrevPage)

	var items []orderapp.OrderResponse
	require.NoError(t, json.Unmarshal(resp.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "SF-20260101-0001", items[0].OrderNumber)
	repo.AssertExpectations(t)
}

func TestOrderHandler_ListRejectsBadQuery(t *testing.T) {
	router, repo := setupOrderTestRouter()

	for _, query := range []string{
		"status=LOST",
		"limit=101",
		"sortBy=customer",
		"sortOrder=sideways",
		"startDate=yesterday",
	} {
		t.Run(query, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders/admin?"+query, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	repo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}

func TestOrderHandler_Stats(t *testing.T) {
	router, repo := setupOrderTestRouter()
	repo.On("CountByStatus", mock.Anything).Return(map[order.Status]int64{
		order.StatusPaid:    4,
		order.StatusShipped: 6,
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders/admin/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var stats orderapp.StatsResponse
	require.NoError(t, json.Unmarshal(decodeResponse(t, rec).Data, &stats))
	assert.Equal(t, int64(10), stats.Total)
	assert.Equal(t, int64(6), stats.ByStatus[order.StatusShipped])
}

func TestOrderHandler_GetByID(t *testing.T) {
	router, repo := setupOrderTestRouter()
	o := newHandlerTestOrder(t, order.StatusProcessing)
	missing := uuid.New()

	repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	repo.On("FindByID", mock.Anything, missing).Return(nil, order.ErrOrderNotFound)

	t.Run("found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+o.ID.String(), nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var got orderapp.OrderResponse
		require.NoError(t, json.Unmarshal(decodeResponse(t, rec).Data, &got))
		assert.Equal(t, o.ID, got.ID)
		assert.Equal(t, []order.Status{order.StatusShipped, order.StatusCancelled}, got.NextStatuses)
	})

	t.Run("not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+missing.String(), nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders/not-a-uuid", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func patchStatus(router *gin.Engine, id uuid.UUID, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/"+id.String()+"/status", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	t.Run("shipped with tracking number", func(t *testing.T) {
		router, repo := setupOrderTestRouter()
		o := newHandlerTestOrder(t, order.StatusProcessing)
		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		repo.On("SaveWithLock", mock.Anything, mock.MatchedBy(func(saved *order.Order) bool {
			return saved.Status == order.StatusShipped
		})).Return(nil)

		rec := patchStatus(router, o.ID, UpdateOrderStatusRequest{Status: "shipped", TrackingNumber: " JNE123 "})

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got orderapp.OrderResponse
		require.NoError(t, json.Unmarshal(decodeResponse(t, rec).Data, &got))
		assert.Equal(t, order.StatusShipped, got.Status)
		require.NotNil(t, got.TrackingNumber)
		assert.Equal(t, "JNE123", *got.TrackingNumber)
	})

	t.Run("illegal transition", func(t *testing.T) {
		router, repo := setupOrderTestRouter()
		o := newHandlerTestOrder(t, order.StatusDelivered)
		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		rec := patchStatus(router, o.ID, UpdateOrderStatusRequest{Status: "CANCELLED"})

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, dto.ErrCodeInvalidTransition, resp.Error.Code)
		assert.Equal(t, map[string]any{"current": "DELIVERED", "attempted": "CANCELLED"}, resp.Error.Details)
		repo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("lost race", func(t *testing.T) {
		router, repo := setupOrderTestRouter()
		o := newHandlerTestOrder(t, order.StatusPaid)
		fresh := newHandlerTestOrder(t, order.StatusPaid)
		fresh.ID = o.ID
		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil).Once()
		repo.On("FindByID", mock.Anything, o.ID).Return(fresh, nil).Once()
		repo.On("SaveWithLock", mock.Anything, mock.Anything).Return(shared.ErrConcurrencyConflict)

		rec := patchStatus(router, o.ID, UpdateOrderStatusRequest{Status: "PROCESSING"})

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, dto.ErrCodeConcurrencyConflict, decodeResponse(t, rec).Error.Code)
	})

	t.Run("missing status", func(t *testing.T) {
		router, _ := setupOrderTestRouter()

		rec := patchStatus(router, uuid.New(), map[string]string{"notes": "hi"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeResponse(t, rec)
		require.NotEmpty(t, resp.Error.Fields)
		assert.Equal(t, "status", resp.Error.Fields[0].Field)
	})
}
