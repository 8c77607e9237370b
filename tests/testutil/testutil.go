// Package testutil holds helpers shared by the admin backend's package tests
// and the integration suite: sqlmock-backed GORM, signed admin tokens, order
// and product fixtures, and polling assertions.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/catalog"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/order"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockDB is a Postgres-dialect GORM handle over sqlmock
type MockDB struct {
	DB    *gorm.DB
	Mock  sqlmock.Sqlmock
	SqlDB *sql.DB
}

// NewMockDB opens a GORM connection on sqlmock. Expectations are verified and
// the connection closed on cleanup.
func NewMockDB(t *testing.T) *MockDB {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock")

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Discard,
	})
	require.NoError(t, err, "Failed to open GORM connection")

	m := &MockDB{DB: gormDB, Mock: mock, SqlDB: sqlDB}
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet(), "Unmet database expectations")
		_ = sqlDB.Close()
	})
	return m
}

// OrderOption tweaks a fixture order
type OrderOption func(*order.NewOrderInput)

// WithOrderNumber sets the order number
func WithOrderNumber(n string) OrderOption {
	return func(in *order.NewOrderInput) { in.OrderNumber = n }
}

// WithPaymentMethod sets the payment method
func WithPaymentMethod(pm order.PaymentMethod) OrderOption {
	return func(in *order.NewOrderInput) { in.PaymentMethod = pm }
}

// WithCustomer sets the customer name and email
func WithCustomer(name, email string) OrderOption {
	return func(in *order.NewOrderInput) {
		in.Customer.Name = name
		in.Customer.Email = email
	}
}

// NewOrder builds a valid pending order: one pair of Samba OG shipped with
// JNE REG. status, when not PENDING_PAYMENT, is forced onto the order.
func NewOrder(t *testing.T, status order.Status, opts ...OrderOption) *order.Order {
	t.Helper()

	in := order.NewOrderInput{
		OrderNumber: fmt.Sprintf("SF-%s", uuid.NewString()[:8]),
		Customer: order.CustomerSnapshot{
			ID:    uuid.New(),
			Name:  "Raka Pratama",
			Email: "raka@example.com",
			Phone: "+628123456789",
		},
		ShippingAddress: order.ShippingAddress{
			RecipientName: "Raka Pratama",
			Phone:         "+628123456789",
			Street:        "Jl. Sudirman 1",
			City:          "Jakarta Selatan",
			Province:      "DKI Jakarta",
			PostalCode:    "12190",
		},
		Courier:       order.CourierInfo{Name: "JNE", Service: "REG", EstimatedDays: "2-3", Cost: decimal.NewFromInt(20000)},
		PaymentMethod: order.PaymentMethodQRIS,
		Items: []order.NewLineItem{
			{ProductName: "Samba OG", VariantSKU: "SAMBA-42", Size: "42", Color: "White", Quantity: 1, UnitPrice: decimal.NewFromInt(2200000)},
		},
	}
	for _, opt := range opts {
		opt(&in)
	}

	o, err := order.New(in)
	require.NoError(t, err)
	if status != "" {
		o.Status = status
	}
	return o
}

// NewProduct builds an active product with one variant per SKU, each priced
// at price with the given stock.
func NewProduct(t *testing.T, name string, price int64, stock int, skus ...string) *catalog.Product {
	t.Helper()

	p, err := catalog.NewProduct(name, uuid.NewString(), decimal.NewFromInt(price))
	require.NoError(t, err)
	for i, sku := range skus {
		_, err := p.AddVariant(sku, fmt.Sprintf("%d", 40+i), "Black", decimal.NewFromInt(price), stock)
		require.NoError(t, err)
	}
	return p
}

// Context returns a context cancelled when the test ends or after timeout
func Context(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}

// RequireEventually fails the test unless condition holds within timeout
func RequireEventually(t *testing.T, condition func() bool, timeout time.Duration, msgAndArgs ...any) {
	t.Helper()
	require.Eventually(t, condition, timeout, 10*time.Millisecond, msgAndArgs...)
}
