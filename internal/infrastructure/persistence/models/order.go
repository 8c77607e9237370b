package models

import (
	"encoding/json"
	"time"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root.
// The shipping address is kept as a JSON document; customer and courier are flattened.
type OrderModel struct {
	AggregateModel
	OrderNumber          string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID           uuid.UUID           `gorm:"type:uuid;index"`
	CustomerName         string              `gorm:"type:varchar(200);not null"`
	CustomerEmail        string              `gorm:"type:varchar(200);not null;index"`
	CustomerPhone        string              `gorm:"type:varchar(50)"`
	ShippingAddress      string              `gorm:"type:text;not null"`
	CourierName          string              `gorm:"type:varchar(100)"`
	CourierService       string              `gorm:"type:varchar(100)"`
	CourierEstimatedDays string              `gorm:"type:varchar(50)"`
	Status               order.Status        `gorm:"type:varchar(20);not null;index"`
	PaymentMethod        order.PaymentMethod `gorm:"type:varchar(20);not null;index"`
	PaymentStatus        order.PaymentStatus `gorm:"type:varchar(20);not null"`
	Subtotal             decimal.Decimal     `gorm:"type:decimal(14,2);not null;default:0"`
	ShippingCost         decimal.Decimal     `gorm:"type:decimal(14,2);not null;default:0"`
	DiscountAmount       decimal.Decimal     `gorm:"type:decimal(14,2);not null;default:0"`
	Total                decimal.Decimal     `gorm:"type:decimal(14,2);not null;default:0"`
	TrackingNumber       *string             `gorm:"type:varchar(100)"`
	Notes                string              `gorm:"type:text"`
	PaidAt               *time.Time
	ShippedAt            *time.Time
	DeliveredAt          *time.Time
	CancelledAt          *time.Time
	RefundedAt           *time.Time
	Items                []OrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseAggregateRoot: m.ToAggregateRoot(),
		OrderNumber:       m.OrderNumber,
		Customer: order.CustomerSnapshot{
			ID:    m.CustomerID,
			Name:  m.CustomerName,
			Email: m.CustomerEmail,
			Phone: m.CustomerPhone,
		},
		Courier: order.CourierInfo{
			Name:           m.CourierName,
			Service:        m.CourierService,
			EstimatedDays:  m.CourierEstimatedDays,
			TrackingNumber: m.TrackingNumber,
			Cost:           m.ShippingCost,
		},
		Status:         m.Status,
		PaymentMethod:  m.PaymentMethod,
		PaymentStatus:  m.PaymentStatus,
		Subtotal:       m.Subtotal,
		ShippingCost:   m.ShippingCost,
		DiscountAmount: m.DiscountAmount,
		Total:          m.Total,
		TrackingNumber: m.TrackingNumber,
		Notes:          m.Notes,
		PaidAt:         m.PaidAt,
		ShippedAt:      m.ShippedAt,
		DeliveredAt:    m.DeliveredAt,
		CancelledAt:    m.CancelledAt,
		RefundedAt:     m.RefundedAt,
		Items:          make([]order.LineItem, len(m.Items)),
	}
	if m.ShippingAddress != "" {
		_ = json.Unmarshal([]byte(m.ShippingAddress), &o.ShippingAddress)
	}
	for i := range m.Items {
		o.Items[i] = m.Items[i].ToDomain()
	}
	return o
}

// FromDomain populates the persistence model from a domain Order.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.CustomerID = o.Customer.ID
	m.CustomerName = o.Customer.Name
	m.CustomerEmail = o.Customer.Email
	m.CustomerPhone = o.Customer.Phone
	if raw, err := json.Marshal(o.ShippingAddress); err == nil {
		m.ShippingAddress = string(raw)
	}
	m.CourierName = o.Courier.Name
	m.CourierService = o.Courier.Service
	m.CourierEstimatedDays = o.Courier.EstimatedDays
	m.Status = o.Status
	m.PaymentMethod = o.PaymentMethod
	m.PaymentStatus = o.PaymentStatus
	m.Subtotal = o.Subtotal
	m.ShippingCost = o.ShippingCost
	m.DiscountAmount = o.DiscountAmount
	m.Total = o.Total
	m.TrackingNumber = o.TrackingNumber
	m.Notes = o.Notes
	m.PaidAt = o.PaidAt
	m.ShippedAt = o.ShippedAt
	m.DeliveredAt = o.DeliveredAt
	m.CancelledAt = o.CancelledAt
	m.RefundedAt = o.RefundedAt
	m.Items = make([]OrderItemModel, len(o.Items))
	for i, it := range o.Items {
		m.Items[i].FromDomain(o.ID, it)
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for an order line item.
type OrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	VariantSKU  string          `gorm:"column:variant_sku;type:varchar(100);not null"`
	Size        string          `gorm:"type:varchar(20)"`
	Color       string          `gorm:"type:varchar(50)"`
	ImageURL    string          `gorm:"type:varchar(500)"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain LineItem.
func (m *OrderItemModel) ToDomain() order.LineItem {
	return order.LineItem{
		ID:          m.ID,
		ProductName: m.ProductName,
		VariantSKU:  m.VariantSKU,
		Size:        m.Size,
		Color:       m.Color,
		ImageURL:    m.ImageURL,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Subtotal:    m.Subtotal,
	}
}

// FromDomain populates the persistence model from a domain LineItem.
func (m *OrderItemModel) FromDomain(orderID uuid.UUID, it order.LineItem) {
	m.ID = it.ID
	m.OrderID = orderID
	m.ProductName = it.ProductName
	m.VariantSKU = it.VariantSKU
	m.Size = it.Size
	m.Color = it.Color
	m.ImageURL = it.ImageURL
	m.Quantity = it.Quantity
	m.UnitPrice = it.UnitPrice
	m.Subtotal = it.Subtotal
}
