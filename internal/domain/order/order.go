package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerSnapshot is the buyer as they were at checkout time
type CustomerSnapshot struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone"`
}

// ShippingAddress is the delivery address captured at checkout
type ShippingAddress struct {
	RecipientName string `json:"recipientName"`
	Phone         string `json:"phone"`
	Street        string `json:"street"`
	Subdistrict   string `json:"subdistrict"`
	City          string `json:"city"`
	Province      string `json:"province"`
	PostalCode    string `json:"postalCode"`
	Notes         string `json:"notes,omitempty"`
}

// CourierInfo is the selected shipping service
type CourierInfo struct {
	Name           string          `json:"name"`
	Service        string          `json:"service"`
	TrackingNumber *string         `json:"trackingNumber,omitempty"`
	EstimatedDays  string          `json:"estimatedDays,omitempty"`
	Cost           decimal.Decimal `json:"cost"`
}

// LineItem is an immutable snapshot of a purchased variant
type LineItem struct {
	ID          uuid.UUID
	ProductName string
	VariantSKU  string
	Size        string
	Color       string
	ImageURL    string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// NewLineItem describes an item when building an order
type NewLineItem struct {
	ProductName string
	VariantSKU  string
	Size        string
	Color       string
	ImageURL    string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// NewOrderInput carries everything checkout captured for a new order
type NewOrderInput struct {
	OrderNumber     string
	Customer        CustomerSnapshot
	ShippingAddress ShippingAddress
	Courier         CourierInfo
	PaymentMethod   PaymentMethod
	Items           []NewLineItem
	DiscountAmount  decimal.Decimal
}

// Order is the aggregate root for a customer order.
// Its status only changes through RequestTransition.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber     string
	Customer        CustomerSnapshot
	ShippingAddress ShippingAddress
	Courier         CourierInfo
	Items           []LineItem
	Status          Status
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
	Subtotal        decimal.Decimal
	ShippingCost    decimal.Decimal
	DiscountAmount  decimal.Decimal
	Total           decimal.Decimal
	TrackingNumber  *string
	Notes           string
	PaidAt          *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	RefundedAt      *time.Time
}

// New creates an order awaiting payment.
// Shipping cost comes from the courier; total = subtotal + shipping - discount.
func New(in NewOrderInput) (*Order, error) {
	if strings.TrimSpace(in.OrderNumber) == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(in.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}
	if !in.PaymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", fmt.Sprintf("Unknown payment method %q", in.PaymentMethod))
	}
	if in.Courier.Cost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_SHIPPING_COST", "Shipping cost cannot be negative")
	}
	if in.DiscountAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}

	items := make([]LineItem, 0, len(in.Items))
	subtotal := decimal.Zero
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
		}
		if it.UnitPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
		}
		lineTotal := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		items = append(items, LineItem{
			ID:          uuid.New(),
			ProductName: it.ProductName,
			VariantSKU:  it.VariantSKU,
			Size:        it.Size,
			Color:       it.Color,
			ImageURL:    it.ImageURL,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}

	total := subtotal.Add(in.Courier.Cost).Sub(in.DiscountAmount)
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount exceeds order value")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       in.OrderNumber,
		Customer:          in.Customer,
		ShippingAddress:   in.ShippingAddress,
		Courier:           in.Courier,
		Items:             items,
		Status:            StatusPendingPayment,
		PaymentMethod:     in.PaymentMethod,
		PaymentStatus:     PaymentStatusPending,
		Subtotal:          subtotal,
		ShippingCost:      in.Courier.Cost,
		DiscountAmount:    in.DiscountAmount,
		Total:             total,
	}, nil
}

// ValidateTotals checks total = subtotal + shippingCost - discountAmount
// and that the subtotal matches the line items.
func (o *Order) ValidateTotals() error {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.Subtotal)
	}
	if !sum.Equal(o.Subtotal) {
		return shared.NewDomainError("INVALID_TOTALS", "Order subtotal does not match its items")
	}
	if !o.Subtotal.Add(o.ShippingCost).Sub(o.DiscountAmount).Equal(o.Total) {
		return shared.NewDomainError("INVALID_TOTALS", "Order total does not equal subtotal + shipping - discount")
	}
	return nil
}

// CheckTransition validates a status change without applying it.
func (o *Order) CheckTransition(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError(ErrInvalidStatus.Code, fmt.Sprintf("Unknown order status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return &InvalidTransitionError{Current: o.Status, Attempted: target}
	}
	return nil
}

// RequestTransition moves the order to target. Nothing is mutated when the
// transition is rejected. A tracking number is only recorded on SHIPPED.
func (o *Order) RequestTransition(target Status, trackingNumber, notes string) error {
	if err := o.CheckTransition(target); err != nil {
		return err
	}

	now := time.Now()
	switch target {
	case StatusProcessing:
	case StatusShipped:
		o.ShippedAt = &now
		if tn := strings.TrimSpace(trackingNumber); tn != "" {
			o.TrackingNumber = &tn
			o.Courier.TrackingNumber = &tn
		}
	case StatusDelivered:
		o.DeliveredAt = &now
	case StatusCancelled:
		o.CancelledAt = &now
	}
	if notes = strings.TrimSpace(notes); notes != "" {
		o.Notes = notes
	}

	o.Status = target
	o.Touch(now)
	return nil
}

// IsTerminal returns true if the order can no longer change status
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// ItemCount returns the number of line items
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// TotalQuantity returns the number of units across all items
func (o *Order) TotalQuantity() int {
	total := 0
	for _, it := range o.Items {
		total += it.Quantity
	}
	return total
}
