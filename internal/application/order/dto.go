package order

import (
	"time"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/order"
	"github.com/google/uuid"
)

// ListOrdersQuery carries the admin list filters
type ListOrdersQuery struct {
	Page          int
	Limit         int
	Search        string
	Status        order.Status
	PaymentMethod order.PaymentMethod
	StartDate     *time.Time
	EndDate       *time.Time
	SortBy        string
	SortOrder     string
}

// TransitionRequest asks for a status change
type TransitionRequest struct {
	Status         order.Status
	TrackingNumber string
	Notes          string
}

// OrderUserResponse is the customer snapshot
type OrderUserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone,omitempty"`
}

// OrderAddressResponse is the shipping address
type OrderAddressResponse struct {
	RecipientName string `json:"recipientName"`
	Phone         string `json:"phone"`
	Street        string `json:"street"`
	Subdistrict   string `json:"subdistrict"`
	City          string `json:"city"`
	Province      string `json:"province"`
	PostalCode    string `json:"postalCode"`
	Notes         string `json:"notes,omitempty"`
}

// CourierResponse is the selected shipping service
type CourierResponse struct {
	Name           string  `json:"name"`
	Service        string  `json:"service"`
	TrackingNumber *string `json:"trackingNumber,omitempty"`
	EstimatedDays  string  `json:"estimatedDays,omitempty"`
	Cost           float64 `json:"cost"`
}

// OrderItemResponse is one purchased variant
type OrderItemResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductName string    `json:"productName"`
	VariantSKU  string    `json:"variantSku"`
	Size        string    `json:"size"`
	Color       string    `json:"color,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unitPrice"`
	Subtotal    float64   `json:"subtotal"`
}

// OrderResponse is the admin view of an order
type OrderResponse struct {
	ID             uuid.UUID            `json:"id"`
	OrderNumber    string               `json:"orderNumber"`
	Status         order.Status         `json:"status"`
	PaymentMethod  order.PaymentMethod  `json:"paymentMethod"`
	PaymentStatus  order.PaymentStatus  `json:"paymentStatus"`
	Subtotal       float64              `json:"subtotal"`
	ShippingCost   float64              `json:"shippingCost"`
	DiscountAmount float64              `json:"discountAmount"`
	Total          float64              `json:"total"`
	Notes          string               `json:"notes,omitempty"`
	TrackingNumber *string              `json:"trackingNumber,omitempty"`
	User           OrderUserResponse    `json:"user"`
	Address        OrderAddressResponse `json:"address"`
	Courier        CourierResponse      `json:"courier"`
	Items          []OrderItemResponse  `json:"items"`
	NextStatuses   []order.Status       `json:"nextStatuses"`
	Version        int                  `json:"version"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
	PaidAt         *time.Time           `json:"paidAt,omitempty"`
	ShippedAt      *time.Time           `json:"shippedAt,omitempty"`
	DeliveredAt    *time.Time           `json:"deliveredAt,omitempty"`
	CancelledAt    *time.Time           `json:"cancelledAt,omitempty"`
	RefundedAt     *time.Time           `json:"refundedAt,omitempty"`
}

// StatsResponse counts orders per status
type StatsResponse struct {
	Total    int64                  `json:"total"`
	ByStatus map[order.Status]int64 `json:"byStatus"`
}

// ToOrderResponse maps the aggregate to its admin view
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:          it.ID,
			ProductName: it.ProductName,
			VariantSKU:  it.VariantSKU,
			Size:        it.Size,
			Color:       it.Color,
			ImageURL:    it.ImageURL,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.InexactFloat64(),
			Subtotal:    it.Subtotal.InexactFloat64(),
		})
	}
	next := o.Status.NextStatuses()
	if next == nil {
		next = []order.Status{}
	}
	a := o.ShippingAddress
	return OrderResponse{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		Status:         o.Status,
		PaymentMethod:  o.PaymentMethod,
		PaymentStatus:  o.PaymentStatus,
		Subtotal:       o.Subtotal.InexactFloat64(),
		ShippingCost:   o.ShippingCost.InexactFloat64(),
		DiscountAmount: o.DiscountAmount.InexactFloat64(),
		Total:          o.Total.InexactFloat64(),
		Notes:          o.Notes,
		TrackingNumber: o.TrackingNumber,
		User: OrderUserResponse{
			ID:    o.Customer.ID,
			Name:  o.Customer.Name,
			Email: o.Customer.Email,
			Phone: o.Customer.Phone,
		},
		Address: OrderAddressResponse{
			RecipientName: a.RecipientName,
			Phone:         a.Phone,
			Street:        a.Street,
			Subdistrict:   a.Subdistrict,
			City:          a.City,
			Province:      a.Province,
			PostalCode:    a.PostalCode,
			Notes:         a.Notes,
		},
		Courier: CourierResponse{
			Name:           o.Courier.Name,
			Service:        o.Courier.Service,
			TrackingNumber: o.Courier.TrackingNumber,
			EstimatedDays:  o.Courier.EstimatedDays,
			Cost:           o.Courier.Cost.InexactFloat64(),
		},
		Items:        items,
		NextStatuses: next,
		Version:      o.Version,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		PaidAt:       o.PaidAt,
		ShippedAt:    o.ShippedAt,
		DeliveredAt:  o.DeliveredAt,
		CancelledAt:  o.CancelledAt,
		RefundedAt:   o.RefundedAt,
	}
}
