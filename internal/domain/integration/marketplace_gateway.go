package integration

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Remote catalog
// ---------------------------------------------------------------------------

// RemoteVariant is a variant as the marketplace reports it
type RemoteVariant struct {
	SKU   string          `json:"sku"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// RemoteProduct is a product as the marketplace reports it
type RemoteProduct struct {
	ExternalID string          `json:"externalId"`
	Name       string          `json:"name"`
	Variants   []RemoteVariant `json:"variants"`
}

// RemoteStock is the available quantity for one SKU
type RemoteStock struct {
	SKU   string `json:"sku"`
	Stock int    `json:"stock"`
}

// PushProductRequest creates or updates a listing.
// ExternalID is empty for a create.
type PushProductRequest struct {
	ExternalID string          `json:"externalId,omitempty"`
	Name       string          `json:"name"`
	Variants   []RemoteVariant `json:"variants"`
}

// PushProductResult carries the listing id the marketplace assigned
type PushProductResult struct {
	ExternalID string `json:"externalId"`
	Created    bool   `json:"created"`
}

// ---------------------------------------------------------------------------
// Remote orders
// ---------------------------------------------------------------------------

// PushOrderItem is one line of a forwarded order
type PushOrderItem struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// PushOrderRequest forwards an order and its fulfillment data
type PushOrderRequest struct {
	OrderNumber    string          `json:"orderNumber"`
	Status         string          `json:"status"`
	CourierName    string          `json:"courierName"`
	CourierService string          `json:"courierService"`
	TrackingNumber string          `json:"trackingNumber,omitempty"`
	Recipient      string          `json:"recipient"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	Total          decimal.Decimal `json:"total"`
	Items          []PushOrderItem `json:"items"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// PushOrderResult is the marketplace acknowledgement
type PushOrderResult struct {
	ExternalOrderID string `json:"externalOrderId"`
	Accepted        bool   `json:"accepted"`
}

// ---------------------------------------------------------------------------
// Gateway
// ---------------------------------------------------------------------------

// MarketplaceGateway is the outbound port to the marketplace.
// Adapters return the ErrPlatform* sentinels (wrapped) on failure.
type MarketplaceGateway interface {
	Name() string
	Ping(ctx context.Context) error
	PushProduct(ctx context.Context, req *PushProductRequest) (*PushProductResult, error)
	GetProduct(ctx context.Context, externalID string) (*RemoteProduct, error)
	ListStock(ctx context.Context, skus []string) ([]RemoteStock, error)
	PushOrder(ctx context.Context, req *PushOrderRequest) (*PushOrderResult, error)
}
