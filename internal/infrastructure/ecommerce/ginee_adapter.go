package ecommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
)

// maxResponseSize is the maximum allowed response size from Ginee (10MB)
const maxResponseSize = 10 * 1024 * 1024

// stockPageSize is the largest SKU batch Ginee accepts per inventory call
const stockPageSize = 100

// ErrGineeInvalidProductID indicates an empty product id
var ErrGineeInvalidProductID = errors.New("ginee: invalid product ID")

// GineeAdapter implements integration.MarketplaceGateway against the Ginee OpenAPI
type GineeAdapter struct {
	config     *GineeConfig
	httpClient *http.Client
}

// NewGineeAdapter creates a new Ginee adapter with the given configuration
func NewGineeAdapter(config *GineeConfig) (*GineeAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &GineeAdapter{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}, nil
}

// WithHTTPClient replaces the HTTP client, e.g. to add transport middleware
func (a *GineeAdapter) WithHTTPClient(client *http.Client) *GineeAdapter {
	if client != nil {
		a.httpClient = client
	}
	return a
}

// Name returns the marketplace name
func (a *GineeAdapter) Name() string {
	return "ginee"
}

// Ping checks credentials and reachability with a one-row shop listing
func (a *GineeAdapter) Ping(ctx context.Context) error {
	return a.call(ctx, http.MethodPost, gineePathShopList, GineeShopListRequest{Page: 0, Size: 1}, nil)
}

// ---------------------------------------------------------------------------
// Product Operations
// ---------------------------------------------------------------------------

// PushProduct creates the master product, or updates it when ExternalID is set
func (a *GineeAdapter) PushProduct(ctx context.Context, req *integration.PushProductRequest) (*integration.PushProductResult, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: nil push request", integration.ErrPlatformRequestFailed)
	}
	body := GineeProduct{
		ProductID:  req.ExternalID,
		Name:       req.Name,
		Variations: make([]GineeVariation, 0, len(req.Variants)),
	}
	for _, v := range req.Variants {
		body.Variations = append(body.Variations, GineeVariation{
			MasterSKU:    v.SKU,
			SellingPrice: v.Price,
			Stock:        GineeStock{AvailableStock: v.Stock},
		})
	}

	path := gineePathProductCreate
	if req.ExternalID != "" {
		path = gineePathProductUpdate
	}

	var resp GineeProductSaveResponse
	if err := a.call(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}

	externalID := resp.ProductID
	if externalID == "" {
		externalID = req.ExternalID
	}
	if externalID == "" {
		return nil, fmt.Errorf("%w: missing productId", integration.ErrPlatformInvalidResponse)
	}
	return &integration.PushProductResult{
		ExternalID: externalID,
		Created:    req.ExternalID == "",
	}, nil
}

// GetProduct retrieves a master product with its variations
func (a *GineeAdapter) GetProduct(ctx context.Context, externalID string) (*integration.RemoteProduct, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, ErrGineeInvalidProductID
	}

	var p GineeProduct
	if err := a.call(ctx, http.MethodPost, gineePathProductGet, GineeProductGetRequest{ProductID: externalID}, &p); err != nil {
		return nil, err
	}
	if p.ProductID == "" {
		p.ProductID = externalID
	}

	remote := &integration.RemoteProduct{
		ExternalID: p.ProductID,
		Name:       p.Name,
		Variants:   make([]integration.RemoteVariant, 0, len(p.Variations)),
	}
	for _, v := range p.Variations {
		remote.Variants = append(remote.Variants, integration.RemoteVariant{
			SKU:   v.MasterSKU,
			Price: v.SellingPrice,
			Stock: v.Stock.AvailableStock,
		})
	}
	return remote, nil
}

// ---------------------------------------------------------------------------
// Inventory Operations
// ---------------------------------------------------------------------------

// ListStock returns available stock for the SKUs, batching requests
func (a *GineeAdapter) ListStock(ctx context.Context, skus []string) ([]integration.RemoteStock, error) {
	stocks := make([]integration.RemoteStock, 0, len(skus))
	for start := 0; start < len(skus); start += stockPageSize {
		end := min(start+stockPageSize, len(skus))
		req := GineeStockListRequest{MasterSKUs: skus[start:end], Page: 0, Size: end - start}

		var resp GineeStockListResponse
		if err := a.call(ctx, http.MethodPost, gineePathStockList, req, &resp); err != nil {
			return nil, err
		}
		for _, item := range resp.Content {
			stocks = append(stocks, integration.RemoteStock{SKU: item.MasterSKU, Stock: item.AvailableStock})
		}
	}
	return stocks, nil
}

// ---------------------------------------------------------------------------
// Order Operations
// ---------------------------------------------------------------------------

// PushOrder forwards an order and its fulfillment state
func (a *GineeAdapter) PushOrder(ctx context.Context, req *integration.PushOrderRequest) (*integration.PushOrderResult, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: nil order request", integration.ErrPlatformRequestFailed)
	}
	body := GineeOrderPushRequest{
		ExternalOrderSN: req.OrderNumber,
		OrderStatus:     mapOrderStatusToGinee(req.Status),
		LogisticsName:   req.CourierName,
		LogisticsType:   req.CourierService,
		TrackingNumber:  req.TrackingNumber,
		ReceiverName:    req.Recipient,
		ReceiverPhone:   req.Phone,
		ReceiverAddress: req.Address,
		TotalAmount:     req.Total,
		Items:           make([]GineeOrderItem, 0, len(req.Items)),
		UpdateTime:      req.UpdatedAt.UnixMilli(),
	}
	for _, it := range req.Items {
		body.Items = append(body.Items, GineeOrderItem{
			MasterSKU:   it.SKU,
			ProductName: it.Name,
			Quantity:    it.Quantity,
			ActualPrice: it.UnitPrice,
		})
	}

	var resp GineeOrderPushResponse
	if err := a.call(ctx, http.MethodPost, gineePathOrderPush, body, &resp); err != nil {
		return nil, err
	}
	return &integration.PushOrderResult{ExternalOrderID: resp.OrderID, Accepted: true}, nil
}

// mapOrderStatusToGinee maps the storefront order status to Ginee's order status
func mapOrderStatusToGinee(status string) string {
	switch status {
	case "PAID":
		return "PAID"
	case "PROCESSING":
		return "READY_TO_SHIP"
	case "SHIPPED":
		return "SHIPPING"
	case "DELIVERED":
		return "DELIVERED"
	case "CANCELLED":
		return "CANCELLED"
	default:
		return status
	}
}

// ---------------------------------------------------------------------------
// Transport
// ---------------------------------------------------------------------------

// call sends a signed JSON request and decodes the envelope data into out
func (a *GineeAdapter) call(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("ginee: failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.config.APIBaseURL+path, body)
	if err != nil {
		return fmt.Errorf("ginee: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", a.config.Authorization(method, path))
	req.Header.Set(gineeCountryHeader, a.config.Country)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", integration.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", integration.ErrPlatformUnavailable, err)
	}

	if err := mapHTTPStatus(resp.StatusCode); err != nil {
		return err
	}

	var env GineeEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: failed to parse response: %v", integration.ErrPlatformInvalidResponse, err)
	}
	if env.Code != GineeCodeSuccess {
		return fmt.Errorf("%w: %s: %s", mapGineeCode(env.Code), env.Code, env.Message)
	}

	if out == nil {
		return nil
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return fmt.Errorf("%w: empty data", integration.ErrPlatformInvalidResponse)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: failed to parse data: %v", integration.ErrPlatformInvalidResponse, err)
	}
	return nil
}

func mapHTTPStatus(code int) error {
	switch {
	case code < 400:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: HTTP %d", integration.ErrPlatformAuthFailed, code)
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: HTTP %d", integration.ErrPlatformNotFound, code)
	case code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: HTTP %d", integration.ErrPlatformRateLimited, code)
	case code >= 500:
		return fmt.Errorf("%w: HTTP %d", integration.ErrPlatformUnavailable, code)
	default:
		return fmt.Errorf("%w: HTTP %d", integration.ErrPlatformRequestFailed, code)
	}
}

func mapGineeCode(code string) error {
	switch code {
	case GineeCodeInvalidSignature, GineeCodeUnauthorized:
		return integration.ErrPlatformAuthFailed
	case GineeCodeRateLimited:
		return integration.ErrPlatformRateLimited
	case GineeCodeNotFound:
		return integration.ErrPlatformNotFound
	case GineeCodeSystemBusy:
		return integration.ErrPlatformUnavailable
	default:
		return integration.ErrPlatformRequestFailed
	}
}

// Ensure GineeAdapter implements integration.MarketplaceGateway
var _ integration.MarketplaceGateway = (*GineeAdapter)(nil)
