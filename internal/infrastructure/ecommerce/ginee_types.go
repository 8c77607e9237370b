package ecommerce

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Ginee OpenAPI paths
const (
	gineePathShopList      = "/openapi/shop/v1/list"
	gineePathProductCreate = "/openapi/product/master/v1/create"
	gineePathProductUpdate = "/openapi/product/master/v1/update"
	gineePathProductGet    = "/openapi/product/master/v1/get"
	gineePathStockList     = "/openapi/warehouse-inventory/v1/sku/list"
	gineePathOrderPush     = "/openapi/order/v1/push"
)

// Ginee response codes
const (
	GineeCodeSuccess          = "SUCCESS"
	GineeCodeInvalidSignature = "INVALID_SIGNATURE"
	GineeCodeUnauthorized     = "UNAUTHORIZED"
	GineeCodeRateLimited      = "TOO_MANY_REQUESTS"
	GineeCodeNotFound         = "DATA_NOT_FOUND"
	GineeCodeSystemBusy       = "SYSTEM_BUSY"
)

// GineeEnvelope wraps every Ginee response
type GineeEnvelope struct {
	Code          string          `json:"code"`
	Message       string          `json:"message"`
	Data          json.RawMessage `json:"data"`
	TransactionID string          `json:"transactionId,omitempty"`
}

// GineeShopListRequest pages through connected shops
type GineeShopListRequest struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// GineeStock is the inventory block of a variation
type GineeStock struct {
	AvailableStock int `json:"availableStock"`
}

// GineeVariation is one SKU of a master product
type GineeVariation struct {
	MasterSKU    string          `json:"masterSku"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Stock        GineeStock      `json:"stock"`
}

// GineeProduct is a master product
type GineeProduct struct {
	ProductID  string           `json:"productId,omitempty"`
	Name       string           `json:"name"`
	Variations []GineeVariation `json:"variations"`
}

// GineeProductGetRequest asks for one master product
type GineeProductGetRequest struct {
	ProductID string `json:"productId"`
}

// GineeProductSaveResponse is returned by create and update
type GineeProductSaveResponse struct {
	ProductID string `json:"productId"`
}

// GineeStockListRequest asks for inventory of master SKUs
type GineeStockListRequest struct {
	MasterSKUs []string `json:"masterSkus"`
	Page       int      `json:"page"`
	Size       int      `json:"size"`
}

// GineeStockItem is the inventory of one master SKU
type GineeStockItem struct {
	MasterSKU      string `json:"masterSku"`
	AvailableStock int    `json:"availableStock"`
}

// GineeStockListResponse is a page of inventory rows
type GineeStockListResponse struct {
	Content []GineeStockItem `json:"content"`
	Total   int              `json:"total"`
}

// GineeOrderItem is a line of a pushed order
type GineeOrderItem struct {
	MasterSKU   string          `json:"masterSku"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	ActualPrice decimal.Decimal `json:"actualPrice"`
}

// GineeOrderPushRequest forwards a storefront order
type GineeOrderPushRequest struct {
	ExternalOrderSN string           `json:"externalOrderSn"`
	OrderStatus     string           `json:"orderStatus"`
	LogisticsName   string           `json:"logisticsName"`
	LogisticsType   string           `json:"logisticsType"`
	TrackingNumber  string           `json:"trackingNumber,omitempty"`
	ReceiverName    string           `json:"receiverName"`
	ReceiverPhone   string           `json:"receiverPhone"`
	ReceiverAddress string           `json:"receiverAddress"`
	TotalAmount     decimal.Decimal  `json:"totalAmount"`
	Items           []GineeOrderItem `json:"items"`
	UpdateTime      int64            `json:"updateTime"`
}

// GineeOrderPushResponse acknowledges a pushed order
type GineeOrderPushResponse struct {
	OrderID string `json:"orderId"`
}
