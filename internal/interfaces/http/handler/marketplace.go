package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	integrationapp "github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/application/integration"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/shared"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SyncService is the marketplace command surface used by the handler
type SyncService interface {
	PushProduct(ctx context.Context, productID uuid.UUID) (*integrationapp.PushResult, error)
	PullProduct(ctx context.Context, productID uuid.UUID) (*integrationapp.PullResult, error)
	PullProductByExternalID(ctx context.Context, externalID string) (*integrationapp.PullResult, error)
	PullStock(ctx context.Context, productIDs []uuid.UUID) (*integrationapp.StockResult, error)
	PushOrder(ctx context.Context, orderID uuid.UUID) (*integrationapp.OrderPushResult, error)
	StartSyncAll(ctx context.Context, dryRun bool) (*integrationapp.StartResult, error)
	SyncAllStatus(ctx context.Context) (*integrationapp.SyncStatus, error)
	GetSyncBadge(ctx context.Context, productID uuid.UUID) (*integrationapp.BadgeResult, error)
}

var _ SyncService = (*integrationapp.SyncOrchestrator)(nil)

// MarketplaceHandler serves the Ginee sync commands and the sync log
type MarketplaceHandler struct {
	BaseHandler
	sync SyncService
	logs *integrationapp.SyncLogService
}

// NewMarketplaceHandler creates a new MarketplaceHandler
func NewMarketplaceHandler(sync SyncService, logs *integrationapp.SyncLogService) *MarketplaceHandler {
	return &MarketplaceHandler{sync: sync, logs: logs}
}

// ListSyncLogsRequest holds the sync log query string
// @Name HandlerListSyncLogsRequest
type ListSyncLogsRequest struct {
	Type   string `form:"type" binding:"omitempty,sync_log_type" example:"sync_all"`
	Status string `form:"status" binding:"omitempty,sync_log_status" example:"partial"`
	Page   int    `form:"page" binding:"omitempty,min=1" example:"1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100" example:"20"`
}

// SyncLogResponse is one sync log entry
// @Name HandlerSyncLogResponse
type SyncLogResponse struct {
	ID               int64           `json:"id" example:"42"`
	Type             string          `json:"type" example:"pull_product"`
	Status           string          `json:"status" example:"success"`
	ErrorMessage     *string         `json:"errorMessage,omitempty"`
	PayloadSent      json.RawMessage `json:"payloadSent,omitempty" swaggertype:"object"`
	ResponseReceived json.RawMessage `json:"responseReceived,omitempty" swaggertype:"object"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// PullProductRequest names the product by local or marketplace id
// @Name HandlerPullProductRequest
type PullProductRequest struct {
	ProductID      string `json:"productId" binding:"omitempty,uuid" example:"7f1c2d7e-0d3c-4c8e-9a43-2f0e8c5b6a11"`
	GineeProductID string `json:"gineeProductId" binding:"required_without=ProductID,max=100" example:"GN-PRD-88123"`
}

// PushProductRequest names a local product
// @Name HandlerPushProductRequest
type PushProductRequest struct {
	ProductID string `json:"productId" binding:"required,uuid" example:"7f1c2d7e-0d3c-4c8e-9a43-2f0e8c5b6a11"`
}

// PullStockRequest limits the stock pull; empty means every linked product
// @Name HandlerPullStockRequest
type PullStockRequest struct {
	ProductIDs []string `json:"productIds" binding:"omitempty,max=500,dive,uuid"`
}

// PushOrderRequest names a local order
// @Name HandlerPushOrderRequest
type PushOrderRequest struct {
	OrderID string `json:"orderId" binding:"required,uuid" example:"0b6f5a3e-8d1e-4f3b-a9a5-17c2b1d6e0f4"`
}

// SyncAllRequest starts a catalog-wide reconcile
// @Name HandlerSyncAllRequest
type SyncAllRequest struct {
	DryRun bool `json:"dryRun" example:"true"`
}

func toSyncLogResponse(l *integration.SyncLog) SyncLogResponse {
	return SyncLogResponse{
		ID:               l.ID,
		Type:             string(l.Type),
		Status:           string(l.Status),
		ErrorMessage:     l.ErrorMessage,
		PayloadSent:      l.PayloadSent,
		ResponseReceived: l.ResponseReceived,
		CreatedAt:        l.CreatedAt,
	}
}

// ListLogs godoc
// @ID           listGineeSyncLogs
// @Summary      List sync log entries
// @Description  Newest first, optionally narrowed by type and status
// @Tags         ginee
// @Produce      json
// @Param        type query string false "Log type" Enums(pull_stock, push_order, pull_product, push_product, sync_all)
// @Param        status query string false "Log status" Enums(success, failed, completed, partial)
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]SyncLogResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /ginee/logs [get]
func (h *MarketplaceHandler) ListLogs(c *gin.Context) {
	var req ListSyncLogsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	list, err := h.logs.List(c.Request.Context(), integration.SyncLogFilter{
		Filter: shared.Filter{Page: req.Page, PageSize: req.Limit},
		Type:   integration.SyncLogType(req.Type),
		Status: integration.SyncLogStatus(req.Status),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	items := make([]SyncLogResponse, 0, len(list.Items))
	for _, l := range list.Items {
		items = append(items, toSyncLogResponse(l))
	}
	h.SuccessWithMeta(c, items, list.Meta)
}

// GetLog godoc
// @ID           getGineeSyncLog
// @Summary      Get one sync log entry
// @Tags         ginee
// @Produce      json
// @Param        id path int true "Log ID"
// @Success      200 {object} APIResponse[SyncLogResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /ginee/logs/{id} [get]
func (h *MarketplaceHandler) GetLog(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.BadRequest(c, "Invalid log ID")
		return
	}

	entry, err := h.logs.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, toSyncLogResponse(entry))
}

// PullProduct godoc
// @ID           pullGineeProduct
// @Summary      Pull one product from the marketplace
// @Description  Overwrites local variant stock and prices with the marketplace values. Accepts the local productId or the marketplace gineeProductId.
// @Tags         ginee
// @Accept       json
// @Produce      json
// @Param        request body PullProductRequest true "Product to pull"
// @Success      200 {object} APIResponse[integrationapp.PullResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /ginee/sync/pull-product [post]
func (h *MarketplaceHandler) PullProduct(c *gin.Context) {
	var req PullProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	var (
		result *integrationapp.PullResult
		err    error
	)
	if req.ProductID != "" {
		result, err = h.sync.PullProduct(c.Request.Context(), uuid.MustParse(req.ProductID))
	} else {
		result, err = h.sync.PullProductByExternalID(c.Request.Context(), strings.TrimSpace(req.GineeProductID))
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// PushProduct godoc
// @ID           pushGineeProduct
// @Summary      Push one product to the marketplace
// @Description  Creates the marketplace listing on first push, updates it afterwards
// @Tags         ginee
// @Accept       json
// @Produce      json
// @Param        request body PushProductRequest true "Product to push"
// @Success      200 {object} APIResponse[integrationapp.PushResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /ginee/sync/push-product [post]
func (h *MarketplaceHandler) PushProduct(c *gin.Context) {
	var req PushProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.sync.PushProduct(c.Request.Context(), uuid.MustParse(req.ProductID))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// PullStock godoc
// @ID           pullGineeStock
// @Summary      Pull stock levels from the marketplace
// @Tags         ginee
// @Accept       json
// @Produce      json
// @Param        request body PullStockRequest false "Products to refresh"
// @Success      200 {object} APIResponse[integrationapp.StockResult]
// @Failure      400 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /ginee/sync/pull-stock [post]
func (h *MarketplaceHandler) PullStock(c *gin.Context) {
	var req PullStockRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindingError(c, err)
			return
		}
	}

	ids := make([]uuid.UUID, 0, len(req.ProductIDs))
	for _, raw := range req.ProductIDs {
		ids = append(ids, uuid.MustParse(raw))
	}

	result, err := h.sync.PullStock(c.Request.Context(), ids)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// PushOrder godoc
// @ID           pushGineeOrder
// @Summary      Forward an order status to the marketplace
// @Tags         ginee
// @Accept       json
// @Produce      json
// @Param        request body PushOrderRequest true "Order to push"
// @Success      200 {object} APIResponse[integrationapp.OrderPushResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /ginee/sync/push-order [post]
func (h *MarketplaceHandler) PushOrder(c *gin.Context) {
	var req PushOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.sync.PushOrder(c.Request.Context(), uuid.MustParse(req.OrderID))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// SyncAll godoc
// @ID           startGineeSyncAll
// @Summary      Start a catalog-wide sync
// @Description  Runs in the background. Answers 202 when started; when another run holds the lease answers 200 with success=false and accepted=false.
// @Tags         ginee
// @Accept       json
// @Produce      json
// @Param        request body SyncAllRequest false "Run options"
// @Success      202 {object} APIResponse[integrationapp.StartResult]
// @Success      200 {object} APIResponse[integrationapp.StartResult] "Refused: already running"
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /ginee/sync/all [post]
func (h *MarketplaceHandler) SyncAll(c *gin.Context) {
	var req SyncAllRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindingError(c, err)
			return
		}
	}

	result, err := h.sync.StartSyncAll(c.Request.Context(), req.DryRun)
	if errors.Is(err, integration.ErrSyncAlreadyRunning) && result != nil {
		c.JSON(http.StatusOK, dto.NewRefusalResponse(result, dto.ErrCodeSyncAlreadyRunning, result.Reason))
		return
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Accepted(c, result)
}

// SyncStatus godoc
// @ID           getGineeSyncStatus
// @Summary      Sync-all lease status
// @Tags         ginee
// @Produce      json
// @Success      200 {object} APIResponse[integrationapp.SyncStatus]
// @Security     BearerAuth
// @Router       /ginee/sync/status [get]
func (h *MarketplaceHandler) SyncStatus(c *gin.Context) {
	status, err := h.sync.SyncAllStatus(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, status)
}

// ProductStatus godoc
// @ID           getProductGineeStatus
// @Summary      Marketplace sync badge of a product
// @Tags         ginee
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[integrationapp.BadgeResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id}/ginee-status [get]
func (h *MarketplaceHandler) ProductStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	badge, err := h.sync.GetSyncBadge(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, badge)
}
