package handler

import (
	"strings"
	"time"

	orderapp "github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/application/order"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/order"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// OrderHandler serves the admin order screens
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// ListOrdersRequest holds the admin list query string
// @Name HandlerListOrdersRequest
type ListOrdersRequest struct {
	Page          int    `form:"page" binding:"omitempty,min=1" example:"1"`
	Limit         int    `form:"limit" binding:"omitempty,min=1,max=100" example:"20"`
	Search        string `form:"search" binding:"max=200" example:"SF-20260101"`
	Status        string `form:"status" binding:"omitempty,order_status" example:"PAID"`
	PaymentMethod string `form:"paymentMethod" binding:"omitempty,payment_method" example:"gopay"`
	StartDate     string `form:"startDate" example:"2026-01-01"`
	EndDate       string `form:"endDate" example:"2026-01-31"`
	SortBy        string `form:"sortBy" binding:"omitempty,oneof=createdAt total orderNumber status" example:"createdAt"`
	SortOrder     string `form:"sortOrder" binding:"omitempty,oneof=asc desc" example:"desc"`
}

// UpdateOrderStatusRequest asks for a status transition
// @Name HandlerUpdateOrderStatusRequest
type UpdateOrderStatusRequest struct {
	Status         string `json:"status" binding:"required" example:"SHIPPED"`
	TrackingNumber string `json:"trackingNumber" binding:"max=100" example:"JNE1234567890"`
	Notes          string `json:"notes" binding:"max=1000" example:"Packed by warehouse B"`
}

// List godoc
// @ID           listAdminOrders
// @Summary      List orders
// @Description  Page through orders with search, status, payment method and date filters
// @Tags         orders
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(20) maximum(100)
// @Param        search query string false "Order number, customer name or email"
// @Param        status query string false "Order status" Enums(PENDING_PAYMENT, PAID, PROCESSING, SHIPPED, DELIVERED, CANCELLED, REFUNDED)
// @Param        paymentMethod query string false "Payment method"
// @Param        startDate query string false "Created on or after (YYYY-MM-DD or RFC3339)"
// @Param        endDate query string false "Created on or before (YYYY-MM-DD or RFC3339)"
// @Param        sortBy query string false "Sort key" Enums(createdAt, total, orderNumber, status)
// @Param        sortOrder query string false "Sort order" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]orderapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/admin [get]
func (h *OrderHandler) List(c *gin.Context) {
	var req ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	start, err := parseDateParam(req.StartDate, false)
	if err != nil {
		h.BadRequest(c, "Invalid startDate")
		return
	}
	end, err := parseDateParam(req.EndDate, true)
	if err != nil {
		h.BadRequest(c, "Invalid endDate")
		return
	}

	orders, meta, err := h.orderService.List(c.Request.Context(), orderapp.ListOrdersQuery{
		Page:          req.Page,
		Limit:         req.Limit,
		Search:        strings.TrimSpace(req.Search),
		Status:        order.Status(req.Status),
		PaymentMethod: order.PaymentMethod(req.PaymentMethod),
		StartDate:     start,
		EndDate:       end,
		SortBy:        req.SortBy,
		SortOrder:     req.SortOrder,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, meta)
}

// Stats godoc
// @ID           getAdminOrderStats
// @Summary      Order counts per status
// @Tags         orders
// @Produce      json
// @Success      200 {object} APIResponse[orderapp.StatsResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/admin/stats [get]
func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.orderService.Stats(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, stats)
}

// GetByID godoc
// @ID           getOrderById
// @Summary      Get order by ID
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[orderapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	resp, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateStatus godoc
// @ID           updateOrderStatus
// @Summary      Change order status
// @Description  Applies a status transition. Illegal transitions answer 422 with the current and attempted status; a lost concurrent update answers 409.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body UpdateOrderStatusRequest true "Target status"
// @Success      200 {object} APIResponse[orderapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.orderService.Transition(c.Request.Context(), id, orderapp.TransitionRequest{
		Status:         order.Status(strings.ToUpper(strings.TrimSpace(req.Status))),
		TrackingNumber: strings.TrimSpace(req.TrackingNumber),
		Notes:          req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// parseDateParam accepts a calendar date or an RFC3339 timestamp. A date used
// as an upper bound covers the whole day.
func parseDateParam(value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
