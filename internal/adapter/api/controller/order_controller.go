package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rajgh7/surprisevista/internal/adapter/api/dto"
	"github.com/rajgh7/surprisevista/internal/adapter/repository"
	"github.com/rajgh7/surprisevista/internal/domain/order"
	"github.com/rajgh7/surprisevista/pkg/logger"
	"github.com/rajgh7/surprisevista/pkg/notifier"
)

// OrderController handles storefront order placement, public tracking,
// and the admin fulfilment endpoints
type OrderController struct {
	orders   order.Repository
	notifier notifier.Notifier
	logger   logger.Logger
}

// NewOrderController creates a new order controller
func NewOrderController(orders order.Repository, n notifier.Notifier, log logger.Logger) *OrderController {
	return &OrderController{orders: orders, notifier: n, logger: log}
}

// Create godoc
// @Summary Place an order
// @Description Creates an order from the storefront checkout form
// @Tags Orders
// @Accept json
// @Produce json
// @Param order body dto.OrderCreateRequest true "Order to place"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/orders [post]
func (c *OrderController) Create(ctx *gin.Context) {
	var req dto.OrderCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			http.StatusBadRequest, "invalid payload", err.Error()))
		return
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, order.Item{
			ProductID: it.ProductID,
			Title:     it.Title,
			Price:     it.Price,
			Qty:       it.Qty,
		})
	}

	o, err := order.NewOrder(items, req.Address, req.PaymentMethod)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			http.StatusBadRequest, "invalid order", err.Error()))
		return
	}
	o.CustomerName = req.CustomerName
	o.Email = req.Email
	o.Phone = req.Phone

	if err := c.orders.Create(ctx.Request.Context(), o); err != nil {
		c.logger.Error("order create failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			http.StatusInternalServerError, "server_error", "please try again"))
		return
	}

	go func() {
		nctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := c.notifier.OrderPlaced(nctx, o); err != nil {
			c.logger.Warn("order notification failed", "order_code", o.OrderCode, "error", err)
		}
	}()

	ctx.JSON(http.StatusCreated, dto.ToOrderResponse(o))
}

// Track godoc
// @Summary Track an order by code
// @Description Public lookup of order status by customer-facing code
// @Tags Orders
// @Produce json
// @Param code path string true "Order code, e.g. SV-20250101-12345"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/track/{code} [get]
func (c *OrderController) Track(ctx *gin.Context) {
	code := strings.TrimSpace(ctx.Param("code"))

	o, err := c.orders.FindByCode(ctx.Request.Context(), code)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(
				http.StatusNotFound, "order not found", ""))
			return
		}
		c.logger.Error("order tracking failed", "code", code, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			http.StatusInternalServerError, "server_error", "please try again"))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderResponse(o))
}

// List godoc
// @Summary List orders
// @Description Admin listing of orders, newest first
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(10)
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/admin/orders [get]
func (c *OrderController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	pagination := dto.GetPagination(page, pageSize)

	orders, err := c.orders.List(ctx.Request.Context(), pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("order listing failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			http.StatusInternalServerError, "server_error", "please try again"))
		return
	}

	total, err := c.orders.Count(ctx.Request.Context())
	if err != nil {
		c.logger.Error("order count failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			http.StatusInternalServerError, "server_error", "please try again"))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("orders listed", gin.H{
		"orders": dto.ToOrderResponses(orders),
		"total":  total,
		"page":   pagination.Page,
	}))
}

// UpdateStatus godoc
// @Summary Update an order's fulfilment status
// @Description Admin transition of an order to a new status
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param status body dto.OrderStatusRequest true "New status"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/orders/{id}/status [patch]
func (c *OrderController) UpdateStatus(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.OrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			http.StatusBadRequest, "invalid payload", err.Error()))
		return
	}

	status, ok := parseStatus(req.Status)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			http.StatusBadRequest, "unknown status", req.Status))
		return
	}

	if err := c.orders.UpdateStatus(ctx.Request.Context(), id, status); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(
				http.StatusNotFound, "order not found", ""))
			return
		}
		c.logger.Error("order status update failed", "order_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			http.StatusInternalServerError, "server_error", "please try again"))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("status updated", gin.H{
		"id":     id,
		"status": string(status),
	}))
}

// parseStatus matches a status string case-insensitively against the
// known fulfilment statuses
func parseStatus(s string) (order.Status, bool) {
	for _, candidate := range []order.Status{
		order.StatusPlaced,
		order.StatusProcessing,
		order.StatusShipped,
		order.StatusOutForDelivery,
		order.StatusDelivered,
	} {
		if strings.EqualFold(s, string(candidate)) {
			return candidate, true
		}
	}
	return "", false
}
