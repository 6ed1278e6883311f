// Package order exposes checkout and order administration over HTTP.
//
// Controllers parse the request, delegate to the application service, and
// hand results to the response package. Binding failures return 400
// directly; business errors go through response.HandleAppError, which maps
// domain errors to status codes.
package order

import (
	"net/http"

	"storefront/api/response"
	orderapp "storefront/application/order"
	"storefront/pkg/errors"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	orderService *orderapp.ApplicationService
}

func NewController(orderService *orderapp.ApplicationService) *Controller {
	return &Controller{
		orderService: orderService,
	}
}

// RegisterRoutes registers the order routes. The placement route takes an
// extra middleware chain so the per-IP placement limiter only guards
// checkout.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup, placementGuards ...gin.HandlerFunc) {
	orderGroup := router.Group("/orders")
	{
		handlers := append(placementGuards, c.PlaceOrder)
		orderGroup.POST("", handlers...)
		orderGroup.GET("", c.ListOrders)
		orderGroup.GET("/:id", c.GetOrder)
		orderGroup.PATCH("/:id/status", c.UpdateStatus)
	}
}

// PlaceOrder handles storefront checkout.
// POST /api/v1/orders
func (c *Controller) PlaceOrder(ctx *gin.Context) {
	var req orderapp.PlaceOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	placed, err := c.orderService.PlaceOrder(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, placed, "order placed successfully")
}

// GetOrder returns one order.
// GET /api/v1/orders/:id
func (c *Controller) GetOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	found, err := c.orderService.GetOrder(ctx.Request.Context(), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, found, "order retrieved successfully")
}

// ListOrders returns the admin order listing.
// GET /api/v1/orders?status=&search=&page=&limit=
func (c *Controller) ListOrders(ctx *gin.Context) {
	var req orderapp.ListOrdersRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	page, err := c.orderService.ListOrders(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	pagination := response.NewPagination(page.Page, page.PageSize, page.Total)
	response.HandlePaginated(ctx, page.Orders, pagination, "orders retrieved successfully")
}

// UpdateStatusRequest is the status transition payload.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves an order through its lifecycle.
// PATCH /api/v1/orders/:id/status
func (c *Controller) UpdateStatus(ctx *gin.Context) {
	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	var req UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	updated, err := c.orderService.UpdateStatus(ctx.Request.Context(), orderID, req.Status)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, updated, "order status updated successfully")
}
