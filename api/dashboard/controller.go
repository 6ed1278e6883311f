// Package dashboard exposes the admin sales dashboard over HTTP.
package dashboard

import (
	"storefront/api/response"
	dashboardapp "storefront/application/dashboard"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	dashboardService *dashboardapp.Service
}

func NewController(dashboardService *dashboardapp.Service) *Controller {
	return &Controller{
		dashboardService: dashboardService,
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard/summary", c.GetSummary)
}

// GetSummary returns counts, revenue, the 30-day series, and region and
// delivery breakdowns.
// GET /api/v1/dashboard/summary
func (c *Controller) GetSummary(ctx *gin.Context) {
	summary, err := c.dashboardService.GetSummary(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, summary, "dashboard summary retrieved successfully")
}
