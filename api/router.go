package api

import (
	"storefront/api/catalog"
	"storefront/api/dashboard"
	"storefront/api/health"
	"storefront/api/middleware"
	"storefront/api/order"
	"storefront/config"

	"github.com/gin-gonic/gin"
)

// Router assembles the gin engine, the middleware chain, and all
// controllers.
type Router struct {
	engine              *gin.Engine
	config              *config.Config
	healthController    *health.Controller
	catalogController   *catalog.Controller
	orderController     *order.Controller
	dashboardController *dashboard.Controller
}

func NewRouter(
	cfg *config.Config,
	healthController *health.Controller,
	catalogController *catalog.Controller,
	orderController *order.Controller,
	dashboardController *dashboard.Controller,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Middleware order matters: the request ID must exist before anything
	// logs, and recovery must wrap everything that can panic.
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))

	return &Router{
		engine:              engine,
		config:              cfg,
		healthController:    healthController,
		catalogController:   catalogController,
		orderController:     orderController,
		dashboardController: dashboardController,
	}
}

func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		r.healthController.RegisterRoutes(apiGroup)
		r.catalogController.RegisterRoutes(apiGroup)
		r.orderController.RegisterRoutes(apiGroup,
			middleware.PlacementRateLimitMiddleware(&r.config.OrderLimiter))
		r.dashboardController.RegisterRoutes(apiGroup)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
