// Package catalog exposes product management and the storefront listing
// over HTTP.
package catalog

import (
	"net/http"

	"storefront/api/response"
	catalogapp "storefront/application/catalog"
	"storefront/pkg/errors"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	productService *catalogapp.ApplicationService
}

func NewController(productService *catalogapp.ApplicationService) *Controller {
	return &Controller{
		productService: productService,
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	productGroup := router.Group("/products")
	{
		productGroup.POST("", c.CreateProduct)
		productGroup.GET("", c.ListProducts)
		productGroup.GET("/:id", c.GetProduct)
		productGroup.GET("/slug/:slug", c.GetProductBySlug)
		productGroup.PUT("/:id", c.UpdateProduct)
		productGroup.DELETE("/:id", c.DeleteProduct)
	}
}

// CreateProduct creates a product with its variants.
// POST /api/v1/products
func (c *Controller) CreateProduct(ctx *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	created, err := c.productService.CreateProduct(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, created, "product created successfully")
}

// ListProducts is the storefront listing.
// GET /api/v1/products?brand=&min_price=&max_price=&in_stock=&is_featured=&search=&page=&limit=
func (c *Controller) ListProducts(ctx *gin.Context) {
	var req catalogapp.ListProductsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	page, err := c.productService.ListProducts(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	pagination := response.NewPagination(page.Page, page.PageSize, page.Total)
	response.HandlePaginated(ctx, page.Products, pagination, "products retrieved successfully")
}

// GetProduct returns one product by ID.
// GET /api/v1/products/:id
func (c *Controller) GetProduct(ctx *gin.Context) {
	productID := ctx.Param("id")
	if productID == "" {
		response.HandleError(ctx, errors.BadRequest("product ID is required"), "product ID is required", http.StatusBadRequest)
		return
	}

	found, err := c.productService.GetProduct(ctx.Request.Context(), productID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, found, "product retrieved successfully")
}

// GetProductBySlug returns one product by its storefront slug.
// GET /api/v1/products/slug/:slug
func (c *Controller) GetProductBySlug(ctx *gin.Context) {
	productSlug := ctx.Param("slug")
	if productSlug == "" {
		response.HandleError(ctx, errors.BadRequest("product slug is required"), "product slug is required", http.StatusBadRequest)
		return
	}

	found, err := c.productService.GetProductBySlug(ctx.Request.Context(), productSlug)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, found, "product retrieved successfully")
}

// UpdateProduct replaces a product's content and variants.
// PUT /api/v1/products/:id
func (c *Controller) UpdateProduct(ctx *gin.Context) {
	productID := ctx.Param("id")
	if productID == "" {
		response.HandleError(ctx, errors.BadRequest("product ID is required"), "product ID is required", http.StatusBadRequest)
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	updated, err := c.productService.UpdateProduct(ctx.Request.Context(), productID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, updated, "product updated successfully")
}

// DeleteProduct removes a product. Placed orders keep their snapshots.
// DELETE /api/v1/products/:id
func (c *Controller) DeleteProduct(ctx *gin.Context) {
	productID := ctx.Param("id")
	if productID == "" {
		response.HandleError(ctx, errors.BadRequest("product ID is required"), "product ID is required", http.StatusBadRequest)
		return
	}

	if err := c.productService.DeleteProduct(ctx.Request.Context(), productID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}
