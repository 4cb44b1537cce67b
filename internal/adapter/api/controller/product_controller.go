package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rajgh7/surprisevista/internal/adapter/api/dto"
	"github.com/rajgh7/surprisevista/internal/adapter/repository"
	"github.com/rajgh7/surprisevista/internal/domain/product"
	"github.com/rajgh7/surprisevista/pkg/logger"
)

// ProductController handles the public catalog listing and the admin
// catalog management endpoints
type ProductController struct {
	products product.Repository
	logger   logger.Logger
}

// NewProductController creates a new product controller
func NewProductController(products product.Repository, log logger.Logger) *ProductController {
	return &ProductController{products: products, logger: log}
}

// List godoc
// @Summary List catalog products
// @Description Public paginated product listing, newest first
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(12)
// @Success 200 {object} dto.SuccessResponse
// @Router /api/products [get]
func (c *ProductController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "12"))
	pagination := dto.GetPagination(page, pageSize)

	products, err := c.products.List(ctx.Request.Context(), pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("product listing failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			http.StatusInternalServerError, "server_error", "please try again"))
		return
	}

	total, err := c.products.Count(ctx.Request.Context())
	if err != nil {
		c.logger.Error("product count failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			http.StatusInternalServerError, "server_error", "please try again"))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("products listed", gin.H{
		"products": dto.ToProductResponses(products),
		"total":    total,
		"page":     pagination.Page,
	}))
}

// Get godoc
// @Summary Fetch one product
// @Description Public product detail by ID
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/products/{id} [get]
func (c *ProductController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	p, err := c.products.FindByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(
				http.StatusNotFound, "product not found", ""))
			return
		}
		c.logger.Error("product fetch failed", "product_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			http.StatusInternalServerError, "server_error", "please try again"))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// Create godoc
// @Summary Create a product
// @Description Admin creation of a catalog product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body dto.ProductRequest true "Product to create"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/admin/products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	var req dto.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			http.StatusBadRequest, "invalid payload", err.Error()))
		return
	}

	p, err := product.NewProduct(req.Name, req.Description, req.Price, req.Category, req.Image, req.Tags, req.Inventory)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			http.StatusBadRequest, "invalid product", err.Error()))
		return
	}

	if err := c.products.Create(ctx.Request.Context(), p); err != nil {
		if errors.Is(err, repository.ErrProductDuplicateSlug) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(
				http.StatusConflict, "duplicate product", err.Error()))
			return
		}
		c.logger.Error("product create failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			http.StatusInternalServerError, "server_error", "please try again"))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToProductResponse(p))
}

// Update godoc
// @Summary Update a product
// @Description Admin replacement of a catalog product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param product body dto.ProductRequest true "New product data"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/products/{id} [put]
func (c *ProductController) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			http.StatusBadRequest, "invalid payload", err.Error()))
		return
	}

	p, err := c.products.FindByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(
				http.StatusNotFound, "product not found", ""))
			return
		}
		c.logger.Error("product fetch failed", "product_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			http.StatusInternalServerError, "server_error", "please try again"))
		return
	}

	p.Name = req.Name
	p.Slug = product.Slugify(req.Name)
	p.Description = req.Description
	p.Price = req.Price
	p.Category = req.Category
	p.Image = req.Image
	p.Tags = req.Tags
	p.Inventory = req.Inventory

	if err := c.products.Update(ctx.Request.Context(), p); err != nil {
		c.logger.Error("product update failed", "product_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			http.StatusInternalServerError, "server_error", "please try again"))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// Delete godoc
// @Summary Delete a product
// @Description Admin removal of a catalog product
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/products/{id} [delete]
func (c *ProductController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.products.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(
				http.StatusNotFound, "product not found", ""))
			return
		}
		c.logger.Error("product delete failed", "product_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			http.StatusInternalServerError, "server_error", "please try again"))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("product deleted", gin.H{"id": id}))
}
