package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/storefrontlab/storefront-backend/internal/app/repository"
	"github.com/storefrontlab/storefront-backend/internal/app/service"
	apperrors "github.com/storefrontlab/storefront-backend/internal/errors"
	"github.com/storefrontlab/storefront-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type CreateProductRequest struct {
	Title        string  `json:"title" binding:"required"`
	Slug         string  `json:"slug"`
	Description  string  `json:"description"`
	UnitPrice    float64 `json:"unit_price" binding:"required,gt=0"`
	Inventory    int     `json:"inventory" binding:"gte=0"`
	CollectionID uint    `json:"collection_id" binding:"required"`
}

type UpdateProductRequest struct {
	Title        *string  `json:"title"`
	Slug         *string  `json:"slug"`
	Description  *string  `json:"description"`
	UnitPrice    *float64 `json:"unit_price" binding:"omitempty,gt=0"`
	Inventory    *int     `json:"inventory" binding:"omitempty,gte=0"`
	CollectionID *uint    `json:"collection_id"`
}

// List returns a filtered, paginated product listing
// GET /api/v1/products
func (ctrl *ProductController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.ProductFilter{
		Search:    c.Query("search"),
		SortBy:    c.Query("ordering"),
		SortOrder: c.DefaultQuery("direction", "asc"),
	}
	if v := c.Query("collection_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid collection_id parameter")
			return
		}
		filter.CollectionID = uint(id)
	}
	if v := c.Query("unit_price_min"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Invalid unit_price_min parameter")
			return
		}
		filter.MinPrice = f
	}
	if v := c.Query("unit_price_max"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Invalid unit_price_max parameter")
			return
		}
		filter.MaxPrice = f
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Invalid limit parameter")
			return
		}
		filter.Limit = n
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Invalid offset parameter")
			return
		}
		filter.Offset = n
	}

	page, err := ctrl.productService.List(filter)
	if err != nil {
		log.Error("Failed to fetch products", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": page.Products,
		"total":    page.Total,
	})
}

// Get returns one product
// GET /api/v1/products/:id
func (ctrl *ProductController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Create adds a product (Admin only)
// POST /api/v1/products
func (ctrl *ProductController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithValidationError(c, apperrors.FieldErrors(err))
		return
	}

	product, err := ctrl.productService.Create(service.ProductInput{
		Title:        &req.Title,
		Slug:         &req.Slug,
		Description:  &req.Description,
		UnitPrice:    &req.UnitPrice,
		Inventory:    &req.Inventory,
		CollectionID: &req.CollectionID,
	})
	if err != nil {
		if errors.Is(err, service.ErrCollectionNotFound) {
			apperrors.RespondWithValidationError(c, map[string]string{
				"collection_id": "Collection does not exist",
			})
			return
		}
		log.Error("Failed to create product", err, map[string]interface{}{
			"title": req.Title,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
	})
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// Update patches a product (Admin only)
// PATCH /api/v1/products/:id
func (ctrl *ProductController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithValidationError(c, apperrors.FieldErrors(err))
		return
	}
	if req.Title != nil && *req.Title == "" {
		apperrors.RespondWithValidationError(c, map[string]string{
			"title": "This field may not be blank",
		})
		return
	}

	product, err := ctrl.productService.Update(id, service.ProductInput{
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  req.Description,
		UnitPrice:    req.UnitPrice,
		Inventory:    req.Inventory,
		CollectionID: req.CollectionID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrCollectionNotFound):
			apperrors.RespondWithValidationError(c, map[string]string{
				"collection_id": "Collection does not exist",
			})
		default:
			log.Error("Failed to update product", err, map[string]interface{}{
				"product_id": id,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Delete removes a product unless order items reference it
// DELETE /api/v1/products/:id
func (ctrl *ProductController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrProductReferenced):
			apperrors.DeleteConflict(c, apperrors.ProductReferenced,
				"Product cannot be deleted because it is associated with an order item")
		default:
			log.Error("Failed to delete product", err, map[string]interface{}{
				"product_id": id,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
