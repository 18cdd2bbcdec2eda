package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefrontlab/storefront-backend/internal/app/service"
	apperrors "github.com/storefrontlab/storefront-backend/internal/errors"
	"github.com/storefrontlab/storefront-backend/internal/middleware"
)

// ProductImageController serves the image sub-resource. The product id
// always comes from the URL, never the body.
type ProductImageController struct {
	productService service.ProductService
}

func NewProductImageController(productService service.ProductService) *ProductImageController {
	return &ProductImageController{
		productService: productService,
	}
}

type AddImageRequest struct {
	ImageURL string `json:"image_url" binding:"required,url"`
}

// List returns a product's images
// GET /api/v1/products/:id/images
func (ctrl *ProductImageController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	images, err := ctrl.productService.ListImages(productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product images", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"images": images,
		"count":  len(images),
	})
}

// Create attaches an image to a product (Admin only)
// POST /api/v1/products/:id/images
func (ctrl *ProductImageController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithValidationError(c, apperrors.FieldErrors(err))
		return
	}

	image, err := ctrl.productService.AddImage(productID, req.ImageURL)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to add product image", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"image": image})
}

// Delete removes an image (Admin only)
// DELETE /api/v1/products/:id/images/:image_id
func (ctrl *ProductImageController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := parseIDParam(c, "image_id")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteImage(productID, imageID); err != nil {
		if errors.Is(err, service.ErrProductImageNotFound) {
			apperrors.NotFound(c, apperrors.ProductImageNotFound, "Product image not found")
			return
		}
		log.Error("Failed to delete product image", err, map[string]interface{}{
			"product_id": productID,
			"image_id":   imageID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.Status(http.StatusNoContent)
}
