package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefrontlab/storefront-backend/internal/app/service"
	apperrors "github.com/storefrontlab/storefront-backend/internal/errors"
	"github.com/storefrontlab/storefront-backend/internal/middleware"
)

type TagController struct {
	tagService     service.TagService
	productService service.ProductService
}

func NewTagController(tagService service.TagService, productService service.ProductService) *TagController {
	return &TagController{
		tagService:     tagService,
		productService: productService,
	}
}

type CreateTagRequest struct {
	Label string `json:"label" binding:"required"`
}

type AttachTagRequest struct {
	TagID uint `json:"tag_id" binding:"required"`
}

// List returns all tags
// GET /api/v1/tags
func (ctrl *TagController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tags, err := ctrl.tagService.List()
	if err != nil {
		log.Error("Failed to fetch tags", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tags":  tags,
		"count": len(tags),
	})
}

// Create adds a tag (Admin only)
// POST /api/v1/tags
func (ctrl *TagController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithValidationError(c, apperrors.FieldErrors(err))
		return
	}

	tag, err := ctrl.tagService.Create(req.Label)
	if err != nil {
		if errors.Is(err, service.ErrTagAlreadyExists) {
			apperrors.Conflict(c, apperrors.TagAlreadyExists, "A tag with this label already exists")
			return
		}
		log.Error("Failed to create tag", err, map[string]interface{}{
			"label": req.Label,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tag": tag})
}

// Delete removes a tag and its product associations (Admin only)
// DELETE /api/v1/tags/:id
func (ctrl *TagController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.tagService.Delete(id); err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			apperrors.NotFound(c, apperrors.TagNotFound, "Tag not found")
			return
		}
		log.Error("Failed to delete tag", err, map[string]interface{}{
			"tag_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListForProduct returns the tags attached to a product
// GET /api/v1/products/:id/tags
func (ctrl *TagController) ListForProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tags, err := ctrl.productService.ListProductTags(productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product tags", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tags":  tags,
		"count": len(tags),
	})
}

// Attach links a tag to a product (Admin only)
// POST /api/v1/products/:id/tags
func (ctrl *TagController) Attach(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AttachTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithValidationError(c, apperrors.FieldErrors(err))
		return
	}

	if err := ctrl.productService.AttachTag(productID, req.TagID); err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrTagNotFound):
			apperrors.RespondWithValidationError(c, map[string]string{
				"tag_id": "Tag does not exist",
			})
		default:
			log.Error("Failed to attach tag", err, map[string]interface{}{
				"product_id": productID,
				"tag_id":     req.TagID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.Status(http.StatusCreated)
}

// Detach unlinks a tag from a product (Admin only)
// DELETE /api/v1/products/:id/tags/:tag_id
func (ctrl *TagController) Detach(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tagID, ok := parseIDParam(c, "tag_id")
	if !ok {
		return
	}

	if err := ctrl.productService.DetachTag(productID, tagID); err != nil {
		log.Error("Failed to detach tag", err, map[string]interface{}{
			"product_id": productID,
			"tag_id":     tagID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.Status(http.StatusNoContent)
}
