package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/storefrontlab/storefront-backend/internal/app/service"
	apperrors "github.com/storefrontlab/storefront-backend/internal/errors"
	"github.com/storefrontlab/storefront-backend/internal/middleware"
)

type CollectionController struct {
	collectionService service.CollectionService
}

func NewCollectionController(collectionService service.CollectionService) *CollectionController {
	return &CollectionController{
		collectionService: collectionService,
	}
}

type CreateCollectionRequest struct {
	Title             string `json:"title" binding:"required"`
	FeaturedProductID *uint  `json:"featured_product_id"`
}

type UpdateCollectionRequest struct {
	Title             *string `json:"title"`
	FeaturedProductID *uint   `json:"featured_product_id"`
}

// List returns all collections with their product counts
// GET /api/v1/collections
func (ctrl *CollectionController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	collections, err := ctrl.collectionService.List()
	if err != nil {
		log.Error("Failed to fetch collections", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"collections": collections,
		"count":       len(collections),
	})
}

// Get returns one collection
// GET /api/v1/collections/:id
func (ctrl *CollectionController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	collection, err := ctrl.collectionService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrCollectionNotFound) {
			apperrors.NotFound(c, apperrors.CollectionNotFound, "Collection not found")
			return
		}
		log.Error("Failed to fetch collection", err, map[string]interface{}{
			"collection_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"collection": collection})
}

// Create adds a collection (Admin only)
// POST /api/v1/collections
func (ctrl *CollectionController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid collection creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithValidationError(c, apperrors.FieldErrors(err))
		return
	}

	collection, err := ctrl.collectionService.Create(req.Title, req.FeaturedProductID)
	if err != nil {
		log.Error("Failed to create collection", err, map[string]interface{}{
			"title": req.Title,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Collection created", map[string]interface{}{
		"collection_id": collection.ID,
	})
	c.JSON(http.StatusCreated, gin.H{"collection": collection})
}

// Update patches a collection (Admin only)
// PATCH /api/v1/collections/:id
func (ctrl *CollectionController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCollectionRequest
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

	collection, err := ctrl.collectionService.Update(id, req.Title, req.FeaturedProductID)
	if err != nil {
		if errors.Is(err, service.ErrCollectionNotFound) {
			apperrors.NotFound(c, apperrors.CollectionNotFound, "Collection not found")
			return
		}
		log.Error("Failed to update collection", err, map[string]interface{}{
			"collection_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"collection": collection})
}

// Delete removes a collection unless products still belong to it
// DELETE /api/v1/collections/:id
func (ctrl *CollectionController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.collectionService.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrCollectionNotFound):
			apperrors.NotFound(c, apperrors.CollectionNotFound, "Collection not found")
		case errors.Is(err, service.ErrCollectionHasProducts):
			apperrors.DeleteConflict(c, apperrors.CollectionHasProducts,
				"Collection cannot be deleted because it includes one or more products")
		default:
			log.Error("Failed to delete collection", err, map[string]interface{}{
				"collection_id": id,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// parseIDParam reads a positive integer path parameter or answers 400.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	idStr := c.Param(name)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}
