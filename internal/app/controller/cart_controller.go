package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefrontlab/storefront-backend/internal/app/service"
	apperrors "github.com/storefrontlab/storefront-backend/internal/errors"
	"github.com/storefrontlab/storefront-backend/internal/middleware"
)

// CartController serves anonymous carts. No authentication: possession
// of the cart's uuid token is the only form of ownership.
type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1,max=10"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=10"`
}

// Create opens a new cart and returns its token
// POST /api/v1/carts
func (ctrl *CartController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	cart, err := ctrl.cartService.Create()
	if err != nil {
		log.Error("Failed to create cart", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"cart": cart})
}

// Get returns a cart with its items and computed total
// GET /api/v1/carts/:cart_id
func (ctrl *CartController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	cartID, ok := parseCartID(c)
	if !ok {
		return
	}

	cart, err := ctrl.cartService.Get(cartID)
	if err != nil {
		if errors.Is(err, service.ErrCartNotFound) {
			apperrors.NotFound(c, apperrors.CartNotFound, "Cart not found")
			return
		}
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"cart_id": cartID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

// Delete discards a cart and its items
// DELETE /api/v1/carts/:cart_id
func (ctrl *CartController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	cartID, ok := parseCartID(c)
	if !ok {
		return
	}

	if err := ctrl.cartService.Delete(cartID); err != nil {
		if errors.Is(err, service.ErrCartNotFound) {
			apperrors.NotFound(c, apperrors.CartNotFound, "Cart not found")
			return
		}
		log.Error("Failed to delete cart", err, map[string]interface{}{
			"cart_id": cartID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.Status(http.StatusNoContent)
}

// AddItem upserts a product into the cart
// POST /api/v1/carts/:cart_id/items
func (ctrl *CartController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	cartID, ok := parseCartID(c)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithValidationError(c, apperrors.FieldErrors(err))
		return
	}

	item, err := ctrl.cartService.AddItem(cartID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartNotFound):
			apperrors.NotFound(c, apperrors.CartNotFound, "Cart not found")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.RespondWithValidationError(c, map[string]string{
				"product_id": "Product does not exist",
			})
		case errors.Is(err, service.ErrQuantityLimit):
			apperrors.RespondWithValidationError(c, map[string]string{
				"quantity": "Combined quantity exceeds the limit of 10",
			})
		case errors.Is(err, service.ErrInvalidQuantity):
			apperrors.RespondWithValidationError(c, map[string]string{
				"quantity": "Quantity must be between 1 and 10",
			})
		default:
			log.Error("Failed to add cart item", err, map[string]interface{}{
				"cart_id": cartID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	log.Info("Cart item added", map[string]interface{}{
		"cart_id":  cartID,
		"item_id":  item.ID,
		"quantity": item.Quantity,
	})
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// UpdateItem changes a line's quantity, nothing else
// PATCH /api/v1/carts/:cart_id/items/:item_id
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	cartID, ok := parseCartID(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithValidationError(c, apperrors.FieldErrors(err))
		return
	}

	item, err := ctrl.cartService.UpdateItem(cartID, itemID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartItemNotFound):
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
		case errors.Is(err, service.ErrInvalidQuantity):
			apperrors.RespondWithValidationError(c, map[string]string{
				"quantity": "Quantity must be between 1 and 10",
			})
		default:
			log.Error("Failed to update cart item", err, map[string]interface{}{
				"cart_id": cartID,
				"item_id": itemID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// RemoveItem deletes one line from the cart
// DELETE /api/v1/carts/:cart_id/items/:item_id
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	cartID, ok := parseCartID(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}

	if err := ctrl.cartService.RemoveItem(cartID, itemID); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
			return
		}
		log.Error("Failed to remove cart item", err, map[string]interface{}{
			"cart_id": cartID,
			"item_id": itemID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.Status(http.StatusNoContent)
}

func parseCartID(c *gin.Context) (string, bool) {
	cartID := c.Param("cart_id")
	if _, err := uuid.Parse(cartID); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart_id parameter")
		return "", false
	}
	return cartID, true
}
