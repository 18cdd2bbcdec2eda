package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/internal/app/service"
	apperrors "github.com/storefrontlab/storefront-backend/internal/errors"
	"github.com/storefrontlab/storefront-backend/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type CreateOrderRequest struct {
	CartID string `json:"cart_id" binding:"required,uuid"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus model.PaymentStatus `json:"payment_status" binding:"required,oneof=pending complete failed"`
}

// Create converts the caller's cart into an order
// POST /api/v1/orders
func (ctrl *OrderController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithValidationError(c, apperrors.FieldErrors(err))
		return
	}

	order, err := ctrl.orderService.CreateFromCart(userID, req.CartID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCustomerNotProvisioned):
			apperrors.NotFound(c, apperrors.CustomerNotProvisioned, "No customer profile exists for this account")
		case errors.Is(err, service.ErrCartNotFound):
			apperrors.RespondWithValidationError(c, map[string]string{
				"cart_id": "No cart with the given ID was found",
			})
		case errors.Is(err, service.ErrEmptyCart):
			apperrors.RespondWithValidationError(c, map[string]string{
				"cart_id": "The cart is empty",
			})
		default:
			log.Error("Failed to create order", err, map[string]interface{}{
				"user_id": userID,
				"cart_id": req.CartID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	log.Info("Order created", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  userID,
	})
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// List returns the caller's orders, or every order for admins
// GET /api/v1/orders
func (ctrl *OrderController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	role, _ := middleware.GetUserRole(c)

	orders, err := ctrl.orderService.List(userID, role == model.RoleAdmin)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotProvisioned) {
			apperrors.NotFound(c, apperrors.CustomerNotProvisioned, "No customer profile exists for this account")
			return
		}
		log.Error("Failed to fetch orders", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// Get returns one order; non-admins only see their own
// GET /api/v1/orders/:id
func (ctrl *OrderController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetByID(userID, role == model.RoleAdmin, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrNotOrderOwner):
			apperrors.Forbidden(c, "")
		case errors.Is(err, service.ErrCustomerNotProvisioned):
			apperrors.NotFound(c, apperrors.CustomerNotProvisioned, "No customer profile exists for this account")
		default:
			log.Error("Failed to fetch order", err, map[string]interface{}{
				"order_id": id,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdatePaymentStatus patches payment_status, the only mutable field (Admin only)
// PATCH /api/v1/orders/:id
func (ctrl *OrderController) UpdatePaymentStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithValidationError(c, apperrors.FieldErrors(err))
		return
	}

	order, err := ctrl.orderService.UpdatePaymentStatus(id, req.PaymentStatus)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrInvalidPaymentStatus):
			apperrors.RespondWithValidationError(c, map[string]string{
				"payment_status": "Must be one of: pending, complete, failed",
			})
		default:
			log.Error("Failed to update payment status", err, map[string]interface{}{
				"order_id": id,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// Delete removes an order (Admin only)
// DELETE /api/v1/orders/:id
func (ctrl *OrderController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.orderService.Delete(id); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to delete order", err, map[string]interface{}{
			"order_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.Status(http.StatusNoContent)
}
