package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/internal/app/service"
	apperrors "github.com/storefrontlab/storefront-backend/internal/errors"
	"github.com/storefrontlab/storefront-backend/internal/middleware"
)

type CustomerController struct {
	customerService service.CustomerService
}

func NewCustomerController(customerService service.CustomerService) *CustomerController {
	return &CustomerController{
		customerService: customerService,
	}
}

type UpdateProfileRequest struct {
	Phone      string `json:"phone"`
	BirthDate  string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	Membership string `json:"membership" binding:"omitempty,oneof=bronze silver gold"`
}

// List returns all customer profiles (Admin only)
// GET /api/v1/customers
func (ctrl *CustomerController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	customers, err := ctrl.customerService.List()
	if err != nil {
		log.Error("Failed to fetch customers", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": customers,
		"count":     len(customers),
	})
}

// Get returns one customer profile (Admin only)
// GET /api/v1/customers/:id
func (ctrl *CustomerController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := ctrl.customerService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			apperrors.NotFound(c, apperrors.CustomerNotFound, "Customer not found")
			return
		}
		log.Error("Failed to fetch customer", err, map[string]interface{}{
			"customer_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

// Update replaces a customer's profile fields (Admin only)
// PUT /api/v1/customers/:id
func (ctrl *CustomerController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithValidationError(c, apperrors.FieldErrors(err))
		return
	}

	input, ok := profileInput(c, req)
	if !ok {
		return
	}

	customer, err := ctrl.customerService.Update(id, input)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			apperrors.NotFound(c, apperrors.CustomerNotFound, "Customer not found")
			return
		}
		log.Error("Failed to update customer", err, map[string]interface{}{
			"customer_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

// Delete removes a customer profile (Admin only)
// DELETE /api/v1/customers/:id
func (ctrl *CustomerController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.customerService.Delete(id); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			apperrors.NotFound(c, apperrors.CustomerNotFound, "Customer not found")
			return
		}
		log.Error("Failed to delete customer", err, map[string]interface{}{
			"customer_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.Status(http.StatusNoContent)
}

// Me returns the caller's own profile, resolved from the token
// GET /api/v1/customers/me
func (ctrl *CustomerController) Me(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	customer, err := ctrl.customerService.GetMe(userID)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotProvisioned) {
			apperrors.NotFound(c, apperrors.CustomerNotProvisioned, "No customer profile exists for this account")
			return
		}
		log.Error("Failed to fetch own profile", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

// UpdateMe replaces the caller's own profile fields
// PUT /api/v1/customers/me
func (ctrl *CustomerController) UpdateMe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithValidationError(c, apperrors.FieldErrors(err))
		return
	}

	input, ok := profileInput(c, req)
	if !ok {
		return
	}

	customer, err := ctrl.customerService.UpdateMe(userID, input)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotProvisioned) {
			apperrors.NotFound(c, apperrors.CustomerNotProvisioned, "No customer profile exists for this account")
			return
		}
		log.Error("Failed to update own profile", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

// profileInput converts the request body into a service input, answering
// 400 itself when the birth date does not parse.
func profileInput(c *gin.Context, req UpdateProfileRequest) (service.CustomerProfileInput, bool) {
	input := service.CustomerProfileInput{
		Phone:      req.Phone,
		Membership: model.Membership(req.Membership),
	}
	if req.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			apperrors.RespondWithValidationError(c, map[string]string{
				"birth_date": "Date must be in YYYY-MM-DD format",
			})
			return service.CustomerProfileInput{}, false
		}
		input.BirthDate = &birthDate
	}
	return input, true
}

// History returns a customer's past orders. The route sits behind the
// history-access grant; admins always pass.
// GET /api/v1/customers/:id/history
func (ctrl *CustomerController) History(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	orders, err := ctrl.customerService.History(id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			apperrors.NotFound(c, apperrors.CustomerNotFound, "Customer not found")
			return
		}
		log.Error("Failed to fetch customer history", err, map[string]interface{}{
			"customer_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}
