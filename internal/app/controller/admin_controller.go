package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefrontlab/storefront-backend/internal/app/service"
	apperrors "github.com/storefrontlab/storefront-backend/internal/errors"
	"github.com/storefrontlab/storefront-backend/internal/middleware"
)

// AdminController serves the staff-only operational endpoints. Every
// route is mounted behind the admin role check.
type AdminController struct {
	adminService service.AdminService
}

func NewAdminController(adminService service.AdminService) *AdminController {
	return &AdminController{
		adminService: adminService,
	}
}

type ClearInventoryRequest struct {
	ProductIDs []uint `json:"product_ids" binding:"required,min=1"`
}

// Dashboard returns the store overview: collections with product
// counts, customers with order counts, and low-inventory products
// GET /api/v1/admin/dashboard
func (ctrl *AdminController) Dashboard(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	dashboard, err := ctrl.adminService.Dashboard()
	if err != nil {
		log.Error("Failed to build dashboard", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"dashboard": dashboard})
}

// ClearInventory zeroes the inventory of the given products
// POST /api/v1/admin/products/clear-inventory
func (ctrl *AdminController) ClearInventory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ClearInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithValidationError(c, apperrors.FieldErrors(err))
		return
	}

	cleared, err := ctrl.adminService.ClearInventory(req.ProductIDs)
	if err != nil {
		log.Error("Failed to clear inventory", err, map[string]interface{}{
			"product_ids": req.ProductIDs,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cleared": cleared})
}

// ExportProducts streams the catalog as an xlsx download
// GET /api/v1/admin/products/export
func (ctrl *AdminController) ExportProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	data, err := ctrl.adminService.ExportProducts()
	if err != nil {
		log.Error("Failed to export products", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	filename := fmt.Sprintf("products_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
