package service

import (
	"fmt"

	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/internal/app/repository"
	"github.com/storefrontlab/storefront-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// LowInventoryThreshold partitions the dashboard's inventory report.
const LowInventoryThreshold = 10

// Dashboard aggregates the admin overview with grouped counts rather
// than per-row queries.
type Dashboard struct {
	Collections  []CollectionWithCount `json:"collections"`
	Customers    []CustomerWithOrders  `json:"customers"`
	LowInventory []model.Product       `json:"low_inventory"`
}

// CustomerWithOrders is a dashboard row: the customer plus their order count.
type CustomerWithOrders struct {
	model.Customer
	OrdersCount int64 `json:"orders_count"`
}

type AdminService interface {
	Dashboard() (*Dashboard, error)
	ClearInventory(productIDs []uint) (int64, error)
	ExportProducts() ([]byte, error)
}

type adminService struct {
	collectionSvc CollectionService
	customerRepo  repository.CustomerRepository
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
}

func NewAdminService(
	collectionSvc CollectionService,
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) AdminService {
	return &adminService{
		collectionSvc: collectionSvc,
		customerRepo:  customerRepo,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
	}
}

func (s *adminService) Dashboard() (*Dashboard, error) {
	logger.Debug("Building admin dashboard")

	collections, err := s.collectionSvc.List()
	if err != nil {
		return nil, err
	}

	customers, err := s.customerRepo.FindAll()
	if err != nil {
		return nil, err
	}

	customerIDs := make([]uint, len(customers))
	for i, c := range customers {
		customerIDs[i] = c.ID
	}
	orderCounts, err := s.orderRepo.OrderCounts(customerIDs)
	if err != nil {
		return nil, err
	}

	customerRows := make([]CustomerWithOrders, len(customers))
	for i, c := range customers {
		customerRows[i] = CustomerWithOrders{
			Customer:    c,
			OrdersCount: orderCounts[c.ID],
		}
	}

	lowInventory, err := s.productRepo.FindLowInventory(LowInventoryThreshold)
	if err != nil {
		return nil, err
	}

	logger.Info("Admin dashboard built", map[string]interface{}{
		"collections":   len(collections),
		"customers":     len(customerRows),
		"low_inventory": len(lowInventory),
	})

	return &Dashboard{
		Collections:  collections,
		Customers:    customerRows,
		LowInventory: lowInventory,
	}, nil
}

func (s *adminService) ClearInventory(productIDs []uint) (int64, error) {
	logger.Info("Clearing inventory for products", map[string]interface{}{
		"count": len(productIDs),
	})
	return s.productRepo.ClearInventory(productIDs)
}

// ExportProducts renders the full catalog as an xlsx workbook.
func (s *adminService) ExportProducts() ([]byte, error) {
	logger.Info("Exporting product catalog to xlsx")

	products, _, err := s.productRepo.FindWithFilter(repository.ProductFilter{})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Products"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Title", "Collection", "Unit Price", "Inventory", "Last Update"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, p := range products {
		values := []interface{}{
			p.ID,
			p.Title,
			p.Collection.Title,
			p.UnitPrice,
			p.Inventory,
			p.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.Error("Failed to serialize product export", err)
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	logger.Info("Product catalog exported", map[string]interface{}{
		"rows": len(products),
	})
	return buf.Bytes(), nil
}
