package repository

import (
	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

// CustomerOrderCount pairs a customer with their order count, computed
// with a single grouped query.
type CustomerOrderCount struct {
	CustomerID  uint
	OrdersCount int64
}

type OrderRepository interface {
	Create(order *model.Order) error
	FindByID(id uint) (*model.Order, error)
	FindAll() ([]model.Order, error)
	FindByCustomerID(customerID uint) ([]model.Order, error)
	UpdatePaymentStatus(id uint, status model.PaymentStatus) error
	Delete(id uint) error
	OrderCounts(customerIDs []uint) (map[uint]int64, error)

	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *gorm.DB) OrderRepository
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) WithTx(tx *gorm.DB) OrderRepository {
	return &orderRepository{db: tx}
}

func (r *orderRepository) preloadOrder() *gorm.DB {
	return r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.id ASC").Preload("Product")
	}).Preload("Customer")
}

func (r *orderRepository) Create(order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"customer_id": order.CustomerID,
		"items":       len(order.Items),
	})

	if err := r.db.Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"customer_id": order.CustomerID,
		})
		return err
	}

	logger.Debug("Order created in database", map[string]interface{}{
		"order_id":    order.ID,
		"customer_id": order.CustomerID,
	})
	return nil
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	logger.Debug("Finding order by ID in database", map[string]interface{}{
		"order_id": id,
	})

	var order model.Order
	if err := r.preloadOrder().First(&order, id).Error; err != nil {
		logger.Error("Failed to find order by ID in database", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindAll() ([]model.Order, error) {
	logger.Debug("Finding all orders in database")

	var orders []model.Order
	if err := r.preloadOrder().
		Order("placed_at DESC").
		Find(&orders).Error; err != nil {
		logger.Error("Failed to find orders in database", err)
		return nil, err
	}

	logger.Debug("Orders found in database", map[string]interface{}{
		"count": len(orders),
	})
	return orders, nil
}

func (r *orderRepository) FindByCustomerID(customerID uint) ([]model.Order, error) {
	logger.Debug("Finding orders by customer ID in database", map[string]interface{}{
		"customer_id": customerID,
	})

	var orders []model.Order
	if err := r.preloadOrder().
		Where("customer_id = ?", customerID).
		Order("placed_at DESC").
		Find(&orders).Error; err != nil {
		logger.Error("Failed to find orders by customer ID in database", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) UpdatePaymentStatus(id uint, status model.PaymentStatus) error {
	logger.Debug("Updating order payment status in database", map[string]interface{}{
		"order_id": id,
		"status":   status,
	})

	result := r.db.Model(&model.Order{}).
		Where("id = ?", id).
		Update("payment_status", status)
	if result.Error != nil {
		logger.Error("Failed to update order payment status in database", result.Error, map[string]interface{}{
			"order_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepository) Delete(id uint) error {
	logger.Debug("Deleting order from database", map[string]interface{}{
		"order_id": id,
	})

	if err := r.db.Where("order_id = ?", id).Delete(&model.OrderItem{}).Error; err != nil {
		logger.Error("Failed to delete order items from database", err, map[string]interface{}{
			"order_id": id,
		})
		return err
	}
	if err := r.db.Delete(&model.Order{}, id).Error; err != nil {
		logger.Error("Failed to delete order from database", err, map[string]interface{}{
			"order_id": id,
		})
		return err
	}
	return nil
}

func (r *orderRepository) OrderCounts(customerIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(customerIDs))
	if len(customerIDs) == 0 {
		return counts, nil
	}

	var rows []CustomerOrderCount
	if err := r.db.Model(&model.Order{}).
		Select("customer_id, COUNT(*) as orders_count").
		Where("customer_id IN ?", customerIDs).
		Group("customer_id").
		Scan(&rows).Error; err != nil {
		logger.Error("Failed to count orders per customer", err)
		return nil, err
	}

	for _, row := range rows {
		counts[row.CustomerID] = row.OrdersCount
	}
	return counts, nil
}
