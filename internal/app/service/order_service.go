package service

import (
	"errors"
	"fmt"

	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/internal/app/repository"
	"github.com/storefrontlab/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrCustomerNotProvisioned = errors.New("no customer profile for this user")
	ErrInvalidPaymentStatus   = errors.New("invalid payment status")
	ErrNotOrderOwner          = errors.New("order belongs to another customer")
)

type OrderService interface {
	CreateFromCart(userID uint, cartID string) (*model.Order, error)
	GetByID(userID uint, isAdmin bool, orderID uint) (*model.Order, error)
	List(userID uint, isAdmin bool) ([]model.Order, error)
	UpdatePaymentStatus(orderID uint, status model.PaymentStatus) (*model.Order, error)
	Delete(orderID uint) error
}

type orderService struct {
	orderRepo    repository.OrderRepository
	cartRepo     repository.CartRepository
	customerRepo repository.CustomerRepository
	notifier     NotificationService
	db           *gorm.DB
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	customerRepo repository.CustomerRepository,
	notifier NotificationService,
	db *gorm.DB,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		customerRepo: customerRepo,
		notifier:     notifier,
		db:           db,
	}
}

// CreateFromCart converts a cart into an order atomically: the order and
// its items (with unit prices snapshotted from the catalog) are inserted
// and the cart is deleted in a single transaction. A failure at any step
// leaves both sides untouched.
func (s *orderService) CreateFromCart(userID uint, cartID string) (*model.Order, error) {
	logger.Info("Creating order from cart", map[string]interface{}{
		"user_id": userID,
		"cart_id": cartID,
	})

	customer, err := s.customerRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order creation failed: no customer profile", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrCustomerNotProvisioned
		}
		logger.Error("Failed to resolve customer", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	cart, err := s.cartRepo.FindByID(cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order creation failed: cart not found", map[string]interface{}{
				"cart_id": cartID,
			})
			return nil, ErrCartNotFound
		}
		logger.Error("Failed to fetch cart", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return nil, err
	}

	if len(cart.Items) == 0 {
		logger.Warn("Order creation failed: cart is empty", map[string]interface{}{
			"cart_id": cartID,
		})
		return nil, ErrEmptyCart
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during order creation, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"cart_id": cartID,
			})
		}
	}()

	orderItems := make([]model.OrderItem, 0, len(cart.Items))
	for _, cartItem := range cart.Items {
		orderItems = append(orderItems, model.OrderItem{
			ProductID: cartItem.ProductID,
			Quantity:  cartItem.Quantity,
			UnitPrice: cartItem.Product.UnitPrice,
		})
	}

	order := &model.Order{
		CustomerID:    customer.ID,
		PaymentStatus: model.PaymentStatusPending,
		Items:         orderItems,
	}

	if err := s.orderRepo.WithTx(tx).Create(order); err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"customer_id": customer.ID,
			"cart_id":     cartID,
		})
		return nil, err
	}

	if err := s.cartRepo.WithTx(tx).Delete(cartID); err != nil {
		tx.Rollback()
		logger.Error("Failed to delete cart after order creation", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit order transaction", err, map[string]interface{}{
			"cart_id":  cartID,
			"order_id": order.ID,
		})
		return nil, err
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"order_id":    order.ID,
		"customer_id": customer.ID,
		"item_count":  len(orderItems),
	})

	created, err := s.orderRepo.FindByID(order.ID)
	if err != nil {
		return nil, err
	}

	// Fire and forget: a notification failure must never undo a
	// committed order.
	if s.notifier != nil {
		go s.notifier.OrderCreated(created)
	}

	return created, nil
}

func (s *orderService) GetByID(userID uint, isAdmin bool, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if isAdmin {
		return order, nil
	}

	customer, err := s.customerRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotProvisioned
		}
		return nil, err
	}
	if order.CustomerID != customer.ID {
		logger.Warn("Order access denied", map[string]interface{}{
			"order_id":    orderID,
			"customer_id": customer.ID,
		})
		return nil, ErrNotOrderOwner
	}
	return order, nil
}

func (s *orderService) List(userID uint, isAdmin bool) ([]model.Order, error) {
	if isAdmin {
		return s.orderRepo.FindAll()
	}

	customer, err := s.customerRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotProvisioned
		}
		return nil, err
	}
	return s.orderRepo.FindByCustomerID(customer.ID)
}

func (s *orderService) UpdatePaymentStatus(orderID uint, status model.PaymentStatus) (*model.Order, error) {
	switch status {
	case model.PaymentStatusPending, model.PaymentStatusComplete, model.PaymentStatusFailed:
	default:
		return nil, ErrInvalidPaymentStatus
	}

	if err := s.orderRepo.UpdatePaymentStatus(orderID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	logger.Info("Order payment status updated", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})
	return s.orderRepo.FindByID(orderID)
}

func (s *orderService) Delete(orderID uint) error {
	if _, err := s.orderRepo.FindByID(orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	return s.orderRepo.Delete(orderID)
}
