package service

import (
	"errors"

	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/internal/app/repository"
	apperrors "github.com/storefrontlab/storefront-backend/internal/errors"
	"github.com/storefrontlab/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrQuantityLimit    = errors.New("quantity exceeds the per-item limit")
	ErrInvalidQuantity  = errors.New("quantity out of range")
)

// CartView is a cart with its computed total at current prices.
type CartView struct {
	model.Cart
	TotalPrice float64 `json:"total_price"`
}

type CartService interface {
	Create() (*model.Cart, error)
	Get(cartID string) (*CartView, error)
	Delete(cartID string) error

	AddItem(cartID string, productID uint, quantity int) (*model.CartItem, error)
	UpdateItem(cartID string, itemID uint, quantity int) (*model.CartItem, error)
	RemoveItem(cartID string, itemID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	db          *gorm.DB
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	db *gorm.DB,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		db:          db,
	}
}

func (s *cartService) Create() (*model.Cart, error) {
	cart := &model.Cart{}
	if err := s.cartRepo.Create(cart); err != nil {
		return nil, err
	}

	logger.Info("Cart created", map[string]interface{}{
		"cart_id": cart.ID,
	})
	return cart, nil
}

func (s *cartService) Get(cartID string) (*CartView, error) {
	cart, err := s.cartRepo.FindByID(cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}

	var total float64
	for _, item := range cart.Items {
		total += item.TotalPrice()
	}

	return &CartView{Cart: *cart, TotalPrice: total}, nil
}

func (s *cartService) Delete(cartID string) error {
	if _, err := s.cartRepo.FindByID(cartID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartNotFound
		}
		return err
	}
	return s.cartRepo.Delete(cartID)
}

// AddItem upserts a cart line: adding a product already in the cart
// increments its quantity instead of inserting a second row. The
// combined quantity may not exceed CartItemMaxQuantity.
func (s *cartService) AddItem(cartID string, productID uint, quantity int) (*model.CartItem, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
		"quantity":   quantity,
	})

	if quantity < model.CartItemMinQuantity || quantity > model.CartItemMaxQuantity {
		return nil, ErrInvalidQuantity
	}

	if _, err := s.cartRepo.FindByID(cartID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	itemID, err := s.upsertItem(cartID, productID, quantity)
	if err != nil && apperrors.IsUniqueViolation(err) {
		// Lost an insert race against a concurrent add for the same
		// product; the second pass sees the winner's row and increments it.
		logger.Warn("Cart item insert raced, retrying as increment", map[string]interface{}{
			"cart_id":    cartID,
			"product_id": productID,
		})
		itemID, err = s.upsertItem(cartID, productID, quantity)
	}
	if err != nil {
		return nil, err
	}

	return s.cartRepo.FindItemByID(cartID, itemID)
}

func (s *cartService) upsertItem(cartID string, productID uint, quantity int) (uint, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}
	txRepo := s.cartRepo.WithTx(tx)

	var itemID uint
	existing, err := txRepo.FindItemByCartAndProduct(cartID, productID)
	switch {
	case err == nil:
		combined := existing.Quantity + quantity
		if combined > model.CartItemMaxQuantity {
			tx.Rollback()
			logger.Warn("Cart item quantity limit exceeded", map[string]interface{}{
				"cart_id":    cartID,
				"product_id": productID,
				"combined":   combined,
			})
			return 0, ErrQuantityLimit
		}
		existing.Quantity = combined
		if err := txRepo.UpdateItem(existing); err != nil {
			tx.Rollback()
			return 0, err
		}
		itemID = existing.ID
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := &model.CartItem{
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := txRepo.CreateItem(item); err != nil {
			tx.Rollback()
			return 0, err
		}
		itemID = item.ID
	default:
		tx.Rollback()
		return 0, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit cart item upsert", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return 0, err
	}
	return itemID, nil
}

func (s *cartService) UpdateItem(cartID string, itemID uint, quantity int) (*model.CartItem, error) {
	if quantity < model.CartItemMinQuantity || quantity > model.CartItemMaxQuantity {
		return nil, ErrInvalidQuantity
	}

	item, err := s.cartRepo.FindItemByID(cartID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}

	item.Quantity = quantity
	if err := s.cartRepo.UpdateItem(item); err != nil {
		return nil, err
	}

	logger.Info("Cart item updated", map[string]interface{}{
		"cart_id":  cartID,
		"item_id":  itemID,
		"quantity": quantity,
	})
	return s.cartRepo.FindItemByID(cartID, itemID)
}

func (s *cartService) RemoveItem(cartID string, itemID uint) error {
	if _, err := s.cartRepo.FindItemByID(cartID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}
	return s.cartRepo.DeleteItem(cartID, itemID)
}
