package repository

import (
	"time"

	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	Create(cart *model.Cart) error
	FindByID(id string) (*model.Cart, error)
	Delete(id string) error
	DeleteOlderThan(cutoff time.Time) (int64, error)

	CreateItem(item *model.CartItem) error
	UpdateItem(item *model.CartItem) error
	DeleteItem(cartID string, itemID uint) error
	FindItemByID(cartID string, itemID uint) (*model.CartItem, error)
	FindItemByCartAndProduct(cartID string, productID uint) (*model.CartItem, error)

	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *gorm.DB) CartRepository
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) WithTx(tx *gorm.DB) CartRepository {
	return &cartRepository{db: tx}
}

func (r *cartRepository) Create(cart *model.Cart) error {
	logger.Debug("Creating cart in database")

	if err := r.db.Create(cart).Error; err != nil {
		logger.Error("Failed to create cart in database", err)
		return err
	}

	logger.Debug("Cart created in database", map[string]interface{}{
		"cart_id": cart.ID,
	})
	return nil
}

func (r *cartRepository) FindByID(id string) (*model.Cart, error) {
	logger.Debug("Finding cart by ID", map[string]interface{}{
		"cart_id": id,
	})

	var cart model.Cart
	if err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.id ASC")
	}).Preload("Items.Product").
		First(&cart, "id = ?", id).Error; err != nil {
		logger.Error("Failed to find cart", err, map[string]interface{}{
			"cart_id": id,
		})
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) Delete(id string) error {
	logger.Debug("Deleting cart from database", map[string]interface{}{
		"cart_id": id,
	})

	// Items first: SQLite does not enforce the cascade in tests.
	if err := r.db.Where("cart_id = ?", id).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to delete cart items", err, map[string]interface{}{
			"cart_id": id,
		})
		return err
	}
	if err := r.db.Delete(&model.Cart{}, "id = ?", id).Error; err != nil {
		logger.Error("Failed to delete cart from database", err, map[string]interface{}{
			"cart_id": id,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	logger.Debug("Deleting carts older than cutoff", map[string]interface{}{
		"cutoff": cutoff,
	})

	var staleIDs []string
	if err := r.db.Model(&model.Cart{}).
		Where("updated_at < ?", cutoff).
		Pluck("id", &staleIDs).Error; err != nil {
		logger.Error("Failed to list stale carts", err)
		return 0, err
	}
	if len(staleIDs) == 0 {
		return 0, nil
	}

	if err := r.db.Where("cart_id IN ?", staleIDs).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to delete stale cart items", err)
		return 0, err
	}

	result := r.db.Where("id IN ?", staleIDs).Delete(&model.Cart{})
	if result.Error != nil {
		logger.Error("Failed to delete stale carts", result.Error)
		return 0, result.Error
	}

	logger.Debug("Stale carts deleted", map[string]interface{}{
		"deleted": result.RowsAffected,
	})
	return result.RowsAffected, nil
}

func (r *cartRepository) CreateItem(item *model.CartItem) error {
	logger.Debug("Creating cart item in database", map[string]interface{}{
		"cart_id":    item.CartID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"cart_id":    item.CartID,
			"product_id": item.ProductID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) UpdateItem(item *model.CartItem) error {
	logger.Debug("Updating cart item in database", map[string]interface{}{
		"cart_id":  item.CartID,
		"item_id":  item.ID,
		"quantity": item.Quantity,
	})

	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"cart_id": item.CartID,
			"item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteItem(cartID string, itemID uint) error {
	logger.Debug("Deleting cart item from database", map[string]interface{}{
		"cart_id": cartID,
		"item_id": itemID,
	})

	if err := r.db.Where("cart_id = ?", cartID).
		Delete(&model.CartItem{}, itemID).Error; err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"cart_id": cartID,
			"item_id": itemID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) FindItemByID(cartID string, itemID uint) (*model.CartItem, error) {
	var item model.CartItem
	if err := r.db.Preload("Product").
		Where("cart_id = ?", cartID).
		First(&item, itemID).Error; err != nil {
		logger.Error("Failed to find cart item", err, map[string]interface{}{
			"cart_id": cartID,
			"item_id": itemID,
		})
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) FindItemByCartAndProduct(cartID string, productID uint) (*model.CartItem, error) {
	var item model.CartItem
	if err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
