package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart is an anonymous, ephemeral container of pending purchase
// selections. Its primary key is an opaque token handed to the client;
// possession of the token is the only form of ownership.
// Carts and their items are hard-deleted: a soft-deleted row would keep
// occupying the (cart, product) unique index.
type Cart struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Cart) TableName() string {
	return "carts"
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

const (
	// Quantity bounds for a single cart line.
	CartItemMinQuantity = 1
	CartItemMaxQuantity = 10
)

// CartItem holds one product selection. The (cart, product) pair is
// unique; adding the same product again increments the quantity instead
// of inserting a second row.
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CartID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Cart    Cart    `gorm:"foreignKey:CartID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// TotalPrice is the line total at the product's current price.
func (i CartItem) TotalPrice() float64 {
	return i.Product.UnitPrice * float64(i.Quantity)
}
