package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Title        string         `gorm:"not null" json:"title"`
	Slug         string         `gorm:"index" json:"slug"`
	Description  string         `gorm:"type:text" json:"description"`
	UnitPrice    float64        `gorm:"not null" json:"unit_price"`
	Inventory    int            `gorm:"default:0" json:"inventory"`
	CollectionID uint           `gorm:"not null;index" json:"collection_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"last_update"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Collection Collection     `gorm:"foreignKey:CollectionID" json:"collection,omitempty"`
	Images     []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	OrderItems []OrderItem    `gorm:"foreignKey:ProductID" json:"-"`
	CartItems  []CartItem     `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

type ProductImage struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	ImageURL  string         `gorm:"not null" json:"image_url"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (ProductImage) TableName() string {
	return "product_images"
}
