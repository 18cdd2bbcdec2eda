package model

import (
	"time"

	"gorm.io/gorm"
)

// Collection is a named grouping of products. FeaturedProductID is
// deliberately unconstrained: nothing enforces that the featured product
// belongs to this collection.
type Collection struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	Title             string         `gorm:"not null" json:"title"`
	FeaturedProductID *uint          `json:"featured_product_id,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	FeaturedProduct *Product  `gorm:"foreignKey:FeaturedProductID" json:"featured_product,omitempty"`
	Products        []Product `gorm:"foreignKey:CollectionID" json:"-"`
}

func (Collection) TableName() string {
	return "collections"
}
