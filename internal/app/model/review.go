package model

import (
	"time"

	"gorm.io/gorm"
)

type Review struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	ProductID   uint           `gorm:"not null;index" json:"product_id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Rating      int            `gorm:"not null" json:"rating"`
	CreatedAt   time.Time      `json:"date"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}
