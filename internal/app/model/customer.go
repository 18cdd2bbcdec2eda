package model

import (
	"time"

	"gorm.io/gorm"
)

type Membership string

const (
	MembershipBronze Membership = "bronze"
	MembershipSilver Membership = "silver"
	MembershipGold   Membership = "gold"
)

// Customer is the storefront profile linked one-to-one with a platform
// User account. It is never created implicitly; callers hitting an
// unprovisioned profile get a distinct error.
type Customer struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	UserID     uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Phone      string         `json:"phone"`
	BirthDate  *time.Time     `json:"birth_date,omitempty"`
	Membership Membership     `gorm:"type:varchar(20);default:'bronze'" json:"membership"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	User   User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Orders []Order `gorm:"foreignKey:CustomerID" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}
