package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a read-only catalog record once loaded; quotes snapshot what
// they need from it.
type Customer struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Account         string         `gorm:"column:account;not null" json:"account"`
	ContactName     *string        `gorm:"column:contact_name" json:"contact_name,omitempty"`
	Email           *string        `gorm:"column:email" json:"email,omitempty"`
	Phone           *string        `gorm:"column:phone" json:"phone,omitempty"`
	DiscountGroupID *uuid.UUID     `gorm:"column:discount_group_id;type:uuid" json:"discount_group_id,omitempty"`
	DiscountGroup   *CustomerGroup `gorm:"foreignKey:DiscountGroupID" json:"discount_group,omitempty"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }
