package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product is the canonical catalog listing. Immutable from the wizard's point
// of view; line items snapshot the gross price at add time.
type Product struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SolutionID    *uuid.UUID      `gorm:"column:solution_id;type:uuid" json:"solution_id,omitempty"`
	SKU           string          `gorm:"column:sku;not null;uniqueIndex" json:"sku"`
	Name          string          `gorm:"column:name;not null" json:"name"`
	GrossPrice    decimal.Decimal `gorm:"column:gross_price;type:numeric(12,2);not null" json:"gross_price"`
	DiscountGroup string          `gorm:"column:discount_group;not null;default:''" json:"discount_group"`
	Category      string          `gorm:"column:category;not null;default:''" json:"category"`
	Tags          pq.StringArray  `gorm:"column:tags;type:text[]" json:"tags,omitempty"`
	IsActive      bool            `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string { return "products" }
