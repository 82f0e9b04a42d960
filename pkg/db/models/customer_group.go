package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerGroup buckets customers for discount matrix lookups. The optional
// flat percentage is the fallback when the matrix has no entry for a product
// discount group.
type CustomerGroup struct {
	ID                 uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code               string           `gorm:"column:code;not null;uniqueIndex" json:"code"`
	Name               string           `gorm:"column:name;not null" json:"name"`
	DiscountPercentage *decimal.Decimal `gorm:"column:discount_percentage;type:numeric(5,2)" json:"discount_percentage,omitempty"`
	CreatedAt          time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CustomerGroup) TableName() string { return "customer_groups" }
