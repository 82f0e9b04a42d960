package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountMatrixEntry maps a (product discount group, customer group) pair to
// a percentage. At most one entry exists per pair.
type DiscountMatrixEntry struct {
	ID                   uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductDiscountGroup string          `gorm:"column:product_discount_group;not null;uniqueIndex:idx_matrix_pair" json:"product_discount_group"`
	CustomerGroupID      uuid.UUID       `gorm:"column:customer_group_id;type:uuid;not null;uniqueIndex:idx_matrix_pair" json:"customer_group_id"`
	DiscountPercentage   decimal.Decimal `gorm:"column:discount_percentage;type:numeric(5,2);not null" json:"discount_percentage"`
	CreatedAt            time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DiscountMatrixEntry) TableName() string { return "discount_matrix" }
