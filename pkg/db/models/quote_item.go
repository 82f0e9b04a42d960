package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteItem snapshots one priced line of a completed quote.
type QuoteItem struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	QuoteID         uuid.UUID       `gorm:"column:quote_id;type:uuid;not null;index" json:"quote_id"`
	ProductID       uuid.UUID       `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	ProductName     string          `gorm:"column:product_name;not null" json:"product_name"`
	ProductSKU      string          `gorm:"column:product_sku;not null" json:"product_sku"`
	Quantity        int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null" json:"unit_price"`
	DiscountPercent decimal.Decimal `gorm:"column:discount_percent;type:numeric(5,2);not null" json:"discount_percent"`
	NetAmount       decimal.Decimal `gorm:"column:net_amount;type:numeric(14,2);not null" json:"net_amount"`
	Position        int             `gorm:"column:position;not null" json:"position"`
}

func (QuoteItem) TableName() string { return "quote_items" }
