package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quote is the immutable record persisted when a draft completes. All money
// figures are copied from the computed totals; nothing is re-derived at read
// time.
type Quote struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	QuoteNumber string     `gorm:"column:quote_number;not null;uniqueIndex" json:"quote_number"`
	SolutionID  *uuid.UUID `gorm:"column:solution_id;type:uuid" json:"solution_id,omitempty"`
	CustomerID  *uuid.UUID `gorm:"column:customer_id;type:uuid" json:"customer_id,omitempty"`
	Customer    *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	GrossTotal                decimal.Decimal `gorm:"column:gross_total;type:numeric(14,2);not null" json:"gross_total"`
	PerLineDiscountAmount     decimal.Decimal `gorm:"column:per_line_discount_amount;type:numeric(14,2);not null" json:"per_line_discount_amount"`
	VolumeDiscountPercent     decimal.Decimal `gorm:"column:volume_discount_percent;type:numeric(5,2);not null" json:"volume_discount_percent"`
	VolumeDiscountAmount      decimal.Decimal `gorm:"column:volume_discount_amount;type:numeric(14,2);not null" json:"volume_discount_amount"`
	AdditionalDiscountPercent decimal.Decimal `gorm:"column:additional_discount_percent;type:numeric(5,2);not null" json:"additional_discount_percent"`
	AdditionalDiscountAmount  decimal.Decimal `gorm:"column:additional_discount_amount;type:numeric(14,2);not null" json:"additional_discount_amount"`
	NetTotal                  decimal.Decimal `gorm:"column:net_total;type:numeric(14,2);not null" json:"net_total"`

	// Degraded marks totals computed while the discount matrix was
	// unreachable; they are best-effort, not authoritative.
	Degraded bool   `gorm:"column:degraded;not null;default:false" json:"degraded"`
	Notes    string `gorm:"column:notes;not null;default:''" json:"notes"`

	Items     []QuoteItem `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Quote) TableName() string { return "quotes" }
