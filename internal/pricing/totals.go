package pricing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdditionalDiscountMax caps the manual order-level discount.
var AdditionalDiscountMax = decimal.NewFromInt(20)

// LineInput is one draft line as the aggregator consumes it.
type LineInput struct {
	ProductID       uuid.UUID
	ProductName     string
	ProductSKU      string
	UnitPrice       decimal.Decimal
	Quantity        int
	DiscountGroup   string
	OverridePercent *decimal.Decimal
}

// LineTotal is one priced line of the totals object.
type LineTotal struct {
	ProductID       uuid.UUID       `json:"product_id"`
	ProductName     string          `json:"product_name"`
	ProductSKU      string          `json:"product_sku"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	GrossAmount     decimal.Decimal `json:"gross_amount"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	NetAmount       decimal.Decimal `json:"net_amount"`
}

// Totals is the single source of truth every consumer (wizard panel, CSV,
// PDF, persistence) reads. Derived, never stored piecemeal.
type Totals struct {
	GrossTotal                decimal.Decimal `json:"gross_total"`
	PerLineDiscountAmount     decimal.Decimal `json:"per_line_discount_amount"`
	VolumeDiscountPercent     decimal.Decimal `json:"volume_discount_percent"`
	VolumeDiscountAmount      decimal.Decimal `json:"volume_discount_amount"`
	AdditionalDiscountPercent decimal.Decimal `json:"additional_discount_percent"`
	AdditionalDiscountAmount  decimal.Decimal `json:"additional_discount_amount"`
	TotalDiscountAmount       decimal.Decimal `json:"total_discount_amount"`
	NetTotal                  decimal.Decimal `json:"net_total"`
	Degraded                  bool            `json:"degraded"`
	Lines                     []LineTotal     `json:"lines"`
}

// ValidateAdditionalPercent rejects manual discounts outside [0,20].
func ValidateAdditionalPercent(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(AdditionalDiscountMax) {
		return fmt.Errorf("additional discount %s: %w", percent, ErrInvalidDiscountPercent)
	}
	return nil
}

// ComputeTotals prices every line against the matrix snapshot, resolves the
// volume tier from the gross total, applies the manual discount and combines
// everything additively. Pure: identical inputs yield identical totals.
//
// When the combined discounts exceed the gross total the net is clamped to
// zero and ErrDiscountExceedsTotal is returned alongside the clamped totals.
func ComputeTotals(lines []LineInput, additionalPercent decimal.Decimal, matrix Matrix) (Totals, error) {
	if err := ValidateAdditionalPercent(additionalPercent); err != nil {
		return Totals{}, err
	}

	totals := Totals{
		GrossTotal:                decimal.Zero,
		PerLineDiscountAmount:     decimal.Zero,
		AdditionalDiscountPercent: additionalPercent,
		Degraded:                  matrix.IsDegraded(),
		Lines:                     make([]LineTotal, 0, len(lines)),
	}

	for _, line := range lines {
		percent := matrix.Lookup(line.DiscountGroup)
		if line.OverridePercent != nil {
			percent = *line.OverridePercent
		}

		result, err := PriceLine(line.UnitPrice, line.Quantity, percent)
		if err != nil {
			return Totals{}, fmt.Errorf("line %s: %w", line.ProductID, err)
		}

		totals.GrossTotal = totals.GrossTotal.Add(result.GrossAmount)
		totals.PerLineDiscountAmount = totals.PerLineDiscountAmount.Add(result.DiscountAmount)
		totals.Lines = append(totals.Lines, LineTotal{
			ProductID:       line.ProductID,
			ProductName:     line.ProductName,
			ProductSKU:      line.ProductSKU,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: percent,
			GrossAmount:     result.GrossAmount,
			DiscountAmount:  result.DiscountAmount,
			NetAmount:       result.NetAmount,
		})
	}

	totals.VolumeDiscountPercent = ResolveVolumeDiscountPercent(totals.GrossTotal)
	totals.VolumeDiscountAmount = totals.GrossTotal.Mul(totals.VolumeDiscountPercent).Div(oneHundred)
	totals.AdditionalDiscountAmount = totals.GrossTotal.Mul(additionalPercent).Div(oneHundred)

	totals.TotalDiscountAmount = totals.PerLineDiscountAmount.
		Add(totals.VolumeDiscountAmount).
		Add(totals.AdditionalDiscountAmount)

	net := totals.GrossTotal.Sub(totals.TotalDiscountAmount)
	if net.IsNegative() {
		totals.NetTotal = decimal.Zero
		return totals, ErrDiscountExceedsTotal
	}
	totals.NetTotal = net
	return totals, nil
}
