package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// LineResult is the priced outcome of a single line item.
type LineResult struct {
	GrossAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	NetAmount      decimal.Decimal
}

// PriceLine computes gross, discount and net amounts for one line.
//
//	gross    = unitPrice × quantity
//	discount = gross × percent / 100
//	net      = gross − discount
//
// The percent must already be in [0,100]; a value outside that range is a
// caller error, not something to silently clamp.
func PriceLine(unitPrice decimal.Decimal, quantity int, discountPercent decimal.Decimal) (LineResult, error) {
	if quantity <= 0 {
		return LineResult{}, fmt.Errorf("quantity %d: %w", quantity, ErrInvalidQuantity)
	}
	if unitPrice.IsNegative() {
		return LineResult{}, fmt.Errorf("unit price %s: %w", unitPrice, ErrInvalidPrice)
	}
	if err := ValidatePercent(discountPercent); err != nil {
		return LineResult{}, err
	}

	gross := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	discount := gross.Mul(discountPercent).Div(oneHundred)
	return LineResult{
		GrossAmount:    gross,
		DiscountAmount: discount,
		NetAmount:      gross.Sub(discount),
	}, nil
}

// ValidatePercent rejects percentages outside [0,100].
func ValidatePercent(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(oneHundred) {
		return fmt.Errorf("percent %s: %w", percent, ErrInvalidDiscountPercent)
	}
	return nil
}
