package pricing

import "github.com/shopspring/decimal"

// volumeTier maps an exclusive gross-total lower bound to a discount percent.
type volumeTier struct {
	threshold decimal.Decimal
	percent   decimal.Decimal
}

// Fixed schedule, highest qualifying threshold wins.
var volumeTiers = []volumeTier{
	{decimal.NewFromInt(200000), decimal.NewFromInt(12)},
	{decimal.NewFromInt(150000), decimal.NewFromInt(11)},
	{decimal.NewFromInt(100000), decimal.NewFromInt(9)},
	{decimal.NewFromInt(50000), decimal.NewFromInt(7)},
	{decimal.NewFromInt(25000), decimal.NewFromInt(5)},
	{decimal.NewFromInt(12500), decimal.NewFromInt(3)},
	{decimal.NewFromInt(5000), decimal.NewFromInt(1)},
}

// ResolveVolumeDiscountPercent maps a gross order value to its volume discount
// percentage. Negative input is treated as zero. Pure; no error cases.
func ResolveVolumeDiscountPercent(grossTotal decimal.Decimal) decimal.Decimal {
	if grossTotal.IsNegative() {
		grossTotal = decimal.Zero
	}
	for _, tier := range volumeTiers {
		if grossTotal.GreaterThan(tier.threshold) {
			return tier.percent
		}
	}
	return decimal.Zero
}
