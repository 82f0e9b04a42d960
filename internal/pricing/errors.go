package pricing

import "errors"

// Typed failures of the pricing engine. Validation errors are rejected at the
// draft mutation boundary and never enter stored state; ErrDiscountExceedsTotal
// accompanies clamped totals so callers cannot mistake them for exact figures.
var (
	ErrInvalidQuantity        = errors.New("quantity must be a positive integer")
	ErrInvalidPrice           = errors.New("unit price cannot be negative")
	ErrInvalidDiscountPercent = errors.New("discount percent out of range")
	ErrDiscountExceedsTotal   = errors.New("combined discounts exceed gross total")
	ErrMissingCustomerGroup   = errors.New("customer has no discount group")
)
