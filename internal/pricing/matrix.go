package pricing

import "github.com/shopspring/decimal"

// Matrix is an immutable discount snapshot for one customer group: per
// product-discount-group percentages plus the group's optional flat fallback.
// Lookup policy, applied uniformly by every consumer: exact entry wins, then
// the flat fallback, then zero.
type Matrix struct {
	entries  map[string]decimal.Decimal
	fallback decimal.Decimal
	degraded bool
}

// NewMatrix builds a snapshot from matrix entries and an optional group-level
// fallback percentage. Entries outside [0,100] are clamped on the way in so a
// bad row cannot poison every lookup.
func NewMatrix(entries map[string]decimal.Decimal, fallback *decimal.Decimal) Matrix {
	cleaned := make(map[string]decimal.Decimal, len(entries))
	for group, percent := range entries {
		cleaned[group] = clampPercent(percent)
	}
	m := Matrix{entries: cleaned}
	if fallback != nil {
		m.fallback = clampPercent(*fallback)
	}
	return m
}

// EmptyMatrix is the snapshot used before a customer is selected: every
// lookup resolves to zero.
func EmptyMatrix() Matrix {
	return Matrix{}
}

// DegradedMatrix marks a snapshot that could not be loaded. Lookups resolve
// to zero and totals computed against it carry the degraded flag.
func DegradedMatrix() Matrix {
	return Matrix{degraded: true}
}

// Lookup resolves the discount percent for a product discount group.
func (m Matrix) Lookup(productGroup string) decimal.Decimal {
	if percent, ok := m.entries[productGroup]; ok {
		return percent
	}
	return m.fallback
}

// IsDegraded reports whether this snapshot is a best-effort stand-in.
func (m Matrix) IsDegraded() bool {
	return m.degraded
}

// Len returns the number of explicit entries.
func (m Matrix) Len() int {
	return len(m.entries)
}

func clampPercent(percent decimal.Decimal) decimal.Decimal {
	if percent.IsNegative() {
		return decimal.Zero
	}
	if percent.GreaterThan(oneHundred) {
		return oneHundred
	}
	return percent
}
