package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMatrixLookup(t *testing.T) {
	t.Parallel()

	m := NewMatrix(map[string]decimal.Decimal{
		"standard": decimal.NewFromInt(10),
		"premium":  decimal.NewFromInt(15),
	}, nil)

	if got := m.Lookup("standard"); !got.Equal(decimal.NewFromInt(10)) {
		t.Errorf("standard: got %s, want 10", got)
	}
	if got := m.Lookup("premium"); !got.Equal(decimal.NewFromInt(15)) {
		t.Errorf("premium: got %s, want 15", got)
	}
}

func TestMatrixLookupMissingEntryNoFallback(t *testing.T) {
	t.Parallel()

	m := NewMatrix(map[string]decimal.Decimal{
		"standard": decimal.NewFromInt(10),
	}, nil)

	if got := m.Lookup("unknown"); !got.IsZero() {
		t.Errorf("got %s, want 0", got)
	}
}

func TestMatrixLookupFallsBackToGroupPercent(t *testing.T) {
	t.Parallel()

	flat := decimal.NewFromInt(8)
	m := NewMatrix(map[string]decimal.Decimal{
		"standard": decimal.NewFromInt(10),
	}, &flat)

	if got := m.Lookup("standard"); !got.Equal(decimal.NewFromInt(10)) {
		t.Errorf("entry should win over fallback: got %s", got)
	}
	if got := m.Lookup("unknown"); !got.Equal(decimal.NewFromInt(8)) {
		t.Errorf("fallback: got %s, want 8", got)
	}
}

func TestMatrixClampsOutOfRangePercents(t *testing.T) {
	t.Parallel()

	flat := decimal.NewFromInt(120)
	m := NewMatrix(map[string]decimal.Decimal{
		"hot":  decimal.NewFromInt(150),
		"cold": decimal.NewFromInt(-10),
	}, &flat)

	if got := m.Lookup("hot"); !got.Equal(oneHundred) {
		t.Errorf("hot: got %s, want 100", got)
	}
	if got := m.Lookup("cold"); !got.IsZero() {
		t.Errorf("cold: got %s, want 0", got)
	}
	if got := m.Lookup("unknown"); !got.Equal(oneHundred) {
		t.Errorf("fallback clamp: got %s, want 100", got)
	}
}

func TestDegradedMatrix(t *testing.T) {
	t.Parallel()

	m := DegradedMatrix()
	if !m.IsDegraded() {
		t.Fatal("expected degraded")
	}
	if got := m.Lookup("anything"); !got.IsZero() {
		t.Errorf("got %s, want 0", got)
	}

	if EmptyMatrix().IsDegraded() {
		t.Fatal("empty matrix must not be degraded")
	}
}
