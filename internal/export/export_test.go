package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/solvitek/quoteline-backend/pkg/db/models"
	pkgerrors "github.com/solvitek/quoteline-backend/pkg/errors"
)

func sampleQuote() *models.Quote {
	account := "Acme GmbH"
	return &models.Quote{
		ID:                        uuid.New(),
		QuoteNumber:               "Q-2026-0042",
		Customer:                  &models.Customer{Account: account},
		GrossTotal:                decimal.NewFromInt(1250),
		PerLineDiscountAmount:     decimal.NewFromInt(100),
		VolumeDiscountPercent:     decimal.Zero,
		VolumeDiscountAmount:      decimal.Zero,
		AdditionalDiscountPercent: decimal.NewFromInt(5),
		AdditionalDiscountAmount:  decimal.NewFromFloat(62.5),
		NetTotal:                  decimal.NewFromFloat(1087.5),
		Notes:                     "deliver in Q4",
		CreatedAt:                 time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
		Items: []models.QuoteItem{
			{
				ProductName:     "Alpha Module",
				ProductSKU:      "SKU-100",
				Quantity:        10,
				UnitPrice:       decimal.NewFromInt(100),
				DiscountPercent: decimal.NewFromInt(10),
				NetAmount:       decimal.NewFromInt(900),
				Position:        0,
			},
			{
				ProductName:     "Beta Module",
				ProductSKU:      "SKU-200",
				Quantity:        5,
				UnitPrice:       decimal.NewFromInt(50),
				DiscountPercent: decimal.Zero,
				NetAmount:       decimal.NewFromInt(250),
				Position:        1,
			},
		},
	}
}

func TestQuoteCSV(t *testing.T) {
	t.Parallel()

	out, err := QuoteCSV(sampleQuote())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	r := csv.NewReader(bytes.NewReader(out))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if records[0][0] != "position" {
		t.Errorf("header: got %v", records[0])
	}
	if records[1][1] != "SKU-100" || records[1][6] != "900.00" {
		t.Errorf("first line: got %v", records[1])
	}
	if records[2][2] != "Beta Module" {
		t.Errorf("second line: got %v", records[2])
	}

	body := string(out)
	if !strings.Contains(body, "Q-2026-0042") {
		t.Error("quote number missing from summary")
	}
	if !strings.Contains(body, "net_total,1087.50") {
		t.Error("net total missing from summary")
	}
	if strings.Contains(body, "warning") {
		t.Error("non-degraded quote must not carry a warning row")
	}
}

func TestQuoteCSVDegradedWarning(t *testing.T) {
	t.Parallel()

	quote := sampleQuote()
	quote.Degraded = true

	out, err := QuoteCSV(quote)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(string(out), "warning") {
		t.Error("degraded quote must carry a warning row")
	}
}

func TestQuoteCSVNilQuote(t *testing.T) {
	t.Parallel()

	_, err := QuoteCSV(nil)
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestQuotePDF(t *testing.T) {
	t.Parallel()

	out, err := QuotePDF(sampleQuote(), PDFOptions{Title: "Sales Quote"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("output is not a PDF document")
	}
	if len(out) < 500 {
		t.Errorf("suspiciously small document: %d bytes", len(out))
	}
}

func TestQuotePDFNilQuote(t *testing.T) {
	t.Parallel()

	_, err := QuotePDF(nil, PDFOptions{})
	if pkgerrors.As(err) == nil {
		t.Fatal("expected validation error")
	}
}
