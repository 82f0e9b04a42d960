package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/solvitek/quoteline-backend/pkg/db/models"
	pkgerrors "github.com/solvitek/quoteline-backend/pkg/errors"
)

var csvHeader = []string{
	"position", "sku", "product", "quantity", "unit_price", "discount_percent", "net_amount",
}

// QuoteCSV renders the quote as a line-item CSV with a trailing summary
// block. The layout matches what sales teams paste into their sheets.
func QuoteCSV(quote *models.Quote) ([]byte, error) {
	if quote == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no quote to export")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, item := range quote.Items {
		record := []string{
			strconv.Itoa(item.Position + 1),
			item.ProductSKU,
			item.ProductName,
			strconv.Itoa(item.Quantity),
			item.UnitPrice.StringFixed(2),
			item.DiscountPercent.StringFixed(2),
			item.NetAmount.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	summary := [][]string{
		{},
		{"quote_number", quote.QuoteNumber},
		{"gross_total", quote.GrossTotal.StringFixed(2)},
		{"per_line_discount", quote.PerLineDiscountAmount.StringFixed(2)},
		{"volume_discount", fmt.Sprintf("%s%%", quote.VolumeDiscountPercent.StringFixed(2)), quote.VolumeDiscountAmount.StringFixed(2)},
		{"additional_discount", fmt.Sprintf("%s%%", quote.AdditionalDiscountPercent.StringFixed(2)), quote.AdditionalDiscountAmount.StringFixed(2)},
		{"net_total", quote.NetTotal.StringFixed(2)},
	}
	if quote.Degraded {
		summary = append(summary, []string{"warning", "discounts were unavailable when this quote was priced"})
	}
	for _, record := range summary {
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
