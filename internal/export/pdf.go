package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/solvitek/quoteline-backend/pkg/db/models"
	pkgerrors "github.com/solvitek/quoteline-backend/pkg/errors"
)

// PDFOptions controls the rendered document header.
type PDFOptions struct {
	Title string
}

// QuotePDF renders a printable quote document.
func QuotePDF(quote *models.Quote, opts PDFOptions) ([]byte, error) {
	if quote == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no quote to export")
	}
	title := opts.Title
	if title == "" {
		title = "Quote"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("%s / %s", quote.QuoteNumber, quote.CreatedAt.Format("2006-01-02")))
	pdf.Ln(6)

	if quote.Customer != nil {
		pdf.Cell(0, 6, "Customer: "+quote.Customer.Account)
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(12, 7, "#")
	pdf.Cell(30, 7, "SKU")
	pdf.Cell(68, 7, "Product")
	pdf.Cell(16, 7, "Qty")
	pdf.Cell(24, 7, "Unit")
	pdf.Cell(18, 7, "Disc %")
	pdf.Cell(24, 7, "Net")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range quote.Items {
		pdf.Cell(12, 6, fmt.Sprintf("%d", item.Position+1))
		pdf.Cell(30, 6, trim(item.ProductSKU, 16))
		pdf.Cell(68, 6, trim(item.ProductName, 38))
		pdf.Cell(16, 6, fmt.Sprintf("%d", item.Quantity))
		pdf.Cell(24, 6, item.UnitPrice.StringFixed(2))
		pdf.Cell(18, 6, item.DiscountPercent.StringFixed(1))
		pdf.Cell(24, 6, item.NetAmount.StringFixed(2))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Gross total: "+quote.GrossTotal.StringFixed(2))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Volume discount (%s%%): -%s",
		quote.VolumeDiscountPercent.StringFixed(1), quote.VolumeDiscountAmount.StringFixed(2)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Additional discount (%s%%): -%s",
		quote.AdditionalDiscountPercent.StringFixed(1), quote.AdditionalDiscountAmount.StringFixed(2)))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Line discounts: -"+quote.PerLineDiscountAmount.StringFixed(2))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Net total: "+quote.NetTotal.StringFixed(2))
	pdf.Ln(8)

	if quote.Degraded {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.Cell(0, 5, "Discounts were unavailable when this quote was priced.")
		pdf.Ln(5)
	}
	if quote.Notes != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, "Notes: "+quote.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "..."
}
