package drafts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/solvitek/quoteline-backend/internal/pricing"
	pkgerrors "github.com/solvitek/quoteline-backend/pkg/errors"
)

// Wizard steps, in configurator order.
const (
	StepSolution = iota
	StepProducts
	StepCustomer
	StepDiscounts
	StepReview

	maxStep = StepReview
)

// Line is one product position in a draft. Name, SKU, unit price and the
// matrix discount group are snapshotted when the product is added; a catalog
// price change never reprices an open draft.
type Line struct {
	ProductID       uuid.UUID        `json:"product_id"`
	ProductName     string           `json:"product_name"`
	ProductSKU      string           `json:"product_sku"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	DiscountGroup   string           `json:"discount_group"`
	Quantity        int              `json:"quantity"`
	OverridePercent *decimal.Decimal `json:"override_percent,omitempty"`
}

// Draft is the in-progress quote state. It lives in Redis until completed
// or expired; every mutation goes through these methods so the invariants
// hold regardless of which endpoint touched it.
type Draft struct {
	ID                        uuid.UUID       `json:"id"`
	SolutionID                *uuid.UUID      `json:"solution_id,omitempty"`
	CustomerID                *uuid.UUID      `json:"customer_id,omitempty"`
	CustomerGroupID           *uuid.UUID      `json:"customer_group_id,omitempty"`
	AdditionalDiscountPercent decimal.Decimal `json:"additional_discount_percent"`
	Notes                     string          `json:"notes"`
	Step                      int             `json:"step"`
	Lines                     []Line          `json:"lines"`
	CreatedAt                 time.Time       `json:"created_at"`
	UpdatedAt                 time.Time       `json:"updated_at"`
}

// NewDraft returns an empty draft at the first wizard step.
func NewDraft() *Draft {
	now := time.Now().UTC()
	return &Draft{
		ID:        uuid.New(),
		Step:      StepSolution,
		Lines:     []Line{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (d *Draft) touch() {
	d.UpdatedAt = time.Now().UTC()
}

// AddLine adds the product or, when it is already in the draft, increases
// its quantity. The existing snapshot wins on a re-add.
func (d *Draft) AddLine(line Line) error {
	if line.Quantity < 1 {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, pricing.ErrInvalidQuantity, "quantity must be at least 1")
	}
	for i := range d.Lines {
		if d.Lines[i].ProductID == line.ProductID {
			d.Lines[i].Quantity += line.Quantity
			d.touch()
			return nil
		}
	}
	d.Lines = append(d.Lines, line)
	d.touch()
	return nil
}

// SetQuantity replaces the quantity of an existing line.
func (d *Draft) SetQuantity(productID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, pricing.ErrInvalidQuantity, "quantity must be at least 1")
	}
	for i := range d.Lines {
		if d.Lines[i].ProductID == productID {
			d.Lines[i].Quantity = quantity
			d.touch()
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "product not in draft")
}

// SetLineDiscount sets or clears the manual per-line discount override.
func (d *Draft) SetLineDiscount(productID uuid.UUID, percent *decimal.Decimal) error {
	if percent != nil {
		if err := pricing.ValidatePercent(*percent); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "line discount out of range")
		}
	}
	for i := range d.Lines {
		if d.Lines[i].ProductID == productID {
			d.Lines[i].OverridePercent = percent
			d.touch()
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "product not in draft")
}

// RemoveLine drops the product from the draft. Removing a product that is
// not present is a no-op.
func (d *Draft) RemoveLine(productID uuid.UUID) {
	for i := range d.Lines {
		if d.Lines[i].ProductID == productID {
			d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
			d.touch()
			return
		}
	}
}

// ClearLines removes every line.
func (d *Draft) ClearLines() {
	if len(d.Lines) == 0 {
		return
	}
	d.Lines = d.Lines[:0]
	d.touch()
}

// SetSolution switches the draft to another solution. Lines are kept; the
// catalog filter is a browsing aid, not a constraint on the quote.
func (d *Draft) SetSolution(solutionID *uuid.UUID) {
	d.SolutionID = solutionID
	d.touch()
}

// SetCustomer records the customer and the resolved discount group.
func (d *Draft) SetCustomer(customerID, groupID *uuid.UUID) {
	d.CustomerID = customerID
	d.CustomerGroupID = groupID
	d.touch()
}

// SetAdditionalDiscount validates and stores the quote-wide extra percent.
func (d *Draft) SetAdditionalDiscount(percent decimal.Decimal) error {
	if err := pricing.ValidateAdditionalPercent(percent); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "additional discount out of range")
	}
	d.AdditionalDiscountPercent = percent
	d.touch()
	return nil
}

// SetNotes replaces the free-text notes.
func (d *Draft) SetNotes(notes string) {
	d.Notes = notes
	d.touch()
}

// SetStep moves the wizard pointer. Out-of-range steps are rejected.
func (d *Draft) SetStep(step int) error {
	if step < StepSolution || step > maxStep {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown wizard step")
	}
	d.Step = step
	d.touch()
	return nil
}
