package drafts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/solvitek/quoteline-backend/internal/catalog"
	"github.com/solvitek/quoteline-backend/internal/customers"
	"github.com/solvitek/quoteline-backend/internal/pricing"
	pkgerrors "github.com/solvitek/quoteline-backend/pkg/errors"
	"github.com/solvitek/quoteline-backend/pkg/logger"
	"github.com/solvitek/quoteline-backend/pkg/metrics"
)

// View is a draft plus the totals recomputed for its current state.
type View struct {
	Draft  Draft          `json:"draft"`
	Totals pricing.Totals `json:"totals"`
}

// Service drives the quote configurator session lifecycle. Every mutation
// recomputes totals so the caller always sees prices consistent with the
// draft it got back.
type Service interface {
	Create(ctx context.Context) (*View, error)
	Get(ctx context.Context, id uuid.UUID) (*View, error)
	Delete(ctx context.Context, id uuid.UUID) error

	SetSolution(ctx context.Context, id uuid.UUID, solutionID *uuid.UUID) (*View, error)
	SetCustomer(ctx context.Context, id uuid.UUID, customerID *uuid.UUID) (*View, error)
	SetAdditionalDiscount(ctx context.Context, id uuid.UUID, percent decimal.Decimal) (*View, error)
	SetNotes(ctx context.Context, id uuid.UUID, notes string) (*View, error)
	SetStep(ctx context.Context, id uuid.UUID, step int) (*View, error)

	AddLine(ctx context.Context, id, productID uuid.UUID, quantity int) (*View, error)
	SetLineQuantity(ctx context.Context, id, productID uuid.UUID, quantity int) (*View, error)
	SetLineDiscount(ctx context.Context, id, productID uuid.UUID, percent *decimal.Decimal) (*View, error)
	RemoveLine(ctx context.Context, id, productID uuid.UUID) (*View, error)
	ClearLines(ctx context.Context, id uuid.UUID) (*View, error)

	Totals(ctx context.Context, id uuid.UUID) (*pricing.Totals, error)
}

type catalogReader interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*catalog.ProductDTO, error)
}

type customerReader interface {
	GetCustomer(ctx context.Context, id uuid.UUID) (*customers.CustomerDTO, error)
}

type matrixProvider interface {
	SnapshotForGroup(ctx context.Context, customerGroupID uuid.UUID) (pricing.Matrix, error)
}

type service struct {
	store     Store
	catalog   catalogReader
	customers customerReader
	matrix    matrixProvider
	metrics   *metrics.PricingMetrics
	logg      *logger.Logger
}

// NewService constructs the draft service.
func NewService(store Store, catalogSvc catalogReader, customerSvc customerReader, matrix matrixProvider, pm *metrics.PricingMetrics, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("draft store required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if customerSvc == nil {
		return nil, fmt.Errorf("customer reader required")
	}
	if matrix == nil {
		return nil, fmt.Errorf("matrix provider required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		store:     store,
		catalog:   catalogSvc,
		customers: customerSvc,
		matrix:    matrix,
		metrics:   pm,
		logg:      logg,
	}, nil
}

func (s *service) Create(ctx context.Context) (*View, error) {
	draft := NewDraft()
	if err := s.store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return s.view(ctx, draft)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*View, error) {
	draft, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, draft)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

func (s *service) SetSolution(ctx context.Context, id uuid.UUID, solutionID *uuid.UUID) (*View, error) {
	return s.mutate(ctx, id, func(d *Draft) error {
		d.SetSolution(solutionID)
		return nil
	})
}

func (s *service) SetCustomer(ctx context.Context, id uuid.UUID, customerID *uuid.UUID) (*View, error) {
	return s.mutate(ctx, id, func(d *Draft) error {
		if customerID == nil {
			d.SetCustomer(nil, nil)
			return nil
		}
		customer, err := s.customers.GetCustomer(ctx, *customerID)
		if err != nil {
			return err
		}
		var groupID *uuid.UUID
		if customer.DiscountGroup != nil {
			groupID = &customer.DiscountGroup.ID
		} else {
			s.logg.Warn(ctx, pricing.ErrMissingCustomerGroup.Error())
		}
		d.SetCustomer(customerID, groupID)
		return nil
	})
}

func (s *service) SetAdditionalDiscount(ctx context.Context, id uuid.UUID, percent decimal.Decimal) (*View, error) {
	return s.mutate(ctx, id, func(d *Draft) error {
		return d.SetAdditionalDiscount(percent)
	})
}

func (s *service) SetNotes(ctx context.Context, id uuid.UUID, notes string) (*View, error) {
	return s.mutate(ctx, id, func(d *Draft) error {
		d.SetNotes(notes)
		return nil
	})
}

func (s *service) SetStep(ctx context.Context, id uuid.UUID, step int) (*View, error) {
	return s.mutate(ctx, id, func(d *Draft) error {
		return d.SetStep(step)
	})
}

func (s *service) AddLine(ctx context.Context, id, productID uuid.UUID, quantity int) (*View, error) {
	return s.mutate(ctx, id, func(d *Draft) error {
		product, err := s.catalog.GetProduct(ctx, productID)
		if err != nil {
			return err
		}
		if !product.IsActive {
			return pkgerrors.New(pkgerrors.CodeConflict, "product is not orderable")
		}
		return d.AddLine(Line{
			ProductID:     product.ID,
			ProductName:   product.Name,
			ProductSKU:    product.SKU,
			UnitPrice:     product.GrossPrice,
			DiscountGroup: product.DiscountGroup,
			Quantity:      quantity,
		})
	})
}

func (s *service) SetLineQuantity(ctx context.Context, id, productID uuid.UUID, quantity int) (*View, error) {
	return s.mutate(ctx, id, func(d *Draft) error {
		return d.SetQuantity(productID, quantity)
	})
}

func (s *service) SetLineDiscount(ctx context.Context, id, productID uuid.UUID, percent *decimal.Decimal) (*View, error) {
	return s.mutate(ctx, id, func(d *Draft) error {
		return d.SetLineDiscount(productID, percent)
	})
}

func (s *service) RemoveLine(ctx context.Context, id, productID uuid.UUID) (*View, error) {
	return s.mutate(ctx, id, func(d *Draft) error {
		d.RemoveLine(productID)
		return nil
	})
}

func (s *service) ClearLines(ctx context.Context, id uuid.UUID) (*View, error) {
	return s.mutate(ctx, id, func(d *Draft) error {
		d.ClearLines()
		return nil
	})
}

func (s *service) Totals(ctx context.Context, id uuid.UUID) (*pricing.Totals, error) {
	draft, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	totals, err := s.computeTotals(ctx, draft)
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

// mutate loads the draft, applies the change, persists it, and returns the
// refreshed view. The save happens before pricing so a pricing hiccup never
// loses the edit.
func (s *service) mutate(ctx context.Context, id uuid.UUID, apply func(*Draft) error) (*View, error) {
	draft, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(draft); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return s.view(ctx, draft)
}

func (s *service) view(ctx context.Context, draft *Draft) (*View, error) {
	totals, err := s.computeTotals(ctx, draft)
	if err != nil {
		return nil, err
	}
	return &View{Draft: *draft, Totals: totals}, nil
}

func (s *service) computeTotals(ctx context.Context, draft *Draft) (pricing.Totals, error) {
	matrix := pricing.EmptyMatrix()
	switch {
	case draft.CustomerGroupID != nil:
		snapshot, err := s.matrix.SnapshotForGroup(ctx, *draft.CustomerGroupID)
		if err != nil {
			return pricing.Totals{}, err
		}
		matrix = snapshot
	case draft.CustomerID != nil:
		// customer without a resolvable discount group: lookups fall back
		// to zero and the totals carry the degraded flag
		matrix = pricing.DegradedMatrix()
	}

	totals, err := pricing.ComputeTotals(lineInputs(draft), draft.AdditionalDiscountPercent, matrix)
	if err != nil && !errors.Is(err, pricing.ErrDiscountExceedsTotal) {
		return pricing.Totals{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "price draft")
	}

	s.metrics.IncRecompute()
	if totals.Degraded {
		s.metrics.IncDegraded()
		s.logg.Warn(ctx, "draft priced with degraded discount matrix")
	}
	return totals, nil
}

// lineInputs maps the stored line snapshots into the pricing engine's shape.
func lineInputs(draft *Draft) []pricing.LineInput {
	if len(draft.Lines) == 0 {
		return nil
	}
	inputs := make([]pricing.LineInput, 0, len(draft.Lines))
	for _, line := range draft.Lines {
		inputs = append(inputs, pricing.LineInput{
			ProductID:       line.ProductID,
			ProductName:     line.ProductName,
			ProductSKU:      line.ProductSKU,
			UnitPrice:       line.UnitPrice,
			Quantity:        line.Quantity,
			DiscountGroup:   line.DiscountGroup,
			OverridePercent: line.OverridePercent,
		})
	}
	return inputs
}
