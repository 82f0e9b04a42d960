package quotes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/solvitek/quoteline-backend/internal/drafts"
	"github.com/solvitek/quoteline-backend/pkg/config"
	"github.com/solvitek/quoteline-backend/pkg/db"
	"github.com/solvitek/quoteline-backend/pkg/db/models"
	pkgerrors "github.com/solvitek/quoteline-backend/pkg/errors"
	"github.com/solvitek/quoteline-backend/pkg/logger"
)

// numberAttempts bounds retries when two completions race for the same
// sequence slot.
const numberAttempts = 3

// Service turns finished drafts into immutable quotes and serves the
// quote history.
type Service interface {
	CompleteDraft(ctx context.Context, draftID uuid.UUID) (*models.Quote, error)
	GetQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	GetQuoteByNumber(ctx context.Context, number string) (*models.Quote, error)
	ListQuotes(ctx context.Context, limit int) ([]models.Quote, error)
}

type draftSource interface {
	Get(ctx context.Context, id uuid.UUID) (*drafts.View, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	drafts   draftSource
	cfg      config.QuotesConfig
	logg     *logger.Logger
	now      func() time.Time
}

// NewService constructs a quote service instance.
func NewService(repo *Repository, dbClient *db.Client, draftSvc draftSource, cfg config.QuotesConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quote repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if draftSvc == nil {
		return nil, fmt.Errorf("draft source required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.NumberPrefix == "" {
		cfg.NumberPrefix = "Q"
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		drafts:   draftSvc,
		cfg:      cfg,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// CompleteDraft prices the draft one last time, persists the result as a
// quote, and drops the draft. The draft survives a failed persist so the
// user can retry.
func (s *service) CompleteDraft(ctx context.Context, draftID uuid.UUID) (*models.Quote, error) {
	view, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if len(view.Draft.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "draft has no lines to quote")
	}

	quote := s.buildQuote(view)

	var persisted *models.Quote
	for attempt := 0; attempt < numberAttempts; attempt++ {
		number, err := s.repo.nextNumber(ctx, s.cfg.NumberPrefix, s.now().Year())
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "allocate quote number")
		}
		quote.QuoteNumber = number

		err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
			created, err := s.repo.WithTx(tx).CreateQuote(ctx, quote)
			if err != nil {
				return err
			}
			persisted = created
			return nil
		})
		if err == nil {
			break
		}
		if db.IsUniqueViolation(err, "") && attempt < numberAttempts-1 {
			continue
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist quote")
	}

	ctx = s.logg.WithQuoteNumber(ctx, persisted.QuoteNumber)
	if err := s.drafts.Delete(ctx, draftID); err != nil {
		// quote is already durable; an orphaned draft just expires
		s.logg.Warn(ctx, "draft cleanup after completion failed")
	}
	s.logg.Info(ctx, "quote completed")
	return persisted, nil
}

func (s *service) buildQuote(view *drafts.View) *models.Quote {
	totals := view.Totals
	quote := &models.Quote{
		ID:                        uuid.New(),
		SolutionID:                view.Draft.SolutionID,
		CustomerID:                view.Draft.CustomerID,
		GrossTotal:                totals.GrossTotal,
		PerLineDiscountAmount:     totals.PerLineDiscountAmount,
		VolumeDiscountPercent:     totals.VolumeDiscountPercent,
		VolumeDiscountAmount:      totals.VolumeDiscountAmount,
		AdditionalDiscountPercent: totals.AdditionalDiscountPercent,
		AdditionalDiscountAmount:  totals.AdditionalDiscountAmount,
		NetTotal:                  totals.NetTotal,
		Degraded:                  totals.Degraded,
		Notes:                     view.Draft.Notes,
	}

	items := make([]models.QuoteItem, 0, len(totals.Lines))
	for i, line := range totals.Lines {
		items = append(items, models.QuoteItem{
			ID:              uuid.New(),
			QuoteID:         quote.ID,
			ProductID:       line.ProductID,
			ProductName:     line.ProductName,
			ProductSKU:      line.ProductSKU,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
			NetAmount:       line.NetAmount,
			Position:        i,
		})
	}
	quote.Items = items
	return quote
}

func (s *service) GetQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}
	return quote, nil
}

func (s *service) GetQuoteByNumber(ctx context.Context, number string) (*models.Quote, error) {
	quote, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}
	return quote, nil
}

func (s *service) ListQuotes(ctx context.Context, limit int) ([]models.Quote, error) {
	rows, err := s.repo.ListQuotes(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotes")
	}
	return rows, nil
}
