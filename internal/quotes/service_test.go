package quotes

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/solvitek/quoteline-backend/internal/drafts"
	"github.com/solvitek/quoteline-backend/internal/pricing"
	"github.com/solvitek/quoteline-backend/pkg/config"
	"github.com/solvitek/quoteline-backend/pkg/db"
	"github.com/solvitek/quoteline-backend/pkg/db/models"
	pkgerrors "github.com/solvitek/quoteline-backend/pkg/errors"
	"github.com/solvitek/quoteline-backend/pkg/logger"
)

type stubDrafts struct {
	views   map[uuid.UUID]*drafts.View
	deleted []uuid.UUID
}

func (s *stubDrafts) Get(_ context.Context, id uuid.UUID) (*drafts.View, error) {
	view, ok := s.views[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "draft not found or expired")
	}
	return view, nil
}

func (s *stubDrafts) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	delete(s.views, id)
	return nil
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.CustomerGroup{}, &models.Customer{}, &models.Quote{}, &models.QuoteItem{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() {
		conn.Exec("DELETE FROM quote_items")
		conn.Exec("DELETE FROM quotes")
		conn.Exec("DELETE FROM customers")
		conn.Exec("DELETE FROM customer_groups")
	})
	return conn
}

func pricedView(lines int) *drafts.View {
	draft := drafts.NewDraft()
	totals := pricing.Totals{
		GrossTotal:            decimal.NewFromInt(1000),
		PerLineDiscountAmount: decimal.NewFromInt(100),
		NetTotal:              decimal.NewFromInt(900),
	}
	for i := 0; i < lines; i++ {
		productID := uuid.New()
		_ = draft.AddLine(drafts.Line{
			ProductID:     productID,
			ProductName:   "Module",
			ProductSKU:    "SKU-1",
			UnitPrice:     decimal.NewFromInt(100),
			DiscountGroup: "standard",
			Quantity:      2,
		})
		totals.Lines = append(totals.Lines, pricing.LineTotal{
			ProductID:       productID,
			ProductName:     "Module",
			ProductSKU:      "SKU-1",
			Quantity:        2,
			UnitPrice:       decimal.NewFromInt(100),
			DiscountPercent: decimal.NewFromInt(10),
			NetAmount:       decimal.NewFromInt(180),
		})
	}
	draft.SetNotes("completion test")
	return &drafts.View{Draft: *draft, Totals: totals}
}

func newTestService(t *testing.T, conn *gorm.DB, source *stubDrafts) Service {
	t.Helper()

	logg := logger.New(logger.Options{Output: io.Discard, Level: zerolog.ErrorLevel})
	svc, err := NewService(NewRepository(conn), db.NewFromConn(conn), source, config.QuotesConfig{NumberPrefix: "Q"}, logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCompleteDraftPersistsQuote(t *testing.T) {
	conn := openTestDB(t)
	view := pricedView(2)
	source := &stubDrafts{views: map[uuid.UUID]*drafts.View{view.Draft.ID: view}}
	svc := newTestService(t, conn, source)
	ctx := context.Background()

	quote, err := svc.CompleteDraft(ctx, view.Draft.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	year := time.Now().Year()
	wantPrefix := "Q-" + time.Now().Format("2006") + "-"
	if !strings.HasPrefix(quote.QuoteNumber, wantPrefix) {
		t.Errorf("number: got %q, want prefix Q-%d-", quote.QuoteNumber, year)
	}
	if !quote.NetTotal.Equal(decimal.NewFromInt(900)) {
		t.Errorf("net: got %s, want 900", quote.NetTotal)
	}
	if quote.Notes != "completion test" {
		t.Errorf("notes: got %q", quote.Notes)
	}

	loaded, err := svc.GetQuote(ctx, quote.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(loaded.Items) != 2 {
		t.Fatalf("items: got %d, want 2", len(loaded.Items))
	}
	if loaded.Items[0].Position != 0 || loaded.Items[1].Position != 1 {
		t.Error("items not in position order")
	}

	if len(source.deleted) != 1 || source.deleted[0] != view.Draft.ID {
		t.Error("draft not cleaned up after completion")
	}
}

func TestCompleteDraftNumberSequence(t *testing.T) {
	conn := openTestDB(t)
	first := pricedView(1)
	second := pricedView(1)
	source := &stubDrafts{views: map[uuid.UUID]*drafts.View{
		first.Draft.ID:  first,
		second.Draft.ID: second,
	}}
	svc := newTestService(t, conn, source)
	ctx := context.Background()

	q1, err := svc.CompleteDraft(ctx, first.Draft.ID)
	if err != nil {
		t.Fatalf("first complete: %v", err)
	}
	q2, err := svc.CompleteDraft(ctx, second.Draft.ID)
	if err != nil {
		t.Fatalf("second complete: %v", err)
	}

	if !strings.HasSuffix(q1.QuoteNumber, "-0001") {
		t.Errorf("first number: got %q", q1.QuoteNumber)
	}
	if !strings.HasSuffix(q2.QuoteNumber, "-0002") {
		t.Errorf("second number: got %q", q2.QuoteNumber)
	}
}

func TestCompleteDraftRejectsEmptyDraft(t *testing.T) {
	conn := openTestDB(t)
	view := pricedView(0)
	source := &stubDrafts{views: map[uuid.UUID]*drafts.View{view.Draft.ID: view}}
	svc := newTestService(t, conn, source)

	_, err := svc.CompleteDraft(context.Background(), view.Draft.ID)
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("got %v, want validation error", err)
	}
	if len(source.deleted) != 0 {
		t.Error("rejected completion must keep the draft")
	}
}

func TestCompleteDraftMissingDraft(t *testing.T) {
	conn := openTestDB(t)
	source := &stubDrafts{views: map[uuid.UUID]*drafts.View{}}
	svc := newTestService(t, conn, source)

	_, err := svc.CompleteDraft(context.Background(), uuid.New())
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("got %v, want not-found", err)
	}
}

func TestGetQuoteByNumber(t *testing.T) {
	conn := openTestDB(t)
	view := pricedView(1)
	source := &stubDrafts{views: map[uuid.UUID]*drafts.View{view.Draft.ID: view}}
	svc := newTestService(t, conn, source)
	ctx := context.Background()

	quote, err := svc.CompleteDraft(ctx, view.Draft.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	loaded, err := svc.GetQuoteByNumber(ctx, quote.QuoteNumber)
	if err != nil {
		t.Fatalf("get by number: %v", err)
	}
	if loaded.ID != quote.ID {
		t.Error("wrong quote returned")
	}

	if _, err := svc.GetQuoteByNumber(ctx, "Q-1999-0001"); pkgerrors.As(err) == nil {
		t.Fatal("expected not-found for unknown number")
	}
}

func TestListQuotesNewestFirst(t *testing.T) {
	conn := openTestDB(t)
	first := pricedView(1)
	second := pricedView(1)
	source := &stubDrafts{views: map[uuid.UUID]*drafts.View{
		first.Draft.ID:  first,
		second.Draft.ID: second,
	}}
	svc := newTestService(t, conn, source)
	ctx := context.Background()

	if _, err := svc.CompleteDraft(ctx, first.Draft.ID); err != nil {
		t.Fatalf("first: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	q2, err := svc.CompleteDraft(ctx, second.Draft.ID)
	if err != nil {
		t.Fatalf("second: %v", err)
	}

	rows, err := svc.ListQuotes(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d quotes, want 2", len(rows))
	}
	if rows[0].ID != q2.ID {
		t.Error("newest quote not first")
	}
}
