package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/solvitek/quoteline-backend/internal/catalog"
	"github.com/solvitek/quoteline-backend/internal/customers"
	"github.com/solvitek/quoteline-backend/internal/drafts"
	"github.com/solvitek/quoteline-backend/internal/pricing"
	"github.com/solvitek/quoteline-backend/pkg/config"
	"github.com/solvitek/quoteline-backend/pkg/db/models"
	pkgerrors "github.com/solvitek/quoteline-backend/pkg/errors"
	"github.com/solvitek/quoteline-backend/pkg/logger"
	"github.com/solvitek/quoteline-backend/pkg/metrics"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubCatalogService struct {
	solution catalog.SolutionDTO
	products []catalog.ProductDTO
}

func (s *stubCatalogService) ListSolutions(context.Context) ([]catalog.SolutionDTO, error) {
	return []catalog.SolutionDTO{s.solution}, nil
}

func (s *stubCatalogService) GetSolution(_ context.Context, id uuid.UUID) (*catalog.SolutionDTO, error) {
	if id == s.solution.ID {
		return &s.solution, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "solution not found")
}

func (s *stubCatalogService) ListProducts(context.Context, catalog.ProductListFilters) ([]catalog.ProductDTO, error) {
	return s.products, nil
}

func (s *stubCatalogService) GetProduct(_ context.Context, id uuid.UUID) (*catalog.ProductDTO, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

type stubCustomerService struct{}

func (stubCustomerService) ListCustomers(context.Context, string) ([]customers.CustomerDTO, error) {
	return nil, nil
}

func (stubCustomerService) GetCustomer(context.Context, uuid.UUID) (*customers.CustomerDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
}

func (stubCustomerService) ListGroups(context.Context) ([]customers.GroupDTO, error) {
	return nil, nil
}

type stubQuoteService struct{}

func (stubQuoteService) CompleteDraft(context.Context, uuid.UUID) (*models.Quote, error) {
	return nil, pkgerrors.New(pkgerrors.CodeValidation, "draft has no lines to quote")
}

func (stubQuoteService) GetQuote(context.Context, uuid.UUID) (*models.Quote, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
}

func (stubQuoteService) GetQuoteByNumber(context.Context, string) (*models.Quote, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
}

func (stubQuoteService) ListQuotes(context.Context, int) ([]models.Quote, error) {
	return []models.Quote{}, nil
}

type memoryStore struct {
	drafts map[uuid.UUID]*drafts.Draft
}

func (m *memoryStore) Save(_ context.Context, d *drafts.Draft) error {
	clone := *d
	m.drafts[d.ID] = &clone
	return nil
}

func (m *memoryStore) Get(_ context.Context, id uuid.UUID) (*drafts.Draft, error) {
	d, ok := m.drafts[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "draft not found or expired")
	}
	clone := *d
	return &clone, nil
}

func (m *memoryStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.drafts, id)
	return nil
}

type stubMatrix struct{}

func (stubMatrix) SnapshotForGroup(context.Context, uuid.UUID) (pricing.Matrix, error) {
	return pricing.EmptyMatrix(), nil
}

func newTestRouter(t *testing.T) (http.Handler, *stubCatalogService) {
	t.Helper()

	logg := logger.New(logger.Options{Output: io.Discard, Level: zerolog.ErrorLevel})
	cfg := &config.Config{}
	cfg.App.Env = "test"

	product := catalog.ProductDTO{
		ID:            uuid.New(),
		SKU:           "SKU-100",
		Name:          "Alpha Module",
		GrossPrice:    decimal.NewFromInt(100),
		DiscountGroup: "standard",
		IsActive:      true,
	}
	catalogSvc := &stubCatalogService{
		solution: catalog.SolutionDTO{ID: uuid.New(), Name: "CRM Suite"},
		products: []catalog.ProductDTO{product},
	}

	draftSvc, err := drafts.NewService(
		&memoryStore{drafts: map[uuid.UUID]*drafts.Draft{}},
		catalogSvc,
		stubCustomerService{},
		stubMatrix{},
		nil,
		logg,
	)
	if err != nil {
		t.Fatalf("draft service: %v", err)
	}

	reg := prometheus.NewRegistry()
	handler := NewRouter(
		cfg,
		logg,
		stubPinger{},
		stubPinger{},
		catalogSvc,
		stubCustomerService{},
		draftSvc,
		stubQuoteService{},
		metrics.NewHTTPMetrics(reg),
		reg,
	)
	return handler, catalogSvc
}

func TestHealthLive(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if env := rec.Header().Get("X-Quoteline-Env"); env != "test" {
		t.Errorf("env header: got %q", env)
	}
}

func TestHealthReadyDependencyFailure(t *testing.T) {
	logg := logger.New(logger.Options{Output: io.Discard, Level: zerolog.ErrorLevel})
	cfg := &config.Config{}

	handler := NewRouter(cfg, logg,
		stubPinger{err: context.DeadlineExceeded},
		stubPinger{},
		&stubCatalogService{}, stubCustomerService{}, nil, stubQuoteService{},
		metrics.NewHTTPMetrics(nil), nil,
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: got %d, want 503", rec.Code)
	}
}

func TestDraftLifecycleRoutes(t *testing.T) {
	handler, catalogSvc := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/drafts", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got %d, body %s", rec.Code, rec.Body.String())
	}

	var created struct {
		Data drafts.View `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	draftID := created.Data.Draft.ID.String()

	// add a line
	payload, _ := json.Marshal(map[string]any{
		"product_id": catalogSvc.products[0].ID,
		"quantity":   10,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/drafts/"+draftID+"/lines", bytes.NewReader(payload))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("add line: got %d, body %s", rec.Code, rec.Body.String())
	}

	var updated struct {
		Data drafts.View `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !updated.Data.Totals.GrossTotal.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("gross: got %s, want 1000", updated.Data.Totals.GrossTotal)
	}

	// totals endpoint
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/drafts/"+draftID+"/totals", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("totals: got %d", rec.Code)
	}

	// delete
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/drafts/"+draftID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: got %d", rec.Code)
	}

	// gone now
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/drafts/"+draftID, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: got %d, want 404", rec.Code)
	}
}

func TestDraftAddLineValidation(t *testing.T) {
	handler, catalogSvc := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/drafts", nil))
	var created struct {
		Data drafts.View `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	payload, _ := json.Marshal(map[string]any{
		"product_id": catalogSvc.products[0].ID,
		"quantity":   0,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/drafts/"+created.Data.Draft.ID.String()+"/lines", bytes.NewReader(payload))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400; body %s", rec.Code, rec.Body.String())
	}
}

func TestBadDraftIDRejected(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/drafts/not-a-uuid", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rec.Code)
	}
}

func TestProductRoutes(t *testing.T) {
	handler, catalogSvc := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list: got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/"+catalogSvc.products[0].ID.String(), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get: got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/"+uuid.NewString(), nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing product: got %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/solutions/"+catalogSvc.solution.ID.String()+"/products", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("solution products: got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/solutions/"+uuid.NewString()+"/products", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing solution: got %d, want 404", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: got %d", rec.Code)
	}
}
