package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/solvitek/quoteline-backend/api/controllers"
	"github.com/solvitek/quoteline-backend/api/middleware"
	"github.com/solvitek/quoteline-backend/internal/catalog"
	"github.com/solvitek/quoteline-backend/internal/customers"
	"github.com/solvitek/quoteline-backend/internal/drafts"
	"github.com/solvitek/quoteline-backend/internal/quotes"
	"github.com/solvitek/quoteline-backend/pkg/config"
	"github.com/solvitek/quoteline-backend/pkg/db"
	"github.com/solvitek/quoteline-backend/pkg/logger"
	"github.com/solvitek/quoteline-backend/pkg/metrics"
	"github.com/solvitek/quoteline-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient redis.Pinger,
	catalogService catalog.Service,
	customerService customers.Service,
	draftService drafts.Service,
	quoteService quotes.Service,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/solutions", func(r chi.Router) {
			r.Get("/", controllers.ListSolutions(catalogService, logg))
			r.Get("/{solutionId}/products", controllers.ListSolutionProducts(catalogService, logg))
		})
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(catalogService, logg))
			r.Get("/{productId}", controllers.GetProduct(catalogService, logg))
		})
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.ListCustomers(customerService, logg))
			r.Get("/{customerId}", controllers.GetCustomer(customerService, logg))
		})
		r.Get("/customer-groups", controllers.ListCustomerGroups(customerService, logg))

		r.Route("/drafts", func(r chi.Router) {
			r.Post("/", controllers.DraftCreate(draftService, logg))
			r.Route("/{draftId}", func(r chi.Router) {
				r.Get("/", controllers.DraftGet(draftService, logg))
				r.Delete("/", controllers.DraftDelete(draftService, logg))
				r.Put("/solution", controllers.DraftSetSolution(draftService, logg))
				r.Put("/customer", controllers.DraftSetCustomer(draftService, logg))
				r.Put("/discount", controllers.DraftSetDiscount(draftService, logg))
				r.Put("/notes", controllers.DraftSetNotes(draftService, logg))
				r.Put("/step", controllers.DraftSetStep(draftService, logg))
				r.Get("/totals", controllers.DraftTotals(draftService, logg))
				r.Post("/complete", controllers.DraftComplete(quoteService, logg))
				r.Route("/lines", func(r chi.Router) {
					r.Post("/", controllers.DraftAddLine(draftService, logg))
					r.Delete("/", controllers.DraftClearLines(draftService, logg))
					r.Put("/{productId}", controllers.DraftUpdateLine(draftService, logg))
					r.Delete("/{productId}", controllers.DraftRemoveLine(draftService, logg))
				})
			})
		})

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", controllers.QuoteList(quoteService, logg))
			r.Route("/{quoteId}", func(r chi.Router) {
				r.Get("/", controllers.QuoteGet(quoteService, logg))
				r.Get("/export/csv", controllers.QuoteExportCSV(quoteService, logg))
				r.Get("/export/pdf", controllers.QuoteExportPDF(quoteService, cfg.Quotes, logg))
			})
		})
	})

	return r
}
