package controllers

import (
	"net/http"
	"strings"

	"github.com/solvitek/quoteline-backend/api/responses"
	"github.com/solvitek/quoteline-backend/api/validators"
	"github.com/solvitek/quoteline-backend/internal/catalog"
	"github.com/solvitek/quoteline-backend/pkg/logger"
)

// ListSolutions serves the solution picker for the configurator's first step.
func ListSolutions(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		solutions, err := svc.ListSolutions(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"solutions": solutions})
	}
}

// ListProducts serves the filterable product catalog.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		solutionID, err := validators.ParseQueryUUID(r, "solution_id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		filters := catalog.ProductListFilters{
			SolutionID: solutionID,
			Query:      validators.SanitizeString(r.URL.Query().Get("q"), 120),
			ActiveOnly: r.URL.Query().Get("include_inactive") != "true",
		}
		if category := strings.TrimSpace(r.URL.Query().Get("category")); category != "" {
			filters.Category = &category
		}

		products, err := svc.ListProducts(ctx, filters)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}

// ListSolutionProducts serves the products belonging to one solution.
func ListSolutionProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.ParseUUIDParam(r, "solutionId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if _, err := svc.GetSolution(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		products, err := svc.ListProducts(ctx, catalog.ProductListFilters{
			SolutionID: &id,
			ActiveOnly: r.URL.Query().Get("include_inactive") != "true",
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}

// GetProduct serves one catalog product.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.GetProduct(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
