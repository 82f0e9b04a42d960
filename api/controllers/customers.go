package controllers

import (
	"net/http"

	"github.com/solvitek/quoteline-backend/api/responses"
	"github.com/solvitek/quoteline-backend/api/validators"
	"github.com/solvitek/quoteline-backend/internal/customers"
	"github.com/solvitek/quoteline-backend/pkg/logger"
)

// ListCustomers serves the customer picker, with optional search.
func ListCustomers(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		query := validators.SanitizeString(r.URL.Query().Get("q"), 120)
		rows, err := svc.ListCustomers(ctx, query)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"customers": rows})
	}
}

// GetCustomer serves one customer with its discount group.
func GetCustomer(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.ParseUUIDParam(r, "customerId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		customer, err := svc.GetCustomer(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, customer)
	}
}

// ListCustomerGroups serves the discount group catalog.
func ListCustomerGroups(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		groups, err := svc.ListGroups(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"groups": groups})
	}
}
