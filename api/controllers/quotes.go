package controllers

import (
	"fmt"
	"net/http"

	"github.com/solvitek/quoteline-backend/api/responses"
	"github.com/solvitek/quoteline-backend/api/validators"
	"github.com/solvitek/quoteline-backend/internal/export"
	"github.com/solvitek/quoteline-backend/internal/quotes"
	"github.com/solvitek/quoteline-backend/pkg/config"
	"github.com/solvitek/quoteline-backend/pkg/logger"
)

// QuoteList serves the recent quote history.
func QuoteList(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 200)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		rows, err := svc.ListQuotes(ctx, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"quotes": rows})
	}
}

// QuoteGet serves one quote with its items.
func QuoteGet(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.ParseUUIDParam(r, "quoteId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		quote, err := svc.GetQuote(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// QuoteExportCSV streams the quote as a CSV download.
func QuoteExportCSV(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.ParseUUIDParam(r, "quoteId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		quote, err := svc.GetQuote(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		body, err := export.QuoteCSV(quote)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", quote.QuoteNumber+".csv"))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(body); err != nil {
			logg.Error(ctx, "write csv export", err)
		}
	}
}

// QuoteExportPDF streams the quote as a PDF download.
func QuoteExportPDF(svc quotes.Service, cfg config.QuotesConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.ParseUUIDParam(r, "quoteId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		quote, err := svc.GetQuote(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		body, err := export.QuotePDF(quote, export.PDFOptions{Title: cfg.PDFTitle})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", quote.QuoteNumber+".pdf"))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(body); err != nil {
			logg.Error(ctx, "write pdf export", err)
		}
	}
}
