package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/solvitek/quoteline-backend/api/responses"
	"github.com/solvitek/quoteline-backend/api/validators"
	"github.com/solvitek/quoteline-backend/internal/drafts"
	"github.com/solvitek/quoteline-backend/internal/quotes"
	"github.com/solvitek/quoteline-backend/pkg/logger"
)

type setSolutionRequest struct {
	SolutionID *uuid.UUID `json:"solution_id"`
}

type setCustomerRequest struct {
	CustomerID *uuid.UUID `json:"customer_id"`
}

type setDiscountRequest struct {
	Percent decimal.Decimal `json:"percent"`
}

type setNotesRequest struct {
	Notes string `json:"notes" validate:"max=4000"`
}

type setStepRequest struct {
	Step int `json:"step" validate:"min=0,max=4"`
}

type addLineRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type updateLineRequest struct {
	Quantity        *int             `json:"quantity,omitempty" validate:"omitempty,min=1"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	ClearDiscount   bool             `json:"clear_discount,omitempty"`
}

// DraftCreate opens a fresh configurator session.
func DraftCreate(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		view, err := svc.Create(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		ctx = logg.WithDraftID(ctx, view.Draft.ID.String())
		logg.Info(ctx, "draft created")
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// DraftGet returns the draft with freshly computed totals.
func DraftGet(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return draftView(svc, logg, func(r *http.Request, svc drafts.Service, id uuid.UUID) (*drafts.View, error) {
		return svc.Get(r.Context(), id)
	})
}

// DraftDelete abandons a session.
func DraftDelete(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.ParseUUIDParam(r, "draftId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// DraftSetSolution stores the selected solution. A null body value clears it.
func DraftSetSolution(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return draftView(svc, logg, func(r *http.Request, svc drafts.Service, id uuid.UUID) (*drafts.View, error) {
		var req setSolutionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			return nil, err
		}
		return svc.SetSolution(r.Context(), id, req.SolutionID)
	})
}

// DraftSetCustomer stores the customer and resolves its discount group.
func DraftSetCustomer(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return draftView(svc, logg, func(r *http.Request, svc drafts.Service, id uuid.UUID) (*drafts.View, error) {
		var req setCustomerRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			return nil, err
		}
		return svc.SetCustomer(r.Context(), id, req.CustomerID)
	})
}

// DraftSetDiscount stores the quote-wide additional discount.
func DraftSetDiscount(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return draftView(svc, logg, func(r *http.Request, svc drafts.Service, id uuid.UUID) (*drafts.View, error) {
		var req setDiscountRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			return nil, err
		}
		return svc.SetAdditionalDiscount(r.Context(), id, req.Percent)
	})
}

// DraftSetNotes replaces the free-text notes.
func DraftSetNotes(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return draftView(svc, logg, func(r *http.Request, svc drafts.Service, id uuid.UUID) (*drafts.View, error) {
		var req setNotesRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			return nil, err
		}
		return svc.SetNotes(r.Context(), id, validators.SanitizeString(req.Notes, 4000))
	})
}

// DraftSetStep moves the wizard pointer.
func DraftSetStep(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return draftView(svc, logg, func(r *http.Request, svc drafts.Service, id uuid.UUID) (*drafts.View, error) {
		var req setStepRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			return nil, err
		}
		return svc.SetStep(r.Context(), id, req.Step)
	})
}

// DraftAddLine puts a product on the draft, merging with an existing line.
func DraftAddLine(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return draftView(svc, logg, func(r *http.Request, svc drafts.Service, id uuid.UUID) (*drafts.View, error) {
		var req addLineRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			return nil, err
		}
		return svc.AddLine(r.Context(), id, req.ProductID, req.Quantity)
	})
}

// DraftUpdateLine changes quantity and/or the manual discount of a line.
func DraftUpdateLine(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return draftView(svc, logg, func(r *http.Request, svc drafts.Service, id uuid.UUID) (*drafts.View, error) {
		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			return nil, err
		}

		var req updateLineRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			return nil, err
		}

		ctx := r.Context()
		view, err := svc.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if req.Quantity != nil {
			if view, err = svc.SetLineQuantity(ctx, id, productID, *req.Quantity); err != nil {
				return nil, err
			}
		}
		if req.DiscountPercent != nil || req.ClearDiscount {
			percent := req.DiscountPercent
			if req.ClearDiscount {
				percent = nil
			}
			if view, err = svc.SetLineDiscount(ctx, id, productID, percent); err != nil {
				return nil, err
			}
		}
		return view, nil
	})
}

// DraftRemoveLine drops one product from the draft.
func DraftRemoveLine(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return draftView(svc, logg, func(r *http.Request, svc drafts.Service, id uuid.UUID) (*drafts.View, error) {
		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			return nil, err
		}
		return svc.RemoveLine(r.Context(), id, productID)
	})
}

// DraftClearLines empties the draft.
func DraftClearLines(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return draftView(svc, logg, func(r *http.Request, svc drafts.Service, id uuid.UUID) (*drafts.View, error) {
		return svc.ClearLines(r.Context(), id)
	})
}

// DraftTotals returns the totals object on its own.
func DraftTotals(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.ParseUUIDParam(r, "draftId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		totals, err := svc.Totals(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, totals)
	}
}

// DraftComplete freezes the draft into a quote.
func DraftComplete(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.ParseUUIDParam(r, "draftId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		ctx = logg.WithDraftID(ctx, id.String())

		quote, err := svc.CompleteDraft(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, quote)
	}
}

func draftView(svc drafts.Service, logg *logger.Logger, op func(*http.Request, drafts.Service, uuid.UUID) (*drafts.View, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.ParseUUIDParam(r, "draftId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		ctx = logg.WithDraftID(ctx, id.String())

		view, err := op(r.WithContext(ctx), svc, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
