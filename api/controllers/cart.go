package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/craftline/pos-terminal/api/responses"
	"github.com/craftline/pos-terminal/api/validators"
	cartsvc "github.com/craftline/pos-terminal/internal/cart"
	pkgerrors "github.com/craftline/pos-terminal/pkg/errors"
	"github.com/craftline/pos-terminal/pkg/logger"
	"github.com/craftline/pos-terminal/pkg/types"
)

type cartView struct {
	Lines         []types.CartLine `json:"lines"`
	Count         int64            `json:"count"`
	TotalSum      string           `json:"total_sum"`
	PaymentMethod string           `json:"payment_method"`
	Customer      *types.Customer  `json:"customer"`
}

func newCartView(store *cartsvc.Store) cartView {
	return cartView{
		Lines:         store.Lines(),
		Count:         store.Count(),
		TotalSum:      store.TotalSum().StringFixed(2),
		PaymentMethod: store.PaymentMethod(),
		Customer:      store.Customer(),
	}
}

// CartFetch resyncs the mirror from the cart service and returns it.
func CartFetch(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Refresh(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(store))
	}
}

func CartAdd(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload cartsvc.AddLinePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := store.AddLine(r.Context(), payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(store))
	}
}

func CartUpdateQuantity(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lineID, err := lineIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		delta, err := strconv.ParseInt(r.URL.Query().Get("change"), 10, 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "change must be an integer"))
			return
		}

		if err := store.ChangeQuantity(r.Context(), lineID, delta); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(store))
	}
}

func CartRemove(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lineID, err := lineIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := store.RemoveLine(r.Context(), lineID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(store))
	}
}

func CartClear(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clearCustomer := r.URL.Query().Get("keep_customer") != "true"
		if err := store.Clear(r.Context(), clearCustomer); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(store))
	}
}

func CartSetCustomer(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			ID   int64  `json:"id" validate:"required,gt=0"`
			Name string `json:"name" validate:"required"`
		}
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store.SetCustomer(types.Customer{ID: payload.ID, Name: payload.Name})
		responses.WriteSuccess(w, newCartView(store))
	}
}

func CartRemoveCustomer(store *cartsvc.Store, _ *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		store.RemoveCustomer()
		responses.WriteSuccess(w, newCartView(store))
	}
}

func CartSetPaymentMethod(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			PaymentMethod string `json:"payment_method" validate:"required"`
		}
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.SetPaymentMethod(payload.PaymentMethod); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(store))
	}
}

func lineIDFromRequest(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "lineID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "line id must be a positive integer")
	}
	return id, nil
}
