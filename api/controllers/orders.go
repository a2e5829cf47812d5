package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/feastline/feastline-backend/api/responses"
	"github.com/feastline/feastline-backend/internal/cart"
	"github.com/feastline/feastline-backend/internal/orders"
	"github.com/feastline/feastline-backend/pkg/logger"
)

// OrdersList returns the order history, most recent first.
func OrdersList(ledger *orders.Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"orders": ledger.List()})
	}
}

// OrdersGet returns one past order.
func OrdersGet(ledger *orders.Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := ledger.Get(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// OrdersClear discards the whole history.
func OrdersClear(ledger *orders.Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ledger.Clear()
		responses.WriteSuccess(w, map[string]any{"orders": ledger.List()})
	}
}

// OrdersReorder puts a past order's items back in the cart at their
// order-time prices.
func OrdersReorder(ledger *orders.Ledger, store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ledger.Reorder(chi.URLParam(r, "id"), store); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(store))
	}
}
