package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/feastline/feastline-backend/api/responses"
	"github.com/feastline/feastline-backend/api/validators"
	"github.com/feastline/feastline-backend/internal/cart"
	"github.com/feastline/feastline-backend/internal/catalog"
	"github.com/feastline/feastline-backend/pkg/logger"
)

type cartView struct {
	Items  []cart.Line `json:"items"`
	Count  int         `json:"count"`
	Totals cart.Totals `json:"totals"`
}

func newCartView(store *cart.Store) cartView {
	return cartView{
		Items:  store.Items(),
		Count:  store.Count(),
		Totals: store.Totals(),
	}
}

// CartGet returns the cart lines with derived totals.
func CartGet(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, newCartView(store))
	}
}

type addCartItemRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// CartAddItem adds a catalog item to the cart, merging with an existing line.
func CartAddItem(store *cart.Store, reader *catalog.Reader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := reader.Get(payload.ItemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.Add(item, payload.Quantity)
		responses.WriteSuccess(w, newCartView(store))
	}
}

// CartIncrement bumps an existing line by one.
func CartIncrement(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store.Increment(chi.URLParam(r, "id"))
		responses.WriteSuccess(w, newCartView(store))
	}
}

// CartDecrement drops an existing line by one, removing it at zero.
func CartDecrement(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store.Decrement(chi.URLParam(r, "id"))
		responses.WriteSuccess(w, newCartView(store))
	}
}

// CartClear empties the cart.
func CartClear(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store.Clear()
		responses.WriteSuccess(w, newCartView(store))
	}
}
