package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/feastline/feastline-backend/api/responses"
	"github.com/feastline/feastline-backend/api/validators"
	"github.com/feastline/feastline-backend/internal/payments"
	"github.com/feastline/feastline-backend/pkg/enums"
	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
	"github.com/feastline/feastline-backend/pkg/logger"
)

type instrumentsView struct {
	Cards []payments.Card       `json:"cards"`
	Upis  []payments.UpiAccount `json:"upis"`
}

// PaymentInstrumentsList returns both instrument collections.
func PaymentInstrumentsList(store *payments.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, instrumentsView{Cards: store.Cards(), Upis: store.Upis()})
	}
}

type addCardRequest struct {
	Number string `json:"number" validate:"required"`
	Holder string `json:"holder" validate:"required"`
	Expiry string `json:"expiry" validate:"required"`
	CVV    string `json:"cvv" validate:"required,len=3"`
	Brand  string `json:"brand"`
}

// PaymentCardAdd validates the raw card payload and stores a masked entry.
// Instruments added through the API have completed the client-side flow, so
// they enter as verified.
func PaymentCardAdd(store *payments.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addCardRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		card, err := store.AddCard(payload.Number, payload.Holder, payload.Expiry, payload.CVV, payload.Brand, enums.VerificationStatusVerified)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, card)
	}
}

type updateCardRequest struct {
	Brand        string `json:"brand"`
	Holder       string `json:"holder" validate:"required"`
	Expiry       string `json:"expiry" validate:"required"`
	Verification string `json:"verification" validate:"required,oneof=verified unverified"`
}

// PaymentCardUpdate replaces the mutable fields of a stored card.
func PaymentCardUpdate(store *payments.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateCardRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseVerificationStatus(payload.Verification)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid verification status"))
			return
		}

		id := chi.URLParam(r, "id")
		existing, found := findCard(store.Cards(), id)
		if !found {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "card not found"))
			return
		}

		existing.Brand = payload.Brand
		existing.HolderName = payload.Holder
		existing.Expiry = payload.Expiry
		existing.Verification = status
		if err := store.UpdateCard(existing); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, existing)
	}
}

// PaymentCardRemove deletes a stored card.
func PaymentCardRemove(store *payments.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store.RemoveCard(chi.URLParam(r, "id"))
		responses.WriteSuccess(w, instrumentsView{Cards: store.Cards(), Upis: store.Upis()})
	}
}

type addUpiRequest struct {
	Provider string `json:"provider"`
	Handle   string `json:"handle" validate:"required"`
}

// PaymentUpiAdd stores a UPI account.
func PaymentUpiAdd(store *payments.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addUpiRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		upi, err := store.AddUpi(payload.Provider, payload.Handle, enums.VerificationStatusVerified)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, upi)
	}
}

type updateUpiRequest struct {
	Provider     string `json:"provider"`
	Handle       string `json:"handle" validate:"required"`
	Verification string `json:"verification" validate:"required,oneof=verified unverified"`
}

// PaymentUpiUpdate replaces the mutable fields of a stored UPI account.
func PaymentUpiUpdate(store *payments.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateUpiRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseVerificationStatus(payload.Verification)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid verification status"))
			return
		}

		id := chi.URLParam(r, "id")
		existing, found := findUpi(store.Upis(), id)
		if !found {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "upi account not found"))
			return
		}

		existing.Provider = payload.Provider
		existing.Handle = payload.Handle
		existing.Verification = status
		if err := store.UpdateUpi(existing); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, existing)
	}
}

// PaymentUpiRemove deletes a stored UPI account.
func PaymentUpiRemove(store *payments.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store.RemoveUpi(chi.URLParam(r, "id"))
		responses.WriteSuccess(w, instrumentsView{Cards: store.Cards(), Upis: store.Upis()})
	}
}

func findCard(cards []payments.Card, id string) (payments.Card, bool) {
	for _, c := range cards {
		if c.ID == id {
			return c, true
		}
	}
	return payments.Card{}, false
}

func findUpi(upis []payments.UpiAccount, id string) (payments.UpiAccount, bool) {
	for _, u := range upis {
		if u.ID == id {
			return u, true
		}
	}
	return payments.UpiAccount{}, false
}
