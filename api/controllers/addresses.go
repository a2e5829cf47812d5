package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/feastline/feastline-backend/api/responses"
	"github.com/feastline/feastline-backend/api/validators"
	"github.com/feastline/feastline-backend/internal/address"
	"github.com/feastline/feastline-backend/pkg/enums"
	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
	"github.com/feastline/feastline-backend/pkg/logger"
)

type addressPayload struct {
	Line     string          `json:"line" validate:"required"`
	City     string          `json:"city" validate:"required"`
	PinCode  string          `json:"pin_code" validate:"required"`
	Landmark string          `json:"landmark"`
	Label    string          `json:"label" validate:"required,oneof=Home Work Other"`
	Coords   *address.Coords `json:"coords"`
}

func (p addressPayload) toAddress() (address.Address, error) {
	label, err := enums.ParseAddressLabel(p.Label)
	if err != nil {
		return address.Address{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid label")
	}
	return address.Address{
		Line:     p.Line,
		City:     p.City,
		PinCode:  p.PinCode,
		Landmark: p.Landmark,
		Label:    label,
		Coords:   p.Coords,
	}, nil
}

type addressBookView struct {
	Addresses  []address.Address `json:"addresses"`
	DefaultID  string            `json:"default_id,omitempty"`
	SelectedID string            `json:"selected_id,omitempty"`
}

func newAddressBookView(book *address.Book) addressBookView {
	view := addressBookView{Addresses: book.List()}
	if def, ok := book.Default(); ok {
		view.DefaultID = def.ID
	}
	if sel, ok := book.Selected(); ok {
		view.SelectedID = sel.ID
	}
	return view
}

// AddressList returns the saved addresses with the default/selected markers.
func AddressList(book *address.Book, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, newAddressBookView(book))
	}
}

// AddressAdd saves a new address.
func AddressAdd(book *address.Book, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addressPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		addr, err := payload.toAddress()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		added, err := book.Add(addr)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, added)
	}
}

// AddressUpdate replaces an address in place.
func AddressUpdate(book *address.Book, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addressPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		addr, err := payload.toAddress()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		addr.ID = chi.URLParam(r, "id")

		if err := book.Update(addr); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newAddressBookView(book))
	}
}

// AddressRemove deletes an address, reassigning default/selection if needed.
func AddressRemove(book *address.Book, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		book.Remove(chi.URLParam(r, "id"))
		responses.WriteSuccess(w, newAddressBookView(book))
	}
}

// AddressSetDefault flags an address as the default.
func AddressSetDefault(book *address.Book, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := book.SetDefault(chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newAddressBookView(book))
	}
}

type selectAddressRequest struct {
	AddressID string `json:"address_id"`
}

// AddressSelect marks the address for the current checkout; an empty id
// clears the selection.
func AddressSelect(book *address.Book, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload selectAddressRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := book.Select(payload.AddressID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newAddressBookView(book))
	}
}
