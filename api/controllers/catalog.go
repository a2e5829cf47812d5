package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/feastline/feastline-backend/api/responses"
	"github.com/feastline/feastline-backend/internal/catalog"
	"github.com/feastline/feastline-backend/pkg/enums"
	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
	"github.com/feastline/feastline-backend/pkg/logger"
)

// CatalogList returns the menu, optionally filtered by dietary flag and
// status tag query params.
func CatalogList(reader *catalog.Reader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var dietary *enums.Dietary
		if raw := r.URL.Query().Get("dietary"); raw != "" {
			parsed, err := enums.ParseDietary(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid dietary filter"))
				return
			}
			dietary = &parsed
		}

		var status *enums.ItemStatus
		if raw := r.URL.Query().Get("status"); raw != "" {
			parsed, err := enums.ParseItemStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			status = &parsed
		}

		responses.WriteSuccess(w, map[string]any{"items": reader.Filter(dietary, status)})
	}
}

// CatalogGet returns one menu item by id.
func CatalogGet(reader *catalog.Reader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := reader.Get(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}
