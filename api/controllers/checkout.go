package controllers

import (
	"net/http"

	"github.com/feastline/feastline-backend/api/responses"
	"github.com/feastline/feastline-backend/api/validators"
	"github.com/feastline/feastline-backend/internal/cart"
	"github.com/feastline/feastline-backend/internal/checkout"
	"github.com/feastline/feastline-backend/pkg/config"
	"github.com/feastline/feastline-backend/pkg/enums"
	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
	"github.com/feastline/feastline-backend/pkg/logger"
	"github.com/feastline/feastline-backend/pkg/qr"
)

type chooseFulfillmentRequest struct {
	Mode string `json:"mode" validate:"required,oneof=delivery takeaway dine-in"`
}

// CheckoutChooseFulfillment starts a run with the given fulfillment mode.
func CheckoutChooseFulfillment(seq *checkout.Sequencer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload chooseFulfillmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mode, err := enums.ParseFulfillmentMode(payload.Mode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid fulfillment mode"))
			return
		}

		run, err := seq.ChooseFulfillment(r.Context(), mode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, run)
	}
}

type chooseMethodRequest struct {
	Method string `json:"method" validate:"required,oneof=card upi cash"`
}

// CheckoutChooseMethod picks the payment method for the active run.
func CheckoutChooseMethod(seq *checkout.Sequencer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload chooseMethodRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.Method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		run, err := seq.ChooseMethod(r.Context(), method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, run)
	}
}

type submitVerificationRequest struct {
	Code    string `json:"code"`
	Outcome string `json:"outcome"`
}

// CheckoutSubmitVerification resolves the verification step with a one-time
// code (card) or an outcome signal (upi).
func CheckoutSubmitVerification(seq *checkout.Sequencer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload submitVerificationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := checkout.VerificationInput{Code: payload.Code}
		if payload.Outcome != "" {
			outcome, err := enums.ParsePaymentOutcome(payload.Outcome)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid outcome"))
				return
			}
			input.Outcome = outcome
		}

		run, err := seq.SubmitVerification(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, run)
	}
}

// CheckoutRetry re-enters method selection after a failed run.
func CheckoutRetry(seq *checkout.Sequencer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, err := seq.Retry(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, run)
	}
}

// CheckoutCancel abandons the active run with no side effects.
func CheckoutCancel(seq *checkout.Sequencer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := seq.Cancel(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cancelled"})
	}
}

// CheckoutState returns the active run, if any.
func CheckoutState(seq *checkout.Sequencer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, ok := seq.Current()
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "no active checkout run"))
			return
		}
		responses.WriteSuccess(w, run)
	}
}

// CheckoutUpiQR renders a UPI pay QR code for the current cart total. This
// backs the zero-instrument fallback path where no stored UPI account exists.
func CheckoutUpiQR(store *cart.Store, cfg config.CheckoutConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		totals := store.Totals()
		if totals.Total.IsZero() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodePrecondition, "cart is empty"))
			return
		}

		png, err := qr.EncodePNG(qr.PayRequest{
			PayeeHandle: cfg.UPIPayeeHandle,
			PayeeName:   cfg.UPIPayeeName,
			Amount:      totals.Total,
			Note:        "Feastline order",
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rendering qr code"))
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		w.Write(png)
	}
}
