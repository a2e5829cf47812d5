package qr

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
)

const pngSize = 256

// PayRequest describes a UPI collect request rendered as a QR code.
type PayRequest struct {
	PayeeHandle string
	PayeeName   string
	Amount      decimal.Decimal
	Note        string
}

// Link builds the upi:// deep link encoded into the QR image.
func Link(req PayRequest) (string, error) {
	if strings.TrimSpace(req.PayeeHandle) == "" {
		return "", fmt.Errorf("payee handle is required")
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return "", fmt.Errorf("amount must be positive")
	}

	query := url.Values{}
	query.Set("pa", strings.TrimSpace(req.PayeeHandle))
	if name := strings.TrimSpace(req.PayeeName); name != "" {
		query.Set("pn", name)
	}
	query.Set("am", req.Amount.StringFixed(2))
	query.Set("cu", "INR")
	if note := strings.TrimSpace(req.Note); note != "" {
		query.Set("tn", note)
	}

	return "upi://pay?" + query.Encode(), nil
}

// EncodePNG renders the pay request as a PNG QR code.
func EncodePNG(req PayRequest) ([]byte, error) {
	link, err := Link(req)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(link, qrcode.Medium, pngSize)
}
