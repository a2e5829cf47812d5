package payments

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
)

// luhnValid runs the Luhn checksum over a digits-only string.
func luhnValid(number string) bool {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// ValidateCardInput checks the client-side format rules for a new card:
// 16-digit Luhn-valid PAN, letters-only holder name, MM/YY expiry naming a
// real month, and a 3-digit CVV. The CVV is checked and discarded, never
// stored.
func ValidateCardInput(pan, holder, expiry, cvv string) error {
	pan = strings.ReplaceAll(pan, " ", "")
	if len(pan) != 16 {
		return pkgerrors.New(pkgerrors.CodeValidation, "card number must be 16 digits")
	}
	if !luhnValid(pan) {
		return pkgerrors.New(pkgerrors.CodeValidation, "card number failed checksum")
	}

	holder = strings.TrimSpace(holder)
	if holder == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "holder name is required")
	}
	for _, r := range holder {
		if !unicode.IsLetter(r) && r != ' ' {
			return pkgerrors.New(pkgerrors.CodeValidation, "holder name must contain letters only")
		}
	}

	if err := validateExpiry(expiry); err != nil {
		return err
	}

	if len(cvv) != 3 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cvv must be 3 digits")
	}
	for i := 0; i < len(cvv); i++ {
		if cvv[i] < '0' || cvv[i] > '9' {
			return pkgerrors.New(pkgerrors.CodeValidation, "cvv must be 3 digits")
		}
	}
	return nil
}

func validateExpiry(expiry string) error {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return pkgerrors.New(pkgerrors.CodeValidation, "expiry must be in MM/YY format")
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return pkgerrors.New(pkgerrors.CodeValidation, "expiry month must be between 01 and 12")
	}
	if _, err := strconv.Atoi(parts[1]); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "expiry must be in MM/YY format")
	}
	return nil
}

// ValidateUpiInput checks the format rule for a new UPI account: a non-empty
// handle, expected to look like name@provider.
func ValidateUpiInput(handle string) error {
	if strings.TrimSpace(handle) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "upi handle is required")
	}
	return nil
}

// MaskPAN keeps the last four digits of a card number visible.
func MaskPAN(pan string) string {
	pan = strings.ReplaceAll(pan, " ", "")
	if len(pan) < 4 {
		return pan
	}
	return strings.Repeat("*", len(pan)-4) + pan[len(pan)-4:]
}

// ExpiryInPast reports whether an MM/YY expiry has already lapsed. The
// create path only checks format, so callers that want a hard cutoff apply
// this separately.
func ExpiryInPast(expiry string, now time.Time) bool {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 {
		return true
	}
	month, _ := strconv.Atoi(parts[0])
	year, _ := strconv.Atoi(parts[1])
	year += 2000
	end := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	return !now.Before(end)
}
