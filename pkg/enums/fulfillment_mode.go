package enums

import "fmt"

// FulfillmentMode determines which preconditions apply before payment.
type FulfillmentMode string

const (
	FulfillmentModeDelivery FulfillmentMode = "delivery"
	FulfillmentModeTakeaway FulfillmentMode = "takeaway"
	FulfillmentModeDineIn   FulfillmentMode = "dine-in"
)

var validFulfillmentModes = []FulfillmentMode{
	FulfillmentModeDelivery,
	FulfillmentModeTakeaway,
	FulfillmentModeDineIn,
}

// String implements fmt.Stringer.
func (f FulfillmentMode) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FulfillmentMode.
func (f FulfillmentMode) IsValid() bool {
	for _, candidate := range validFulfillmentModes {
		if candidate == f {
			return true
		}
	}
	return false
}

// RequiresAddress reports whether the mode needs a resolved delivery address.
func (f FulfillmentMode) RequiresAddress() bool {
	return f == FulfillmentModeDelivery
}

// ParseFulfillmentMode converts raw input into a FulfillmentMode.
func ParseFulfillmentMode(value string) (FulfillmentMode, error) {
	for _, candidate := range validFulfillmentModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid fulfillment mode %q", value)
}
