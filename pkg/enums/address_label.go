package enums

import "fmt"

// AddressLabel is the user-facing tag on a saved address.
type AddressLabel string

const (
	AddressLabelHome  AddressLabel = "Home"
	AddressLabelWork  AddressLabel = "Work"
	AddressLabelOther AddressLabel = "Other"
)

var validAddressLabels = []AddressLabel{
	AddressLabelHome,
	AddressLabelWork,
	AddressLabelOther,
}

// String implements fmt.Stringer.
func (a AddressLabel) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AddressLabel.
func (a AddressLabel) IsValid() bool {
	for _, candidate := range validAddressLabels {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAddressLabel converts raw input into an AddressLabel.
func ParseAddressLabel(value string) (AddressLabel, error) {
	for _, candidate := range validAddressLabels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid address label %q", value)
}
