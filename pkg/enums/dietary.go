package enums

import "fmt"

// Dietary marks a food item as vegetarian or non-vegetarian.
type Dietary string

const (
	DietaryVeg    Dietary = "veg"
	DietaryNonVeg Dietary = "non-veg"
)

var validDietaries = []Dietary{
	DietaryVeg,
	DietaryNonVeg,
}

// String implements fmt.Stringer.
func (d Dietary) String() string {
	return string(d)
}

// IsValid reports whether the value is a known Dietary.
func (d Dietary) IsValid() bool {
	for _, candidate := range validDietaries {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDietary converts raw input into a Dietary.
func ParseDietary(value string) (Dietary, error) {
	for _, candidate := range validDietaries {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid dietary flag %q", value)
}
