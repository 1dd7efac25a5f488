package enums

import "fmt"

// Sugar is the sweetening option chosen when an item is added to the cart.
type Sugar string

const (
	SugarWith    Sugar = "with sugar"
	SugarWithout Sugar = "without sugar"
	SugarExtra   Sugar = "extra sugar"
)

var validSugars = []Sugar{
	SugarWith,
	SugarWithout,
	SugarExtra,
}

// String implements fmt.Stringer.
func (s Sugar) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Sugar.
func (s Sugar) IsValid() bool {
	for _, candidate := range validSugars {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSugar converts raw input into a Sugar.
func ParseSugar(value string) (Sugar, error) {
	for _, candidate := range validSugars {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sugar option %q", value)
}

// NormalizeSugar falls back to "with sugar", the canonical default.
func NormalizeSugar(value string) Sugar {
	if sugar, err := ParseSugar(value); err == nil {
		return sugar
	}
	return SugarWith
}
