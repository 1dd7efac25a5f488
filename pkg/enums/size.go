package enums

import "fmt"

// Size is the cup size chosen when an item is added to the cart.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

var validSizes = []Size{
	SizeSmall,
	SizeMedium,
	SizeLarge,
}

// String implements fmt.Stringer.
func (s Size) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Size.
func (s Size) IsValid() bool {
	for _, candidate := range validSizes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSize converts raw input into a Size.
func ParseSize(value string) (Size, error) {
	for _, candidate := range validSizes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid size %q", value)
}

// NormalizeSize falls back to medium for empty or unknown input. Missing
// option fields default silently, they are never an error.
func NormalizeSize(value string) Size {
	if size, err := ParseSize(value); err == nil {
		return size
	}
	return SizeMedium
}
