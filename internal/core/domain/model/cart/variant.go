package cart

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// PlateVariant is the pricing tier selected for a menu item. Menu items carry
// up to three prices (base, half plate, full plate); the variant picks which
// one a cart line uses.
type PlateVariant int

const (
	// PlateVariantUnknown represents an invalid or undefined variant.
	PlateVariantUnknown PlateVariant = iota

	// BasePlate selects the item's base price.
	BasePlate

	// HalfPlate selects the half-plate price, falling back to the base price
	// when no half-plate price is configured.
	HalfPlate

	// FullPlate selects the full-plate price, falling back to the base price
	// when no full-plate price is configured.
	FullPlate
)

func getVariantStrings() map[PlateVariant]string {
	return map[PlateVariant]string{
		PlateVariantUnknown: "Unknown",
		BasePlate:           "Base",
		HalfPlate:           "HalfPlate",
		FullPlate:           "FullPlate",
	}
}

// Validate checks the variant is one of the defined plate tiers.
func (v PlateVariant) Validate() error {
	if v != BasePlate && v != HalfPlate && v != FullPlate {
		return errs.NewValueIsInvalidErrorWithCause("plateVariant",
			fmt.Errorf("%d is not a valid plate variant", v))
	}
	return nil
}

// String returns the human-readable name of the variant.
func (v PlateVariant) String() string {
	if s, ok := getVariantStrings()[v]; ok {
		return s
	}
	return "Unknown"
}

// PlateVariantFromString parses a variant name as used in requests and
// persistence. It accepts the String() forms.
func PlateVariantFromString(s string) (PlateVariant, error) {
	for v, name := range getVariantStrings() {
		if name == s && v != PlateVariantUnknown {
			return v, nil
		}
	}
	return PlateVariantUnknown, errs.NewValueIsInvalidErrorWithCause("plateVariant",
		fmt.Errorf("%q is not a valid plate variant", s))
}

// PlateVariantFromSelectors maps the wire-level half/full selector flags to a
// variant. Both flags unset selects the base price; both set is invalid.
func PlateVariantFromSelectors(isHalfPlate, isFullPlate bool) (PlateVariant, error) {
	switch {
	case isHalfPlate && isFullPlate:
		return PlateVariantUnknown, errs.NewValueIsInvalidErrorWithCause("plateVariant",
			fmt.Errorf("half plate and full plate selectors are mutually exclusive"))
	case isHalfPlate:
		return HalfPlate, nil
	case isFullPlate:
		return FullPlate, nil
	default:
		return BasePlate, nil
	}
}
