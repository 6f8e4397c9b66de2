package units

import "fmt"

// No unit-system conversion is performed anywhere in this package:
// "cups" never reconciles with "liters". Two quantities are comparable
// only when their unit strings are identical.

// Sufficient reports whether the available quantity covers the required one.
func Sufficient(required, available float64) bool {
	return available >= required
}

// Shortfall returns how much is missing. Never negative.
func Shortfall(required, available float64) float64 {
	if d := required - available; d > 0 {
		return d
	}
	return 0
}

// Debit returns the stock left after consuming the required amount,
// floored at zero: inventory quantity never goes negative.
func Debit(current, required float64) float64 {
	if q := current - required; q > 0 {
		return q
	}
	return 0
}

// Combinable reports whether two quantities may be compared or summed.
func Combinable(a, b string) bool {
	return a == b
}

// CombinableLoose is Combinable, except a blank incoming unit combines
// with anything (a purchase recorded without a unit merges into whatever
// unit is already stocked).
func CombinableLoose(incoming, existing string) bool {
	return incoming == "" || incoming == existing
}

// MismatchReason builds the reason string surfaced to callers when two
// units cannot be combined. It is a distinct failure mode, never to be
// conflated with "insufficient quantity".
func MismatchReason(incoming, existing string) string {
	return fmt.Sprintf("Unit mismatch: have %q, need %q", existing, incoming)
}
