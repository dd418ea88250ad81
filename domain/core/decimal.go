package core

import (
	"math"
	"strconv"
	"strings"
)

// upperGuard keeps the upper rounding bound from round-tripping to the next
// representable rounded value.
const upperGuard = 1e-10

// DefaultStatisticPrecision is the APA floor for printed test statistics:
// values reported with 0 or 1 decimals are treated as having 2.
const DefaultStatisticPrecision = 2

// Interval is a half-unit-in-last-place rounding interval: the set of true
// values that would print as the reported value at its precision.
type Interval struct {
	Lower float64
	Upper float64
}

// DecimalPlaces counts digits after the decimal point in a literal,
// including trailing zeros. Literals without a point have zero. The count
// must come from the literal, never from the parsed float, because floats
// lose trailing zeros.
func DecimalPlaces(literal string) int {
	if i := strings.IndexByte(literal, '.'); i >= 0 {
		return len(literal) - i - 1
	}
	return 0
}

// FloatLiteral renders a float the way it would minimally print, for claims
// that arrive without their original literal.
func FloatLiteral(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RoundingInterval computes the interval of true values that round to value
// when printed with the precision of literal, at minimum minPlaces decimals.
func RoundingInterval(value float64, literal string, minPlaces int) Interval {
	places := DecimalPlaces(literal)
	if places < minPlaces {
		places = minPlaces
	}
	increment := 0.5 * math.Pow(10, -float64(places))
	return Interval{
		Lower: value - increment,
		Upper: value + increment - upperGuard,
	}
}
