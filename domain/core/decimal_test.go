package core

import (
	"math"
	"testing"
)

func TestDecimalPlaces(t *testing.T) {
	cases := []struct {
		literal string
		want    int
	}{
		{"3.84", 2},
		{"3.840", 3},
		{"0.023", 3},
		{"2.1", 1},
		{"17", 0},
		{"0.05", 2},
		{"104", 0},
		{"1.", 0},
	}
	for _, tc := range cases {
		if got := DecimalPlaces(tc.literal); got != tc.want {
			t.Errorf("DecimalPlaces(%q) = %d, want %d", tc.literal, got, tc.want)
		}
	}
}

func TestRoundingIntervalFloor(t *testing.T) {
	// 2.1 printed with one decimal is widened to two under the APA floor.
	iv := RoundingInterval(2.1, "2.1", DefaultStatisticPrecision)
	if math.Abs(iv.Lower-2.095) > 1e-12 {
		t.Errorf("Lower = %v, want 2.095", iv.Lower)
	}
	if iv.Upper >= 2.105 {
		t.Errorf("Upper = %v, want just below 2.105", iv.Upper)
	}
	if 2.105-iv.Upper > 1e-9 {
		t.Errorf("Upper = %v, guard too large", iv.Upper)
	}
}

func TestRoundingIntervalLiteralPrecision(t *testing.T) {
	iv := RoundingInterval(0.023, "0.023", 0)
	if math.Abs(iv.Lower-0.0225) > 1e-12 {
		t.Errorf("Lower = %v, want 0.0225", iv.Lower)
	}
	if iv.Upper >= 0.0235 {
		t.Errorf("Upper = %v, want just below 0.0235", iv.Upper)
	}
}

func TestRoundingIntervalIntegerLiteral(t *testing.T) {
	// A reported p-value of 0 with no decimal point keeps zero places.
	iv := RoundingInterval(0, "0", 0)
	if iv.Lower != -0.5 {
		t.Errorf("Lower = %v, want -0.5", iv.Lower)
	}
	if iv.Upper >= 0.5 || iv.Upper < 0.49 {
		t.Errorf("Upper = %v, want just below 0.5", iv.Upper)
	}
}

func TestFloatLiteral(t *testing.T) {
	if got := FloatLiteral(2.1); got != "2.1" {
		t.Errorf("FloatLiteral(2.1) = %q", got)
	}
	if got := FloatLiteral(7.15); got != "7.15" {
		t.Errorf("FloatLiteral(7.15) = %q", got)
	}
	if got := FloatLiteral(30); got != "30" {
		t.Errorf("FloatLiteral(30) = %q", got)
	}
}
