// Package tails maps a test family, degrees of freedom and a statistic
// rounding interval to the range of one- or two-tailed probabilities
// consistent with the printed statistic.
package tails

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"veristat/domain/claim"
	"veristat/domain/core"
	"veristat/domain/verdict"
)

// Probabilities evaluates the survival probability of the test family at
// both endpoints of the statistic's rounding interval and returns them
// ordered lower <= upper. Probability falls as the statistic's magnitude
// grows, so the numerically lower endpoint yields the larger probability;
// callers must not assume input order equals output order.
//
// epsilon, when non-nil, is the Huynh-Feldt correction and scales both
// F-test degrees of freedom before evaluation.
func Probabilities(tt claim.TestType, df1, df2 *float64, iv core.Interval, epsilon *float64, tail claim.Tail) (verdict.PRange, error) {
	var pLo, pHi float64

	switch tt {
	case claim.TestR:
		if df1 == nil {
			return verdict.PRange{}, core.NewMissingParameterError(string(tt))
		}
		// Convert each correlation endpoint to a t statistic first.
		pLo = studentSurvival(math.Abs(rToT(iv.Lower, *df1)), *df1)
		pHi = studentSurvival(math.Abs(rToT(iv.Upper, *df1)), *df1)

	case claim.TestT:
		if df1 == nil {
			return verdict.PRange{}, core.NewMissingParameterError(string(tt))
		}
		pLo = studentSurvival(math.Abs(iv.Lower), *df1)
		pHi = studentSurvival(math.Abs(iv.Upper), *df1)

	case claim.TestF:
		if df1 == nil || df2 == nil {
			return verdict.PRange{}, core.NewMissingParameterError(string(tt))
		}
		d1, d2 := *df1, *df2
		if epsilon != nil {
			d1 *= *epsilon
			d2 *= *epsilon
		}
		pLo = fisherSurvival(iv.Lower, d1, d2)
		pHi = fisherSurvival(iv.Upper, d1, d2)

	case claim.TestChi2:
		if df1 == nil {
			return verdict.PRange{}, core.NewMissingParameterError(string(tt))
		}
		pLo = chiSquareSurvival(iv.Lower, *df1)
		pHi = chiSquareSurvival(iv.Upper, *df1)

	case claim.TestZ:
		pLo = normalSurvival(math.Abs(iv.Lower))
		pHi = normalSurvival(math.Abs(iv.Upper))

	default:
		return verdict.PRange{}, core.NewUnknownTestTypeError(string(tt))
	}

	// chi2 and F are inherently one-tailed; everything else doubles under
	// the two-tailed convention, capped at 1.
	if !tt.OneTailedOnly() {
		switch tail {
		case claim.TailTwo:
			pLo = math.Min(pLo*2, 1)
			pHi = math.Min(pHi*2, 1)
		case claim.TailOne:
		default:
			return verdict.PRange{}, core.NewInvalidTailError(string(tail))
		}
	}

	return verdict.PRange{
		Lower: math.Min(pLo, pHi),
		Upper: math.Max(pLo, pHi),
	}, nil
}

// rToT converts a correlation coefficient to its t statistic with df
// degrees of freedom.
func rToT(r, df float64) float64 {
	return r * math.Sqrt(df) / math.Sqrt(1-r*r)
}

func studentSurvival(t, df float64) float64 {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 1 - dist.CDF(t)
}

func fisherSurvival(f, df1, df2 float64) float64 {
	dist := distuv.F{D1: df1, D2: df2}
	return 1 - dist.CDF(f)
}

func chiSquareSurvival(x, df float64) float64 {
	dist := distuv.ChiSquared{K: df}
	return 1 - dist.CDF(x)
}

func normalSurvival(z float64) float64 {
	return 1 - distuv.UnitNormal.CDF(z)
}
