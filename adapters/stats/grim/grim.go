// Package grim implements the Granularity-Related Inconsistency of Means
// test: a mean reported at d decimals over n integer observations must be
// reproducible as some integer total divided by n.
package grim

import (
	"math"
	"strconv"

	"veristat/domain/claim"
	"veristat/domain/verdict"
)

// Check reports whether the reported mean is achievable as an integer sum
// divided by the sample size at the literal's decimal precision. The two
// candidate sums are floor(mean*n) and its successor; the claim passes when
// either one rounds back to the reported mean.
func Check(meanLiteral string, sampleSize int) bool {
	mean, err := strconv.ParseFloat(meanLiteral, 64)
	if err != nil || sampleSize <= 0 {
		return false
	}
	decimals := claim.MeanClaim{MeanLiteral: meanLiteral}.Decimals()
	// Canonical rendering at the reported precision; candidates are
	// compared in the same form so binary representation noise cancels.
	target := strconv.FormatFloat(mean, 'f', decimals, 64)

	total := mean * float64(sampleSize)
	low := math.Floor(total)

	return roundsTo(low/float64(sampleSize), decimals, target) ||
		roundsTo((low+1)/float64(sampleSize), decimals, target)
}

// Evaluate runs the GRIM test on a validated claim. Callers gate on
// GRIMApplicable; an inapplicable claim is reported, not checked.
func Evaluate(c claim.MeanClaim) verdict.GRIMVerdict {
	consistent := verdict.Inconsistent
	if Check(c.MeanLiteral, c.SampleSize) {
		consistent = verdict.Consistent
	}
	return verdict.GRIMVerdict{
		Consistent: consistent,
		MeanText:   c.MeanLiteral,
		SampleSize: c.SampleSize,
		Decimals:   c.Decimals(),
		Reasoning:  c.Reasoning,
	}
}

func roundsTo(candidate float64, decimals int, target string) bool {
	return strconv.FormatFloat(candidate, 'f', decimals, 64) == target
}
