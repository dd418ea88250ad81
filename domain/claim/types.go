// Package claim defines the structured claim records the checking engines
// consume. Claims arrive as loosely-typed JSON from the extraction
// collaborator and are validated once here, at the boundary; the engines
// never see a malformed record.
package claim

import (
	"math"

	"veristat/domain/core"
)

// TestType is the statistical test family of a reported result.
type TestType string

const (
	TestR    TestType = "r"
	TestT    TestType = "t"
	TestF    TestType = "f"
	TestChi2 TestType = "chi2"
	TestZ    TestType = "z"
)

// Valid reports whether the test type is in the closed enumeration.
func (t TestType) Valid() bool {
	switch t {
	case TestR, TestT, TestF, TestChi2, TestZ:
		return true
	}
	return false
}

// OneTailedOnly reports whether the family is inherently one-tailed, so the
// tail parameter is ignored for it.
func (t TestType) OneTailedOnly() bool {
	return t == TestChi2 || t == TestF
}

// Operator is the comparison operator a p-value was reported with.
type Operator string

const (
	OpEquals      Operator = "="
	OpLessThan    Operator = "<"
	OpGreaterThan Operator = ">"
)

// Valid reports whether the operator is in the closed enumeration.
func (o Operator) Valid() bool {
	return o == OpEquals || o == OpLessThan || o == OpGreaterThan
}

// Tail says whether a p-value covers one or both ends of the sampling
// distribution.
type Tail string

const (
	TailOne Tail = "one"
	TailTwo Tail = "two"
)

// Valid reports whether the tail is in the closed enumeration.
func (t Tail) Valid() bool {
	return t == TailOne || t == TailTwo
}

// ReportedP is a reported p-value: either a numeric value with its printed
// literal, or the "ns" (reported as not significant) sentinel.
type ReportedP struct {
	NS      bool
	Value   float64
	Literal string
}

// NotSignificant is the "ns" sentinel.
func NotSignificant() ReportedP {
	return ReportedP{NS: true}
}

// MeanClaim is a reported mean with its sample size, checked by the GRIM
// test. MeanLiteral preserves trailing zeros; the decimal count always comes
// from the literal.
type MeanClaim struct {
	MeanLiteral string
	Mean        float64
	SampleSize  int
	Reasoning   string
}

// Decimals is the number of decimal places in the reported mean.
func (m MeanClaim) Decimals() int {
	return core.DecimalPlaces(m.MeanLiteral)
}

// GRIMApplicable reports whether the mean is GRIM-decidable: with d decimals
// the test only discriminates when the sample size is at most 10^d.
func (m MeanClaim) GRIMApplicable() bool {
	return float64(m.SampleSize) <= math.Pow(10, float64(m.Decimals()))
}

// Equal compares two mean claims field-for-field.
func (m MeanClaim) Equal(o MeanClaim) bool {
	return m.MeanLiteral == o.MeanLiteral &&
		m.SampleSize == o.SampleSize &&
		m.Reasoning == o.Reasoning
}

// TestClaim is a reported test statistic with its degrees of freedom and
// reported p-value, checked by the statcheck recalculation engine.
type TestClaim struct {
	Type         TestType
	DF1          *float64
	DF2          *float64
	Value        float64
	ValueLiteral string
	Operator     Operator
	ReportedP    ReportedP
	Tail         Tail
	// Epsilon is the Huynh-Feldt sphericity correction factor. Only
	// meaningful for F-tests with integer degrees of freedom.
	Epsilon *float64
}

// HuynhFeldt reports whether a Huynh-Feldt correction applies: an F-test
// with an epsilon and both degrees of freedom integral.
func (c TestClaim) HuynhFeldt() bool {
	return c.Type == TestF && c.Epsilon != nil &&
		c.DF1 != nil && isIntegral(*c.DF1) &&
		c.DF2 != nil && isIntegral(*c.DF2)
}

// Equal compares two test claims field-for-field.
func (c TestClaim) Equal(o TestClaim) bool {
	return c.Type == o.Type &&
		floatPtrEqual(c.DF1, o.DF1) &&
		floatPtrEqual(c.DF2, o.DF2) &&
		c.Value == o.Value &&
		c.ValueLiteral == o.ValueLiteral &&
		c.Operator == o.Operator &&
		c.ReportedP == o.ReportedP &&
		c.Tail == o.Tail &&
		floatPtrEqual(c.Epsilon, o.Epsilon)
}

func isIntegral(v float64) bool {
	return v == math.Trunc(v)
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// DedupeAdjacent drops claims identical to their immediate predecessor.
// Overlapping text windows make the extractor see the same claim twice in a
// row; non-adjacent duplicates are genuine repeats and are kept.
func DedupeAdjacent[T interface{ Equal(T) bool }](in []T) []T {
	if len(in) == 0 {
		return in
	}
	out := in[:1]
	for _, c := range in[1:] {
		if !c.Equal(out[len(out)-1]) {
			out = append(out, c)
		}
	}
	return out
}
