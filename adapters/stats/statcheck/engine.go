// Package statcheck recomputes the p-value range consistent with a reported
// test statistic and compares it against the reported p-value. One engine
// covers all test families; the Huynh-Feldt correction is an optional claim
// field, not a separate code path.
package statcheck

import (
	"fmt"
	"math"

	"veristat/adapters/stats/tails"
	"veristat/domain/claim"
	"veristat/domain/core"
	"veristat/domain/verdict"
)

const (
	noteReportedNS    = "Reported as ns"
	noteZeroP         = "A p-value is never exactly 0."
	noteFNeedsTwoDF   = "F-test requires two DF. Only one DF provided."
	noteGross         = "Gross inconsistency: reported p-value and recalculated p-value differ in significance."
	notePlainMismatch = "Recalculated p-value does not match the reported p-value."
	noteOneTailed     = "Consistent for one-tailed, inconsistent for two-tailed"
)

// Engine evaluates test claims against a fixed significance level.
// Evaluation is a pure function of one claim plus the level, so an Engine is
// safe for concurrent use.
type Engine struct {
	alpha float64
}

// DefaultAlpha is the conventional significance level.
const DefaultAlpha = 0.05

// New creates an engine. Non-positive levels fall back to DefaultAlpha.
func New(alpha float64) *Engine {
	if alpha <= 0 {
		alpha = DefaultAlpha
	}
	return &Engine{alpha: alpha}
}

// Alpha returns the configured significance level.
func (e *Engine) Alpha() float64 { return e.alpha }

// Evaluate checks one claim. A returned error is always a recoverable skip
// (core.IsSkip): the claim lacked data or used values outside the closed
// enumerations, which is an input-quality gap, not an inconsistency.
func (e *Engine) Evaluate(c claim.TestClaim) (verdict.Verdict, error) {
	if c.ReportedP.NS {
		return verdict.Verdict{
			Consistent: verdict.NotApplicable,
			Statistic:  formatStatisticNS(c),
			ReportedP:  "ns",
			Notes:      []string{noteReportedNS},
		}, nil
	}

	// An F-test with only its numerator df is reported, not skipped: the
	// reader should see that the claim was undecidable.
	if c.Type == claim.TestF && c.DF1 != nil && c.DF2 == nil {
		return verdict.Verdict{
			Consistent: verdict.CannotDetermine,
			Statistic:  formatStatistic(c),
			ReportedP:  formatReportedP(c),
			Notes:      []string{noteFNeedsTwoDF},
		}, nil
	}

	rng, err := e.validRange(c, c.Tail)
	if err != nil {
		return verdict.Verdict{}, err
	}

	consistent := compareP(rng, c.Operator, c.ReportedP)

	var notes []string
	if c.ReportedP.Value == 0 {
		notes = append(notes, noteZeroP)
		consistent = false
	}

	if !consistent {
		if e.grosslyInconsistent(c, rng) {
			notes = append(notes, noteGross)
		} else {
			notes = append(notes, notePlainMismatch)
		}
		// One-tailed rescue: a two-tailed claim that fails may pass under
		// the one-tailed convention. The verdict stays inconsistent for
		// the stated tail; the note points at the other reading.
		if c.Tail == claim.TailTwo && rescuableFamily(c.Type) {
			if oneTailed, err := e.validRange(c, claim.TailOne); err == nil &&
				compareP(oneTailed, c.Operator, c.ReportedP) {
				notes = append(notes, noteOneTailed)
			}
		}
	}

	v := verdict.Verdict{
		Consistent: verdict.Inconsistent,
		Statistic:  formatStatistic(c),
		ReportedP:  formatReportedP(c),
		ValidRange: &rng,
		Notes:      notes,
	}
	if consistent {
		v.Consistent = verdict.Consistent
	}
	if c.HuynhFeldt() {
		v.Notes = append(v.Notes, fmt.Sprintf(
			"Degrees of freedom were adjusted due to a Huynh-Feldt correction. Epsilon = %s",
			core.FloatLiteral(*c.Epsilon)))
	}
	return v, nil
}

// validRange computes the p-value range consistent with the printed
// statistic, under the given tail assumption.
func (e *Engine) validRange(c claim.TestClaim, tail claim.Tail) (verdict.PRange, error) {
	iv := core.RoundingInterval(c.Value, c.ValueLiteral, core.DefaultStatisticPrecision)
	var epsilon *float64
	if c.HuynhFeldt() {
		epsilon = c.Epsilon
	}
	return tails.Probabilities(c.Type, c.DF1, c.DF2, iv, epsilon, tail)
}

// compareP decides consistency of the reported value against the
// recalculated range under the reported operator. The `>` branch returns an
// explicit false when the upper bound does not exceed the reported value.
func compareP(rng verdict.PRange, op claim.Operator, reported claim.ReportedP) bool {
	switch op {
	case claim.OpLessThan:
		return rng.Lower < reported.Value
	case claim.OpGreaterThan:
		return rng.Upper > reported.Value
	case claim.OpEquals:
		// The reported value is itself rounded; consistency means its own
		// rounding interval overlaps the recalculated range. No precision
		// floor here: "p = .05" is as coarse as it prints.
		iv := core.RoundingInterval(reported.Value, reported.Literal, 0)
		return iv.Upper >= rng.Lower && iv.Lower <= rng.Upper
	}
	return false
}

// grosslyInconsistent reports whether the reported and recalculated sides
// disagree on significance at the engine's level. Undetermined recalculated
// significance (the range straddles the level) is never gross.
func (e *Engine) grosslyInconsistent(c claim.TestClaim, rng verdict.PRange) bool {
	recalc, determinate := recalculatedSignificant(rng, e.alpha)
	if !determinate {
		return false
	}
	return reportedSignificant(c.Operator, c.ReportedP.Value, e.alpha) != recalc
}

// reportedSignificant classifies the reported side: "=" and "<" claims are
// significant at or below the level, while "p > x" only claims significance
// when x is already below the level.
func reportedSignificant(op claim.Operator, reported, alpha float64) bool {
	switch op {
	case claim.OpEquals, claim.OpLessThan:
		return reported <= alpha
	case claim.OpGreaterThan:
		return reported < alpha
	}
	return false
}

// recalculatedSignificant classifies the recalculated range; the second
// return is false when the range straddles the level.
func recalculatedSignificant(rng verdict.PRange, alpha float64) (significant, determinate bool) {
	if rng.Upper < alpha {
		return true, true
	}
	if rng.Lower > alpha {
		return false, true
	}
	return false, false
}

func rescuableFamily(tt claim.TestType) bool {
	return tt == claim.TestT || tt == claim.TestZ || tt == claim.TestR
}

// formatStatistic renders the canonical APA form, e.g. "t(20) = 2.10" or
// "f(2.25, 11.25) = 4.50" after a Huynh-Feldt correction.
func formatStatistic(c claim.TestClaim) string {
	if c.HuynhFeldt() {
		d1 := roundTo2(*c.Epsilon * *c.DF1)
		d2 := roundTo2(*c.Epsilon * *c.DF2)
		return fmt.Sprintf("%s(%s, %s) = %.2f", c.Type, core.FloatLiteral(d1), core.FloatLiteral(d2), c.Value)
	}
	if c.DF1 != nil {
		return fmt.Sprintf("%s(%s) = %.2f", c.Type, formatDF(c), c.Value)
	}
	return fmt.Sprintf("%s = %.2f", c.Type, c.Value)
}

// formatStatisticNS renders the APA form for an ns claim, keeping the
// statistic at its reported precision.
func formatStatisticNS(c claim.TestClaim) string {
	if c.DF1 != nil {
		return fmt.Sprintf("%s(%s) = %s, ns", c.Type, formatDF(c), c.ValueLiteral)
	}
	return fmt.Sprintf("%s = %s, ns", c.Type, c.ValueLiteral)
}

func formatDF(c claim.TestClaim) string {
	if c.DF2 != nil {
		return fmt.Sprintf("%s, %s", core.FloatLiteral(*c.DF1), core.FloatLiteral(*c.DF2))
	}
	return core.FloatLiteral(*c.DF1)
}

func formatReportedP(c claim.TestClaim) string {
	if c.ReportedP.NS {
		return "ns"
	}
	return fmt.Sprintf("%s %s", c.Operator, c.ReportedP.Literal)
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
