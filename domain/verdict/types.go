// Package verdict holds the immutable result records the checking engines
// emit, one per claim.
package verdict

import (
	"fmt"
	"strings"
)

// Consistency is the terminal state of a checked claim.
type Consistency string

const (
	Consistent      Consistency = "Yes"
	Inconsistent    Consistency = "No"
	CannotDetermine Consistency = "Cannot determine"
	NotApplicable   Consistency = "N/A"
)

// PRange is the recalculated valid p-value range, lower <= upper.
type PRange struct {
	Lower float64
	Upper float64
}

func (r PRange) String() string {
	return fmt.Sprintf("%.5f to %.5f", r.Lower, r.Upper)
}

// Verdict is the outcome of checking one claim. Produced once, never
// mutated; the consensus aggregator compares whole verdict lists by their
// canonical row form.
type Verdict struct {
	Consistent Consistency
	// Statistic is the canonical "TEST(df) = value" rendering of the claim.
	Statistic string
	// ReportedP is the operator plus reported value, or "ns".
	ReportedP string
	// ValidRange is absent when no range was computable (ns shortcut,
	// F-test with a single df).
	ValidRange *PRange
	Notes      []string
}

// GRIM verdicts reuse the same row shape with mean/sample-size columns.
type GRIMVerdict struct {
	Consistent Consistency
	MeanText   string
	SampleSize int
	Decimals   int
	Reasoning  string
}

// Row is one line of the tabular output shared by both claim kinds. The
// column headers differ per kind but the shape is fixed, which keeps the
// consensus serialization flat.
type Row struct {
	Consistent string
	Col2       string
	Col3       string
	Col4       string
	Notes      string
}

// Fields returns the row as an ordered string slice for tabular writers.
func (r Row) Fields() []string {
	return []string{r.Consistent, r.Col2, r.Col3, r.Col4, r.Notes}
}

// StatcheckHeader is the column set for statcheck result tables.
var StatcheckHeader = Row{
	Consistent: "Consistent",
	Col2:       "APA Reporting",
	Col3:       "Reported P-value",
	Col4:       "Valid P-value Range",
	Notes:      "Notes",
}

// GRIMHeader is the column set for GRIM result tables.
var GRIMHeader = Row{
	Consistent: "Consistent",
	Col2:       "Reported Mean",
	Col3:       "Sample Size",
	Col4:       "Decimals",
	Notes:      "Reasoning",
}

// Row converts a statcheck verdict to its tabular form.
func (v Verdict) Row() Row {
	rangeText := "N/A"
	if v.ValidRange != nil {
		rangeText = v.ValidRange.String()
	}
	notes := "-"
	if len(v.Notes) > 0 {
		notes = strings.Join(v.Notes, " ")
	}
	return Row{
		Consistent: string(v.Consistent),
		Col2:       v.Statistic,
		Col3:       v.ReportedP,
		Col4:       rangeText,
		Notes:      notes,
	}
}

// Row converts a GRIM verdict to its tabular form.
func (v GRIMVerdict) Row() Row {
	notes := v.Reasoning
	if notes == "" {
		notes = "-"
	}
	return Row{
		Consistent: string(v.Consistent),
		Col2:       v.MeanText,
		Col3:       fmt.Sprintf("%d", v.SampleSize),
		Col4:       fmt.Sprintf("%d", v.Decimals),
		Notes:      notes,
	}
}
