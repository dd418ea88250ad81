package claim

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"veristat/domain/core"
)

// rawTestClaim mirrors the record schema the extraction collaborator emits
// for statcheck claims. json.Number keeps the printed precision of the test
// statistic, which the rounding-interval arithmetic depends on.
type rawTestClaim struct {
	TestType       string       `json:"test_type"`
	DF1            *json.Number `json:"df1"`
	DF2            *json.Number `json:"df2"`
	TestValue      *json.Number `json:"test_value"`
	Operator       string       `json:"operator"`
	ReportedPValue any          `json:"reported_p_value"`
	Tail           string       `json:"tail"`
	Epsilon        *json.Number `json:"epsilon"`
}

// rawMeanClaim mirrors the record schema for GRIM claims.
type rawMeanClaim struct {
	ReportedMean      any    `json:"reported_mean"`
	SampleSize        *int   `json:"sample_size"`
	DiscreteReasoning string `json:"discrete_reasoning"`
}

// ParseTestClaim validates one loose statcheck record into a TestClaim.
func ParseTestClaim(data []byte) (TestClaim, error) {
	var raw rawTestClaim
	if err := decodeStrictNumbers(data, &raw); err != nil {
		return TestClaim{}, core.NewMalformedClaimError("record", err.Error())
	}

	tt := TestType(strings.ToLower(strings.TrimSpace(raw.TestType)))
	if !tt.Valid() {
		return TestClaim{}, core.NewUnknownTestTypeError(raw.TestType)
	}

	if raw.TestValue == nil {
		return TestClaim{}, core.NewMalformedClaimError("test_value", "missing")
	}
	value, err := raw.TestValue.Float64()
	if err != nil {
		return TestClaim{}, core.NewMalformedClaimError("test_value", err.Error())
	}

	op := Operator(strings.TrimSpace(raw.Operator))
	if op == "" {
		op = OpEquals
	}
	if !op.Valid() {
		return TestClaim{}, fmt.Errorf("%w: %q", core.ErrInvalidOperator, raw.Operator)
	}

	reported, err := parseReportedP(raw.ReportedPValue)
	if err != nil {
		return TestClaim{}, err
	}

	// The extraction prompt defaults to two-tailed when the text is silent.
	tail := Tail(strings.ToLower(strings.TrimSpace(raw.Tail)))
	if tail == "" {
		tail = TailTwo
	}
	if !tail.Valid() && !tt.OneTailedOnly() {
		return TestClaim{}, core.NewInvalidTailError(raw.Tail)
	}

	c := TestClaim{
		Type:         tt,
		Value:        value,
		ValueLiteral: raw.TestValue.String(),
		Operator:     op,
		ReportedP:    reported,
		Tail:         tail,
	}
	if c.DF1, err = optionalFloat(raw.DF1, "df1"); err != nil {
		return TestClaim{}, err
	}
	if c.DF2, err = optionalFloat(raw.DF2, "df2"); err != nil {
		return TestClaim{}, err
	}
	if c.Epsilon, err = optionalFloat(raw.Epsilon, "epsilon"); err != nil {
		return TestClaim{}, err
	}
	return c, nil
}

// ParseMeanClaim validates one loose GRIM record into a MeanClaim.
func ParseMeanClaim(data []byte) (MeanClaim, error) {
	var raw rawMeanClaim
	if err := decodeStrictNumbers(data, &raw); err != nil {
		return MeanClaim{}, core.NewMalformedClaimError("record", err.Error())
	}

	var literal string
	switch v := raw.ReportedMean.(type) {
	case string:
		literal = strings.TrimSpace(v)
	case json.Number:
		literal = v.String()
	default:
		return MeanClaim{}, core.NewMalformedClaimError("reported_mean", "missing or non-numeric")
	}
	mean, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return MeanClaim{}, core.NewMalformedClaimError("reported_mean", fmt.Sprintf("%q is not numeric", literal))
	}

	if raw.SampleSize == nil {
		return MeanClaim{}, core.NewMalformedClaimError("sample_size", "missing")
	}
	if *raw.SampleSize <= 0 {
		return MeanClaim{}, fmt.Errorf("%w: got %d", core.ErrNonPositiveSample, *raw.SampleSize)
	}

	return MeanClaim{
		MeanLiteral: literal,
		Mean:        mean,
		SampleSize:  *raw.SampleSize,
		Reasoning:   raw.DiscreteReasoning,
	}, nil
}

// DecodeTestClaims parses a JSON array of statcheck records, collecting the
// valid claims and a skip error for each malformed one.
func DecodeTestClaims(data []byte) ([]TestClaim, []error) {
	records, err := splitArray(data)
	if err != nil {
		return nil, []error{err}
	}
	var claims []TestClaim
	var skips []error
	for _, rec := range records {
		c, err := ParseTestClaim(rec)
		if err != nil {
			skips = append(skips, err)
			continue
		}
		claims = append(claims, c)
	}
	return claims, skips
}

// DecodeMeanClaims parses a JSON array of GRIM records.
func DecodeMeanClaims(data []byte) ([]MeanClaim, []error) {
	records, err := splitArray(data)
	if err != nil {
		return nil, []error{err}
	}
	var claims []MeanClaim
	var skips []error
	for _, rec := range records {
		c, err := ParseMeanClaim(rec)
		if err != nil {
			skips = append(skips, err)
			continue
		}
		claims = append(claims, c)
	}
	return claims, skips
}

func parseReportedP(v any) (ReportedP, error) {
	switch p := v.(type) {
	case json.Number:
		f, err := p.Float64()
		if err != nil {
			return ReportedP{}, fmt.Errorf("%w: %q", core.ErrUnparseableReportedP, p.String())
		}
		return ReportedP{Value: f, Literal: p.String()}, nil
	case string:
		s := strings.ToLower(strings.TrimSpace(p))
		if s == "ns" {
			return NotSignificant(), nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return ReportedP{Value: f, Literal: s}, nil
		}
		return ReportedP{}, fmt.Errorf("%w: %q", core.ErrUnparseableReportedP, p)
	default:
		return ReportedP{}, fmt.Errorf("%w: missing", core.ErrUnparseableReportedP)
	}
}

func optionalFloat(n *json.Number, field string) (*float64, error) {
	if n == nil {
		return nil, nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, core.NewMalformedClaimError(field, err.Error())
	}
	return &f, nil
}

func decodeStrictNumbers(data []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(out)
}

func splitArray(data []byte) ([]json.RawMessage, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, core.NewMalformedClaimError("payload", "not a JSON array")
	}
	return records, nil
}
