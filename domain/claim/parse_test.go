package claim

import (
	"errors"
	"testing"

	"veristat/domain/core"
)

func TestParseTestClaim(t *testing.T) {
	data := []byte(`{"test_type": "t", "df1": 20, "df2": null, "test_value": 2.10, "operator": "=", "reported_p_value": 0.030, "tail": "two"}`)
	c, err := ParseTestClaim(data)
	if err != nil {
		t.Fatalf("ParseTestClaim: %v", err)
	}
	if c.Type != TestT {
		t.Errorf("Type = %q", c.Type)
	}
	if c.DF1 == nil || *c.DF1 != 20 {
		t.Errorf("DF1 = %v", c.DF1)
	}
	if c.DF2 != nil {
		t.Errorf("DF2 = %v, want nil", *c.DF2)
	}
	// the literal keeps the trailing zero the float drops
	if c.ValueLiteral != "2.10" {
		t.Errorf("ValueLiteral = %q, want 2.10", c.ValueLiteral)
	}
	if c.ReportedP.Literal != "0.030" || c.ReportedP.Value != 0.03 {
		t.Errorf("ReportedP = %+v", c.ReportedP)
	}
	if c.Tail != TailTwo {
		t.Errorf("Tail = %q", c.Tail)
	}
}

func TestParseTestClaimDefaults(t *testing.T) {
	data := []byte(`{"test_type": "z", "test_value": 1.96, "reported_p_value": 0.05}`)
	c, err := ParseTestClaim(data)
	if err != nil {
		t.Fatalf("ParseTestClaim: %v", err)
	}
	if c.Operator != OpEquals {
		t.Errorf("Operator = %q, want =", c.Operator)
	}
	if c.Tail != TailTwo {
		t.Errorf("Tail = %q, want two", c.Tail)
	}
}

func TestParseTestClaimNS(t *testing.T) {
	data := []byte(`{"test_type": "t", "df1": 14, "test_value": 1.2, "operator": "=", "reported_p_value": "ns", "tail": "two"}`)
	c, err := ParseTestClaim(data)
	if err != nil {
		t.Fatalf("ParseTestClaim: %v", err)
	}
	if !c.ReportedP.NS {
		t.Errorf("ReportedP = %+v, want ns", c.ReportedP)
	}
}

func TestParseTestClaimErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
		want error
	}{
		{"unknown type", `{"test_type": "B", "test_value": 1.0, "reported_p_value": 0.05}`, core.ErrUnknownTestType},
		{"missing value", `{"test_type": "t", "df1": 10, "reported_p_value": 0.05}`, core.ErrMalformedClaim},
		{"bad operator", `{"test_type": "t", "df1": 10, "test_value": 1.0, "operator": "<=", "reported_p_value": 0.05}`, core.ErrInvalidOperator},
		{"bad tail", `{"test_type": "t", "df1": 10, "test_value": 1.0, "reported_p_value": 0.05, "tail": "both"}`, core.ErrInvalidTail},
		{"bad reported p", `{"test_type": "t", "df1": 10, "test_value": 1.0, "reported_p_value": "n.s.?"}`, core.ErrUnparseableReportedP},
		{"missing reported p", `{"test_type": "t", "df1": 10, "test_value": 1.0}`, core.ErrUnparseableReportedP},
		{"not json", `nope`, core.ErrMalformedClaim},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTestClaim([]byte(tc.data))
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
			if !core.IsSkip(err) {
				t.Errorf("err %v should be a recoverable skip", err)
			}
		})
	}
}

func TestParseTestClaimTailIrrelevantForChi2(t *testing.T) {
	// chi2 is inherently one-tailed; a junk tail must not reject the claim.
	data := []byte(`{"test_type": "chi2", "df1": 4, "test_value": 7.15, "reported_p_value": 0.128, "tail": "whatever"}`)
	if _, err := ParseTestClaim(data); err != nil {
		t.Fatalf("ParseTestClaim: %v", err)
	}
}

func TestParseMeanClaim(t *testing.T) {
	data := []byte(`{"reported_mean": "3.840", "sample_size": 27, "discrete_reasoning": "participant counts"}`)
	c, err := ParseMeanClaim(data)
	if err != nil {
		t.Fatalf("ParseMeanClaim: %v", err)
	}
	if c.MeanLiteral != "3.840" {
		t.Errorf("MeanLiteral = %q", c.MeanLiteral)
	}
	if c.Decimals() != 3 {
		t.Errorf("Decimals = %d, want 3", c.Decimals())
	}
	if c.SampleSize != 27 {
		t.Errorf("SampleSize = %d", c.SampleSize)
	}
}

func TestParseMeanClaimNumericMean(t *testing.T) {
	// extractors sometimes emit the mean unquoted; the JSON token is still
	// the printed literal
	data := []byte(`{"reported_mean": 3.84, "sample_size": 27}`)
	c, err := ParseMeanClaim(data)
	if err != nil {
		t.Fatalf("ParseMeanClaim: %v", err)
	}
	if c.MeanLiteral != "3.84" {
		t.Errorf("MeanLiteral = %q", c.MeanLiteral)
	}
}

func TestParseMeanClaimErrors(t *testing.T) {
	if _, err := ParseMeanClaim([]byte(`{"reported_mean": "3.84", "sample_size": 0}`)); !errors.Is(err, core.ErrNonPositiveSample) {
		t.Errorf("zero sample size: %v", err)
	}
	if _, err := ParseMeanClaim([]byte(`{"reported_mean": "3.84", "sample_size": -2}`)); !errors.Is(err, core.ErrNonPositiveSample) {
		t.Errorf("negative sample size: %v", err)
	}
	if _, err := ParseMeanClaim([]byte(`{"sample_size": 12}`)); !errors.Is(err, core.ErrMalformedClaim) {
		t.Errorf("missing mean: %v", err)
	}
	if _, err := ParseMeanClaim([]byte(`{"reported_mean": "lots", "sample_size": 12}`)); !errors.Is(err, core.ErrMalformedClaim) {
		t.Errorf("non-numeric mean: %v", err)
	}
}

func TestDecodeTestClaimsCollectsSkips(t *testing.T) {
	data := []byte(`[
		{"test_type": "t", "df1": 20, "test_value": 2.1, "operator": "=", "reported_p_value": 0.05, "tail": "two"},
		{"test_type": "B", "test_value": 1.0, "reported_p_value": 0.05},
		{"test_type": "z", "test_value": 1.96, "operator": "=", "reported_p_value": 0.05, "tail": "two"}
	]`)
	claims, skips := DecodeTestClaims(data)
	if len(claims) != 2 {
		t.Fatalf("claims = %d, want 2", len(claims))
	}
	if len(skips) != 1 {
		t.Fatalf("skips = %d, want 1", len(skips))
	}
	if !errors.Is(skips[0], core.ErrUnknownTestType) {
		t.Errorf("skip = %v", skips[0])
	}
}

func TestDedupeAdjacent(t *testing.T) {
	a := MeanClaim{MeanLiteral: "3.84", SampleSize: 27}
	b := MeanClaim{MeanLiteral: "2.50", SampleSize: 10}

	got := DedupeAdjacent([]MeanClaim{a, a, b, a})
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3 (adjacent duplicate dropped, distant kept)", len(got))
	}
	if !got[0].Equal(a) || !got[1].Equal(b) || !got[2].Equal(a) {
		t.Errorf("unexpected order: %+v", got)
	}

	if got := DedupeAdjacent([]MeanClaim(nil)); got != nil {
		t.Errorf("nil in, nil out; got %+v", got)
	}
}
