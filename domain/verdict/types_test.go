package verdict

import "testing"

func TestVerdictRow(t *testing.T) {
	rng := PRange{Lower: 0.04823, Upper: 0.04907}
	v := Verdict{
		Consistent: Inconsistent,
		Statistic:  "t(20) = 2.10",
		ReportedP:  "= 0.08",
		ValidRange: &rng,
		Notes:      []string{"first", "second"},
	}

	row := v.Row()
	if row.Consistent != "No" {
		t.Errorf("Consistent = %q, want %q", row.Consistent, "No")
	}
	if row.Col4 != "0.04823 to 0.04907" {
		t.Errorf("range column = %q", row.Col4)
	}
	if row.Notes != "first second" {
		t.Errorf("notes = %q", row.Notes)
	}
}

func TestVerdictRowNoRangeNoNotes(t *testing.T) {
	v := Verdict{Consistent: NotApplicable, Statistic: "t(20) = 2.1, ns", ReportedP: "ns"}
	row := v.Row()
	if row.Col4 != "N/A" {
		t.Errorf("range column = %q, want N/A", row.Col4)
	}
	if row.Notes != "-" {
		t.Errorf("notes = %q, want -", row.Notes)
	}
}

func TestGRIMVerdictRow(t *testing.T) {
	v := GRIMVerdict{
		Consistent: Consistent,
		MeanText:   "3.85",
		SampleSize: 27,
		Decimals:   2,
	}
	row := v.Row()
	if row.Col2 != "3.85" || row.Col3 != "27" || row.Col4 != "2" {
		t.Errorf("unexpected row %+v", row)
	}
	if row.Notes != "-" {
		t.Errorf("empty reasoning should render as -, got %q", row.Notes)
	}
}

func TestRowFieldsOrder(t *testing.T) {
	fields := StatcheckHeader.Fields()
	want := []string{"Consistent", "APA Reporting", "Reported P-value", "Valid P-value Range", "Notes"}
	if len(fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(fields), len(want))
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("field %d = %q, want %q", i, fields[i], want[i])
		}
	}
}
