package main

import "testing"

func TestValidateWeeks(t *testing.T) {
	cases := []struct {
		weeks  int
		wantOK bool
	}{
		{1, false},
		{2, true},
		{4, true},
		{12, true},
		{13, false},
		{100, false},
		{0, false},
		{-3, false},
	}
	for _, c := range cases {
		err := validateWeeks(c.weeks)
		if c.wantOK && err != nil {
			t.Errorf("validateWeeks(%d) = %v, want nil", c.weeks, err)
		}
		if !c.wantOK && err == nil {
			t.Errorf("validateWeeks(%d) = nil, want error", c.weeks)
		}
	}
}

func TestWindowFromFlagsValidation(t *testing.T) {
	cmd := reportCmd

	cmd.Flags().Set("from", "2024-03-03")
	cmd.Flags().Set("to", "")
	if _, err := windowFromFlags(cmd); err == nil {
		t.Error("--from without --to should error")
	}

	cmd.Flags().Set("to", "2024-03-09")
	w, err := windowFromFlags(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if w.Start.After(w.End) {
		t.Errorf("window inverted: %v..%v", w.Start, w.End)
	}

	cmd.Flags().Set("from", "not-a-date")
	if _, err := windowFromFlags(cmd); err == nil {
		t.Error("bad --from should error")
	}
}
