package core

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.String() != "2024-06-15" {
		t.Fatalf("round trip = %q", d.String())
	}
	for _, bad := range []string{"", "15/06/2024", "2024-13-01", "2024-06-31", "yesterday"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("ParseDate(%q) expected error", bad)
		}
	}
}

func TestPeriodRange(t *testing.T) {
	cases := []struct {
		p          Period
		start, end string
	}{
		{Period{Month: 6, Year: 2024}, "2024-06-01", "2024-07-01"},
		{Period{Month: 1, Year: 2024}, "2024-01-01", "2024-02-01"},
		{Period{Month: 12, Year: 2024}, "2024-12-01", "2025-01-01"}, // year rollover
	}
	for _, tc := range cases {
		start, end := tc.p.Range()
		if start.String() != tc.start || end.String() != tc.end {
			t.Fatalf("Period %d/%d range = [%s, %s), want [%s, %s)",
				tc.p.Month, tc.p.Year, start, end, tc.start, tc.end)
		}
	}
}

func TestPeriodContains(t *testing.T) {
	p := Period{Month: 12, Year: 2024}
	cases := []struct {
		date string
		in   bool
	}{
		{"2024-12-01", true},
		{"2024-12-31", true},
		{"2025-01-01", false}, // half-open upper bound
		{"2024-11-30", false},
	}
	for _, tc := range cases {
		d, err := ParseDate(tc.date)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", tc.date, err)
		}
		if got := p.Contains(d); got != tc.in {
			t.Fatalf("Contains(%s) = %v, want %v", tc.date, got, tc.in)
		}
	}
}

func TestPeriodValidate(t *testing.T) {
	for _, p := range []Period{{Month: 1, Year: 2024}, {Month: 12, Year: 1999}} {
		if err := p.Validate(); err != nil {
			t.Fatalf("Period %v expected ok, got %v", p, err)
		}
	}
	for _, p := range []Period{{Month: 0, Year: 2024}, {Month: 13, Year: 2024}, {Month: 6, Year: 0}} {
		if err := p.Validate(); err == nil {
			t.Fatalf("Period %v expected error", p)
		}
	}
}

func TestPeriodOf(t *testing.T) {
	now := time.Date(2024, time.June, 15, 13, 45, 0, 0, time.UTC)
	p := PeriodOf(now)
	if p.Month != 6 || p.Year != 2024 {
		t.Fatalf("PeriodOf = %+v", p)
	}
}
