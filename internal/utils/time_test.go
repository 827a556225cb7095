package utils

import (
	"testing"
	"time"
)

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate(" 2026-03-14 ")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	if got := FormatDate(d); got != "2026-03-14" {
		t.Fatalf("FormatDate = %q, want 2026-03-14", got)
	}

	if _, err := ParseDate("14-03-2026"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

func TestParseMonth(t *testing.T) {
	year, month, err := ParseMonth("2026-03")
	if err != nil {
		t.Fatalf("ParseMonth error: %v", err)
	}
	if year != 2026 || month != 3 {
		t.Fatalf("got %d-%d, want 2026-3", year, month)
	}

	if _, _, err := ParseMonth("2026/03"); err == nil {
		t.Fatal("expected error for bad separator")
	}
	if _, _, err := ParseMonth("2026-13"); err == nil {
		t.Fatal("expected error for month 13")
	}
}

func TestMonthRange(t *testing.T) {
	cases := []struct {
		year, month int
		wantStart   string
		wantEnd     string
	}{
		{2026, 3, "2026-03-01", "2026-04-01"},
		{2026, 12, "2026-12-01", "2027-01-01"},
		{2026, 1, "2026-01-01", "2026-02-01"},
	}
	for _, tc := range cases {
		start, end := MonthRange(tc.year, tc.month)
		if start != tc.wantStart || end != tc.wantEnd {
			t.Errorf("MonthRange(%d,%d) = %q,%q, want %q,%q",
				tc.year, tc.month, start, end, tc.wantStart, tc.wantEnd)
		}
	}
}

func TestMonthRangeCoversWholeMonth(t *testing.T) {
	start, end := MonthRange(2026, 2)
	s, _ := ParseDate(start)
	e, _ := ParseDate(end)
	if !e.After(s.AddDate(0, 0, 27)) {
		t.Fatalf("range %s..%s shorter than February", start, end)
	}
	last := e.AddDate(0, 0, -1)
	if last.Month() != time.February {
		t.Fatalf("exclusive end %s does not border February", end)
	}
}
