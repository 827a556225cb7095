package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	layoutDate  = "2006-01-02"
	layoutMonth = "2006-01"
)

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// ParseMonth parses "YYYY-MM" into year and month for report filters.
func ParseMonth(s string) (int, int, error) {
	t, err := time.ParseInLocation(layoutMonth, strings.TrimSpace(s), time.Local)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	return t.Year(), int(t.Month()), nil
}

// MonthRange returns the inclusive first day and exclusive first day of
// the next month as YYYY-MM-DD strings, for BETWEEN-style date filters.
func MonthRange(year, month int) (string, string) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	return start.Format(layoutDate), start.AddDate(0, 1, 0).Format(layoutDate)
}
