// internal/domain/models/yearmonth.go
package models

import (
	"fmt"
	"time"
)

// YearMonth identifies a calendar month. Its canonical string form is
// "YYYY-MM", which is also the suffix of schedule document ids.
type YearMonth struct {
	Year  int
	Month time.Month
}

// ParseYearMonth parses "YYYY-MM".
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month %q: want YYYY-MM", s)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// YearMonthOf returns the month containing t.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// First returns midnight of the first day of the month in loc.
func (ym YearMonth) First(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, loc)
}

// Days returns the number of days in the month.
func (ym YearMonth) Days() int {
	return ym.First(time.UTC).AddDate(0, 1, -1).Day()
}

// ValidDayIndex reports whether day (0-based) falls inside the month.
func (ym YearMonth) ValidDayIndex(day int) bool {
	return day >= 0 && day < ym.Days()
}

// ISODate formats t as "YYYY-MM-DD", the suffix of assignment document ids.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseISODate parses "YYYY-MM-DD" as midnight in loc.
func ParseISODate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}
