// Package calendar builds the fixed six-week month grid shown by the shift
// calendar.
//
// Generate is pure: it never reads the wall clock. "Today" highlighting is
// applied separately with MarkToday so callers (and tests) decide what now is.
package calendar

import "time"

// Rows and Cols give the fixed grid shape. Months that fit in five weeks still
// get six rows; the last row may be entirely next-month.
const (
	Rows = 6
	Cols = 7
)

// Day is one grid cell.
type Day struct {
	Date    time.Time `json:"date"`
	InMonth bool      `json:"inMonth"`
	IsToday bool      `json:"isToday"`
}

// Grid is a 6×7 matrix of consecutive dates starting on a Sunday.
type Grid [Rows][Cols]Day

// Clock returns the current time. Production code uses time.Now; tests pass a
// fixed value.
type Clock func() time.Time

// Generate returns the grid for the month containing anchor. The first cell is
// the Sunday on or before the 1st of the month, in anchor's location.
func Generate(anchor time.Time) Grid {
	loc := anchor.Location()
	year, month, _ := anchor.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	var g Grid
	for i := 0; i < Rows*Cols; i++ {
		d := start.AddDate(0, 0, i)
		g[i/Cols][i%Cols] = Day{
			Date:    d,
			InMonth: d.Year() == year && d.Month() == month,
		}
	}
	return g
}

// MarkToday returns a copy of g with IsToday set on the cell matching now's
// calendar date (compared in the grid's location).
func MarkToday(g Grid, now time.Time) Grid {
	for r := range g {
		for c := range g[r] {
			d := g[r][c].Date
			n := now.In(d.Location())
			g[r][c].IsToday = d.Year() == n.Year() && d.YearDay() == n.YearDay()
		}
	}
	return g
}

// Days flattens the grid row by row.
func (g Grid) Days() []Day {
	out := make([]Day, 0, Rows*Cols)
	for _, row := range g {
		out = append(out, row[:]...)
	}
	return out
}

// Weeks returns the grid as a slice of rows, the shape used in JSON views.
func (g Grid) Weeks() [][]Day {
	out := make([][]Day, 0, Rows)
	for _, row := range g {
		week := make([]Day, Cols)
		copy(week, row[:])
		out = append(out, week)
	}
	return out
}
