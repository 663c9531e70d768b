package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dalemusser/wardshift/internal/app/system/calendar"
	"github.com/dalemusser/wardshift/internal/app/system/timezones"
	"github.com/dalemusser/wardshift/internal/domain/models"
	"github.com/spf13/cobra"
)

var (
	calendarMonth string
	calendarTable bool
)

// calendarCmd prints the six-week grid for a month
var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Print the six-week calendar grid for a month",
	Long: `Print the Sunday-first, six-week grid the shift calendar renders.

Without --month the current month in the ward timezone is used.`,
	RunE: runCalendar,
}

func init() {
	calendarCmd.Flags().StringVar(&calendarMonth, "month", "", "Month as YYYY-MM (default: current month)")
	calendarCmd.Flags().BoolVar(&calendarTable, "table", false, "Print a plain text table instead of yaml/json")
}

type calendarOutput struct {
	Month    string           `json:"month"`
	Timezone string           `json:"timezone"`
	Weeks    [][]calendarCell `json:"weeks"`
}

type calendarCell struct {
	Date    string `json:"date"`
	InMonth bool   `json:"inMonth"`
	IsToday bool   `json:"isToday"`
}

func runCalendar(cmd *cobra.Command, args []string) error {
	loc, err := timezones.Location(wardTimezone)
	if err != nil {
		return err
	}
	out, err := buildCalendar(calendarMonth, loc, time.Now())
	if err != nil {
		return err
	}
	if calendarTable {
		printCalendarTable(cmd.OutOrStdout(), out)
		return nil
	}
	return writeOutput(cmd.OutOrStdout(), outputFormat, out)
}

func buildCalendar(month string, loc *time.Location, now time.Time) (calendarOutput, error) {
	ym := models.YearMonthOf(now.In(loc))
	if month != "" {
		parsed, err := models.ParseYearMonth(month)
		if err != nil {
			return calendarOutput{}, err
		}
		ym = parsed
	}

	grid := calendar.MarkToday(calendar.Generate(ym.First(loc)), now)
	out := calendarOutput{Month: ym.String(), Timezone: loc.String()}
	for _, week := range grid.Weeks() {
		row := make([]calendarCell, 0, len(week))
		for _, d := range week {
			row = append(row, calendarCell{
				Date:    models.ISODate(d.Date),
				InMonth: d.InMonth,
				IsToday: d.IsToday,
			})
		}
		out.Weeks = append(out.Weeks, row)
	}
	return out, nil
}

// printCalendarTable writes a cal(1)-style grid. Days outside the month are
// blank and today is wrapped in brackets.
func printCalendarTable(w io.Writer, out calendarOutput) {
	fmt.Fprintf(w, "%s (%s)\n", out.Month, out.Timezone)
	fmt.Fprintln(w, " Su   Mo   Tu   We   Th   Fr   Sa")
	for _, week := range out.Weeks {
		cells := make([]string, 0, len(week))
		for _, c := range week {
			switch {
			case !c.InMonth:
				cells = append(cells, "    ")
			case c.IsToday:
				cells = append(cells, fmt.Sprintf("[%2s]", c.Date[8:]))
			default:
				cells = append(cells, fmt.Sprintf(" %2s ", c.Date[8:]))
			}
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, " "), " "))
	}
}
