// internal/app/features/shiftgrid/view.go
package shiftgrid

import (
	"time"

	"github.com/dalemusser/wardshift/internal/app/system/calendar"
	"github.com/dalemusser/wardshift/internal/app/system/shiftstyle"
	"github.com/dalemusser/wardshift/internal/app/system/wardload"
	"github.com/dalemusser/wardshift/internal/domain/models"
)

// DayView is one calendar cell.
type DayView struct {
	Date     string `json:"date"`
	DayIndex int    `json:"dayIndex"` // 0-based within the viewed month; -1 outside it
	InMonth  bool   `json:"inMonth"`
	IsToday  bool   `json:"isToday"`
}

// CellView is one staff member's slots on one day of the month. A nil slot is
// not drawn.
type CellView struct {
	DayIndex int                 `json:"dayIndex"`
	Top      *shiftstyle.Display `json:"top"`
	Bottom   *shiftstyle.Display `json:"bottom"`
}

// RowView is one roster line of the grid.
type RowView struct {
	Staff models.StaffMember `json:"staff"`
	Cells []CellView         `json:"cells"`
}

// View is the JSON body of GET /schedule/{dept}/{ym}.
type View struct {
	Department   string               `json:"department"`
	YearMonth    string               `json:"yearMonth"`
	Timezone     string               `json:"timezone"`
	Weeks        [][]DayView          `json:"weeks"`
	Rows         []RowView            `json:"rows"`
	ShiftOptions []models.ShiftOption `json:"shiftOptions"`
}

// BuildView lays a loaded month out as calendar weeks plus one row per roster
// member (roster order), each slot resolved against the ward's catalog.
func BuildView(m wardload.Month, loc *time.Location, now time.Time) View {
	if loc == nil {
		loc = time.UTC
	}
	grid := calendar.MarkToday(calendar.Generate(m.YearMonth.First(loc)), now)

	weeks := make([][]DayView, 0, calendar.Rows)
	for _, week := range grid.Weeks() {
		row := make([]DayView, 0, calendar.Cols)
		for _, d := range week {
			idx := -1
			if d.InMonth {
				idx = d.Date.Day() - 1
			}
			row = append(row, DayView{
				Date:     models.ISODate(d.Date),
				DayIndex: idx,
				InMonth:  d.InMonth,
				IsToday:  d.IsToday,
			})
		}
		weeks = append(weeks, row)
	}

	resolver := shiftstyle.New(m.Catalog)
	days := m.YearMonth.Days()
	rows := make([]RowView, 0, len(m.Roster))
	for _, member := range models.Ordered(m.Roster) {
		cells := make([]CellView, days)
		for day := 0; day < days; day++ {
			slots := m.Schedule.Slots(member.ID, day)
			cells[day] = CellView{
				DayIndex: day,
				Top:      resolveSlot(resolver, m.Schedule, models.CellKey{StaffID: member.ID, DayIndex: day, Slot: models.SlotTop}, slots.Top),
				Bottom:   resolveSlot(resolver, m.Schedule, models.CellKey{StaffID: member.ID, DayIndex: day, Slot: models.SlotBottom}, slots.Bottom),
			}
		}
		rows = append(rows, RowView{Staff: member, Cells: cells})
	}

	opts := m.Catalog
	if opts == nil {
		opts = []models.ShiftOption{}
	}
	return View{
		Department:   m.Department,
		YearMonth:    m.YearMonth.String(),
		Timezone:     loc.String(),
		Weeks:        weeks,
		Rows:         rows,
		ShiftOptions: opts,
	}
}

func resolveSlot(r *shiftstyle.Resolver, doc models.ScheduleDocument, k models.CellKey, code string) *shiftstyle.Display {
	var override *models.StyleOverride
	if s, ok := doc.Style(k); ok {
		override = &s
	}
	d, ok := r.Resolve(code, override)
	if !ok {
		return nil
	}
	return &d
}
