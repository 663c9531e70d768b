// Package dutygen derives a day's duty sheet from the monthly shift grid.
package dutygen

import (
	"time"

	"github.com/dalemusser/wardshift/internal/domain/models"
)

// period pairs a duty period with the shift code that puts staff on it.
type period struct {
	name string
	code string
}

// periods is iterated in this order, so output order is stable.
var periods = []period{
	{name: models.PeriodMorning, code: models.CodeMorning},
	{name: models.PeriodAfternoon, code: models.CodeAfternoon},
	{name: models.PeriodNight, code: models.CodeNight},
}

// Generate builds the duty periods for date. Every roster member holding a
// base duty code in either slot that day gets one empty row in the matching
// period: nurses in Nurses, all other roles in Assistants. Members are visited
// in roster order. A member scheduled for two periods on the same day appears
// in both.
//
// The result depends only on its arguments; the date's location is used as-is.
func Generate(date time.Time, schedule models.ScheduleDocument, roster []models.StaffMember) models.DutyPeriods {
	dayIndex := date.Day() - 1
	out := models.NewDutyPeriods()

	for _, m := range models.Ordered(roster) {
		slots := schedule.Slots(m.ID, dayIndex)
		for _, p := range periods {
			if !slots.Holds(p.code) {
				continue
			}
			row := models.Assignment{ID: models.AssignmentID(m.ID, p.name), MemberID: m.ID}
			b := out.Bucket(p.name)
			if m.IsNurse() {
				b.Nurses = append(b.Nurses, row)
			} else {
				b.Assistants = append(b.Assistants, row)
			}
		}
	}
	return out
}
