package dutygen

import (
	"strings"

	"github.com/dalemusser/wardshift/internal/domain/models"
)

// Assistant teams and the emergency-response duty each one carries.
const (
	TeamA = "TEAM A"
	TeamB = "TEAM B"

	ERTTeamA       = "เคลื่อนย้ายกู้ชีพ"
	ERTTeamB       = "สนับสนุนอุปกรณ์และบันทึก"
	ERTNotSelected = "ยังไม่ได้เลือกทีม"
)

// ERTForTeam returns the ERT duty implied by an assistant's team. An empty or
// unknown team yields ERTNotSelected, never a blank.
func ERTForTeam(team string) string {
	switch strings.TrimSpace(team) {
	case TeamA:
		return ERTTeamA
	case TeamB:
		return ERTTeamB
	}
	return ERTNotSelected
}

// ApplyTeams recomputes ERT on every assistant row from its team, so a saved
// sheet never carries an ERT that disagrees with the team. Nurse rows are left
// alone.
func ApplyTeams(p *models.DutyPeriods) {
	for _, b := range []*models.PeriodBucket{&p.Morning, &p.Afternoon, &p.Night} {
		for i := range b.Assistants {
			b.Assistants[i].ERT = ERTForTeam(b.Assistants[i].Team)
		}
	}
}
