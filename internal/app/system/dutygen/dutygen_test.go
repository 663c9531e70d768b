package dutygen_test

import (
	"testing"
	"time"

	"github.com/dalemusser/wardshift/internal/app/system/dutygen"
	"github.com/dalemusser/wardshift/internal/domain/models"
	"github.com/google/go-cmp/cmp"
)

var march = models.YearMonth{Year: 2024, Month: time.March}

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func schedule(set func(doc *models.ScheduleDocument)) models.ScheduleDocument {
	doc := models.NewScheduleDocument("ward5", march)
	set(&doc)
	return doc
}

func put(doc *models.ScheduleDocument, staff string, dayIndex int, top, bottom string) {
	doc.SetSlot(models.CellKey{StaffID: staff, DayIndex: dayIndex, Slot: models.SlotTop}, top)
	doc.SetSlot(models.CellKey{StaffID: staff, DayIndex: dayIndex, Slot: models.SlotBottom}, bottom)
}

func TestGenerate_SingleNurseMorning(t *testing.T) {
	roster := []models.StaffMember{{ID: "A", Role: models.RoleNurse}}
	doc := schedule(func(d *models.ScheduleDocument) { put(d, "A", 0, "ช", "") })

	got := dutygen.Generate(day(1), doc, roster)

	want := models.NewDutyPeriods()
	want.Morning.Nurses = []models.Assignment{{ID: "A-morning", MemberID: "A"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Generate mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_AssistantGoesToAssistants(t *testing.T) {
	roster := []models.StaffMember{{ID: "B", Role: models.RoleNursingAssistant}}
	doc := schedule(func(d *models.ScheduleDocument) { put(d, "B", 4, "ช", "") })

	got := dutygen.Generate(day(5), doc, roster)

	if len(got.Morning.Nurses) != 0 {
		t.Errorf("assistant must not be in morning.nurses: %v", got.Morning.Nurses)
	}
	if len(got.Morning.Assistants) != 1 || got.Morning.Assistants[0].ID != "B-morning" {
		t.Errorf("morning.assistants: got %v", got.Morning.Assistants)
	}
	if n := len(got.Afternoon.Assistants) + len(got.Afternoon.Nurses) + len(got.Night.Assistants) + len(got.Night.Nurses); n != 0 {
		t.Errorf("expected no afternoon/night rows, got %d", n)
	}
}

func TestGenerate_TwoPeriodsSameDay(t *testing.T) {
	roster := []models.StaffMember{{ID: "A", Role: models.RoleNurse}}
	doc := schedule(func(d *models.ScheduleDocument) { put(d, "A", 9, "ช", "บ") })

	got := dutygen.Generate(day(10), doc, roster)

	if len(got.Morning.Nurses) != 1 || len(got.Afternoon.Nurses) != 1 {
		t.Fatalf("expected A in morning and afternoon, got %+v", got)
	}
	if got.Afternoon.Nurses[0].ID != "A-afternoon" {
		t.Errorf("afternoon id: got %q", got.Afternoon.Nurses[0].ID)
	}
	if len(got.Night.Nurses) != 0 {
		t.Errorf("night should be empty")
	}
}

func TestGenerate_SameCodeBothSlotsOnce(t *testing.T) {
	roster := []models.StaffMember{{ID: "A", Role: models.RoleNurse}}
	doc := schedule(func(d *models.ScheduleDocument) { put(d, "A", 0, "ด", "ด") })

	got := dutygen.Generate(day(1), doc, roster)
	if len(got.Night.Nurses) != 1 {
		t.Errorf("expected one night row, got %d", len(got.Night.Nurses))
	}
}

func TestGenerate_UnscheduledAndNonDutyCodesAbsent(t *testing.T) {
	roster := []models.StaffMember{
		{ID: "A", Role: models.RoleNurse},
		{ID: "B", Role: models.RoleSupervisor},
		{ID: "C", Role: models.RoleNurse},
	}
	doc := schedule(func(d *models.ScheduleDocument) {
		put(d, "B", 0, "MB", "ย")
		put(d, "C", 1, "ช", "") // different day
	})

	got := dutygen.Generate(day(1), doc, roster)
	if diff := cmp.Diff(models.NewDutyPeriods(), got); diff != "" {
		t.Errorf("expected empty sheet (-want +got):\n%s", diff)
	}
}

func TestGenerate_RosterOrder(t *testing.T) {
	roster := []models.StaffMember{
		{ID: "late", Role: models.RoleNurse, Order: 9},
		{ID: "early", Role: models.RoleNurse, Order: 1},
		{ID: "mid", Role: models.RolePatientCareAssistant, Order: 5},
	}
	doc := schedule(func(d *models.ScheduleDocument) {
		put(d, "late", 0, "ช", "")
		put(d, "early", 0, "", "ช")
		put(d, "mid", 0, "ช", "")
	})

	got := dutygen.Generate(day(1), doc, roster)
	ids := []string{}
	for _, a := range got.Morning.Nurses {
		ids = append(ids, a.MemberID)
	}
	if diff := cmp.Diff([]string{"early", "late"}, ids); diff != "" {
		t.Errorf("nurse order (-want +got):\n%s", diff)
	}
	if len(got.Morning.Assistants) != 1 || got.Morning.Assistants[0].MemberID != "mid" {
		t.Errorf("assistants: got %v", got.Morning.Assistants)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	roster := []models.StaffMember{
		{ID: "A", Role: models.RoleNurse, Order: 1},
		{ID: "B", Role: models.RoleNursingAssistant, Order: 2},
		{ID: "C", Role: models.RoleNurse, Order: 3},
	}
	doc := schedule(func(d *models.ScheduleDocument) {
		put(d, "A", 14, "ช", "ด")
		put(d, "B", 14, "บ", "")
		put(d, "C", 14, "", "ด")
	})

	first := dutygen.Generate(day(15), doc, roster)
	second := dutygen.Generate(day(15), doc, roster)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Generate not deterministic (-first +second):\n%s", diff)
	}
}

func TestGenerate_EmptyInputs(t *testing.T) {
	got := dutygen.Generate(day(1), models.ScheduleDocument{}, nil)
	if got.Morning.Nurses == nil || got.Night.Assistants == nil {
		t.Error("lists must be non-nil even when empty")
	}
}

func TestERTForTeam(t *testing.T) {
	cases := map[string]string{
		"TEAM A":   dutygen.ERTTeamA,
		"TEAM B":   dutygen.ERTTeamB,
		" TEAM A ": dutygen.ERTTeamA,
		"":         dutygen.ERTNotSelected,
	}
	for team, want := range cases {
		if got := dutygen.ERTForTeam(team); got != want {
			t.Errorf("ERTForTeam(%q): got %q, want %q", team, got, want)
		}
	}
	if dutygen.ERTTeamA == dutygen.ERTTeamB {
		t.Error("teams must map to different duties")
	}
	if dutygen.ERTTeamA != "เคลื่อนย้ายกู้ชีพ" {
		t.Errorf("TEAM A duty: got %q", dutygen.ERTTeamA)
	}
}

func TestApplyTeams(t *testing.T) {
	p := models.NewDutyPeriods()
	p.Morning.Assistants = []models.Assignment{
		{ID: "B-morning", MemberID: "B", Team: "TEAM A", ERT: "stale"},
		{ID: "C-morning", MemberID: "C"},
	}
	p.Night.Nurses = []models.Assignment{{ID: "A-night", MemberID: "A", ERT: "kept"}}

	dutygen.ApplyTeams(&p)

	if p.Morning.Assistants[0].ERT != dutygen.ERTTeamA {
		t.Errorf("TEAM A row: got %q", p.Morning.Assistants[0].ERT)
	}
	if p.Morning.Assistants[1].ERT != dutygen.ERTNotSelected {
		t.Errorf("no-team row: got %q", p.Morning.Assistants[1].ERT)
	}
	if p.Night.Nurses[0].ERT != "kept" {
		t.Errorf("nurse row must be untouched, got %q", p.Night.Nurses[0].ERT)
	}
}
