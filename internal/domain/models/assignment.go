// internal/domain/models/assignment.go
package models

import "time"

// Duty period names. They are also the suffix of assignment ids.
const (
	PeriodMorning   = "morning"
	PeriodAfternoon = "afternoon"
	PeriodNight     = "night"
)

// Assignment is one row of a duty sheet. Nurses use Bed and Duty; assistants
// use Team, which determines ERT.
type Assignment struct {
	ID       string `bson:"id" json:"id"`
	MemberID string `bson:"memberId" json:"memberId"`
	Bed      string `bson:"bed" json:"bed"`
	Team     string `bson:"team" json:"team"`
	Duty     string `bson:"duty" json:"duty"`
	ERT      string `bson:"ert" json:"ert"`
}

// AssignmentID returns the stable id of a member's row in a period.
func AssignmentID(memberID, period string) string {
	return memberID + "-" + period
}

// PeriodBucket holds the rows of one duty period, split by role.
type PeriodBucket struct {
	Nurses     []Assignment `bson:"nurses" json:"nurses"`
	Assistants []Assignment `bson:"assistants" json:"assistants"`
}

// DutyPeriods is the fixed three-period shape of a duty sheet.
type DutyPeriods struct {
	Morning   PeriodBucket `bson:"morning" json:"morning"`
	Afternoon PeriodBucket `bson:"afternoon" json:"afternoon"`
	Night     PeriodBucket `bson:"night" json:"night"`
}

// NewDutyPeriods returns three buckets with empty, non-nil lists so they
// encode as [] rather than null.
func NewDutyPeriods() DutyPeriods {
	empty := func() PeriodBucket {
		return PeriodBucket{Nurses: []Assignment{}, Assistants: []Assignment{}}
	}
	return DutyPeriods{Morning: empty(), Afternoon: empty(), Night: empty()}
}

// Bucket returns a pointer to the named period's bucket, or nil.
func (p *DutyPeriods) Bucket(period string) *PeriodBucket {
	switch period {
	case PeriodMorning:
		return &p.Morning
	case PeriodAfternoon:
		return &p.Afternoon
	case PeriodNight:
		return &p.Night
	}
	return nil
}

// Normalize replaces nil lists with empty ones.
func (p *DutyPeriods) Normalize() {
	for _, b := range []*PeriodBucket{&p.Morning, &p.Afternoon, &p.Night} {
		if b.Nurses == nil {
			b.Nurses = []Assignment{}
		}
		if b.Assistants == nil {
			b.Assistants = []Assignment{}
		}
	}
}

// AssignmentDocument is a department's duty sheet for one calendar date.
// Stored in the "assignments" collection with _id = "{department}-{YYYY-MM-DD}".
type AssignmentDocument struct {
	ID          string      `bson:"_id" json:"id"`
	Department  string      `bson:"department" json:"department"`
	Date        string      `bson:"date" json:"date"`
	Assignments DutyPeriods `bson:"assignments" json:"assignments"`
	SavedAt     *time.Time  `bson:"savedAt,omitempty" json:"savedAt,omitempty"`
	SavedBy     string      `bson:"savedBy,omitempty" json:"savedBy,omitempty"`
}

// AssignmentDocID returns the document id for a department's date.
func AssignmentDocID(department, isoDate string) string {
	return department + "-" + isoDate
}
