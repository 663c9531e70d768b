// internal/domain/models/staff.go
package models

import "sort"

// Staff roles. The set is fixed; anything else is rejected by roster writes.
const (
	RoleNurse                = "nurse"
	RoleNursingAssistant     = "nursing-assistant"
	RolePatientCareAssistant = "patient-care-assistant"
	RoleSupervisor           = "supervisor"
)

// ValidRole reports whether role is one of the known staff roles.
func ValidRole(role string) bool {
	switch role {
	case RoleNurse, RoleNursingAssistant, RolePatientCareAssistant, RoleSupervisor:
		return true
	}
	return false
}

// StaffMember is one person on a department's team roster.
//
// Order is unique within a department and controls the row position of the
// member in every generated table (shift grid, duty sheet, export).
type StaffMember struct {
	ID         string `bson:"id" json:"id"`
	Name       string `bson:"name" json:"name"`
	Role       string `bson:"role" json:"role"`
	Department string `bson:"department" json:"department"`
	Order      int    `bson:"order" json:"order"`
}

// IsNurse reports whether the member is placed in the nurses list of a duty
// sheet. Every other role goes to the assistants list.
func (m StaffMember) IsNurse() bool {
	return m.Role == RoleNurse
}

// Roster is the per-department team document.
// Stored in the "rosters" collection with _id = department.
type Roster struct {
	ID      string        `bson:"_id" json:"id"`
	Members []StaffMember `bson:"members" json:"members"`
}

// Ordered returns a copy of members sorted by roster order. Ties keep their
// stored sequence.
func Ordered(members []StaffMember) []StaffMember {
	out := make([]StaffMember, len(members))
	copy(out, members)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
