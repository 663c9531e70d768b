// internal/domain/models/schedule.go
package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrDayOutOfRange is returned when a day index is outside the month.
	ErrDayOutOfRange = errors.New("day index outside month")
	// ErrInvalidStaffID is returned for ids that cannot be used as a field path.
	ErrInvalidStaffID = errors.New("invalid staff id")
)

// Slot names one of the two shift-code holders of a calendar cell.
type Slot string

const (
	SlotTop    Slot = "top"
	SlotBottom Slot = "bottom"
)

// ParseSlot accepts "top" or "bottom".
func ParseSlot(s string) (Slot, error) {
	switch Slot(s) {
	case SlotTop, SlotBottom:
		return Slot(s), nil
	}
	return "", fmt.Errorf("invalid slot %q: want top or bottom", s)
}

// ShiftSlots is the pair of shift codes held by one staff member on one day.
// An empty string means the slot is unused.
type ShiftSlots struct {
	Top    string `bson:"top" json:"top"`
	Bottom string `bson:"bottom" json:"bottom"`
}

// Get returns the code held in slot.
func (s ShiftSlots) Get(slot Slot) string {
	if slot == SlotBottom {
		return s.Bottom
	}
	return s.Top
}

// Holds reports whether either slot carries code.
func (s ShiftSlots) Holds(code string) bool {
	return code != "" && (s.Top == code || s.Bottom == code)
}

// StyleOverride is a per-cell color exception set by a scheduler.
type StyleOverride struct {
	TextColor       string `bson:"textColor,omitempty" json:"textColor,omitempty"`
	BackgroundColor string `bson:"backgroundColor,omitempty" json:"backgroundColor,omitempty"`
}

// CellKey addresses one slot of one staff member on one day. Its String form
// is the flat key used by the cellStyles map: "{staffId}-{dayIndex}-{slot}".
type CellKey struct {
	StaffID  string
	DayIndex int
	Slot     Slot
}

func (k CellKey) String() string {
	return k.StaffID + "-" + strconv.Itoa(k.DayIndex) + "-" + string(k.Slot)
}

// Check reports whether k addresses a real slot in ym. Staff ids become
// document field names, so they must be non-blank and free of '.' and '$'.
func (k CellKey) Check(ym YearMonth) error {
	if strings.TrimSpace(k.StaffID) == "" || strings.ContainsAny(k.StaffID, ".$") {
		return fmt.Errorf("%w: %q", ErrInvalidStaffID, k.StaffID)
	}
	if !ym.ValidDayIndex(k.DayIndex) {
		return fmt.Errorf("%w: %d not in %s", ErrDayOutOfRange, k.DayIndex, ym)
	}
	if _, err := ParseSlot(string(k.Slot)); err != nil {
		return err
	}
	return nil
}

// ParseCellKey reverses CellKey.String. Staff ids may themselves contain
// hyphens, so the key is split from the right.
func ParseCellKey(s string) (CellKey, error) {
	i := strings.LastIndexByte(s, '-')
	if i <= 0 {
		return CellKey{}, fmt.Errorf("invalid cell key %q", s)
	}
	slot, err := ParseSlot(s[i+1:])
	if err != nil {
		return CellKey{}, fmt.Errorf("invalid cell key %q: %w", s, err)
	}
	rest := s[:i]
	j := strings.LastIndexByte(rest, '-')
	if j <= 0 {
		return CellKey{}, fmt.Errorf("invalid cell key %q", s)
	}
	day, err := strconv.Atoi(rest[j+1:])
	if err != nil || day < 0 {
		return CellKey{}, fmt.Errorf("invalid cell key %q: bad day index", s)
	}
	return CellKey{StaffID: rest[:j], DayIndex: day, Slot: slot}, nil
}

// DaySlots maps a decimal day index ("0", "1", ...) to that day's slots.
// The string keys keep the stored shape identical to the original documents.
type DaySlots map[string]ShiftSlots

// ScheduleDocument is the per-department, per-month shift grid.
// Stored in the "schedules" collection with _id = "{department}-{YYYY-MM}".
type ScheduleDocument struct {
	ID         string                   `bson:"_id" json:"id"`
	Department string                   `bson:"department" json:"department"`
	YearMonth  string                   `bson:"yearMonth" json:"yearMonth"`
	Schedule   map[string]DaySlots      `bson:"schedule" json:"schedule"`
	CellStyles map[string]StyleOverride `bson:"cellStyles" json:"cellStyles"`
}

// ScheduleID returns the document id for a department's month.
func ScheduleID(department string, ym YearMonth) string {
	return department + "-" + ym.String()
}

// NewScheduleDocument returns an empty document for the month.
func NewScheduleDocument(department string, ym YearMonth) ScheduleDocument {
	return ScheduleDocument{
		ID:         ScheduleID(department, ym),
		Department: department,
		YearMonth:  ym.String(),
		Schedule:   map[string]DaySlots{},
		CellStyles: map[string]StyleOverride{},
	}
}

// Slots returns the codes for a staff member on a day. Missing entries are
// the empty pair.
func (d ScheduleDocument) Slots(staffID string, dayIndex int) ShiftSlots {
	days, ok := d.Schedule[staffID]
	if !ok {
		return ShiftSlots{}
	}
	return days[strconv.Itoa(dayIndex)]
}

// SetSlot writes one slot code, creating intermediate maps as needed.
func (d *ScheduleDocument) SetSlot(k CellKey, code string) {
	if d.Schedule == nil {
		d.Schedule = map[string]DaySlots{}
	}
	days, ok := d.Schedule[k.StaffID]
	if !ok {
		days = DaySlots{}
		d.Schedule[k.StaffID] = days
	}
	day := strconv.Itoa(k.DayIndex)
	cur := days[day]
	if k.Slot == SlotBottom {
		cur.Bottom = code
	} else {
		cur.Top = code
	}
	days[day] = cur
}

// Style returns the override for a cell slot, if any.
func (d ScheduleDocument) Style(k CellKey) (StyleOverride, bool) {
	s, ok := d.CellStyles[k.String()]
	return s, ok
}

// CellEdit is one change to a cell slot. A nil Code leaves the slot code
// alone; an empty one clears it. Style is only applied when SetStyle is
// true, and a nil Style then removes the override.
type CellEdit struct {
	Code     *string
	SetStyle bool
	Style    *StyleOverride
}

// Empty reports whether the edit changes nothing.
func (e CellEdit) Empty() bool {
	return e.Code == nil && !e.SetStyle
}

// SetStyle stores or, when s is nil, removes an override.
func (d *ScheduleDocument) SetStyle(k CellKey, s *StyleOverride) {
	if s == nil {
		delete(d.CellStyles, k.String())
		return
	}
	if d.CellStyles == nil {
		d.CellStyles = map[string]StyleOverride{}
	}
	d.CellStyles[k.String()] = *s
}
