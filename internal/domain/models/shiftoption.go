// internal/domain/models/shiftoption.go
package models

// Base duty codes. Each one marks a duty period on the shift grid.
const (
	CodeMorning   = "ช"
	CodeAfternoon = "บ"
	CodeNight     = "ด"
)

// IsBaseDutyCode reports whether code is one of the three duty-period markers.
func IsBaseDutyCode(code string) bool {
	return code == CodeMorning || code == CodeAfternoon || code == CodeNight
}

// ShiftOption is one entry of a department's shift catalog.
type ShiftOption struct {
	Code            string `bson:"code" json:"code"`
	DisplayName     string `bson:"displayName" json:"displayName"`
	BackgroundColor string `bson:"backgroundColor" json:"backgroundColor"`
	TextColor       string `bson:"textColor" json:"textColor"`
}

// ShiftCatalog is the per-department catalog document.
// Stored in the "shift_options" collection with _id = department.
type ShiftCatalog struct {
	ID      string        `bson:"_id" json:"id"`
	Options []ShiftOption `bson:"options" json:"options"`
}

// Lookup returns the option with the given code.
func (c ShiftCatalog) Lookup(code string) (ShiftOption, bool) {
	for _, o := range c.Options {
		if o.Code == code {
			return o, true
		}
	}
	return ShiftOption{}, false
}

// SampleShiftOptions is the small built-in catalog used when a department's
// catalog cannot be fetched.
func SampleShiftOptions() []ShiftOption {
	return []ShiftOption{
		{Code: CodeMorning, DisplayName: "เช้า", BackgroundColor: "#DBEAFE", TextColor: "#1E3A8A"},
		{Code: CodeAfternoon, DisplayName: "บ่าย", BackgroundColor: "#FEF3C7", TextColor: "#92400E"},
		{Code: CodeNight, DisplayName: "ดึก", BackgroundColor: "#EDE9FE", TextColor: "#4C1D95"},
		{Code: "MB", DisplayName: "ประชุม", BackgroundColor: "#DCFCE7", TextColor: "#166534"},
		{Code: "ย", DisplayName: "ลา", BackgroundColor: "#FEE2E2", TextColor: "#991B1B"},
	}
}
