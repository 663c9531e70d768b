// Package shiftstyle decides how a shift code is drawn in a grid cell.
//
// Resolution is an ordered chain of strategies; the first one that answers
// wins. The default chain is:
//
//  1. catalog entry for a base duty code with a per-cell override: white
//     background, override text color (catalog text color when unset)
//  2. catalog entry colors
//  3. built-in legacy colors (base duty codes get their own, everything else
//     is gray)
//
// Blank codes are never drawn. Labels come from the catalog display name, then
// the built-in short names for base duty codes, then the raw code.
package shiftstyle

import (
	"strings"

	"github.com/dalemusser/wardshift/internal/domain/models"
)

// Display is the resolved look of one slot.
type Display struct {
	Code            string `json:"code"`
	Label           string `json:"label"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
}

// Colors used when nothing else applies.
const (
	OverrideBackground = "#FFFFFF"
	NeutralBackground  = "#E5E7EB"
	NeutralText        = "#374151"
)

type colors struct{ bg, fg string }

var legacyColors = map[string]colors{
	models.CodeMorning:   {bg: "#BFDBFE", fg: "#1E40AF"},
	models.CodeAfternoon: {bg: "#FDE68A", fg: "#92400E"},
	models.CodeNight:     {bg: "#C4B5FD", fg: "#4C1D95"},
}

var shortNames = map[string]string{
	models.CodeMorning:   "เช้า",
	models.CodeAfternoon: "บ่าย",
	models.CodeNight:     "ดึก",
}

// Input is what a strategy sees for one slot.
type Input struct {
	Code     string
	Override *models.StyleOverride
	Option   *models.ShiftOption // catalog entry, nil when the code is not in the catalog
}

// Strategy returns colors for a slot, or ok=false to defer to the next one.
type Strategy func(in Input) (bg, fg string, ok bool)

// Resolver applies a strategy chain against one department's catalog.
type Resolver struct {
	byCode     map[string]models.ShiftOption
	strategies []Strategy
}

// New builds a Resolver for catalog using the default chain.
func New(catalog []models.ShiftOption) *Resolver {
	return NewWithStrategies(catalog, OverrideOnBaseCode, CatalogColors, LegacyColors)
}

// NewWithStrategies builds a Resolver with a custom chain.
func NewWithStrategies(catalog []models.ShiftOption, strategies ...Strategy) *Resolver {
	byCode := make(map[string]models.ShiftOption, len(catalog))
	for _, o := range catalog {
		if _, dup := byCode[o.Code]; !dup {
			byCode[o.Code] = o
		}
	}
	return &Resolver{byCode: byCode, strategies: strategies}
}

// Resolve returns the display for code. ok is false when the slot should not
// be drawn at all.
func (r *Resolver) Resolve(code string, override *models.StyleOverride) (Display, bool) {
	if strings.TrimSpace(code) == "" {
		return Display{}, false
	}

	in := Input{Code: code, Override: override}
	if o, found := r.byCode[code]; found {
		in.Option = &o
	}

	d := Display{Code: code, Label: label(in), BackgroundColor: NeutralBackground, TextColor: NeutralText}
	for _, s := range r.strategies {
		if bg, fg, ok := s(in); ok {
			d.BackgroundColor, d.TextColor = bg, fg
			break
		}
	}
	return d, true
}

// Resolve is a convenience for one-off lookups.
func Resolve(code string, override *models.StyleOverride, catalog []models.ShiftOption) (Display, bool) {
	return New(catalog).Resolve(code, override)
}

func label(in Input) string {
	if in.Option != nil && in.Option.DisplayName != "" {
		return in.Option.DisplayName
	}
	if n, ok := shortNames[in.Code]; ok {
		return n
	}
	return in.Code
}

// OverrideOnBaseCode lets a scheduler recolor one instance of a base duty
// code without touching the catalog. An override without a text color keeps
// the catalog's.
func OverrideOnBaseCode(in Input) (string, string, bool) {
	if in.Option == nil || in.Override == nil || !models.IsBaseDutyCode(in.Code) {
		return "", "", false
	}
	fg := in.Override.TextColor
	if fg == "" {
		fg = in.Option.TextColor
	}
	return OverrideBackground, fg, true
}

// CatalogColors uses the department catalog entry.
func CatalogColors(in Input) (string, string, bool) {
	if in.Option == nil {
		return "", "", false
	}
	return in.Option.BackgroundColor, in.Option.TextColor, true
}

// LegacyColors is the last resort; it always answers.
func LegacyColors(in Input) (string, string, bool) {
	if c, ok := legacyColors[in.Code]; ok {
		return c.bg, c.fg, true
	}
	return NeutralBackground, NeutralText, true
}
