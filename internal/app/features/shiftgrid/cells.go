// internal/app/features/shiftgrid/cells.go
package shiftgrid

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/wardshift/internal/app/features/errors"
	"github.com/dalemusser/wardshift/internal/app/system/htmlsanitize"
	"github.com/dalemusser/wardshift/internal/app/system/limits"
	"github.com/dalemusser/wardshift/internal/app/system/requestid"
	"github.com/dalemusser/wardshift/internal/app/system/timeouts"
	"github.com/dalemusser/wardshift/internal/domain/models"
	"go.uber.org/zap"
)

// cellEdit is the body of PUT /schedule/{dept}/{ym}/cells.
//
// An absent code leaves the slot alone and "" clears it. Style is three-way:
// absent leaves any override alone, null clears it, and an object replaces
// it. At least one of the two must be present.
type cellEdit struct {
	StaffID  string          `json:"staffId"`
	DayIndex *int            `json:"dayIndex"`
	Slot     string          `json:"slot"`
	Code     *string         `json:"code"`
	Style    json.RawMessage `json:"style"`
}

type cellResult struct {
	Saved bool                  `json:"saved"`
	Key   string                `json:"key"`
	Code  *string               `json:"code,omitempty"`
	Style *models.StyleOverride `json:"style,omitempty"`
}

// ServeCells handles PUT /schedule/{dept}/{ym}/cells.
//
// Malformed input is a 400. A failed write is logged and reported as
// saved:false; the edit is not retried.
func (h *Handler) ServeCells(w http.ResponseWriter, r *http.Request) {
	dept, ym, ok := params(w, r)
	if !ok {
		return
	}

	var in cellEdit
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxCellBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		uierrors.BadRequest(w, r, "invalid JSON body: "+err.Error())
		return
	}
	if in.DayIndex == nil {
		uierrors.BadRequest(w, r, "dayIndex is required")
		return
	}
	slot, err := models.ParseSlot(in.Slot)
	if err != nil {
		uierrors.BadRequest(w, r, err.Error())
		return
	}
	key := models.CellKey{StaffID: strings.TrimSpace(in.StaffID), DayIndex: *in.DayIndex, Slot: slot}
	if err := key.Check(ym); err != nil {
		uierrors.BadRequest(w, r, err.Error())
		return
	}

	setStyle, style, err := parseStyle(in.Style)
	if err != nil {
		uierrors.BadRequest(w, r, err.Error())
		return
	}
	edit := models.CellEdit{SetStyle: setStyle, Style: style}
	if in.Code != nil {
		code := htmlsanitize.PlainText(*in.Code)
		edit.Code = &code
	}
	if edit.Empty() {
		uierrors.BadRequest(w, r, "code or style is required")
		return
	}

	log := requestid.Logger(r.Context(), h.Log).With(
		zap.String("department", dept),
		zap.String("year_month", ym.String()),
		zap.String("cell", key.String()))

	ctx, cancel := timeouts.Detached(r.Context(), timeouts.Write(), log, "save cell")
	defer cancel()

	res := cellResult{Key: key.String()}
	if err := h.Cells.SetCell(ctx, dept, ym, key, edit); err != nil {
		log.Error("cell save failed", zap.Error(err))
		uierrors.JSON(w, http.StatusOK, res)
		return
	}
	res.Saved = true
	res.Code = edit.Code
	res.Style = style
	log.Info("cell saved", zap.Bool("code_changed", edit.Code != nil), zap.Bool("style_changed", setStyle))
	uierrors.JSON(w, http.StatusOK, res)
}

// parseStyle decodes the three-way style field. set is false when the field
// was absent; style is nil when it was null.
func parseStyle(raw json.RawMessage) (set bool, style *models.StyleOverride, err error) {
	if len(raw) == 0 {
		return false, nil, nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return true, nil, nil
	}
	var s models.StyleOverride
	if err := json.Unmarshal(raw, &s); err != nil {
		return false, nil, err
	}
	s.TextColor = strings.TrimSpace(s.TextColor)
	s.BackgroundColor = strings.TrimSpace(s.BackgroundColor)
	if s.TextColor == "" && s.BackgroundColor == "" {
		return true, nil, nil
	}
	return true, &s, nil
}
