// internal/app/features/dutysheet/handler.go
package dutysheet

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/wardshift/internal/app/features/errors"
	"github.com/dalemusser/wardshift/internal/app/system/limits"
	"github.com/dalemusser/wardshift/internal/app/system/requestid"
	"github.com/dalemusser/wardshift/internal/app/system/wardload"
	"github.com/dalemusser/wardshift/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SheetService loads, saves and regenerates duty sheets.
type SheetService interface {
	LoadSheet(ctx context.Context, department string, date time.Time) wardload.Sheet
	Save(ctx context.Context, department string, date time.Time, periods models.DutyPeriods, savedBy string) (models.AssignmentDocument, error)
	Regenerate(ctx context.Context, department string, date time.Time, savedBy string) (models.AssignmentDocument, error)
}

// DateLister lists dates that already have a saved sheet.
type DateLister interface {
	ListDates(ctx context.Context, department string, ym models.YearMonth) ([]string, error)
}

// Handler serves daily duty sheets.
type Handler struct {
	Sheets SheetService
	Dates  DateLister
	Loc    *time.Location
	Log    *zap.Logger
}

func NewHandler(sheets SheetService, dates DateLister, loc *time.Location, logger *zap.Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{Sheets: sheets, Dates: dates, Loc: loc, Log: logger}
}

// saveBody is the body of PUT /assignments/{dept}/{date}.
type saveBody struct {
	Assignments *models.DutyPeriods `json:"assignments"`
	SavedBy     string              `json:"savedBy"`
}

// saveResult answers both PUT and regenerate. On failure Saved is false and
// Document holds what the client sent (or what was generated), unsaved.
type saveResult struct {
	Saved    bool                      `json:"saved"`
	State    string                    `json:"state"`
	Document models.AssignmentDocument `json:"document"`
}

func (h *Handler) params(w http.ResponseWriter, r *http.Request) (string, time.Time, bool) {
	dept := chi.URLParam(r, "dept")
	date, err := models.ParseISODate(chi.URLParam(r, "date"), h.Loc)
	if err != nil {
		uierrors.BadRequest(w, r, err.Error())
		return "", time.Time{}, false
	}
	return dept, date, true
}

// ServeSheet handles GET /assignments/{dept}/{date}.
//
// Returns the saved sheet with state "existing", or one derived from the
// schedule with state "generated". A generated sheet is not stored until the
// client PUTs it.
func (h *Handler) ServeSheet(w http.ResponseWriter, r *http.Request) {
	dept, date, ok := h.params(w, r)
	if !ok {
		return
	}
	sheet := h.Sheets.LoadSheet(r.Context(), dept, date)
	requestid.Logger(r.Context(), h.Log).Debug("duty sheet served",
		zap.String("department", dept),
		zap.String("date", sheet.Document.Date),
		zap.String("state", sheet.State))
	uierrors.JSON(w, http.StatusOK, sheet)
}

// ServeSave handles PUT /assignments/{dept}/{date}: a full overwrite, last
// writer wins.
func (h *Handler) ServeSave(w http.ResponseWriter, r *http.Request) {
	dept, date, ok := h.params(w, r)
	if !ok {
		return
	}

	var in saveBody
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxSheetBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		uierrors.BadRequest(w, r, "invalid JSON body: "+err.Error())
		return
	}
	if in.Assignments == nil {
		uierrors.BadRequest(w, r, "assignments is required")
		return
	}

	doc, err := h.Sheets.Save(r.Context(), dept, date, *in.Assignments, in.SavedBy)
	if err != nil {
		isoDate := models.ISODate(date)
		in.Assignments.Normalize()
		uierrors.JSON(w, http.StatusOK, saveResult{
			Saved: false,
			State: wardload.StateGenerated,
			Document: models.AssignmentDocument{
				ID:          models.AssignmentDocID(dept, isoDate),
				Department:  dept,
				Date:        isoDate,
				Assignments: *in.Assignments,
			},
		})
		return
	}
	uierrors.JSON(w, http.StatusOK, saveResult{Saved: true, State: wardload.StateSaved, Document: doc})
}

// ServeRegenerate handles POST /assignments/{dept}/{date}/regenerate. It
// discards the saved sheet and stores a fresh one derived from the schedule.
func (h *Handler) ServeRegenerate(w http.ResponseWriter, r *http.Request) {
	dept, date, ok := h.params(w, r)
	if !ok {
		return
	}

	var in struct {
		SavedBy string `json:"savedBy"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxCellBody)).Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		uierrors.BadRequest(w, r, "invalid JSON body: "+err.Error())
		return
	}

	doc, err := h.Sheets.Regenerate(r.Context(), dept, date, in.SavedBy)
	if err != nil {
		uierrors.JSON(w, http.StatusOK, saveResult{Saved: false, State: wardload.StateGenerated})
		return
	}
	uierrors.JSON(w, http.StatusOK, saveResult{Saved: true, State: wardload.StateSaved, Document: doc})
}

type datesResult struct {
	Department string   `json:"department"`
	Month      string   `json:"month"`
	Dates      []string `json:"dates"`
}

// ServeDates handles GET /assignments/{dept}?month=YYYY-MM.
func (h *Handler) ServeDates(w http.ResponseWriter, r *http.Request) {
	dept := chi.URLParam(r, "dept")
	ym, err := models.ParseYearMonth(r.URL.Query().Get("month"))
	if err != nil {
		uierrors.BadRequest(w, r, err.Error())
		return
	}

	dates, err := h.Dates.ListDates(r.Context(), dept, ym)
	if err != nil {
		requestid.Logger(r.Context(), h.Log).Warn("saved dates fetch failed; reporting none",
			zap.String("department", dept),
			zap.String("year_month", ym.String()),
			zap.Error(err))
		dates = nil
	}
	if dates == nil {
		dates = []string{}
	}
	uierrors.JSON(w, http.StatusOK, datesResult{Department: dept, Month: ym.String(), Dates: dates})
}
