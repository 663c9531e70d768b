// internal/app/features/shiftgrid/handler.go
package shiftgrid

import (
	"context"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/wardshift/internal/app/features/errors"
	"github.com/dalemusser/wardshift/internal/app/system/calendar"
	"github.com/dalemusser/wardshift/internal/app/system/requestid"
	"github.com/dalemusser/wardshift/internal/app/system/wardload"
	"github.com/dalemusser/wardshift/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MonthLoader returns everything needed to draw one ward's month.
type MonthLoader interface {
	LoadMonth(ctx context.Context, department string, ym models.YearMonth) wardload.Month
}

// CellWriter persists single-cell edits. Code and style land in one write.
type CellWriter interface {
	SetCell(ctx context.Context, department string, ym models.YearMonth, k models.CellKey, e models.CellEdit) error
}

// Handler serves the monthly shift grid.
type Handler struct {
	Months MonthLoader
	Cells  CellWriter
	Loc    *time.Location
	Now    calendar.Clock
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler builds a Handler that reads the wall clock in loc.
func NewHandler(months MonthLoader, cells CellWriter, loc *time.Location, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		Months: months,
		Cells:  cells,
		Loc:    loc,
		Now:    time.Now,
		ErrLog: errLog,
		Log:    logger,
	}
}

// params pulls {dept} and {ym} from the route; ok is false once a 400 has
// been written.
func params(w http.ResponseWriter, r *http.Request) (string, models.YearMonth, bool) {
	dept := chi.URLParam(r, "dept")
	ym, err := models.ParseYearMonth(chi.URLParam(r, "ym"))
	if err != nil {
		uierrors.BadRequest(w, r, err.Error())
		return "", models.YearMonth{}, false
	}
	return dept, ym, true
}

// ServeMonth handles GET /schedule/{dept}/{ym}.
//
// Store failures never surface here: the loader substitutes an empty roster,
// the sample catalog or an empty schedule, and the grid is drawn anyway.
func (h *Handler) ServeMonth(w http.ResponseWriter, r *http.Request) {
	dept, ym, ok := params(w, r)
	if !ok {
		return
	}
	m := h.Months.LoadMonth(r.Context(), dept, ym)
	view := BuildView(m, h.Loc, h.Now())

	requestid.Logger(r.Context(), h.Log).Debug("shift grid served",
		zap.String("department", dept),
		zap.String("year_month", ym.String()),
		zap.Int("rows", len(view.Rows)))
	uierrors.JSON(w, http.StatusOK, view)
}
