// internal/app/features/wardsettings/handler.go
package wardsettings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/wardshift/internal/app/features/errors"
	rosterstore "github.com/dalemusser/wardshift/internal/app/store/rosters"
	catalogstore "github.com/dalemusser/wardshift/internal/app/store/shiftcatalog"
	"github.com/dalemusser/wardshift/internal/app/system/htmlsanitize"
	"github.com/dalemusser/wardshift/internal/app/system/limits"
	"github.com/dalemusser/wardshift/internal/app/system/requestid"
	"github.com/dalemusser/wardshift/internal/app/system/timeouts"
	"github.com/dalemusser/wardshift/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RosterStore reads and replaces ward rosters.
type RosterStore interface {
	Get(ctx context.Context, department string) (models.Roster, bool, error)
	Save(ctx context.Context, department string, members []models.StaffMember) (models.Roster, error)
}

// CatalogStore reads and replaces ward shift catalogs.
type CatalogStore interface {
	Get(ctx context.Context, department string) (models.ShiftCatalog, bool, error)
	Save(ctx context.Context, department string, opts []models.ShiftOption) (models.ShiftCatalog, error)
}

// Handler serves the per-ward roster and shift catalog documents.
type Handler struct {
	Rosters  RosterStore
	Catalogs CatalogStore
	Log      *zap.Logger
}

func NewHandler(rosters RosterStore, catalogs CatalogStore, logger *zap.Logger) *Handler {
	return &Handler{Rosters: rosters, Catalogs: catalogs, Log: logger}
}

type rosterResult struct {
	Department string               `json:"department"`
	Found      bool                 `json:"found"`
	Saved      *bool                `json:"saved,omitempty"`
	Members    []models.StaffMember `json:"members"`
}

type catalogResult struct {
	Department string               `json:"department"`
	Found      bool                 `json:"found"`
	Saved      *bool                `json:"saved,omitempty"`
	Options    []models.ShiftOption `json:"options"`
}

// ServeRoster handles GET /ward/{dept}/roster. A fetch failure is logged and
// answered with an empty roster.
func (h *Handler) ServeRoster(w http.ResponseWriter, r *http.Request) {
	dept := chi.URLParam(r, "dept")
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.Log, "get roster")
	defer cancel()

	roster, found, err := h.Rosters.Get(ctx, dept)
	if err != nil {
		requestid.Logger(r.Context(), h.Log).Warn("roster fetch failed; serving empty roster",
			zap.String("department", dept), zap.Error(err))
		roster, found = models.Roster{ID: dept}, false
	}
	members := models.Ordered(roster.Members)
	if members == nil {
		members = []models.StaffMember{}
	}
	uierrors.JSON(w, http.StatusOK, rosterResult{Department: dept, Found: found, Members: members})
}

// ServeSaveRoster handles PUT /ward/{dept}/roster with body {"members":[...]}.
// Invalid rosters are a 422; a failed write is reported as saved:false.
func (h *Handler) ServeSaveRoster(w http.ResponseWriter, r *http.Request) {
	dept := chi.URLParam(r, "dept")

	var in struct {
		Members []models.StaffMember `json:"members"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxDocumentBody)).Decode(&in); err != nil {
		uierrors.BadRequest(w, r, "invalid JSON body: "+err.Error())
		return
	}
	for i := range in.Members {
		in.Members[i].Name = htmlsanitize.PlainText(in.Members[i].Name)
	}

	log := requestid.Logger(r.Context(), h.Log).With(zap.String("department", dept))
	ctx, cancel := timeouts.Detached(r.Context(), timeouts.Write(), log, "save roster")
	defer cancel()

	saved, err := h.Rosters.Save(ctx, dept, in.Members)
	switch {
	case errors.Is(err, rosterstore.ErrInvalidRoster):
		uierrors.Unprocessable(w, r, err.Error())
		return
	case err != nil:
		log.Error("roster save failed", zap.Error(err))
		ok := false
		uierrors.JSON(w, http.StatusOK, rosterResult{Department: dept, Saved: &ok, Members: in.Members})
		return
	}
	log.Info("roster saved", zap.Int("members", len(saved.Members)))
	ok := true
	uierrors.JSON(w, http.StatusOK, rosterResult{Department: dept, Found: true, Saved: &ok, Members: saved.Members})
}

// ServeShiftOptions handles GET /ward/{dept}/shift-options. A fetch failure
// is logged and answered with the built-in sample catalog.
func (h *Handler) ServeShiftOptions(w http.ResponseWriter, r *http.Request) {
	dept := chi.URLParam(r, "dept")
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.Log, "get shift options")
	defer cancel()

	cat, found, err := h.Catalogs.Get(ctx, dept)
	if err != nil {
		requestid.Logger(r.Context(), h.Log).Warn("shift catalog fetch failed; serving sample catalog",
			zap.String("department", dept), zap.Error(err))
		cat, found = models.ShiftCatalog{ID: dept, Options: models.SampleShiftOptions()}, false
	}
	opts := cat.Options
	if opts == nil {
		opts = []models.ShiftOption{}
	}
	uierrors.JSON(w, http.StatusOK, catalogResult{Department: dept, Found: found, Options: opts})
}

// ServeSaveShiftOptions handles PUT /ward/{dept}/shift-options with body
// {"options":[...]}.
func (h *Handler) ServeSaveShiftOptions(w http.ResponseWriter, r *http.Request) {
	dept := chi.URLParam(r, "dept")

	var in struct {
		Options []models.ShiftOption `json:"options"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxDocumentBody)).Decode(&in); err != nil {
		uierrors.BadRequest(w, r, "invalid JSON body: "+err.Error())
		return
	}
	for i := range in.Options {
		in.Options[i].DisplayName = htmlsanitize.PlainText(in.Options[i].DisplayName)
	}

	log := requestid.Logger(r.Context(), h.Log).With(zap.String("department", dept))
	ctx, cancel := timeouts.Detached(r.Context(), timeouts.Write(), log, "save shift options")
	defer cancel()

	saved, err := h.Catalogs.Save(ctx, dept, in.Options)
	switch {
	case errors.Is(err, catalogstore.ErrInvalidCatalog):
		uierrors.Unprocessable(w, r, err.Error())
		return
	case err != nil:
		log.Error("shift catalog save failed", zap.Error(err))
		ok := false
		uierrors.JSON(w, http.StatusOK, catalogResult{Department: dept, Saved: &ok, Options: in.Options})
		return
	}
	log.Info("shift catalog saved", zap.Int("options", len(saved.Options)))
	ok := true
	uierrors.JSON(w, http.StatusOK, catalogResult{Department: dept, Found: true, Saved: &ok, Options: saved.Options})
}
