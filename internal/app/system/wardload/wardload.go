// Package wardload gathers the documents a ward screen needs and turns store
// failures into safe defaults.
//
// Fetches for one screen run concurrently. A failed fetch is logged and
// replaced (empty roster, built-in sample catalog, empty schedule); it is never
// returned to the caller, so the grid and duty sheet always render. Saves are
// the exception: their errors are returned so the caller can report that
// nothing was saved. Defaults never feed a write: Regenerate fetches strictly,
// and a Sheet built from a failed fetch is marked Degraded.
package wardload

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/wardshift/internal/app/system/dutygen"
	"github.com/dalemusser/wardshift/internal/app/system/htmlsanitize"
	"github.com/dalemusser/wardshift/internal/app/system/timeouts"
	"github.com/dalemusser/wardshift/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RosterSource supplies a department's members in roster order.
type RosterSource interface {
	Members(ctx context.Context, department string) ([]models.StaffMember, error)
}

// CatalogSource supplies a department's shift options.
type CatalogSource interface {
	Options(ctx context.Context, department string) ([]models.ShiftOption, error)
}

// ScheduleSource reads month schedules.
type ScheduleSource interface {
	Get(ctx context.Context, department string, ym models.YearMonth) (models.ScheduleDocument, bool, error)
}

// AssignmentStore reads and overwrites duty sheets.
type AssignmentStore interface {
	Get(ctx context.Context, department, isoDate string) (models.AssignmentDocument, bool, error)
	Save(ctx context.Context, department, isoDate string, periods models.DutyPeriods, savedBy string) (models.AssignmentDocument, error)
}

// Sheet states reported to clients.
const (
	StateExisting  = "existing"  // loaded from the store
	StateGenerated = "generated" // derived from the schedule, not yet saved
	StateSaved     = "saved"
)

// Loader wires the sources together.
type Loader struct {
	Rosters     RosterSource
	Catalogs    CatalogSource
	Schedules   ScheduleSource
	Assignments AssignmentStore
	Log         *zap.Logger
}

// New builds a Loader.
func New(rosters RosterSource, catalogs CatalogSource, schedules ScheduleSource, assignments AssignmentStore, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{Rosters: rosters, Catalogs: catalogs, Schedules: schedules, Assignments: assignments, Log: logger}
}

// Month is everything the shift grid needs for one department and month.
type Month struct {
	Department string
	YearMonth  models.YearMonth
	Roster     []models.StaffMember
	Catalog    []models.ShiftOption
	Schedule   models.ScheduleDocument
}

// LoadMonth fetches roster, catalog and schedule concurrently.
func (l *Loader) LoadMonth(ctx context.Context, department string, ym models.YearMonth) Month {
	m := Month{Department: department, YearMonth: ym}

	var g errgroup.Group
	g.Go(func() error {
		m.Roster, _ = l.roster(ctx, department)
		return nil
	})
	g.Go(func() error {
		m.Catalog = l.catalog(ctx, department)
		return nil
	})
	g.Go(func() error {
		m.Schedule, _ = l.schedule(ctx, department, ym)
		return nil
	})
	_ = g.Wait()
	return m
}

// Sheet is a duty sheet plus where it came from.
//
// Degraded is set when any fetch behind the sheet failed and was replaced by
// a default. A degraded sheet renders but must not be saved as-is: a
// "generated" state may be hiding a stored sheet that could not be read.
type Sheet struct {
	State    string                    `json:"state"`
	Document models.AssignmentDocument `json:"document"`
	Roster   []models.StaffMember      `json:"roster"`
	Degraded bool                      `json:"degraded,omitempty"`
}

// LoadSheet returns the saved sheet for date, or a freshly generated one when
// none exists. A generated sheet is not persisted here; the caller saves it
// explicitly. An existing sheet is returned as stored even if the schedule
// has changed since.
func (l *Loader) LoadSheet(ctx context.Context, department string, date time.Time) Sheet {
	isoDate := models.ISODate(date)
	ym := models.YearMonthOf(date)

	var (
		roster     []models.StaffMember
		schedule   models.ScheduleDocument
		existing   models.AssignmentDocument
		found      bool
		rosterOK   bool
		scheduleOK bool
		sheetOK    bool
	)

	var g errgroup.Group
	g.Go(func() error {
		roster, rosterOK = l.roster(ctx, department)
		return nil
	})
	g.Go(func() error {
		schedule, scheduleOK = l.schedule(ctx, department, ym)
		return nil
	})
	g.Go(func() error {
		existing, found, sheetOK = l.assignment(ctx, department, isoDate)
		return nil
	})
	_ = g.Wait()

	if found {
		return Sheet{State: StateExisting, Document: existing, Roster: roster, Degraded: !rosterOK}
	}
	return Sheet{
		State:    StateGenerated,
		Document: generated(department, date, schedule, roster),
		Roster:   roster,
		Degraded: !(rosterOK && scheduleOK && sheetOK),
	}
}

// Save cleans the sheet and overwrites the stored document. The write is not
// tied to ctx's cancellation: once issued it runs until done or timed out.
func (l *Loader) Save(ctx context.Context, department string, date time.Time, periods models.DutyPeriods, savedBy string) (models.AssignmentDocument, error) {
	Clean(&periods)

	wctx, cancel := timeouts.Detached(ctx, timeouts.Write(), l.Log, "save duty sheet")
	defer cancel()

	doc, err := l.Assignments.Save(wctx, department, models.ISODate(date), periods, htmlsanitize.PlainText(savedBy))
	if err != nil {
		l.Log.Error("duty sheet save failed",
			zap.String("department", department),
			zap.String("date", models.ISODate(date)),
			zap.Error(err))
		return models.AssignmentDocument{}, err
	}
	return doc, nil
}

// Regenerate discards any saved edits for date and stores a sheet freshly
// derived from the current schedule and roster. Unlike the loaders it does
// not fall back to defaults: if either read fails nothing is written and the
// error is returned.
func (l *Loader) Regenerate(ctx context.Context, department string, date time.Time, savedBy string) (models.AssignmentDocument, error) {
	ym := models.YearMonthOf(date)

	var (
		roster   []models.StaffMember
		schedule models.ScheduleDocument
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roster, err = l.fetchRoster(gctx, department)
		return err
	})
	g.Go(func() error {
		var err error
		schedule, err = l.fetchSchedule(gctx, department, ym)
		return err
	})
	if err := g.Wait(); err != nil {
		l.Log.Error("duty sheet regeneration aborted; saved sheet left untouched",
			zap.String("department", department),
			zap.String("date", models.ISODate(date)),
			zap.Error(err))
		return models.AssignmentDocument{}, fmt.Errorf("regenerate: %w", err)
	}

	doc := generated(department, date, schedule, roster)
	l.Log.Info("regenerating duty sheet",
		zap.String("department", department),
		zap.String("date", doc.Date),
		zap.String("saved_by", savedBy))
	return l.Save(ctx, department, date, doc.Assignments, savedBy)
}

// Clean strips markup from free-text fields and re-derives assistant ERT
// from team.
func Clean(p *models.DutyPeriods) {
	p.Normalize()
	for _, b := range []*models.PeriodBucket{&p.Morning, &p.Afternoon, &p.Night} {
		for _, rows := range [][]models.Assignment{b.Nurses, b.Assistants} {
			for i := range rows {
				rows[i].Bed = htmlsanitize.PlainText(rows[i].Bed)
				rows[i].Duty = htmlsanitize.PlainText(rows[i].Duty)
				rows[i].Team = htmlsanitize.PlainText(rows[i].Team)
			}
		}
	}
	dutygen.ApplyTeams(p)
}

func generated(department string, date time.Time, schedule models.ScheduleDocument, roster []models.StaffMember) models.AssignmentDocument {
	isoDate := models.ISODate(date)
	return models.AssignmentDocument{
		ID:          models.AssignmentDocID(department, isoDate),
		Department:  department,
		Date:        isoDate,
		Assignments: dutygen.Generate(date, schedule, roster),
	}
}

func (l *Loader) fetchRoster(ctx context.Context, department string) ([]models.StaffMember, error) {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Read(), l.Log, "load roster")
	defer cancel()
	return l.Rosters.Members(ctx, department)
}

func (l *Loader) fetchSchedule(ctx context.Context, department string, ym models.YearMonth) (models.ScheduleDocument, error) {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Read(), l.Log, "load schedule")
	defer cancel()
	doc, _, err := l.Schedules.Get(ctx, department, ym)
	return doc, err
}

// roster reports false when the empty default was substituted.
func (l *Loader) roster(ctx context.Context, department string) ([]models.StaffMember, bool) {
	members, err := l.fetchRoster(ctx, department)
	if err != nil {
		l.Log.Warn("roster fetch failed; using empty roster",
			zap.String("department", department), zap.Error(err))
		return []models.StaffMember{}, false
	}
	return members, true
}

func (l *Loader) catalog(ctx context.Context, department string) []models.ShiftOption {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Read(), l.Log, "load shift catalog")
	defer cancel()
	opts, err := l.Catalogs.Options(ctx, department)
	if err != nil {
		l.Log.Warn("shift catalog fetch failed; using sample catalog",
			zap.String("department", department), zap.Error(err))
		return models.SampleShiftOptions()
	}
	return opts
}

func (l *Loader) schedule(ctx context.Context, department string, ym models.YearMonth) (models.ScheduleDocument, bool) {
	doc, err := l.fetchSchedule(ctx, department, ym)
	if err != nil {
		l.Log.Warn("schedule fetch failed; using empty schedule",
			zap.String("department", department),
			zap.String("year_month", ym.String()),
			zap.Error(err))
		return models.NewScheduleDocument(department, ym), false
	}
	return doc, true
}

// assignment returns the stored sheet and whether one exists. ok is false
// when the read failed, in which case found says nothing.
func (l *Loader) assignment(ctx context.Context, department, isoDate string) (doc models.AssignmentDocument, found, ok bool) {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Read(), l.Log, "load duty sheet")
	defer cancel()
	doc, found, err := l.Assignments.Get(ctx, department, isoDate)
	if err != nil {
		l.Log.Warn("duty sheet fetch failed; generating instead",
			zap.String("department", department),
			zap.String("date", isoDate),
			zap.Error(err))
		return models.AssignmentDocument{}, false, false
	}
	return doc, found, true
}
