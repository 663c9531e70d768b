// internal/app/store/schedules/schedulestore.go
package schedulestore

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dalemusser/wardshift/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrDayOutOfRange  = models.ErrDayOutOfRange
	ErrInvalidStaffID = models.ErrInvalidStaffID
)

// Store provides access to the schedules collection, one document per
// department per month (_id = "{department}-{YYYY-MM}").
//
// Writes are last-writer-wins: there is no version check, so two schedulers
// editing the same slot at once silently overwrite each other.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("schedules")}
}

// Get returns the month's schedule. found is false when nothing has been
// scheduled yet; the returned document is then empty but usable.
func (s *Store) Get(ctx context.Context, department string, ym models.YearMonth) (models.ScheduleDocument, bool, error) {
	var doc models.ScheduleDocument
	err := s.c.FindOne(ctx, bson.M{"_id": models.ScheduleID(department, ym)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.NewScheduleDocument(department, ym), false, nil
	}
	if err != nil {
		return models.ScheduleDocument{}, false, err
	}
	if doc.Schedule == nil {
		doc.Schedule = map[string]models.DaySlots{}
	}
	if doc.CellStyles == nil {
		doc.CellStyles = map[string]models.StyleOverride{}
	}
	return doc, true, nil
}

// SetSlot upserts one slot code. An empty code clears the slot.
func (s *Store) SetSlot(ctx context.Context, department string, ym models.YearMonth, k models.CellKey, code string) error {
	return s.SetCell(ctx, department, ym, k, models.CellEdit{Code: &code})
}

// SetStyle stores a per-cell override, or removes it when style is nil.
func (s *Store) SetStyle(ctx context.Context, department string, ym models.YearMonth, k models.CellKey, style *models.StyleOverride) error {
	return s.SetCell(ctx, department, ym, k, models.CellEdit{SetStyle: true, Style: style})
}

// SetCell applies a slot code and style change to one cell in a single
// update, so a failure never leaves half of the edit stored. An empty edit
// writes nothing.
func (s *Store) SetCell(ctx context.Context, department string, ym models.YearMonth, k models.CellKey, e models.CellEdit) error {
	if err := k.Check(ym); err != nil {
		return err
	}
	if e.Empty() {
		return nil
	}

	set := bson.M{}
	update := bson.M{}
	if e.Code != nil {
		path := "schedule." + k.StaffID + "." + strconv.Itoa(k.DayIndex) + "." + string(k.Slot)
		set[path] = strings.TrimSpace(*e.Code)
	}
	if e.SetStyle {
		path := "cellStyles." + k.String()
		if e.Style == nil {
			update["$unset"] = bson.M{path: ""}
		} else {
			set[path] = *e.Style
		}
	}
	if len(set) > 0 {
		update["$set"] = set
	}
	return s.upsert(ctx, department, ym, update)
}

// Replace overwrites the whole month document.
func (s *Store) Replace(ctx context.Context, doc models.ScheduleDocument) error {
	// Null maps would block later dotted-path $set updates.
	if doc.Schedule == nil {
		doc.Schedule = map[string]models.DaySlots{}
	}
	if doc.CellStyles == nil {
		doc.CellStyles = map[string]models.StyleOverride{}
	}
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

func (s *Store) upsert(ctx context.Context, department string, ym models.YearMonth, update bson.M) error {
	update["$setOnInsert"] = bson.M{
		"department": department,
		"yearMonth":  ym.String(),
	}
	filter := bson.M{"_id": models.ScheduleID(department, ym)}
	opts := options.Update().SetUpsert(true)

	_, err := s.c.UpdateOne(ctx, filter, update, opts)
	if err != nil && wafflemongo.IsDup(err) {
		// Two first-writes for the same month raced on insert; the document
		// exists now, so a second attempt is a plain update.
		_, err = s.c.UpdateOne(ctx, filter, update, opts)
	}
	return err
}
