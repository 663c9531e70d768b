// internal/app/store/assignments/assignmentstore.go
package assignmentstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/wardshift/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the assignments collection, one duty sheet per
// department per date (_id = "{department}-{YYYY-MM-DD}").
type Store struct {
	c   *mongo.Collection
	now func() time.Time
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("assignments"), now: time.Now}
}

// Get returns the saved sheet. found is false when the date has never been
// saved; callers then generate one from the schedule.
func (s *Store) Get(ctx context.Context, department, isoDate string) (models.AssignmentDocument, bool, error) {
	var doc models.AssignmentDocument
	err := s.c.FindOne(ctx, bson.M{"_id": models.AssignmentDocID(department, isoDate)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.AssignmentDocument{}, false, nil
	}
	if err != nil {
		return models.AssignmentDocument{}, false, err
	}
	doc.Assignments.Normalize()
	return doc, true, nil
}

// Save overwrites the whole sheet for the date. There is no merge and no
// version check: the last save wins.
func (s *Store) Save(ctx context.Context, department, isoDate string, periods models.DutyPeriods, savedBy string) (models.AssignmentDocument, error) {
	periods.Normalize()
	// Mongo stores milliseconds; truncate so a reload compares equal.
	now := s.now().UTC().Truncate(time.Millisecond)
	doc := models.AssignmentDocument{
		ID:          models.AssignmentDocID(department, isoDate),
		Department:  department,
		Date:        isoDate,
		Assignments: periods,
		SavedAt:     &now,
		SavedBy:     savedBy,
	}
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return models.AssignmentDocument{}, err
	}
	return doc, nil
}

// ListDates returns the dates in ym that have a saved sheet, ascending.
func (s *Store) ListDates(ctx context.Context, department string, ym models.YearMonth) ([]string, error) {
	prefix := ym.String() + "-"
	filter := bson.M{
		"department": department,
		"date":       bson.M{"$gte": prefix + "01", "$lte": prefix + "31"},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}}).
		SetProjection(bson.M{"date": 1})

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	dates := []string{}
	for cur.Next(ctx) {
		var row struct {
			Date string `bson:"date"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		dates = append(dates, row.Date)
	}
	return dates, cur.Err()
}

// Delete removes the sheet for a date. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, department, isoDate string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": models.AssignmentDocID(department, isoDate)})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
