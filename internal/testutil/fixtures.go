package testutil

import (
	"context"
	"net/http"
	"testing"

	"github.com/dalemusser/wardshift/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParams adds chi URL parameters (key, value pairs) to the request
// context so handlers can be called directly in tests.
func WithChiURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures inserts ward documents directly into a test database.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures for db.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateRoster stores a roster document for department.
func (f *Fixtures) CreateRoster(ctx context.Context, department string, members ...models.StaffMember) models.Roster {
	f.t.Helper()
	for i := range members {
		members[i].Department = department
	}
	r := models.Roster{ID: department, Members: members}
	if _, err := f.db.Collection("rosters").InsertOne(ctx, r); err != nil {
		f.t.Fatalf("failed to create test roster: %v", err)
	}
	return r
}

// CreateCatalog stores a shift catalog document for department.
func (f *Fixtures) CreateCatalog(ctx context.Context, department string, options ...models.ShiftOption) models.ShiftCatalog {
	f.t.Helper()
	c := models.ShiftCatalog{ID: department, Options: options}
	if _, err := f.db.Collection("shift_options").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test catalog: %v", err)
	}
	return c
}

// CreateSchedule stores a schedule document as given.
func (f *Fixtures) CreateSchedule(ctx context.Context, doc models.ScheduleDocument) models.ScheduleDocument {
	f.t.Helper()
	if _, err := f.db.Collection("schedules").InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to create test schedule: %v", err)
	}
	return doc
}
