// internal/app/store/rosters/rosterstore.go
package rosterstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/wardshift/internal/app/system/doccache"
	"github.com/dalemusser/wardshift/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrInvalidRoster wraps every validation failure from Save.
var ErrInvalidRoster = errors.New("invalid roster")

// Store provides access to the rosters collection. One document per
// department, _id = department.
type Store struct {
	c     *mongo.Collection
	cache *doccache.Cache
}

// New creates a roster store. cache may be nil.
func New(db *mongo.Database, cache *doccache.Cache) *Store {
	return &Store{c: db.Collection("rosters"), cache: cache}
}

func cacheKey(department string) string {
	return "roster:" + department
}

// Get returns the roster document for department. found is false when the
// department has never saved a roster.
func (s *Store) Get(ctx context.Context, department string) (models.Roster, bool, error) {
	var r models.Roster
	if s.cache.Get(ctx, cacheKey(department), &r) {
		return r, true, nil
	}
	err := s.c.FindOne(ctx, bson.M{"_id": department}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Roster{ID: department, Members: []models.StaffMember{}}, false, nil
	}
	if err != nil {
		return models.Roster{}, false, err
	}
	if r.Members == nil {
		r.Members = []models.StaffMember{}
	}
	s.cache.Set(ctx, cacheKey(department), r)
	return r, true, nil
}

// Members returns the department's members in roster order. A missing roster
// is an empty list.
func (s *Store) Members(ctx context.Context, department string) ([]models.StaffMember, error) {
	r, _, err := s.Get(ctx, department)
	if err != nil {
		return nil, err
	}
	return models.Ordered(r.Members), nil
}

// Save replaces the department's roster. Members must have a non-empty id
// without '.' or '$', a known role, and an order unique within the roster.
func (s *Store) Save(ctx context.Context, department string, members []models.StaffMember) (models.Roster, error) {
	if err := Validate(members); err != nil {
		return models.Roster{}, err
	}
	for i := range members {
		members[i].Department = department
	}
	r := models.Roster{ID: department, Members: models.Ordered(members)}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.c.ReplaceOne(ctx, bson.M{"_id": department}, r, opts); err != nil {
		return models.Roster{}, err
	}
	s.cache.Delete(ctx, cacheKey(department))
	return r, nil
}

// Validate checks a member list before it is stored.
func Validate(members []models.StaffMember) error {
	ids := make(map[string]bool, len(members))
	orders := make(map[int]string, len(members))
	for _, m := range members {
		if strings.TrimSpace(m.ID) == "" {
			return fmt.Errorf("%w: member %q has no id", ErrInvalidRoster, m.Name)
		}
		if strings.ContainsAny(m.ID, ".$") {
			return fmt.Errorf("%w: member id %q may not contain '.' or '$'", ErrInvalidRoster, m.ID)
		}
		if ids[m.ID] {
			return fmt.Errorf("%w: duplicate member id %q", ErrInvalidRoster, m.ID)
		}
		ids[m.ID] = true
		if !models.ValidRole(m.Role) {
			return fmt.Errorf("%w: member %q has unknown role %q", ErrInvalidRoster, m.ID, m.Role)
		}
		if other, dup := orders[m.Order]; dup {
			return fmt.Errorf("%w: members %q and %q share order %d", ErrInvalidRoster, other, m.ID, m.Order)
		}
		orders[m.Order] = m.ID
	}
	return nil
}
