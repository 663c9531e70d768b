// internal/app/store/shiftcatalog/catalogstore.go
package catalogstore

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

// ErrInvalidCatalog wraps every validation failure from Save.
var ErrInvalidCatalog = errors.New("invalid shift catalog")

// Store provides access to the shift_options collection. One document per
// department, _id = department.
type Store struct {
	c     *mongo.Collection
	cache *doccache.Cache
}

// New creates a catalog store. cache may be nil.
func New(db *mongo.Database, cache *doccache.Cache) *Store {
	return &Store{c: db.Collection("shift_options"), cache: cache}
}

func cacheKey(department string) string {
	return "shift_options:" + department
}

// Get returns the catalog for department. found is false when none exists.
func (s *Store) Get(ctx context.Context, department string) (models.ShiftCatalog, bool, error) {
	var c models.ShiftCatalog
	if s.cache.Get(ctx, cacheKey(department), &c) {
		return c, true, nil
	}
	err := s.c.FindOne(ctx, bson.M{"_id": department}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ShiftCatalog{ID: department, Options: []models.ShiftOption{}}, false, nil
	}
	if err != nil {
		return models.ShiftCatalog{}, false, err
	}
	if c.Options == nil {
		c.Options = []models.ShiftOption{}
	}
	s.cache.Set(ctx, cacheKey(department), c)
	return c, true, nil
}

// Options returns the department's shift options. A missing catalog is an
// empty list; the resolver's built-in colors cover it.
func (s *Store) Options(ctx context.Context, department string) ([]models.ShiftOption, error) {
	c, _, err := s.Get(ctx, department)
	if err != nil {
		return nil, err
	}
	return c.Options, nil
}

// Save replaces the department's catalog. Codes must be non-blank and unique.
func (s *Store) Save(ctx context.Context, department string, opts []models.ShiftOption) (models.ShiftCatalog, error) {
	seen := make(map[string]bool, len(opts))
	for i, o := range opts {
		code := strings.TrimSpace(o.Code)
		if code == "" {
			return models.ShiftCatalog{}, fmt.Errorf("%w: option %d has no code", ErrInvalidCatalog, i)
		}
		if seen[code] {
			return models.ShiftCatalog{}, fmt.Errorf("%w: duplicate code %q", ErrInvalidCatalog, code)
		}
		seen[code] = true
		opts[i].Code = code
	}
	if opts == nil {
		opts = []models.ShiftOption{}
	}

	c := models.ShiftCatalog{ID: department, Options: opts}
	if _, err := s.c.ReplaceOne(ctx, bson.M{"_id": department}, c, options.Replace().SetUpsert(true)); err != nil {
		return models.ShiftCatalog{}, err
	}
	s.cache.Delete(ctx, cacheKey(department))
	return c, nil
}
