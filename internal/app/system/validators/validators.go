// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/wardshift/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	// helper: ensure collection exists (with truthful logging) and then validator (if provided)
	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			// DocumentDB or other deployments may not support collMod/validators.
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	// Ward settings
	ensure("rosters", rostersSchema())
	ensure("shift_options", shiftOptionsSchema())

	// Month grids and saved duty sheets
	ensure("schedules", schedulesSchema())
	ensure("assignments", assignmentsSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

// Nil Go maps and slices encode as null, so container fields accept null.
var (
	arrayOrNull  = bson.A{"array", "null"}
	objectOrNull = bson.A{"object", "null"}
)

func rostersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"members"},
			"properties": bson.M{
				"members": bson.M{
					"bsonType": arrayOrNull,
					"items": bson.M{
						"bsonType": "object",
						"required": bson.A{"id", "role"},
						"properties": bson.M{
							"id":    bson.M{"bsonType": "string", "minLength": 1},
							"name":  bson.M{"bsonType": "string"},
							"role":  bson.M{"enum": roleEnum()},
							"order": bson.M{"bsonType": bson.A{"int", "long"}},
						},
					},
				},
			},
		},
	}
}

func shiftOptionsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"options"},
			"properties": bson.M{
				"options": bson.M{
					"bsonType": arrayOrNull,
					"items": bson.M{
						"bsonType": "object",
						"required": bson.A{"code"},
						"properties": bson.M{
							"code":            bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
							"displayName":     bson.M{"bsonType": "string"},
							"backgroundColor": bson.M{"bsonType": "string"},
							"textColor":       bson.M{"bsonType": "string"},
						},
					},
				},
			},
		},
	}
}

func schedulesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"department", "yearMonth"},
			"properties": bson.M{
				"department": bson.M{"bsonType": "string", "minLength": 1},
				"yearMonth":  bson.M{"bsonType": "string", "pattern": "^[0-9]{4}-[0-9]{2}$"},
				"schedule":   bson.M{"bsonType": objectOrNull},
				"cellStyles": bson.M{"bsonType": objectOrNull},
			},
		},
	}
}

func assignmentsSchema() bson.M {
	bucket := bson.M{
		"bsonType": "object",
		"properties": bson.M{
			"nurses":     bson.M{"bsonType": arrayOrNull},
			"assistants": bson.M{"bsonType": arrayOrNull},
		},
	}
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"department", "date", "assignments"},
			"properties": bson.M{
				"department": bson.M{"bsonType": "string", "minLength": 1},
				"date":       bson.M{"bsonType": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
				"assignments": bson.M{
					"bsonType": "object",
					"properties": bson.M{
						"morning":   bucket,
						"afternoon": bucket,
						"night":     bucket,
					},
				},
				"savedAt": bson.M{"bsonType": bson.A{"date", "null"}},
				"savedBy": bson.M{"bsonType": "string"},
			},
		},
	}
}

func roleEnum() bson.A {
	return bson.A{
		models.RoleNurse,
		models.RoleNursingAssistant,
		models.RolePatientCareAssistant,
		models.RoleSupervisor,
	}
}
