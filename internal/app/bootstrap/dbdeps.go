// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/wardshift/internal/app/system/doccache"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	WardMongoClient   *mongo.Client
	WardMongoDatabase *mongo.Database

	// Cache is nil when Redis is not configured.
	Cache *doccache.Cache
}
