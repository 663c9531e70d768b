// internal/app/bootstrap/services.go
package bootstrap

import (
	assignmentstore "github.com/dalemusser/wardshift/internal/app/store/assignments"
	rosterstore "github.com/dalemusser/wardshift/internal/app/store/rosters"
	schedulestore "github.com/dalemusser/wardshift/internal/app/store/schedules"
	catalogstore "github.com/dalemusser/wardshift/internal/app/store/shiftcatalog"
	"github.com/dalemusser/wardshift/internal/app/system/wardload"
	"go.uber.org/zap"
)

// Services bundles the stores and the loader built on top of them. The HTTP
// handler and the operator CLI share it.
type Services struct {
	Rosters     *rosterstore.Store
	Catalogs    *catalogstore.Store
	Schedules   *schedulestore.Store
	Assignments *assignmentstore.Store
	Loader      *wardload.Loader
}

// NewServices builds the stores over deps. Roster and catalog reads go
// through deps.Cache when it is configured.
func NewServices(deps DBDeps, logger *zap.Logger) Services {
	db := deps.WardMongoDatabase
	s := Services{
		Rosters:     rosterstore.New(db, deps.Cache),
		Catalogs:    catalogstore.New(db, deps.Cache),
		Schedules:   schedulestore.New(db),
		Assignments: assignmentstore.New(db),
	}
	s.Loader = wardload.New(s.Rosters, s.Catalogs, s.Schedules, s.Assignments, logger)
	return s
}
