// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	dutysheetfeature "github.com/dalemusser/wardshift/internal/app/features/dutysheet"
	errorsfeature "github.com/dalemusser/wardshift/internal/app/features/errors"
	healthfeature "github.com/dalemusser/wardshift/internal/app/features/health"
	shiftgridfeature "github.com/dalemusser/wardshift/internal/app/features/shiftgrid"
	wardsettingsfeature "github.com/dalemusser/wardshift/internal/app/features/wardsettings"
	"github.com/dalemusser/wardshift/internal/app/system/ratelimit"
	"github.com/dalemusser/wardshift/internal/app/system/requestid"
	"github.com/dalemusser/wardshift/internal/app/system/timezones"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// wardshift is a JSON API: the monthly shift grid under /schedule, daily
// duty sheets under /assignments and the roster/catalog documents under /ward.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	loc, err := timezones.Location(appCfg.WardTimezone)
	if err != nil {
		logger.Error("ward timezone unusable", zap.String("ward_timezone", appCfg.WardTimezone), zap.Error(err))
		return nil, err
	}

	svc := NewServices(deps, logger)

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)
	if appCfg.WriteRateLimit > 0 {
		r.Use(ratelimit.Writes(ratelimit.New(appCfg.WriteRateLimit, time.Minute), errorsfeature.TooManyRequests))
	}
	r.NotFound(errorsfeature.NotFound)
	r.MethodNotAllowed(errorsfeature.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.WardMongoClient, deps.Cache, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Monthly shift grid
	gridHandler := shiftgridfeature.NewHandler(svc.Loader, svc.Schedules, loc, errLog, logger)
	r.Mount("/schedule", shiftgridfeature.Routes(gridHandler))

	// Daily duty sheets
	sheetHandler := dutysheetfeature.NewHandler(svc.Loader, svc.Assignments, loc, logger)
	r.Mount("/assignments", dutysheetfeature.Routes(sheetHandler))

	// Roster and shift catalog documents
	settingsHandler := wardsettingsfeature.NewHandler(svc.Rosters, svc.Catalogs, logger)
	r.Mount("/ward", wardsettingsfeature.Routes(settingsHandler))

	return r, nil
}
