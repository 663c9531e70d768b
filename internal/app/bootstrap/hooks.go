// internal/app/bootstrap/hooks.go
package bootstrap

import (
	"github.com/dalemusser/waffle/app"
)

// Hooks wires wardshift into WAFFLE's lifecycle: config, MongoDB and the
// optional Redis cache, collection validators and indexes, then the JSON API.
var Hooks = app.Hooks[AppConfig, DBDeps]{
	Name:           "wardshift",
	LoadConfig:     LoadConfig,
	ValidateConfig: ValidateConfig,
	ConnectDB:      ConnectDB,
	EnsureSchema:   EnsureSchema,
	Startup:        Startup,
	BuildHandler:   BuildHandler,
	Shutdown:       Shutdown,
}
