// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/wardshift/internal/app/system/timeouts"
	"github.com/dalemusser/wardshift/internal/app/system/timezones"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := timezones.Load(); err != nil {
		logger.Error("timezone list failed to load", zap.Error(err))
		return err
	}
	timeouts.Configure(timeouts.Config{
		Ping:  appCfg.TimeoutPing,
		Read:  appCfg.TimeoutRead,
		Write: appCfg.TimeoutWrite,
	})
	logger.Info("wardshift ready",
		zap.String("ward_timezone", timezones.Label(appCfg.WardTimezone)),
		zap.Bool("cache_enabled", deps.Cache.Enabled()),
		zap.Duration("timeout_read", timeouts.Read()),
		zap.Duration("timeout_write", timeouts.Write()))
	return nil
}
