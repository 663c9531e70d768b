// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/wardshift/internal/app/system/timeouts"
	"github.com/dalemusser/wardshift/internal/app/system/timezones"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for wardshift.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, ward_timezone, etc.
//   - Environment variables: WARDSHIFT_MONGO_URI, WARDSHIFT_WARD_TIMEZONE, etc.
//   - Command-line flags: --mongo_uri, --ward_timezone, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "wardshift", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 50, Desc: "MongoDB max connection pool size (default: 50)"},
	{Name: "mongo_connect_timeout", Default: "10s", Desc: "MongoDB connect and initial ping timeout"},

	// Redis document cache (optional)
	{Name: "redis_addr", Default: "", Desc: "Redis host:port for the roster/catalog cache (blank disables)"},
	{Name: "redis_password", Default: "", Desc: "Redis password"},
	{Name: "redis_db", Default: 0, Desc: "Redis logical database"},
	{Name: "cache_ttl", Default: "5m", Desc: "How long cached rosters and catalogs live"},

	{Name: "ward_timezone", Default: timezones.Default, Desc: "IANA zone used for today's date and {date} parameters"},

	{Name: "write_rate_limit", Default: 120, Desc: "Max write requests per client IP per minute (0 disables)"},

	// Store timeouts
	{Name: "timeout_ping", Default: "2s", Desc: "Health-check ping timeout"},
	{Name: "timeout_read", Default: "5s", Desc: "Per-document read timeout"},
	{Name: "timeout_write", Default: "10s", Desc: "Per-document write timeout"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, WARDSHIFT_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "WARDSHIFT", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:            appValues.String("mongo_uri"),
		MongoDatabase:       appValues.String("mongo_database"),
		MongoMaxPoolSize:    uint64(appValues.Int("mongo_max_pool_size")),
		MongoConnectTimeout: appValues.Duration("mongo_connect_timeout", 10*time.Second),

		RedisAddr:     appValues.String("redis_addr"),
		RedisPassword: appValues.String("redis_password"),
		RedisDB:       appValues.Int("redis_db"),
		CacheTTL:      appValues.Duration("cache_ttl", 5*time.Minute),

		WardTimezone:   appValues.String("ward_timezone"),
		WriteRateLimit: appValues.Int("write_rate_limit"),

		TimeoutPing:  appValues.Duration("timeout_ping", timeouts.DefaultPing),
		TimeoutRead:  appValues.Duration("timeout_read", timeouts.DefaultRead),
		TimeoutWrite: appValues.Duration("timeout_write", timeouts.DefaultWrite),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI and the ward timezone are checked here so a typo fails
// fast instead of surfacing on the first request.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return errors.New("mongo_database must not be empty")
	}
	if _, err := timezones.Location(appCfg.WardTimezone); err != nil {
		logger.Error("invalid ward timezone", zap.String("ward_timezone", appCfg.WardTimezone), zap.Error(err))
		return fmt.Errorf("invalid ward_timezone: %w", err)
	}
	if appCfg.RedisDB < 0 {
		return fmt.Errorf("redis_db must be >= 0, got %d", appCfg.RedisDB)
	}
	if appCfg.WriteRateLimit < 0 {
		return fmt.Errorf("write_rate_limit must be >= 0, got %d", appCfg.WriteRateLimit)
	}
	if appCfg.RedisAddr != "" && appCfg.CacheTTL <= 0 {
		return errors.New("cache_ttl must be positive when redis_addr is set")
	}
	return nil
}
