// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like ports, TLS,
// logging level and request limits. Everything specific to the ward
// scheduler lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI            string        // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase       string        // Database name within MongoDB
	MongoMaxPoolSize    uint64        // Upper bound on pooled connections
	MongoConnectTimeout time.Duration // Dial + first ping budget at startup

	// Optional Redis read-through cache for rosters and shift catalogs.
	// A blank RedisAddr disables it; stores then read Mongo directly.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	// WardTimezone decides what "today" is on the calendar and how
	// {date} path parameters are interpreted.
	WardTimezone string

	// WriteRateLimit caps PUT/POST requests per client IP per minute.
	// Zero disables the limiter.
	WriteRateLimit int

	// Store call budgets (see system/timeouts)
	TimeoutPing  time.Duration
	TimeoutRead  time.Duration
	TimeoutWrite time.Duration
}
