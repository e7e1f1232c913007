package session

import "time"

// Backends selectable through Config.Backend.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendCookie = "cookie"
)

// Config holds session settings loaded from the environment.
type Config struct {
	Name    string `env:"SESSION_NAME" envDefault:"sid"`
	Backend string `env:"SESSION_BACKEND" envDefault:"memory"`

	// TTL is the idle lifetime of stored data and the session cookie. Zero
	// keeps data forever and issues browser-session cookies.
	TTL             time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"10m"`

	// StrictIDs makes the server-side backends reject ids they did not issue.
	StrictIDs bool `env:"SESSION_STRICT_IDS" envDefault:"true"`

	// LockTimeout bounds how long a request waits for a session held by another request.
	LockTimeout time.Duration `env:"SESSION_LOCK_TIMEOUT" envDefault:"5s"`
	LockTTL     time.Duration `env:"SESSION_LOCK_TTL" envDefault:"30s"`
	RedisPrefix string        `env:"SESSION_REDIS_PREFIX" envDefault:"session:"`

	// Secret seals cookie-backed sessions. At least MinSecretLength bytes.
	Secret string `env:"SESSION_SECRET"`

	CookiePath     string `env:"SESSION_COOKIE_PATH" envDefault:"/"`
	CookieDomain   string `env:"SESSION_COOKIE_DOMAIN"`
	CookieSecure   bool   `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	CookieSameSite string `env:"SESSION_COOKIE_SAME_SITE" envDefault:"lax"`
}

// DefaultConfig returns the same values as the envDefault tags.
func DefaultConfig() Config {
	return Config{
		Name:            DefaultName,
		Backend:         BackendMemory,
		TTL:             24 * time.Hour,
		CleanupInterval: 10 * time.Minute,
		StrictIDs:       true,
		LockTimeout:     5 * time.Second,
		LockTTL:         30 * time.Second,
		RedisPrefix:     "session:",
		CookiePath:      "/",
		CookieSameSite:  "lax",
	}
}
