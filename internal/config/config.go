package config // package config loads application configuration from environment variables

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration values. Every field has a
// working default so the service starts with a completely bare
// environment; a .env file (loaded in main via godotenv) or real
// environment variables override them.
type Config struct {
	Env            string        // application environment (dev/test/prod)
	Port           string        // HTTP port to listen on
	DataDir        string        // directory holding the JSON collections
	BcryptCost     int           // bcrypt cost for password hashing (clamped to 10–12)
	SessionTTL     time.Duration // session lifetime from creation, no renewal
	SessionBackend string        // "memory" or "redis"
	EventsEnabled  bool          // publish task events to RabbitMQ
}

// Load reads configuration from the environment, falling back to
// defaults for anything unset.
func Load() Config {
	return Config{
		Env:            getenv("APP_ENV", "dev"),
		Port:           getenv("APP_PORT", "3000"),
		DataDir:        getenv("DATA_DIR", "data"),
		BcryptCost:     atoi(getenv("BCRYPT_COST", "12")),
		SessionTTL:     parseDur(getenv("SESSION_TTL", "24h")),
		SessionBackend: strings.ToLower(getenv("SESSION_BACKEND", "memory")),
		EventsEnabled:  envBool("EVENTS_ENABLED", false),
	}
}

// getenv returns the variable's value or def when unset/empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

// parseDur falls back to the 24h default on any unparseable or
// non-positive value rather than failing startup.
func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return strings.EqualFold(v, "true") || v == "1"
}
