package mcpserver

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cast"
)

// serverConfig carries the server's tunables. It is read once, from APIDOC_*
// environment variables, when the package loads.
type serverConfig struct {
	CacheEnabled       bool
	CacheMaxSize       int
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration

	// Defaults for tool inputs that leave them unset.
	ConfigFile       string
	StrictReferences bool
	CategoryLimit    int
	MaxLimit         int

	MaxFileSize    int64
	RequestTimeout time.Duration
}

var cfg = loadConfig()

func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       fromEnv("APIDOC_CACHE_ENABLED", true, cast.ToBoolE, nil),
		CacheMaxSize:       fromEnv("APIDOC_CACHE_MAX_SIZE", 10, cast.ToIntE, positive[int]),
		CacheTTL:           fromEnv("APIDOC_CACHE_TTL", 15*time.Minute, parseDuration, positive[time.Duration]),
		CacheSweepInterval: fromEnv("APIDOC_CACHE_SWEEP_INTERVAL", time.Minute, parseDuration, positive[time.Duration]),
		ConfigFile:         os.Getenv("APIDOC_CONFIG"),
		StrictReferences:   fromEnv("APIDOC_STRICT", false, cast.ToBoolE, nil),
		CategoryLimit:      fromEnv("APIDOC_CATEGORY_LIMIT", 100, cast.ToIntE, positive[int]),
		MaxLimit:           fromEnv("APIDOC_MAX_LIMIT", 1000, cast.ToIntE, positive[int]),
		MaxFileSize:        fromEnv("APIDOC_MAX_FILE_SIZE", int64(10<<20), cast.ToInt64E, positive[int64]),
		RequestTimeout:     fromEnv("APIDOC_REQUEST_TIMEOUT", 30*time.Second, parseDuration, positive[time.Duration]),
	}
}

// fromEnv parses the variable key, returning fallback when it is unset. A
// value that fails to parse, or that valid rejects, is reported and ignored.
func fromEnv[T any](key string, fallback T, parse func(any) (T, error), valid func(T) bool) T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err == nil && (valid == nil || valid(v)) {
		return v
	}
	slog.Warn("ignoring invalid environment variable", "key", key, "value", raw, "default", fallback)
	return fallback
}

func positive[T int | int64 | time.Duration](v T) bool { return v > 0 }

// parseDuration requires a unit ("90s", "15m"); cast would read a bare
// number as nanoseconds.
func parseDuration(v any) (time.Duration, error) {
	return time.ParseDuration(cast.ToString(v))
}
