package config

import (
	"errors"

	"github.com/knadh/koanf/maps"
)

const (
	defaultServerPort = 8080

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"log.level":  "info",
		"log.format": "json",

		"storage.backend":                         BackendFile,
		"storage.dir":                             "data",
		"storage.sqlite_path":                     "data/boardstate.db",
		"storage.key_prefix":                      "boardstate:",
		"storage.write_timeout":                   "2s",
		"storage.hydrate_on_start":                true,
		"storage.redis.addr":                      "localhost:6379",
		"storage.redis.password":                  "",
		"storage.redis.db":                        0,
		"storage.retry.max_attempts":              defaultRetryMaxAttempts,
		"storage.retry.initial_interval":          "50ms",
		"storage.retry.max_interval":              "1s",
		"storage.retry.multiplier":                defaultRetryMultiplier,
		"storage.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"storage.circuit_breaker.timeout":         "30s",
		"storage.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"storage.rate_limit.requests_per_second":  0,
		"storage.rate_limit.burst_size":           0,

		"telemetry.enabled":  false,
		"telemetry.exporter": "stdout",
		"telemetry.endpoint": "",

		"telemetry.service_name": "boardstate",
	}
}

// defaultsProvider feeds defaults() to koanf as the lowest-precedence layer.
type defaultsProvider struct{}

func (defaultsProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("defaults provider does not support ReadBytes")
}

func (defaultsProvider) Read() (map[string]any, error) {
	return maps.Unflatten(defaults(), "."), nil
}
