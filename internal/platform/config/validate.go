package config

import (
	"errors"
	"fmt"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Storage.validate(),
		c.Telemetry.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (st *StorageConfig) validate() error {
	var errs []error

	switch st.Backend {
	case BackendMemory:
	case BackendFile:
		if st.Dir == "" {
			errs = append(errs, errors.New("storage.dir must not be empty when backend is file"))
		}
	case BackendSQLite:
		if st.SQLitePath == "" {
			errs = append(errs, errors.New("storage.sqlite_path must not be empty when backend is sqlite"))
		}
	case BackendRedis:
		if st.Redis.Addr == "" {
			errs = append(errs, errors.New("storage.redis.addr must not be empty when backend is redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.backend must be one of: memory, file, sqlite, redis; got %q",
			st.Backend))
	}

	if st.WriteTimeout <= 0 {
		errs = append(errs, errors.New("storage.write_timeout must be positive"))
	}
	if st.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("storage.retry.max_attempts must be >= 1, got %d", st.Retry.MaxAttempts))
	}
	if st.Retry.Multiplier <= 0 {
		errs = append(errs, fmt.Errorf("storage.retry.multiplier must be positive, got %f", st.Retry.Multiplier))
	}
	if st.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("storage.circuit_breaker.max_failures must be >= 1, got %d",
			st.CircuitBreaker.MaxFailures))
	}
	if st.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("storage.rate_limit.requests_per_second must not be negative, got %f",
			st.RateLimit.RequestsPerSecond))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}
