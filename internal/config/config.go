package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr    string
	ServiceName string
	LogLevel    string

	OracleUser     string
	OraclePassword string
	OracleDSN      string // pgx connection string of the durable store

	RedisHost     string
	RedisPassword string
	RedisPort     string

	KafkaBrokers []string // empty disables OrderWritten events
	AuditGroup   string
	AuditWorkers int
}

// Load reads the environment. Every missing required key is reported.
func Load() (Config, error) {
	var missing []error
	required := func(k string) string {
		v, ok := os.LookupEnv(k)
		if !ok {
			missing = append(missing, fmt.Errorf("%s is required", k))
		}
		return v
	}

	cfg := Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		ServiceName: getenv("SERVICE_NAME", "order-cache-api"),
		LogLevel:    getenv("LOG_LEVEL", "info"),

		OracleUser:     required("ORACLE_USER"),
		OraclePassword: required("ORACLE_PASSWORD"),
		OracleDSN:      required("ORACLE_DSN"),

		RedisHost:     required("REDIS_HOST"),
		RedisPassword: required("REDIS_PASSWORD"),
		RedisPort:     required("REDIS_PORT"),

		KafkaBrokers: splitCSV(os.Getenv("KAFKA_BROKERS")),
		AuditGroup:   getenv("AUDIT_GROUP", "order-audit"),
	}
	if err := errors.Join(missing...); err != nil {
		return Config{}, err
	}

	workers, err := strconv.Atoi(getenv("AUDIT_WORKERS", "4"))
	if err != nil {
		return Config{}, fmt.Errorf("AUDIT_WORKERS: %w", err)
	}
	cfg.AuditWorkers = workers

	if _, err := strconv.ParseUint(cfg.RedisPort, 10, 16); err != nil {
		return Config{}, fmt.Errorf("REDIS_PORT: %w", err)
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
