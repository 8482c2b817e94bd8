package config

import (
	"os"
	"strings"
	"testing"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("ORACLE_USER", "app")
	t.Setenv("ORACLE_PASSWORD", "secret")
	t.Setenv("ORACLE_DSN", "postgres://db:5432/orders")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PASSWORD", "")
	t.Setenv("REDIS_PORT", "6379")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("KAFKA_BROKERS", " k1:9092, ,k2:9092 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.ServiceName != "order-cache-api" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.RedisPassword != "" || cfg.RedisPort != "6379" {
		t.Errorf("unexpected redis settings: %+v", cfg)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Errorf("unexpected brokers %v", cfg.KafkaBrokers)
	}
	if cfg.AuditWorkers != 4 {
		t.Errorf("AuditWorkers = %d", cfg.AuditWorkers)
	}
}

func TestLoadReportsEveryMissingKey(t *testing.T) {
	for _, k := range []string{"ORACLE_USER", "ORACLE_PASSWORD", "ORACLE_DSN", "REDIS_HOST", "REDIS_PASSWORD", "REDIS_PORT"} {
		t.Setenv(k, "")
	}
	// t.Setenv restores the originals; Unsetenv makes these two absent.
	os.Unsetenv("ORACLE_DSN")
	os.Unsetenv("REDIS_PORT")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, k := range []string{"ORACLE_DSN", "REDIS_PORT"} {
		if !strings.Contains(msg, k+" is required") {
			t.Errorf("error %q does not name %s", msg, k)
		}
	}
	if strings.Contains(msg, "ORACLE_USER") {
		t.Errorf("ORACLE_USER is set (empty) and must not be reported: %q", msg)
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	setRequired(t)
	t.Setenv("REDIS_PORT", "not-a-port")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "REDIS_PORT") {
		t.Fatalf("expected REDIS_PORT error, got %v", err)
	}
}
