package config

import (
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/club-lineup/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("expected default env dev, got %q", cfg.AppEnv)
	}
	if cfg.DataBackend != BackendMemory {
		t.Fatalf("expected memory backend by default, got %q", cfg.DataBackend)
	}
	if cfg.EventLedgerMaxAttempts != 3 {
		t.Fatalf("unexpected EventLedgerMaxAttempts: %d", cfg.EventLedgerMaxAttempts)
	}
	if cfg.ParticipationMaxWorkers != 8 || cfg.BulkEventMaxWorkers != 4 {
		t.Fatalf("unexpected worker defaults: %d/%d", cfg.ParticipationMaxWorkers, cfg.BulkEventMaxWorkers)
	}
	if cfg.LineupSaveTimeout != 10*time.Second {
		t.Fatalf("unexpected LineupSaveTimeout: %s", cfg.LineupSaveTimeout)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %v", cfg.LogLevel)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORS default: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.PyroscopeAppName != cfg.ServiceName {
		t.Fatalf("expected pyroscope app name to default to service name")
	}
	if !cfg.SwaggerEnabled {
		t.Fatalf("expected swagger docs enabled by default")
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_DataBackendValidation(t *testing.T) {
	t.Setenv("DATA_BACKEND", "redis")
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "DATA_BACKEND") {
		t.Fatalf("expected DATA_BACKEND error, got %v", err)
	}
}

func TestLoad_GatewayRequiresBaseURL(t *testing.T) {
	t.Setenv("DATA_BACKEND", "gateway")
	t.Setenv("GATEWAY_BASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when gateway backend has no base url")
	}

	t.Setenv("GATEWAY_BASE_URL", "match-service.local")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for base url without scheme")
	}
}

func TestLoad_GatewayConfigParsing(t *testing.T) {
	t.Setenv("DATA_BACKEND", " Gateway ")
	t.Setenv("GATEWAY_BASE_URL", "https://match-service.local/api/")
	t.Setenv("GATEWAY_TOKEN", " token-1 ")
	t.Setenv("GATEWAY_TIMEOUT", "3s")
	t.Setenv("GATEWAY_MAX_RETRIES", "0")
	t.Setenv("GATEWAY_CIRCUIT_ENABLED", "false")
	t.Setenv("GATEWAY_CIRCUIT_FAILURE_COUNT", "7")
	t.Setenv("GATEWAY_CIRCUIT_OPEN_TIMEOUT", "30s")
	t.Setenv("GATEWAY_CIRCUIT_HALF_OPEN_MAX_REQ", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DataBackend != BackendGateway {
		t.Fatalf("unexpected backend: %q", cfg.DataBackend)
	}
	if cfg.GatewayBaseURL != "https://match-service.local/api" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.GatewayBaseURL)
	}
	if cfg.GatewayToken != "token-1" || cfg.GatewayTimeout != 3*time.Second || cfg.GatewayMaxRetries != 0 {
		t.Fatalf("unexpected gateway config: %+v", cfg)
	}
	if cfg.GatewayCircuitEnabled || cfg.GatewayCircuitFailureCount != 7 || cfg.GatewayCircuitOpenTimeout != 30*time.Second {
		t.Fatalf("unexpected gateway circuit config: %+v", cfg)
	}
}

func TestLoad_NumericBounds(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"EVENT_LEDGER_MAX_ATTEMPTS", "0"},
		{"PARTICIPATION_MAX_WORKERS", "0"},
		{"BULK_EVENT_MAX_WORKERS", "abc"},
		{"GATEWAY_MAX_RETRIES", "-1"},
		{"GATEWAY_CIRCUIT_FAILURE_COUNT", "0"},
		{"CACHE_TTL", "0s"},
		{"LINEUP_SAVE_TIMEOUT", "soon"},
		{"CACHE_ENABLED", "maybe"},
		{"APP_LOG_LEVEL", "verbose"},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tc.key) {
				t.Fatalf("expected error naming %s, got %v", tc.key, err)
			}
		})
	}
}

func TestLoad_PostgresBackend(t *testing.T) {
	t.Setenv("DATA_BACKEND", "postgres")
	t.Setenv("DB_URL", "postgres://u:p@db:5432/club_lineup")
	t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "false")
	t.Setenv("DB_BOOTSTRAP_SEED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DBDisablePreparedBinary {
		t.Fatalf("expected DBDisablePreparedBinary=false")
	}
	if !cfg.DBBootstrapSeed {
		t.Fatalf("expected DBBootstrapSeed=true")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `x-tenant=a, uptrace-dsn="https://token@api.uptrace.dev"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_CORSOriginsParsing(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected CORS origins: %v", cfg.CORSAllowedOrigins)
	}
}
