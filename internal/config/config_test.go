package config

import (
	"reflect"
	"testing"
	"time"

	"github.com/riskibarqy/football-sync/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ReferenceTimezone.String() != "Asia/Seoul" {
		t.Fatalf("unexpected ReferenceTimezone: %s", cfg.ReferenceTimezone)
	}
	if cfg.LivePollInterval != 30*time.Second {
		t.Fatalf("unexpected LivePollInterval: %s", cfg.LivePollInterval)
	}
	if cfg.LineupLead != time.Hour {
		t.Fatalf("unexpected LineupLead: %s", cfg.LineupLead)
	}
	if cfg.WorkerConcurrency != 4 {
		t.Fatalf("unexpected WorkerConcurrency: %d", cfg.WorkerConcurrency)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
	if len(cfg.SyncLeagueIDs) != 0 {
		t.Fatalf("expected no sync leagues, got %v", cfg.SyncLeagueIDs)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar, uptrace-dsn='https://token@api.uptrace.dev/1'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_ProdRequiresAPIKey(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("API_FOOTBALL_KEY", "")
	t.Setenv("DB_URL", "postgres://localhost:5432/football_sync")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when API_FOOTBALL_KEY is empty in prod")
	}
}

func TestLoad_ProdRequiresDBURL(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("API_FOOTBALL_KEY", "secret")
	t.Setenv("DB_URL", " ")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when DB_URL is empty in prod")
	}
}

func TestLoad_SyncLeagueIDs(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SYNC_LEAGUE_IDS", "39, 140,39,,78")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if want := []int64{39, 140, 78}; !reflect.DeepEqual(cfg.SyncLeagueIDs, want) {
		t.Fatalf("unexpected SyncLeagueIDs: %v", cfg.SyncLeagueIDs)
	}

	t.Setenv("SYNC_LEAGUE_IDS", "39,-1")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative league id")
	}
}

func TestLoad_RejectsNonPositiveDurations(t *testing.T) {
	for _, key := range []string{"LIVE_POLL_INTERVAL", "SYNC_INTERVAL", "API_FOOTBALL_TIMEOUT", "LINEUP_LEAD"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(key, "0s")
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=0s", key)
			}
		})
	}
}

func TestLoad_InvalidTimezone(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("REFERENCE_TIMEZONE", "Mars/Olympus")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown REFERENCE_TIMEZONE")
	}
}

func TestConfig_APIFootballCircuitBreaker(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("API_FOOTBALL_CIRCUIT_FAILURE_COUNT", "7")
	t.Setenv("API_FOOTBALL_CIRCUIT_OPEN_TIMEOUT", "1m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	breaker := cfg.APIFootballCircuitBreaker()
	if !breaker.Enabled || breaker.FailureThreshold != 7 || breaker.OpenTimeout != time.Minute {
		t.Fatalf("unexpected breaker config: %+v", breaker)
	}
}
