package config

import (
	"strings"
	"testing"
)

func TestEnsureDSNPrefersExplicitDSN(t *testing.T) {
	cfg := DBConfig{DSN: "postgres://app:secret@db:5432/quoteline"}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DSN != "postgres://app:secret@db:5432/quoteline" {
		t.Fatalf("dsn rewritten: %s", cfg.DSN)
	}
}

func TestEnsureDSNAssemblesLegacyVars(t *testing.T) {
	cfg := DBConfig{
		LegacyHost:     "localhost",
		LegacyPort:     5432,
		LegacyUser:     "quoteline",
		LegacyPassword: "pw",
		LegacyName:     "quoteline",
		LegacySSLMode:  "disable",
	}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(cfg.DSN, "postgres://quoteline:pw@localhost:5432/quoteline") {
		t.Fatalf("unexpected dsn: %s", cfg.DSN)
	}
	if !strings.Contains(cfg.DSN, "sslmode=disable") {
		t.Fatalf("sslmode missing: %s", cfg.DSN)
	}
}

func TestEnsureDSNReportsMissingVars(t *testing.T) {
	cfg := DBConfig{LegacyHost: "localhost"}
	err := cfg.ensureDSN()
	if err == nil {
		t.Fatal("expected error for missing legacy vars")
	}
	if !strings.Contains(err.Error(), EnvDBUser) || !strings.Contains(err.Error(), EnvDBName) {
		t.Fatalf("error should name missing vars: %v", err)
	}
}

func TestAppEnvHelpers(t *testing.T) {
	app := AppConfig{Env: "Dev"}
	if !app.IsDev() || app.IsProd() {
		t.Fatalf("env helpers broken for %q", app.Env)
	}
}
