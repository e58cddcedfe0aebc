package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnv_LoadsValuesAndIgnoresNoise(t *testing.T) {
	t.Setenv("A", "")
	t.Setenv("B", "")
	t.Setenv("C", "")

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := []byte(`
# comment

A=one
export B=two
C="three"
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}

	if got := os.Getenv("A"); got != "one" {
		t.Fatalf("A=%q, want %q", got, "one")
	}
	if got := os.Getenv("B"); got != "two" {
		t.Fatalf("B=%q, want %q", got, "two")
	}
	if got := os.Getenv("C"); got != "three" {
		t.Fatalf("C=%q, want %q", got, "three")
	}
}

func TestLoadDotEnv_DoesNotOverwriteExistingEnv(t *testing.T) {
	t.Setenv("KEEP", "already")

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("KEEP=fromfile\n"), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}

	if got := os.Getenv("KEEP"); got != "already" {
		t.Fatalf("KEEP=%q, want %q", got, "already")
	}
}

func TestLoadDotEnv_MissingFileIsNotAnError(t *testing.T) {
	if err := loadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}
}

func TestLoad_DefaultsAndWarnings(t *testing.T) {
	for _, k := range []string{"APP_ENV", "PORT", "DB_DRIVER", "DB_PATH", "DATABASE_URL", "PRICEBOOK_PATH", "LOG_LEVEL", "LOG_FORMAT", "DISPLAY_LOCALE", "MAX_INFLIGHT_REQUESTS"} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())

	cfg := Load()
	if cfg.Port != defaultPort || cfg.DBDriver != "sqlite" || cfg.DBPath != defaultDBPath {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Locale != "es-ES" || cfg.MaxInFlight != 64 {
		t.Fatalf("unexpected locale/inflight: %q %d", cfg.Locale, cfg.MaxInFlight)
	}
	if !cfg.IsDev() {
		t.Fatal("default env should be development")
	}
	if cfg.DSN() != defaultDBPath {
		t.Fatalf("DSN = %q", cfg.DSN())
	}
	if len(cfg.Warnings) != 1 {
		t.Fatalf("warnings = %v, want only the price book notice", cfg.Warnings)
	}
}

func TestLoad_PostgresWithoutURLFallsBack(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PRICEBOOK_PATH", "book.yaml")
	t.Setenv("MAX_INFLIGHT_REQUESTS", "lots")
	t.Setenv("APP_ENV", "production")
	t.Chdir(t.TempDir())

	cfg := Load()
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("DBDriver = %q, want sqlite", cfg.DBDriver)
	}
	if cfg.MaxInFlight != defaultMaxInFlight {
		t.Fatalf("MaxInFlight = %d", cfg.MaxInFlight)
	}
	if cfg.IsDev() {
		t.Fatal("production must not report dev")
	}
	if len(cfg.Warnings) != 2 {
		t.Fatalf("warnings = %v, want 2", cfg.Warnings)
	}

	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/reno")
	cfg = Load()
	if cfg.DBDriver != "postgres" || cfg.DSN() != "postgres://u:p@localhost/reno" {
		t.Fatalf("postgres config = %+v", cfg)
	}
}
