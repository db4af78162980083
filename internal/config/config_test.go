package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const baseConfigYAML = `
app:
  port: 8080
  gin_mode: test
database:
  dsn: "host=localhost user=test dbname=test"
redis:
  addr: "localhost:6379"
  db: 0
jwt:
  access_secret: "file-access-secret"
  refresh_secret: "file-refresh-secret"
  issuer: "producao-imac"
  audience: "producao-imac-web"
  access_ttl: "15m"
  refresh_ttl: "168h"
lockout:
  max_attempts: 5
  duration: "15m"
password:
  bcrypt_cost: "12"
  reset_ttl: "1h"
  reset_bytes: 32
casbin:
  model_path: "config/casbin_model.conf"
`

// writeConfig writes a config file and points CONFIG_PATH at it.
func writeConfig(t *testing.T, content string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)

	// Keep the process env from leaking into the file-based cases.
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")
	t.Setenv("BCRYPT_COST", "")
}

func TestLoad(t *testing.T) {
	writeConfig(t, baseConfigYAML)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.AccessTTL != 15*time.Minute {
		t.Errorf("expected 15m access TTL, got %s", cfg.AccessTTL)
	}
	if cfg.RefreshTTL != 168*time.Hour {
		t.Errorf("expected 168h refresh TTL, got %s", cfg.RefreshTTL)
	}
	if cfg.LockoutMaxAttempts != 5 || cfg.LockoutDuration != 15*time.Minute {
		t.Errorf("unexpected lockout config: %d / %s", cfg.LockoutMaxAttempts, cfg.LockoutDuration)
	}
	if cfg.JWTAccessSecret != "file-access-secret" {
		t.Errorf("expected file secret, got %s", cfg.JWTAccessSecret)
	}
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	writeConfig(t, baseConfigYAML)
	t.Setenv("JWT_ACCESS_SECRET", "env-access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "env-refresh-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.JWTAccessSecret != "env-access-secret" {
		t.Errorf("expected env override, got %s", cfg.JWTAccessSecret)
	}
	if cfg.JWTRefreshSecret != "env-refresh-secret" {
		t.Errorf("expected env override, got %s", cfg.JWTRefreshSecret)
	}
}

func TestLoad_RejectsSharedSecret(t *testing.T) {
	writeConfig(t, baseConfigYAML)
	t.Setenv("JWT_ACCESS_SECRET", "same-secret")
	t.Setenv("JWT_REFRESH_SECRET", "same-secret")

	if _, err := Load(); err == nil {
		t.Error("expected a shared access/refresh secret to be rejected")
	}
}

func TestLoad_RejectsMissingSecrets(t *testing.T) {
	cfg := `
app:
  port: 8080
jwt:
  access_ttl: "15m"
  refresh_ttl: "168h"
lockout:
  duration: "15m"
password:
  reset_ttl: "1h"
`
	writeConfig(t, cfg)

	if _, err := Load(); err == nil {
		t.Error("expected missing secrets to be rejected")
	}
}

func TestLoad_ClampsWeakSettings(t *testing.T) {
	cfg := `
app:
  port: 8080
jwt:
  access_secret: "a"
  refresh_secret: "b"
  access_ttl: "15m"
  refresh_ttl: "168h"
lockout:
  max_attempts: 0
  duration: "15m"
password:
  bcrypt_cost: "4"
  reset_ttl: "1h"
  reset_bytes: 8
`
	writeConfig(t, cfg)

	loaded, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.BcryptCost < 10 {
		t.Errorf("expected bcrypt cost clamped, got %d", loaded.BcryptCost)
	}
	if loaded.ResetTokenBytes < 32 {
		t.Errorf("expected reset bytes clamped, got %d", loaded.ResetTokenBytes)
	}
	if loaded.LockoutMaxAttempts != 5 {
		t.Errorf("expected default max attempts, got %d", loaded.LockoutMaxAttempts)
	}
}

func TestLoad_RejectsBadDurations(t *testing.T) {
	cfg := `
app:
  port: 8080
jwt:
  access_secret: "a"
  refresh_secret: "b"
  access_ttl: "not-a-duration"
  refresh_ttl: "168h"
lockout:
  duration: "15m"
password:
  reset_ttl: "1h"
`
	writeConfig(t, cfg)

	if _, err := Load(); err == nil {
		t.Error("expected an invalid duration to be rejected")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yml"))

	if _, err := Load(); err == nil {
		t.Error("expected a missing config file to be rejected")
	}
}
