package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Name != "padelcourt" {
		t.Errorf("app name = %q, want padelcourt", cfg.App.Name)
	}
	if cfg.App.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.App.Port)
	}
	if !cfg.Lomi.Simulation {
		t.Error("default lomi mode should be simulation")
	}
	if cfg.Lomi.Currency != "XOF" {
		t.Errorf("currency = %q, want XOF", cfg.Lomi.Currency)
	}
}

func TestLoadYAMLAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
app:
  name: padelcourt
  environment: production
  port: 9000
  base_url: https://courts.example.com
database:
  driver: sqlite
  filename: /var/lib/padelcourt/app.db
lomi:
  currency: XOF
  simulation: true
  expiration_minutes: 15
booking:
  pending_ttl_hours: 12
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("APP_SECRET_KEY", "test-secret")
	t.Setenv("PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Environment != "production" {
		t.Errorf("environment = %q, want production", cfg.App.Environment)
	}
	if cfg.App.Port != 9100 {
		t.Errorf("port = %d, want env override 9100", cfg.App.Port)
	}
	if cfg.App.SecretKey != "test-secret" {
		t.Errorf("secret key not loaded from environment")
	}
	if cfg.Booking.PendingTTLHours != 12 {
		t.Errorf("pending ttl = %d, want 12", cfg.Booking.PendingTTLHours)
	}
}

func TestValidateLiveModeRequiresAPIKey(t *testing.T) {
	cfg := defaults()
	cfg.Lomi.Simulation = false
	cfg.Lomi.APIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for live mode without LOMI_API_KEY")
	}
	cfg.Lomi.APIKey = "lomi_sk_test"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}
