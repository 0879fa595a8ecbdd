package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("DEFAULT_SLOT_INTERVAL_MINUTES", "")
	t.Setenv("DEFAULT_MIN_LEAD_MINUTES", "")

	cfg := Load()
	if cfg.Addr() != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.Addr())
	}
	if cfg.StorageDriver != DriverPostgres {
		t.Fatalf("expected postgres driver, got %s", cfg.StorageDriver)
	}
	if cfg.DefaultSlotIntervalMinutes != 30 || cfg.DefaultMinLeadMinutes != 60 {
		t.Fatalf("unexpected scheduling defaults: %d/%d", cfg.DefaultSlotIntervalMinutes, cfg.DefaultMinLeadMinutes)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadIgnoresBadInts(t *testing.T) {
	t.Setenv("DEFAULT_SLOT_INTERVAL_MINUTES", "abc")
	t.Setenv("DEFAULT_MIN_LEAD_MINUTES", "-5")

	cfg := Load()
	if cfg.DefaultSlotIntervalMinutes != 30 {
		t.Fatalf("expected fallback 30, got %d", cfg.DefaultSlotIntervalMinutes)
	}
	if cfg.DefaultMinLeadMinutes != 60 {
		t.Fatalf("expected fallback 60, got %d", cfg.DefaultMinLeadMinutes)
	}
}

func TestValidate(t *testing.T) {
	cfg := Load()
	cfg.StorageDriver = "mysql"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown driver")
	}

	cfg = Load()
	cfg.ServerPort = "99999"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}
