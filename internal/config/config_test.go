package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPhysicsDefaults(t *testing.T) {
	p, err := LoadPhysics("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != DefaultPhysics() {
		t.Errorf("expected defaults, got %+v", p)
	}
}

func TestLoadPhysicsFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "physics.toml")
	if err := os.WriteFile(path, []byte("drag = 0.9\nshot_power = 25.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPhysics(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Drag != 0.9 || p.ShotPower != 25 {
		t.Errorf("file values not applied: %+v", p)
	}
	if p.BallRadius != 12.5 || p.MinPower != 0.05 {
		t.Errorf("unset keys should keep defaults: %+v", p)
	}
}

func TestLoadPhysicsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("drag = = 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadPhysics(path)
	if err == nil {
		t.Fatal("expected a decode error")
	}
	if p != DefaultPhysics() {
		t.Errorf("expected defaults on error, got %+v", p)
	}
}

func TestEnvOverridesPhysics(t *testing.T) {
	t.Setenv("PHYSICS_DRAG", "0.5")
	t.Setenv("PHYSICS_MAX_CONTACTS_PER_TICK", "8")
	t.Setenv("PHYSICS_MIN_POWER", "not-a-number")

	p := applyPhysicsEnv(DefaultPhysics())
	if p.Drag != 0.5 {
		t.Errorf("drag = %v, want 0.5", p.Drag)
	}
	if p.MaxContactsPerTick != 8 {
		t.Errorf("max contacts = %d, want 8", p.MaxContactsPerTick)
	}
	if p.MinPower != 0.05 {
		t.Errorf("invalid env value should be ignored, got %v", p.MinPower)
	}
}

func TestLoadReadsEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("TICK_INTERVAL_MS", "20")
	t.Setenv("MIGRATE_ON_START", "true")

	cfg := Load()
	if cfg.Port != "9090" || cfg.TickIntervalMS != 20 || !cfg.MigrateOnStart {
		t.Errorf("env not applied: port=%s tick=%d migrate=%v", cfg.Port, cfg.TickIntervalMS, cfg.MigrateOnStart)
	}
}
