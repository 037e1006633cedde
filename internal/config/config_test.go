package config

import (
	"testing"

	"github.com/OCharnyshevich/cavegen/pkg/dungeon"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Params().Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
	if cfg.Params() != dungeon.DefaultParams() {
		t.Fatalf("Params() = %+v, want dungeon defaults", cfg.Params())
	}
}

func TestMergeKeepsExplicitFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 100
	cfg.Seed = "from-flag"

	fromFile := DefaultConfig()
	fromFile.Width = 30
	fromFile.Height = 20
	fromFile.Seed = "from-file"
	fromFile.Diagonal = true

	Merge(cfg, fromFile, map[string]bool{"width": true, "seed": true})

	if cfg.Width != 100 {
		t.Errorf("Width = %d, want flag value 100", cfg.Width)
	}
	if cfg.Seed != "from-flag" {
		t.Errorf("Seed = %q, want flag value", cfg.Seed)
	}
	if cfg.Height != 20 {
		t.Errorf("Height = %d, want file value 20", cfg.Height)
	}
	if !cfg.Diagonal {
		t.Error("Diagonal should come from the file")
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("CAVEGEN_WIDTH", "80")
	t.Setenv("CAVEGEN_SEED", "env-seed")
	t.Setenv("CAVEGEN_RANDOM_SEED", "true")
	t.Setenv("CAVEGEN_DB_PATH", "/tmp/caves.db")
	t.Setenv("CAVEGEN_NOISE_SCALE", "6.5")

	cfg := DefaultConfig()
	if err := ParseEnv(cfg); err != nil {
		t.Fatalf("ParseEnv: %v", err)
	}
	if cfg.Width != 80 || cfg.Seed != "env-seed" || !cfg.UseRandomSeed || cfg.DBPath != "/tmp/caves.db" || cfg.NoiseScale != 6.5 {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.Height != DefaultConfig().Height {
		t.Errorf("unset variable changed Height to %d", cfg.Height)
	}
}

func TestParseEnvRejectsBadNumber(t *testing.T) {
	t.Setenv("CAVEGEN_FILL_PERCENT", "lots")
	if err := ParseEnv(DefaultConfig()); err == nil {
		t.Fatal("expected error for non-numeric fill percent")
	}
}

func TestTelemetryFromEnv(t *testing.T) {
	cfg := DefaultConfig()
	if opts := cfg.Telemetry(); opts.Endpoint != "" || !opts.Enabled || opts.SampleRatio != 1 {
		t.Fatalf("default telemetry = %+v", opts)
	}

	t.Setenv("CAVEGEN_OTEL_ENDPOINT", "http://collector:4318")
	t.Setenv("CAVEGEN_OTEL_ENABLED", "false")
	t.Setenv("CAVEGEN_OTEL_SAMPLE_RATIO", "0.25")
	if err := ParseEnv(cfg); err != nil {
		t.Fatalf("ParseEnv: %v", err)
	}

	opts := cfg.Telemetry()
	if opts.Endpoint != "http://collector:4318" || opts.Enabled || opts.SampleRatio != 0.25 {
		t.Fatalf("telemetry = %+v", opts)
	}
}
