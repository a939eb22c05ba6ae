package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CanvasSize != 512 {
		t.Errorf("CanvasSize = %d, want 512", cfg.CanvasSize)
	}
	if cfg.MaxSteps != 10000 {
		t.Errorf("MaxSteps = %d, want 10000", cfg.MaxSteps)
	}
	if cfg.ExecTimeout != 10*time.Second {
		t.Errorf("ExecTimeout = %v, want 10s", cfg.ExecTimeout)
	}
	if cfg.OutputSize != 0 {
		t.Errorf("OutputSize = %d, want 0", cfg.OutputSize)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CANVAS_SIZE", "256")
	t.Setenv("OUTPUT_SIZE", "128")
	t.Setenv("MAX_STEPS", "50")
	t.Setenv("EXEC_TIMEOUT", "2s")
	t.Setenv("DB_PATH", "/tmp/test.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CanvasSize != 256 || cfg.OutputSize != 128 || cfg.MaxSteps != 50 {
		t.Errorf("numeric overrides not applied: %+v", cfg)
	}
	if cfg.ExecTimeout != 2*time.Second {
		t.Errorf("ExecTimeout = %v, want 2s", cfg.ExecTimeout)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("MAX_STEPS", "not-a-number")
	t.Setenv("EXEC_TIMEOUT", "soonish")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxSteps != 10000 {
		t.Errorf("MaxSteps = %d, want fallback 10000", cfg.MaxSteps)
	}
	if cfg.ExecTimeout != 10*time.Second {
		t.Errorf("ExecTimeout = %v, want fallback 10s", cfg.ExecTimeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "zero canvas", mutate: func(c *Config) { c.CanvasSize = 0 }, wantErr: true},
		{name: "negative output", mutate: func(c *Config) { c.OutputSize = -1 }, wantErr: true},
		{name: "negative steps", mutate: func(c *Config) { c.MaxSteps = -1 }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.ExecTimeout = 0 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{CanvasSize: 512, ExecTimeout: time.Second}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
