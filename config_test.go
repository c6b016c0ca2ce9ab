package jigsaw

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig invalid: %v", err)
	}
	if got := DefaultConfig().ResetDelay.Std(); got != 2*time.Second {
		t.Errorf("ResetDelay = %v, want 2s", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero rows", func(c *Config) { c.Rows = 0 }, ErrInvalidGrid},
		{"negative cols", func(c *Config) { c.Cols = -1 }, ErrInvalidGrid},
		{"zero width", func(c *Config) { c.PuzzleWidth = 0 }, ErrInvalidConfig},
		{"negative thickness", func(c *Config) { c.PieceThickness = -1 }, ErrInvalidConfig},
		{"zero divisor", func(c *Config) { c.SnapDivisor = 0 }, ErrInvalidConfig},
		{"zero epsilon", func(c *Config) { c.Epsilon = 0 }, ErrInvalidConfig},
		{"negative spread", func(c *Config) { c.SpreadZ = -0.1 }, ErrInvalidConfig},
		{"negative delay", func(c *Config) { c.ResetDelay = -1 }, ErrInvalidConfig},
		{"zero thickness ok", func(c *Config) { c.PieceThickness = 0 }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{"rows": 5, "cols": 6, "snapDivisor": 4, "resetDelay": "1500ms", "seed": 42}`))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Rows != 5 || cfg.Cols != 6 || cfg.SnapDivisor != 4 || cfg.Seed != 42 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.ResetDelay.Std() != 1500*time.Millisecond {
		t.Errorf("ResetDelay = %v, want 1.5s", cfg.ResetDelay.Std())
	}
	// Unset fields keep their defaults.
	if cfg.PuzzleWidth != DefaultConfig().PuzzleWidth {
		t.Errorf("PuzzleWidth = %v, want default", cfg.PuzzleWidth)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"malformed", `{"rows": `},
		{"invalid grid", `{"rows": 0}`},
		{"bad duration", `{"resetDelay": "soon"}`},
		{"duration type", `{"resetDelay": true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig([]byte(tt.json)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDurationJSON(t *testing.T) {
	var d Duration
	if err := json.Unmarshal([]byte(`250`), &d); err != nil {
		t.Fatal(err)
	}
	if d.Std() != 250*time.Millisecond {
		t.Errorf("millisecond form = %v, want 250ms", d.Std())
	}

	b, err := json.Marshal(Duration(2 * time.Second))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2s"` {
		t.Errorf("Marshal = %s, want \"2s\"", b)
	}
}

func TestConfigLoggerDefault(t *testing.T) {
	if DefaultConfig().logger() != defaultLogger {
		t.Error("nil Logger should fall back to the package logger")
	}
	cfg := testConfig(1, 1)
	if cfg.logger() == defaultLogger {
		t.Error("configured Logger should be used")
	}
}
