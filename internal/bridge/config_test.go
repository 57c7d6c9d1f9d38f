package bridge

import (
	"errors"
	"testing"
	"time"

	"github.com/kb1gnc/cwkeyd/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Device != "/dev/ttyUSB0" {
		t.Errorf("Device = %s, want /dev/ttyUSB0", cfg.Device)
	}
	if cfg.Baud != 1200 {
		t.Errorf("Baud = %d, want 1200", cfg.Baud)
	}
	if cfg.Listen != ":6789" {
		t.Errorf("Listen = %s, want :6789", cfg.Listen)
	}
	if cfg.Speed != 24 {
		t.Errorf("Speed = %d, want 24", cfg.Speed)
	}
	if cfg.MinSpeed != 10 || cfg.MaxSpeed != 40 {
		t.Errorf("speed range = %d..%d, want 10..40", cfg.MinSpeed, cfg.MaxSpeed)
	}
	if cfg.PollInterval != 50*time.Millisecond {
		t.Errorf("PollInterval = %v, want 50ms", cfg.PollInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestConfig_SetDefaults(t *testing.T) {
	t.Run("empty config gets all defaults", func(t *testing.T) {
		var cfg Config
		cfg.SetDefaults()

		if cfg != DefaultConfig() {
			t.Errorf("SetDefaults() on zero config = %+v, want %+v", cfg, DefaultConfig())
		}
	})

	t.Run("explicit values are preserved", func(t *testing.T) {
		cfg := Config{
			Device: "/dev/ttyS0",
			Speed:  30,
		}
		cfg.SetDefaults()

		if cfg.Device != "/dev/ttyS0" {
			t.Errorf("Device = %s, want /dev/ttyS0", cfg.Device)
		}
		if cfg.Speed != 30 {
			t.Errorf("Speed = %d, want 30", cfg.Speed)
		}
		if cfg.Baud != 1200 {
			t.Errorf("Baud = %d, want default 1200", cfg.Baud)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"negative baud", func(c *Config) { c.Baud = -1 }, true},
		{"negative speed", func(c *Config) { c.Speed = -5 }, true},
		{"inverted speed range", func(c *Config) { c.MinSpeed = 40; c.MaxSpeed = 10 }, true},
		{"max speed above ceiling", func(c *Config) { c.MaxSpeed = 120 }, true},
		{"negative poll interval", func(c *Config) { c.PollInterval = -time.Second }, true},
		{"negative status timeout", func(c *Config) { c.StatusTimeout = -time.Second }, true},
		{"negative echo timeout", func(c *Config) { c.EchoTimeout = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()

			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidConfig) {
					t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
				}
			} else if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestConfig_Validate_ClampsPTTDelay(t *testing.T) {
	tests := []struct {
		name  string
		delay int
		want  int
	}{
		{"negative clamps to zero", -10, 0},
		{"in range unchanged", 30, 30},
		{"above max clamps to max", 200, domain.PTTDelayMax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.PTTDelay = tt.delay

			if err := cfg.Validate(); err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if cfg.PTTDelay != tt.want {
				t.Errorf("PTTDelay = %d after Validate(), want %d", cfg.PTTDelay, tt.want)
			}
		})
	}
}
