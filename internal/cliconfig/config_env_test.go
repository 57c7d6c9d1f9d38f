package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	t.Run("applies all valid env vars", func(t *testing.T) {
		t.Setenv("CWKEYD_DEVICE", "/dev/ttyEnv")
		t.Setenv("CWKEYD_BAUD", "9600")
		t.Setenv("CWKEYD_SPEED", "32")
		t.Setenv("CWKEYD_POLL_INTERVAL", "30ms")
		t.Setenv("CWKEYD_ECHO", "true")
		t.Setenv("CWKEYD_LOG_LEVEL", "debug")

		var cfg Config
		if err := ApplyEnvConfig(&cfg, map[string]bool{}); err != nil {
			t.Fatalf("ApplyEnvConfig() error = %v", err)
		}

		if cfg.Device != "/dev/ttyEnv" {
			t.Errorf("Device = %s, want /dev/ttyEnv", cfg.Device)
		}
		if cfg.Baud != 9600 {
			t.Errorf("Baud = %d, want 9600", cfg.Baud)
		}
		if cfg.Speed != 32 {
			t.Errorf("Speed = %d, want 32", cfg.Speed)
		}
		if cfg.PollInterval != 30*time.Millisecond {
			t.Errorf("PollInterval = %v, want 30ms", cfg.PollInterval)
		}
		if !cfg.Echo {
			t.Error("Echo should be true")
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
		}
	})

	t.Run("respects changed flags", func(t *testing.T) {
		t.Setenv("CWKEYD_DEVICE", "/dev/ttyEnv")
		t.Setenv("CWKEYD_SPEED", "32")

		cfg := Config{Device: "/dev/ttyFlag", Speed: 24}
		changed := map[string]bool{"device": true, "speed": true}

		if err := ApplyEnvConfig(&cfg, changed); err != nil {
			t.Fatalf("ApplyEnvConfig() error = %v", err)
		}

		if cfg.Device != "/dev/ttyFlag" {
			t.Errorf("Device = %s, want flag value preserved", cfg.Device)
		}
		if cfg.Speed != 24 {
			t.Errorf("Speed = %d, want flag value preserved", cfg.Speed)
		}
	})

	t.Run("returns error for invalid int", func(t *testing.T) {
		t.Setenv("CWKEYD_BAUD", "not-a-number")

		var cfg Config
		if err := ApplyEnvConfig(&cfg, map[string]bool{}); err == nil {
			t.Error("ApplyEnvConfig() should reject invalid int")
		}
	})

	t.Run("returns error for invalid duration", func(t *testing.T) {
		t.Setenv("CWKEYD_POLL_INTERVAL", "not-a-duration")

		var cfg Config
		if err := ApplyEnvConfig(&cfg, map[string]bool{}); err == nil {
			t.Error("ApplyEnvConfig() should reject invalid duration")
		}
	})

	t.Run("false-ish bool values", func(t *testing.T) {
		t.Setenv("CWKEYD_ECHO", "0")
		t.Setenv("CWKEYD_MUTE", "1")

		cfg := Config{Echo: true}
		if err := ApplyEnvConfig(&cfg, map[string]bool{}); err != nil {
			t.Fatalf("ApplyEnvConfig() error = %v", err)
		}

		if cfg.Echo {
			t.Error("Echo should be false for value 0")
		}
		if !cfg.Mute {
			t.Error("Mute should be true for value 1")
		}
	})
}
