// Package cliconfig layers daemon configuration from defaults, a TOML
// file, CWKEYD_* environment variables and command-line flags, in
// ascending precedence. Flags that were explicitly set on the command
// line are tracked in a changed map so lower layers never override
// them.
package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/kb1gnc/cwkeyd/internal/bridge"
)

// Config holds CLI configuration for cwkeyd.
type Config struct {
	Device string
	Baud   int
	Listen string

	Speed    int
	MinSpeed int
	MaxSpeed int
	PTTDelay int

	Echo bool
	Mute bool

	LogLevel string

	PollInterval  time.Duration
	StatusTimeout time.Duration
	EchoTimeout   time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	b := bridge.DefaultConfig()
	return Config{
		Device:        b.Device,
		Baud:          b.Baud,
		Listen:        b.Listen,
		Speed:         b.Speed,
		MinSpeed:      b.MinSpeed,
		MaxSpeed:      b.MaxSpeed,
		PTTDelay:      b.PTTDelay,
		LogLevel:      "info",
		PollInterval:  b.PollInterval,
		StatusTimeout: b.StatusTimeout,
		EchoTimeout:   b.EchoTimeout,
	}
}

// Validate checks the CLI-level configuration. Keying parameters are
// validated again by the bridge.
func (c *Config) Validate() error {
	if c.Device == "" {
		return fmt.Errorf("device is required")
	}
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Bridge converts the CLI configuration into the bridge's runtime
// configuration.
func (c Config) Bridge() bridge.Config {
	return bridge.Config{
		Device:        c.Device,
		Baud:          c.Baud,
		Listen:        c.Listen,
		Speed:         c.Speed,
		MinSpeed:      c.MinSpeed,
		MaxSpeed:      c.MaxSpeed,
		PTTDelay:      c.PTTDelay,
		Echo:          c.Echo,
		Mute:          c.Mute,
		PollInterval:  c.PollInterval,
		StatusTimeout: c.StatusTimeout,
		EchoTimeout:   c.EchoTimeout,
	}
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
