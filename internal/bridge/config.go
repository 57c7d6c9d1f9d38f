package bridge

import (
	"fmt"
	"time"

	"github.com/kb1gnc/cwkeyd/internal/domain"
)

// Config holds the runtime configuration for the bridge.
// Use SetDefaults() then Validate() before passing it to New.
type Config struct {
	// Device is the serial device of the keyer module, e.g. /dev/ttyUSB0.
	Device string

	// Baud is the serial speed; keyer modules run at 1200.
	Baud int

	// Listen is the UDP listen address for keying clients, e.g. ":6789".
	Listen string

	// Speed is the initial keying speed in WPM.
	Speed int

	// MinSpeed and MaxSpeed bound the speed potentiometer range.
	// A requested speed outside the range is warned about but still
	// transmitted; the hardware may refuse it.
	MinSpeed int
	MaxSpeed int

	// PTTDelay is the initial PTT lead-in in milliseconds, 0..50.
	PTTDelay int

	// Echo enables broadcasting keyer-echoed characters back to every
	// known client.
	Echo bool

	// Mute disables the keyer sidetone.
	Mute bool

	// PollInterval bounds the network poll, the loop's only deliberate
	// block.
	PollInterval time.Duration

	// StatusTimeout bounds the per-iteration serial status read.
	StatusTimeout time.Duration

	// EchoTimeout bounds each per-peer echo send.
	EchoTimeout time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Device:        "/dev/ttyUSB0",
		Baud:          1200,
		Listen:        ":6789",
		Speed:         24,
		MinSpeed:      10,
		MaxSpeed:      40,
		PollInterval:  50 * time.Millisecond,
		StatusTimeout: 10 * time.Millisecond,
		EchoTimeout:   time.Second,
	}
}

// SetDefaults fills zero-valued fields with their defaults.
func (c *Config) SetDefaults() {
	def := DefaultConfig()
	if c.Device == "" {
		c.Device = def.Device
	}
	if c.Baud == 0 {
		c.Baud = def.Baud
	}
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.Speed == 0 {
		c.Speed = def.Speed
	}
	if c.MinSpeed == 0 {
		c.MinSpeed = def.MinSpeed
	}
	if c.MaxSpeed == 0 {
		c.MaxSpeed = def.MaxSpeed
	}
	if c.PollInterval == 0 {
		c.PollInterval = def.PollInterval
	}
	if c.StatusTimeout == 0 {
		c.StatusTimeout = def.StatusTimeout
	}
	if c.EchoTimeout == 0 {
		c.EchoTimeout = def.EchoTimeout
	}
}

// Validate checks the configuration for errors and clamps the PTT
// lead-in to its documented range.
func (c *Config) Validate() error {
	if c.Baud <= 0 {
		return fmt.Errorf("%w: baud must be positive", domain.ErrInvalidConfig)
	}
	if c.Speed <= 0 {
		return fmt.Errorf("%w: speed must be positive", domain.ErrInvalidConfig)
	}
	if c.MinSpeed <= 0 || c.MaxSpeed <= c.MinSpeed {
		return fmt.Errorf("%w: speed range %d..%d is not ascending", domain.ErrInvalidConfig, c.MinSpeed, c.MaxSpeed)
	}
	if c.MaxSpeed > domain.SpeedCeiling {
		return fmt.Errorf("%w: max speed %d exceeds %d", domain.ErrInvalidConfig, c.MaxSpeed, domain.SpeedCeiling)
	}
	if c.PTTDelay < 0 {
		c.PTTDelay = 0
	}
	if c.PTTDelay > domain.PTTDelayMax {
		c.PTTDelay = domain.PTTDelayMax
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive", domain.ErrInvalidConfig)
	}
	if c.StatusTimeout <= 0 {
		return fmt.Errorf("%w: status timeout must be positive", domain.ErrInvalidConfig)
	}
	if c.EchoTimeout <= 0 {
		return fmt.Errorf("%w: echo timeout must be positive", domain.ErrInvalidConfig)
	}
	return nil
}
