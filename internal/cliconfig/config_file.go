package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Device        string `toml:"device"`
	Baud          int    `toml:"baud"`
	Listen        string `toml:"listen"`
	Speed         int    `toml:"speed"`
	MinSpeed      int    `toml:"min_speed"`
	MaxSpeed      int    `toml:"max_speed"`
	PTTDelay      int    `toml:"ptt_delay"`
	Echo          *bool  `toml:"echo"`
	Mute          *bool  `toml:"mute"`
	LogLevel      string `toml:"log_level"`
	PollInterval  string `toml:"poll_interval"`
	StatusTimeout string `toml:"status_timeout"`
	EchoTimeout   string `toml:"echo_timeout"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.cwkeyd/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".cwkeyd", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("device", fc.Device, &cfg.Device)
	s.setString("listen", fc.Listen, &cfg.Listen)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setInt("baud", fc.Baud, &cfg.Baud)
	s.setInt("speed", fc.Speed, &cfg.Speed)
	s.setInt("min-speed", fc.MinSpeed, &cfg.MinSpeed)
	s.setInt("max-speed", fc.MaxSpeed, &cfg.MaxSpeed)
	s.setInt("ptt-delay", fc.PTTDelay, &cfg.PTTDelay)

	s.setBool("echo", fc.Echo, &cfg.Echo)
	s.setBool("mute", fc.Mute, &cfg.Mute)

	if err := s.setDuration("poll-interval", fc.PollInterval, &cfg.PollInterval); err != nil {
		return err
	}
	if err := s.setDuration("status-timeout", fc.StatusTimeout, &cfg.StatusTimeout); err != nil {
		return err
	}
	if err := s.setDuration("echo-timeout", fc.EchoTimeout, &cfg.EchoTimeout); err != nil {
		return err
	}

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
