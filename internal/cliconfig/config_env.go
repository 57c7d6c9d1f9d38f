package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (CWKEYD_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("device", os.Getenv("CWKEYD_DEVICE"), &cfg.Device)
	s.setString("listen", os.Getenv("CWKEYD_LISTEN"), &cfg.Listen)
	s.setString("log-level", os.Getenv("CWKEYD_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setIntFromString("baud", os.Getenv("CWKEYD_BAUD"), &cfg.Baud); err != nil {
		return err
	}
	if err := s.setIntFromString("speed", os.Getenv("CWKEYD_SPEED"), &cfg.Speed); err != nil {
		return err
	}
	if err := s.setIntFromString("min-speed", os.Getenv("CWKEYD_MIN_SPEED"), &cfg.MinSpeed); err != nil {
		return err
	}
	if err := s.setIntFromString("max-speed", os.Getenv("CWKEYD_MAX_SPEED"), &cfg.MaxSpeed); err != nil {
		return err
	}
	if err := s.setIntFromString("ptt-delay", os.Getenv("CWKEYD_PTT_DELAY"), &cfg.PTTDelay); err != nil {
		return err
	}

	if err := s.setDuration("poll-interval", os.Getenv("CWKEYD_POLL_INTERVAL"), &cfg.PollInterval); err != nil {
		return err
	}
	if err := s.setDuration("status-timeout", os.Getenv("CWKEYD_STATUS_TIMEOUT"), &cfg.StatusTimeout); err != nil {
		return err
	}
	if err := s.setDuration("echo-timeout", os.Getenv("CWKEYD_ECHO_TIMEOUT"), &cfg.EchoTimeout); err != nil {
		return err
	}

	s.setBoolFromString("echo", os.Getenv("CWKEYD_ECHO"), &cfg.Echo)
	s.setBoolFromString("mute", os.Getenv("CWKEYD_MUTE"), &cfg.Mute)

	return nil
}
