package cliconfig

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/kb1gnc/cwkeyd/pkg/log"
)

// Watcher monitors the config file via fsnotify and hot-applies the
// settings that can change at runtime. Only log_level takes effect
// live; changes to any other key are logged with a note that a restart
// is required, since keying parameters are fixed for the lifetime of
// the serial session.
type Watcher struct {
	path    string
	current Config
	logger  log.Logger

	mu       sync.Mutex
	debounce *time.Timer
}

// NewWatcher creates a watcher for the config file at path. The
// running configuration is used as the baseline for change detection.
func NewWatcher(path string, running Config, logger log.Logger) *Watcher {
	return &Watcher{
		path:    path,
		current: running,
		logger:  logger,
	}
}

// Run watches the config file's directory until the context is
// canceled. Watching the directory rather than the file survives the
// rename-and-replace pattern editors and config tools use.
func (w *Watcher) Run(ctx context.Context) {
	if w.path == "" {
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Warn("config watcher unavailable", log.Err(err))
		return
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		w.logger.Warn("config watcher unavailable",
			log.String("dir", filepath.Dir(w.path)),
			log.Err(err),
		)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.debounceReload(100 * time.Millisecond)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", log.Err(err))
		}
	}
}

// debounceReload coalesces the event bursts editors produce into a
// single reload.
func (w *Watcher) debounceReload(delay time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}

	w.debounce = time.AfterFunc(delay, w.reload)
}

func (w *Watcher) reload() {
	fc, err := LoadFileConfig(w.path)
	if err != nil {
		w.logger.Warn("config reload failed",
			log.String("path", w.path),
			log.Err(err),
		)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	candidate := w.current
	if err := ApplyFileConfig(&candidate, fc, map[string]bool{}); err != nil {
		w.logger.Warn("config reload failed",
			log.String("path", w.path),
			log.Err(err),
		)
		return
	}

	levelChanged, restart := diffConfig(w.current, candidate)

	if levelChanged {
		level, err := zerolog.ParseLevel(candidate.LogLevel)
		if err != nil {
			w.logger.Warn("ignoring invalid log level",
				log.String("log_level", candidate.LogLevel),
				log.Err(err),
			)
		} else {
			zerolog.SetGlobalLevel(level)
			w.current.LogLevel = candidate.LogLevel
			w.logger.Info("log level updated",
				log.String("log_level", candidate.LogLevel),
			)
		}
	}

	if len(restart) > 0 {
		w.logger.Warn("config changed, restart required to apply",
			log.Any("keys", restart),
		)
	}
}

// diffConfig reports whether the log level changed and which other
// keys differ between the running and the candidate configuration.
func diffConfig(running, candidate Config) (levelChanged bool, restart []string) {
	levelChanged = running.LogLevel != candidate.LogLevel

	if running.Device != candidate.Device {
		restart = append(restart, "device")
	}
	if running.Baud != candidate.Baud {
		restart = append(restart, "baud")
	}
	if running.Listen != candidate.Listen {
		restart = append(restart, "listen")
	}
	if running.Speed != candidate.Speed {
		restart = append(restart, "speed")
	}
	if running.MinSpeed != candidate.MinSpeed {
		restart = append(restart, "min_speed")
	}
	if running.MaxSpeed != candidate.MaxSpeed {
		restart = append(restart, "max_speed")
	}
	if running.PTTDelay != candidate.PTTDelay {
		restart = append(restart, "ptt_delay")
	}
	if running.Echo != candidate.Echo {
		restart = append(restart, "echo")
	}
	if running.Mute != candidate.Mute {
		restart = append(restart, "mute")
	}
	if running.PollInterval != candidate.PollInterval {
		restart = append(restart, "poll_interval")
	}
	if running.StatusTimeout != candidate.StatusTimeout {
		restart = append(restart, "status_timeout")
	}
	if running.EchoTimeout != candidate.EchoTimeout {
		restart = append(restart, "echo_timeout")
	}

	return levelChanged, restart
}
