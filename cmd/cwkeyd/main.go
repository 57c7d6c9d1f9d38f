package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/kb1gnc/cwkeyd"
	"github.com/kb1gnc/cwkeyd/internal/cliconfig"
	"github.com/kb1gnc/cwkeyd/pkg/log"
)

var longHelp = strings.TrimSpace(`
cwkeyd bridges Morse keying clients to a serial keyer module.

Clients send plain text and escape-prefixed commands over UDP; cwkeyd
translates them into the keyer's byte protocol, paces transmission
against the keyer's buffer, and broadcasts keyed characters back to
every client.

Configuration is layered: defaults, then the config file, then
CWKEYD_* environment variables, then command-line flags.
`)

var exampleUsage = strings.TrimSpace(`
  cwkeyd --device /dev/ttyUSB0 --listen :6789
  cwkeyd --config $HOME/.cwkeyd/config.toml --echo
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:     "cwkeyd",
		Short:   "Bridge Morse keying clients to a serial keyer module",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Determine config path (default $HOME/.cwkeyd/config.toml)
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Environment variables override the file but lose to flags.
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			level, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			zerolog.SetGlobalLevel(level)
			logger := log.NewZerologLogger()

			logger.Info("configuration",
				log.String("device", cfg.Device),
				log.Int("baud", cfg.Baud),
				log.String("listen", cfg.Listen),
				log.Int("speed", cfg.Speed),
				log.Int("min_speed", cfg.MinSpeed),
				log.Int("max_speed", cfg.MaxSpeed),
				log.Int("ptt_delay", cfg.PTTDelay),
				log.Bool("echo", cfg.Echo),
				log.Bool("mute", cfg.Mute),
			)

			d, err := cwkeyd.New(cfg.Bridge(), cwkeyd.WithLogger(logger))
			if err != nil {
				return fmt.Errorf("create daemon: %w", err)
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			if err := d.Start(ctx); err != nil {
				return fmt.Errorf("start daemon: %w", err)
			}

			// Watch the config file for runtime-applicable changes.
			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				go cliconfig.NewWatcher(cfgFile, cfg, logger).Run(ctx)
			}

			// Poll for completion so a crashed bridge exits the process.
			doneCh := make(chan struct{})
			go func() {
				ticker := time.NewTicker(100 * time.Millisecond)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						status := d.Status()
						if status == cwkeyd.StateStopped || status == cwkeyd.StateCrashed {
							close(doneCh)
							return
						}
					}
				}
			}()

			select {
			case <-sigCh:
				logger.Info("received signal, stopping")
			case <-doneCh:
				if d.Status() == cwkeyd.StateCrashed {
					logger.Error("daemon crashed")
					return fmt.Errorf("daemon crashed")
				}
				return nil
			}

			if err := d.Stop(); err != nil {
				return fmt.Errorf("stop daemon: %w", err)
			}
			return nil
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.cwkeyd/config.toml)")
	root.Flags().StringVar(&cfg.Device, "device", cfg.Device, "serial device of the keyer module")
	root.Flags().IntVar(&cfg.Baud, "baud", cfg.Baud, "serial speed")
	root.Flags().StringVar(&cfg.Listen, "listen", cfg.Listen, "UDP listen address for keying clients")

	root.Flags().IntVar(&cfg.Speed, "speed", cfg.Speed, "initial keying speed in WPM")
	root.Flags().IntVar(&cfg.MinSpeed, "min-speed", cfg.MinSpeed, "lower bound of the speed range")
	root.Flags().IntVar(&cfg.MaxSpeed, "max-speed", cfg.MaxSpeed, "upper bound of the speed range")
	root.Flags().IntVar(&cfg.PTTDelay, "ptt-delay", cfg.PTTDelay, "PTT lead-in in milliseconds (0..50)")

	root.Flags().BoolVar(&cfg.Echo, "echo", cfg.Echo, "broadcast keyed characters back to clients")
	root.Flags().BoolVar(&cfg.Mute, "mute", cfg.Mute, "disable the keyer sidetone")

	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")

	root.Flags().DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "network poll interval")
	root.Flags().DurationVar(&cfg.StatusTimeout, "status-timeout", cfg.StatusTimeout, "per-iteration serial status read timeout")
	root.Flags().DurationVar(&cfg.EchoTimeout, "echo-timeout", cfg.EchoTimeout, "per-client echo send timeout")
	if err := root.Flags().MarkHidden("status-timeout"); err != nil {
		fmt.Fprintln(os.Stderr, "failed to hide status-timeout flag:", err)
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cwkeyd:", err)
		os.Exit(1)
	}
}
