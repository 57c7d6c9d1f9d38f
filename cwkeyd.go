// Package cwkeyd bridges Morse keying clients speaking a UDP text
// protocol to a serial keyer module. It can be embedded in other
// applications; the cwkeyd command wraps it for standalone use.
//
// Example usage:
//
//	cfg := cwkeyd.DefaultConfig()
//	cfg.Device = "/dev/ttyUSB0"
//	d, err := cwkeyd.New(cfg, cwkeyd.WithLogger(log.NewZerologLogger()))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := d.Start(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//	defer d.Stop()
package cwkeyd

import (
	"context"
	"sync"

	serialAdapter "github.com/kb1gnc/cwkeyd/internal/adapters/serial"
	udpAdapter "github.com/kb1gnc/cwkeyd/internal/adapters/udp"
	"github.com/kb1gnc/cwkeyd/internal/bridge"
	"github.com/kb1gnc/cwkeyd/internal/domain"
	"github.com/kb1gnc/cwkeyd/pkg/log"
)

// Config holds the daemon configuration.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = bridge.Config

// State is the daemon lifecycle state.
type State = bridge.State

// Lifecycle states, in the order a healthy run passes through them.
const (
	StateStopped  = bridge.StateStopped
	StateStarting = bridge.StateStarting
	StateRunning  = bridge.StateRunning
	StateStopping = bridge.StateStopping
	StateCrashed  = bridge.StateCrashed
)

// Sentinel errors returned by Daemon methods.
var (
	ErrAlreadyRunning  = domain.ErrAlreadyRunning
	ErrNotRunning      = domain.ErrNotRunning
	ErrShutdownTimeout = domain.ErrShutdownTimeout
	ErrInvalidConfig   = domain.ErrInvalidConfig
)

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return bridge.DefaultConfig()
}

// Daemon is an embeddable keying bridge.
// Use New() to create an instance, then Start() to begin bridging.
type Daemon struct {
	cfg    Config
	opts   options
	logger log.Logger

	mu     sync.Mutex
	bridge *bridge.Bridge
}

// New creates a new Daemon with the given configuration.
// The instance is created stopped; call Start() to begin bridging.
// Returns an error if the configuration is invalid.
func New(cfg Config, opts ...Option) (*Daemon, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Daemon{
		cfg:    cfg,
		opts:   o,
		logger: o.logger,
	}, nil
}

// Start opens the serial and UDP ports (unless injected via options)
// and launches the bridge. Returns immediately once the event loop is
// running. The provided context bounds the lifetime of the bridge.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.bridge != nil && d.bridge.Status() != StateStopped && d.bridge.Status() != StateCrashed {
		return ErrAlreadyRunning
	}

	keyer := d.opts.keyer
	if keyer == nil {
		k, err := serialAdapter.Open(d.cfg.Device, d.cfg.Baud, d.cfg.StatusTimeout, d.logger)
		if err != nil {
			return err
		}
		keyer = k
	}

	network := d.opts.network
	if network == nil {
		n, err := udpAdapter.Listen(d.cfg.Listen, d.logger)
		if err != nil {
			if d.opts.keyer == nil {
				_ = keyer.Close()
			}
			return err
		}
		network = n
	}

	var emitter bridge.EventEmitter
	if d.opts.eventHandler != nil {
		emitter = &eventEmitterWrapper{handler: d.opts.eventHandler}
	}

	b := bridge.New(d.cfg, keyer, network, d.logger, emitter)
	if err := b.Start(ctx); err != nil {
		if d.opts.keyer == nil {
			_ = keyer.Close()
		}
		if d.opts.network == nil {
			_ = network.Close()
		}
		return err
	}

	d.bridge = b
	return nil
}

// Stop gracefully shuts down the bridge. The outgoing queue is
// discarded, the keyer's host interface is closed and both ports are
// released. Returns ErrShutdownTimeout if the loop does not exit in
// time.
func (d *Daemon) Stop() error {
	d.mu.Lock()
	b := d.bridge
	d.mu.Unlock()

	if b == nil {
		return ErrNotRunning
	}
	return b.Stop()
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (d *Daemon) Status() State {
	d.mu.Lock()
	b := d.bridge
	d.mu.Unlock()

	if b == nil {
		return StateStopped
	}
	return b.Status()
}

// StateChangeEvent describes a lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// EventHandler receives daemon events. Methods are called
// synchronously from the bridge goroutine and must not block.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
}

// eventEmitterWrapper adapts EventHandler to the internal emitter interface.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current bridge.State, reason string) {
	e.handler.OnStateChange(StateChangeEvent{
		Previous: previous,
		Current:  current,
		Reason:   reason,
	})
}
