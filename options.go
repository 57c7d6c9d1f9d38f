package cwkeyd

import (
	"github.com/kb1gnc/cwkeyd/internal/ports"
	"github.com/kb1gnc/cwkeyd/pkg/log"
)

// Logger is the interface for structured logging.
type Logger = log.Logger

// LogField represents a structured log field.
type LogField = log.Field

// KeyerPort is the serial side of the bridge. Implement it to drive a
// fake keyer in tests or an alternative transport.
type KeyerPort = ports.KeyerPort

// Network is the client side of the bridge.
type Network = ports.Network

// Option configures optional behavior of the Daemon.
type Option func(*options)

// options holds the optional configuration for a Daemon instance.
type options struct {
	logger       log.Logger
	keyer        ports.KeyerPort
	network      ports.Network
	eventHandler EventHandler
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithKeyerPort injects an already-open keyer port. The daemon will
// not open the serial device; the caller keeps ownership across
// restarts but the daemon still closes the port on shutdown.
func WithKeyerPort(keyer KeyerPort) Option {
	return func(o *options) {
		o.keyer = keyer
	}
}

// WithNetwork injects an already-open client transport.
func WithNetwork(network Network) Option {
	return func(o *options) {
		o.network = network
	}
}

// WithEventHandler sets a handler for daemon events.
// Events are called synchronously from the bridge goroutine.
// If not provided, no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}
