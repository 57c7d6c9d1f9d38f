package domain

import "errors"

// Domain errors represent error conditions in the cwkeyd domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("cwkeyd: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped instance.
	ErrNotRunning = errors.New("cwkeyd: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("cwkeyd: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("cwkeyd: invalid configuration")

	// ErrPortClosed is returned when an operation is attempted on a closed
	// keyer or network port.
	ErrPortClosed = errors.New("cwkeyd: port closed")
)
