package ports

import (
	"net"
	"time"
)

// Network is the datagram endpoint facing keying clients.
type Network interface {
	// Recv waits up to timeout for one datagram. ok is false when the
	// timeout expired with nothing received, which is a normal
	// condition, not an error. addr identifies the sending client.
	Recv(timeout time.Duration) (p []byte, addr net.Addr, ok bool, err error)

	// SendTo sends one datagram to addr, bounded by timeout. A timed-out
	// or failed send affects only this addr; the caller decides whether
	// to continue with other peers.
	SendTo(p []byte, addr net.Addr, timeout time.Duration) error

	// Close releases the endpoint.
	Close() error
}
