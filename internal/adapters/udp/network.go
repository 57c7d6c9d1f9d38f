// Package udp implements ports.Network on a single UDP socket with
// deadline-bounded receive and send.
package udp

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/kb1gnc/cwkeyd/internal/domain"
	"github.com/kb1gnc/cwkeyd/internal/ports"
)

// maxDatagram is the receive buffer size. Client datagrams are one
// command or one line of text; anything longer is truncated by the OS.
const maxDatagram = 1024

// Network is a UDP endpoint for keying clients.
type Network struct {
	conn   *net.UDPConn
	logger ports.Logger
	buf    [maxDatagram]byte
}

// Listen binds the UDP endpoint, e.g. ":6789".
func Listen(addr string, logger ports.Logger) (*Network, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("resolve listen address %s: %w", addr, err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	logger.Info("listening", ports.String("addr", conn.LocalAddr().String()))
	return &Network{conn: conn, logger: logger}, nil
}

// Recv waits up to timeout for one datagram. The returned slice is a
// copy and remains valid across calls.
func (n *Network) Recv(timeout time.Duration) ([]byte, net.Addr, bool, error) {
	if n.conn == nil {
		return nil, nil, false, domain.ErrPortClosed
	}
	if err := n.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, nil, false, fmt.Errorf("set read deadline: %w", err)
	}
	size, addr, err := n.conn.ReadFromUDP(n.buf[:])
	if err != nil {
		if isTimeout(err) {
			return nil, nil, false, nil
		}
		return nil, nil, false, fmt.Errorf("recv: %w", err)
	}
	p := make([]byte, size)
	copy(p, n.buf[:size])
	return p, addr, true, nil
}

// SendTo sends one datagram to addr, bounded by timeout.
func (n *Network) SendTo(p []byte, addr net.Addr, timeout time.Duration) error {
	if n.conn == nil {
		return domain.ErrPortClosed
	}
	if err := n.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if _, err := n.conn.WriteTo(p, addr); err != nil {
		return fmt.Errorf("send to %s: %w", addr, err)
	}
	return nil
}

// Close releases the socket.
func (n *Network) Close() error {
	if n.conn == nil {
		return nil
	}
	err := n.conn.Close()
	n.conn = nil
	return err
}

func isTimeout(err error) bool {
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
