package bridge

import (
	"net"

	"github.com/kb1gnc/cwkeyd/internal/ports"
)

// observePeer records a datagram source in the grow-only peer set.
// Peers are recorded at receipt time, whether or not echo is enabled,
// so a client that sent before enabling echo still gets broadcasts.
func (b *Bridge) observePeer(addr net.Addr) {
	if b.session.ObservePeer(addr) {
		b.logger.Info("new client", ports.String("addr", addr.String()))
	}
}

// broadcastEcho sends one echoed character to every known peer as a
// one-byte datagram. Each send is bounded by the echo timeout; a failed
// or timed-out send to one peer never blocks delivery to the others.
func (b *Bridge) broadcastEcho(c byte) {
	for _, addr := range b.session.Peers() {
		if err := b.network.SendTo([]byte{c}, addr, b.cfg.EchoTimeout); err != nil {
			b.logger.Warn("echo send failed",
				ports.String("addr", addr.String()),
				ports.Err(err),
			)
		}
	}
}
