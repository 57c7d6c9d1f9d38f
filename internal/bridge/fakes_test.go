package bridge

import (
	"net"
	"sync"
	"time"

	"github.com/kb1gnc/cwkeyd/internal/ports"
)

// fakeKeyer implements ports.KeyerPort, recording every write and
// replaying a scripted status byte sequence.
type fakeKeyer struct {
	mu       sync.Mutex
	writes   [][]byte
	status   []byte
	writeErr error
	readErr  error
	closed   bool
}

func (k *fakeKeyer) Write(p []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.writeErr != nil {
		return k.writeErr
	}
	cp := make([]byte, len(p))
	copy(cp, p)
	k.writes = append(k.writes, cp)
	return nil
}

func (k *fakeKeyer) ReadByte() (byte, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.readErr != nil {
		return 0, false, k.readErr
	}
	if len(k.status) == 0 {
		return 0, false, nil
	}
	c := k.status[0]
	k.status = k.status[1:]
	return c, true, nil
}

func (k *fakeKeyer) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.closed = true
	return nil
}

func (k *fakeKeyer) Writes() [][]byte {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := make([][]byte, len(k.writes))
	copy(out, k.writes)
	return out
}

func (k *fakeKeyer) isClosed() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.closed
}

// WritesAfterInit drops the fixed-length keyer startup sequence.
func (k *fakeKeyer) WritesAfterInit() [][]byte {
	w := k.Writes()
	if len(w) < initSequenceLen {
		return nil
	}
	return w[initSequenceLen:]
}

// initSequenceLen is the number of writes initKeyer performs.
const initSequenceLen = 7

type datagram struct {
	data []byte
	addr net.Addr
}

type sentDatagram struct {
	data []byte
	addr string
}

// fakeNetwork implements ports.Network. It replays a scripted inbox;
// once the inbox is drained it reports idle polls, and after
// idleBudget idle polls it calls onIdle (typically a context cancel)
// so loop tests terminate deterministically.
type fakeNetwork struct {
	mu         sync.Mutex
	inbox      []datagram
	sent       []sentDatagram
	sendErr    map[string]error
	idleBudget int
	onIdle     func()
	closed     bool
}

func (n *fakeNetwork) Recv(timeout time.Duration) ([]byte, net.Addr, bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.inbox) > 0 {
		d := n.inbox[0]
		n.inbox = n.inbox[1:]
		return d.data, d.addr, true, nil
	}
	if n.idleBudget > 0 {
		n.idleBudget--
		if n.idleBudget == 0 && n.onIdle != nil {
			n.onIdle()
		}
	}
	return nil, nil, false, nil
}

func (n *fakeNetwork) SendTo(p []byte, addr net.Addr, timeout time.Duration) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err, ok := n.sendErr[addr.String()]; ok {
		return err
	}
	cp := make([]byte, len(p))
	copy(cp, p)
	n.sent = append(n.sent, sentDatagram{data: cp, addr: addr.String()})
	return nil
}

func (n *fakeNetwork) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	return nil
}

func (n *fakeNetwork) isClosed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.closed
}

func (n *fakeNetwork) Sent() []sentDatagram {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]sentDatagram, len(n.sent))
	copy(out, n.sent)
	return out
}

// captureLogger implements ports.Logger, counting messages per level.
type captureLogger struct {
	mu     sync.Mutex
	debugs []string
	infos  []string
	warns  []string
	errors []string
}

func (l *captureLogger) Debug(msg string, fields ...ports.Field) { l.record(&l.debugs, msg) }
func (l *captureLogger) Info(msg string, fields ...ports.Field)  { l.record(&l.infos, msg) }
func (l *captureLogger) Warn(msg string, fields ...ports.Field)  { l.record(&l.warns, msg) }
func (l *captureLogger) Error(msg string, fields ...ports.Field) { l.record(&l.errors, msg) }

func (l *captureLogger) record(dst *[]string, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*dst = append(*dst, msg)
}

func (l *captureLogger) Warns() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string{}, l.warns...)
}

func clientAddr(port int) net.Addr {
	return &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: port}
}

// newTestBridge wires a bridge over fakes with a fixed test clock.
func newTestBridge(mutate func(*Config)) (*Bridge, *fakeKeyer, *fakeNetwork, *captureLogger) {
	cfg := DefaultConfig()
	cfg.Echo = true
	if mutate != nil {
		mutate(&cfg)
	}
	keyer := &fakeKeyer{}
	network := &fakeNetwork{}
	logger := &captureLogger{}
	b := New(cfg, keyer, network, logger, nil)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return base }
	return b, keyer, network, logger
}
