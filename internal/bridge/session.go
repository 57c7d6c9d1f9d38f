package bridge

import (
	"net"
	"time"

	"github.com/kb1gnc/cwkeyd/internal/domain"
)

// Session is the single owned home of all mutable daemon state: the
// keyer state mirror, the outgoing queue, and the client peer set.
// It is created once at start and touched only by the event loop
// goroutine, so it carries no locks.
type Session struct {
	// Speed is the current keying speed in WPM. It is mutated by the
	// set-speed command and by inline +/- nudges.
	Speed int

	// MinSpeed and MaxSpeed are the configured pot bounds, used only
	// for out-of-range warnings; requested speeds are never clamped
	// before transmission.
	MinSpeed int
	MaxSpeed int

	// Weight is the keying weight last transmitted, clamped to 10..90.
	Weight int

	// PTTDelay is the PTT lead-in in milliseconds last transmitted,
	// clamped to 0..50.
	PTTDelay int

	// Xoff is the flow-control flag: true while the keyer's input
	// buffer is nearly full. Set and cleared only by status decoding.
	Xoff bool

	// Busy mirrors the keyer's busy status bit.
	Busy bool

	// TuneOn is true while a timed tune carrier is keyed. It implies
	// TuneDeadline is a valid future time.
	TuneOn       bool
	TuneDeadline time.Time

	// Queue holds the keyer-bound units awaiting transmission.
	Queue Queue

	// gapOpen is true after a '~' opened a word-gap span; the next
	// enqueued unit is preceded by the gap filler units.
	gapOpen bool

	// Peer set. Peers are never removed; the set grows for the
	// daemon's lifetime.
	peerSeen  map[string]struct{}
	peerOrder []net.Addr
}

// NewSession builds the session from the validated configuration.
func NewSession(cfg Config) *Session {
	return &Session{
		Speed:    cfg.Speed,
		MinSpeed: cfg.MinSpeed,
		MaxSpeed: cfg.MaxSpeed,
		Weight:   domain.WeightNeutral,
		PTTDelay: cfg.PTTDelay,
		peerSeen: make(map[string]struct{}),
	}
}

// ObservePeer records a datagram source. It reports whether the peer
// was seen for the first time.
func (s *Session) ObservePeer(addr net.Addr) bool {
	key := addr.String()
	if _, seen := s.peerSeen[key]; seen {
		return false
	}
	s.peerSeen[key] = struct{}{}
	s.peerOrder = append(s.peerOrder, addr)
	return true
}

// Peers returns every known peer in first-seen order.
func (s *Session) Peers() []net.Addr {
	return s.peerOrder
}
