package bridge

import (
	"github.com/kb1gnc/cwkeyd/internal/domain"
	"github.com/kb1gnc/cwkeyd/internal/ports"
)

// handleStatusByte interprets one byte read back from the keyer.
// The top two bits classify it: 11 is a keyer status frame, 10 is a
// potentiometer reading, anything else is an echoed character.
//
// Status flags are genuinely orthogonal booleans, not a single state:
// a frame may report busy and buffer-full together.
func (b *Bridge) handleStatusByte(c byte) {
	s := b.session
	switch {
	case c&domain.StatusFrameMask == domain.StatusFrame:
		// Every status frame clears flow control unless the frame
		// itself re-asserts it below.
		s.Xoff = false

		if c == domain.StatusFrame {
			// Keyer idle.
			if s.Busy {
				b.logger.Debug("keyer idle")
			}
			s.Busy = false
			return
		}
		if c&domain.StatusXoff != 0 {
			s.Xoff = true
		}
		if c&domain.StatusBreakIn != 0 {
			b.logger.Debug("paddle break-in")
		}
		if c&domain.StatusBusy != 0 {
			if !s.Busy {
				b.logger.Debug("keyer busy")
			}
			s.Busy = true
		}
		if c&domain.StatusTuning != 0 {
			b.logger.Debug("keyer tuning")
		}
		if c&domain.StatusWaiting != 0 {
			b.logger.Debug("keyer waiting")
		}

	case c&domain.StatusFrameMask == domain.PotFrame:
		b.logger.Debug("pot reading", ports.Int("wpm", int(c&domain.PotValueMask)))

	default:
		if b.cfg.Echo && isPrintable(c) {
			b.broadcastEcho(c)
		}
	}
}

func isPrintable(c byte) bool {
	return c >= ' ' && c <= '~'
}
