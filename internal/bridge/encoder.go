package bridge

import (
	"strings"

	"github.com/kb1gnc/cwkeyd/internal/domain"
)

// plainPunct is the punctuation the keyer accepts as-is, alongside
// digits, letters, and space.
const plainPunct = "')/:<=>?@|,.\x08"

// gapFillers is how many word-gap marker units precede the unit that
// closes an open '~' span.
const gapFillers = 4

// encodeText maps one text payload onto queued keyer units. Characters
// are upper-cased, then either queued unchanged, substituted, expanded
// into a prosign, turned into an inline speed nudge, or dropped.
// A NUL terminates the payload.
func (b *Bridge) encodeText(text []byte) {
	s := b.session
	for _, raw := range text {
		if raw == 0 {
			break
		}
		c := upper(raw)
		switch {
		case isPlain(c):
			s.enqueue(domain.CharUnit(c))

		case c == '&':
			// AS: "wait" prosign.
			s.enqueue(domain.ProsignUnit('A', 'S'))

		case c == '!':
			// SN: "understood" prosign.
			s.enqueue(domain.ProsignUnit('S', 'N'))

		case c == '(':
			s.enqueue(domain.CharUnit(')'))

		case c == '*':
			s.enqueue(domain.CharUnit('<'))

		case c == '+':
			if s.Speed < domain.SpeedCeiling {
				s.Speed += domain.SpeedNudge
				s.enqueue(domain.SpeedUnit(s.Speed))
			}

		case c == '-':
			if s.Speed > domain.SpeedFloor {
				s.Speed -= domain.SpeedNudge
				s.enqueue(domain.SpeedUnit(s.Speed))
			}

		case c == '~':
			s.gapOpen = true

		default:
			// Unsendable character, silently dropped.
		}
	}
}

// enqueue appends one unit, first emitting the word-gap fillers if a
// '~' span is open. The span closes after one emission.
func (s *Session) enqueue(u domain.Unit) {
	if s.gapOpen {
		for i := 0; i < gapFillers; i++ {
			s.Queue.Push(domain.CharUnit('|'))
		}
		s.gapOpen = false
	}
	s.Queue.Push(u)
}

// isPlain reports whether an upper-cased character is sendable without
// translation.
func isPlain(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c == ' ':
		return true
	default:
		return strings.IndexByte(plainPunct, c) >= 0
	}
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
