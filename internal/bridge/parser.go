package bridge

import (
	"bytes"
	"strconv"
	"time"

	"github.com/kb1gnc/cwkeyd/internal/domain"
	"github.com/kb1gnc/cwkeyd/internal/ports"
)

// handleDatagram classifies one client datagram. A datagram whose first
// byte is the escape introduces a command; anything else is Morse text
// handed to the encoder. Empty datagrams are ignored.
//
// terminate reports an in-band shutdown request; err reports a fatal
// keyer transport failure.
func (b *Bridge) handleDatagram(data []byte) (terminate bool, err error) {
	if len(data) == 0 {
		return false, nil
	}
	if data[0] == domain.Escape {
		return b.handleCommand(data[1:])
	}
	b.encodeText(data)
	return false, nil
}

// handleCommand decodes one escape command: a one-character command
// code followed by an optionally-empty decimal argument. Unrecognized
// codes, documented or not, take the catch-all stop-keying branch.
func (b *Bridge) handleCommand(cmd []byte) (bool, error) {
	var code byte
	var arg int
	if len(cmd) > 0 {
		code = cmd[0]
		arg = parseArg(cmd[1:])
	}
	s := b.session

	switch code {
	case domain.CmdSetSpeed:
		s.Speed = arg
		if arg != 0 && (arg < s.MinSpeed || arg > s.MaxSpeed) {
			b.logger.Warn("requested speed outside pot range",
				ports.Int("speed", arg),
				ports.Int("min", s.MinSpeed),
				ports.Int("max", s.MaxSpeed),
			)
		}
		return false, b.keyer.Write([]byte{domain.OpSetSpeed, byte(arg)})

	case domain.CmdTerminate:
		b.logger.Info("terminate command received")
		return true, nil

	case domain.CmdSetWeight:
		w := clamp(domain.WeightNeutral+arg, domain.WeightMin, domain.WeightMax)
		s.Weight = w
		return false, b.keyer.Write([]byte{domain.OpSetWeight, byte(w)})

	case domain.CmdPTTDelay:
		d := clamp(arg, 0, domain.PTTDelayMax)
		s.PTTDelay = d
		return false, b.keyer.Write([]byte{domain.OpSetPTT, byte(d / 10), 0})

	case domain.CmdTune:
		if arg <= 0 {
			return false, nil
		}
		if arg > domain.MaxTuneSeconds {
			arg = domain.MaxTuneSeconds
		}
		s.TuneOn = true
		s.TuneDeadline = b.now().Add(time.Duration(arg) * time.Second)
		b.logger.Info("tune on", ports.Int("seconds", arg))
		return false, b.keyer.Write([]byte{domain.OpTune, 1})

	default:
		// Catch-all stop-keying action. The documented reset (ESC '0')
		// and abort-message (ESC '4') commands land here too.
		s.Queue.Clear()
		s.TuneOn = false
		b.logger.Debug("stop keying", ports.Byte("code", code))
		return false, b.keyer.Write([]byte{domain.OpStopKeying})
	}
}

// parseArg parses the optionally-empty decimal argument after the
// command code. A missing or non-numeric argument parses as 0.
func parseArg(raw []byte) int {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	n, err := strconv.Atoi(string(trimmed))
	if err != nil {
		return 0
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
