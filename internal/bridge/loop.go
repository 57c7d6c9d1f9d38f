package bridge

import (
	"context"
	"time"

	"github.com/kb1gnc/cwkeyd/internal/domain"
)

// runLoop is the cooperative event loop. Per iteration, in this fixed
// order: poll the network, parse and enqueue, check the tune deadline,
// transmit at most one unit when not flow-controlled, read and decode
// at most one status byte.
//
// It returns nil on a clean in-band terminate or context cancellation,
// and the transport error on a fatal keyer or network failure.
func (b *Bridge) runLoop(ctx context.Context) error {
	s := b.session
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		data, addr, ok, err := b.network.Recv(b.cfg.PollInterval)
		if err != nil {
			return err
		}
		if ok {
			b.observePeer(addr)
			terminate, err := b.handleDatagram(data)
			if err != nil {
				return err
			}
			if terminate {
				return nil
			}
		}

		if err := b.checkTune(b.now()); err != nil {
			return err
		}

		if !s.Xoff {
			if u, ok := s.Queue.Pop(); ok {
				if err := b.keyer.Write(u); err != nil {
					return err
				}
			}
		}

		c, ok, err := b.keyer.ReadByte()
		if err != nil {
			return err
		}
		if ok {
			b.handleStatusByte(c)
		}
	}
}

// checkTune turns the tune carrier off once its deadline has passed.
// The tune-off command bypasses the queue: it is a control command,
// not queued data, and must go out exactly once.
func (b *Bridge) checkTune(now time.Time) error {
	s := b.session
	if !s.TuneOn || !now.After(s.TuneDeadline) {
		return nil
	}
	s.TuneOn = false
	b.logger.Info("tune off")
	return b.keyer.Write([]byte{domain.OpTune, 0})
}
