// Package serial implements ports.KeyerPort on a real serial device
// using tarm/serial.
package serial

import (
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"

	"github.com/kb1gnc/cwkeyd/internal/domain"
	"github.com/kb1gnc/cwkeyd/internal/ports"
)

// Keyer is a serial-attached keyer module.
type Keyer struct {
	port   *serial.Port
	logger ports.Logger
	buf    [1]byte
}

// Open opens the serial device. readTimeout bounds every ReadByte call;
// the keyer protocol never requires blocking reads, so it should be
// short relative to the event loop cadence.
func Open(device string, baud int, readTimeout time.Duration, logger ports.Logger) (*Keyer, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        device,
		Baud:        baud,
		ReadTimeout: readTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open keyer port %s: %w", device, err)
	}
	logger.Info("keyer port open",
		ports.String("device", device),
		ports.Int("baud", baud),
	)
	return &Keyer{port: port, logger: logger}, nil
}

// Write sends the bytes to the keyer. A short write is an error.
func (k *Keyer) Write(p []byte) error {
	if k.port == nil {
		return domain.ErrPortClosed
	}
	n, err := k.port.Write(p)
	if err != nil {
		return fmt.Errorf("keyer write: %w", err)
	}
	if n != len(p) {
		return fmt.Errorf("keyer write: short write %d of %d bytes", n, len(p))
	}
	return nil
}

// ReadByte reads one status byte, waiting at most the configured read
// timeout. An expired timeout reports ok=false with no error.
func (k *Keyer) ReadByte() (byte, bool, error) {
	if k.port == nil {
		return 0, false, domain.ErrPortClosed
	}
	n, err := k.port.Read(k.buf[:])
	if n == 1 {
		return k.buf[0], true, nil
	}
	// tarm/serial reports an expired VTIME either as (0, nil) or as
	// (0, io.EOF) depending on platform.
	if err == nil || err == io.EOF {
		return 0, false, nil
	}
	return 0, false, fmt.Errorf("keyer read: %w", err)
}

// Close releases the serial device.
func (k *Keyer) Close() error {
	if k.port == nil {
		return nil
	}
	err := k.port.Close()
	k.port = nil
	return err
}
