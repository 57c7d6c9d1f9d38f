package ports

// KeyerPort is byte-level access to the keyer hardware module.
// Implementations own the serial device; the bridge never configures
// baud rate, parity, or raw mode itself.
type KeyerPort interface {
	// Write sends the bytes to the keyer. A short write is an error.
	// Write failures are unrecoverable; the bridge treats them as fatal.
	Write(p []byte) error

	// ReadByte reads one status byte. It must not block longer than the
	// port's configured read timeout. ok is false when no byte arrived
	// before the timeout, which is a normal condition, not an error.
	ReadByte() (b byte, ok bool, err error)

	// Close releases the serial device.
	Close() error
}
