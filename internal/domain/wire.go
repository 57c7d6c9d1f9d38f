package domain

// Escape introduces a client command datagram. A datagram whose first
// byte is not Escape is plain Morse text.
const Escape byte = 0x1B

// Client command codes, the byte following Escape.
const (
	// CmdSetSpeed sets the absolute keying speed in WPM.
	CmdSetSpeed byte = '2'

	// CmdTerminate shuts the daemon down cleanly.
	CmdTerminate byte = '5'

	// CmdSetWeight sets keying weight; the argument is an offset -50..50
	// around the neutral value of 50.
	CmdSetWeight byte = '7'

	// CmdPTTDelay sets the PTT lead-in time in milliseconds, 0..50.
	CmdPTTDelay byte = 'd'

	// CmdTune keys a continuous carrier for the argument's number of
	// seconds, capped at MaxTuneSeconds.
	CmdTune byte = 'c'
)

// Keyer command opcodes written to the serial port. Multi-byte commands
// are the opcode followed by its argument bytes.
const (
	// OpAdmin prefixes host-interface administration; see AdminOpen and
	// AdminClose.
	OpAdmin byte = 0x00

	// AdminOpen opens the host interface.
	AdminOpen byte = 0x02

	// AdminClose closes the host interface.
	AdminClose byte = 0x03

	// OpSetSpeed sets the absolute speed, one argument byte in WPM.
	OpSetSpeed byte = 0x02

	// OpSetWeight sets keying weight, one argument byte in 10..90.
	OpSetWeight byte = 0x03

	// OpSetPTT sets PTT lead/tail timing, two argument bytes in units
	// of 10 ms.
	OpSetPTT byte = 0x04

	// OpSetPotRange sets the speed potentiometer range: minimum WPM,
	// range span, and a fixed zero.
	OpSetPotRange byte = 0x05

	// OpSetPinConfig sets the output pin and sidetone configuration.
	OpSetPinConfig byte = 0x09

	// OpStopKeying aborts keying and flushes the keyer's own buffer.
	OpStopKeying byte = 0x0A

	// OpTune keys a continuous carrier; argument byte 1 = on, 0 = off.
	OpTune byte = 0x0B

	// OpSetMode sets the keyer mode register.
	OpSetMode byte = 0x0E

	// OpBufferedSpeed is the buffered inline speed change, one argument
	// byte in WPM. Unlike OpSetSpeed it queues behind buffered text.
	OpBufferedSpeed byte = 0x1C
)

// Mode register bits for OpSetMode.
const (
	// ModeWatchdogDisable turns off the paddle watchdog.
	ModeWatchdogDisable byte = 0x80

	// ModeSerialEcho makes the keyer echo each buffered character back
	// on the status channel as it is sent.
	ModeSerialEcho byte = 0x04
)

// Pin configuration values for OpSetPinConfig.
const (
	// PinConfigDefault enables PTT, sidetone, and the key output.
	PinConfigDefault byte = 0x07

	// PinConfigMuted is PinConfigDefault with the sidetone disabled.
	PinConfigMuted byte = 0x05
)

// Status byte classification. The top two bits select the frame type;
// anything that is neither a status nor a potentiometer frame is an
// echoed character.
const (
	// StatusFrameMask selects the frame-type bits of a status byte.
	StatusFrameMask byte = 0xC0

	// StatusFrame marks a keyer status frame (top bits 11).
	StatusFrame byte = 0xC0

	// PotFrame marks a speed potentiometer reading (top bits 10).
	PotFrame byte = 0x80

	// PotValueMask extracts the potentiometer reading.
	PotValueMask byte = 0x7F
)

// Status frame flag bits. The flags are independent; several may be
// set in one frame.
const (
	// StatusXoff means the keyer's input buffer is nearly full and the
	// host must pause transmission.
	StatusXoff byte = 0x01

	// StatusBreakIn means the paddles interrupted buffered sending.
	StatusBreakIn byte = 0x02

	// StatusBusy means the keyer is actively sending.
	StatusBusy byte = 0x04

	// StatusTuning means tune mode is keying a carrier.
	StatusTuning byte = 0x08

	// StatusWaiting means the keyer is paused in a timed wait.
	StatusWaiting byte = 0x10
)

// Speed and argument bounds enforced by the bridge.
const (
	// SpeedCeiling is the highest speed an inline "+" nudge may reach.
	SpeedCeiling = 90

	// SpeedFloor is the lowest speed an inline "-" nudge may reach.
	SpeedFloor = 8

	// SpeedNudge is the WPM step applied per inline "+" or "-".
	SpeedNudge = 2

	// WeightMin and WeightMax bound the transmitted weight value.
	WeightMin = 10
	WeightMax = 90

	// WeightNeutral is the weight corresponding to a zero offset.
	WeightNeutral = 50

	// PTTDelayMax is the largest accepted PTT lead-in in milliseconds.
	PTTDelayMax = 50

	// MaxTuneSeconds caps the duration of a tune request.
	MaxTuneSeconds = 10
)
