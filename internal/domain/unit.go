package domain

// Unit is one keyer-bound transmission: a single buffered character or
// a short inline command such as a buffered speed change or a prosign
// merge. Units are immutable once built and are consumed exactly once,
// in FIFO order.
type Unit []byte

// CharUnit builds a unit carrying a single buffered character.
func CharUnit(c byte) Unit {
	return Unit{c}
}

// ProsignUnit builds a unit that merges two characters into one prosign,
// for example AS or SN.
func ProsignUnit(a, b byte) Unit {
	return Unit{Escape, a, b}
}

// SpeedUnit builds a buffered inline speed change unit.
func SpeedUnit(wpm int) Unit {
	return Unit{OpBufferedSpeed, byte(wpm)}
}
