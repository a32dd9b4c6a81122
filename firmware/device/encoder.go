package device

// quadTable maps a quadrature frame (prev state << 2 | current state) to
// the movement it represents. Frames 0b0011 and 0b1100 cover encoders
// that skip an intermediate state on fast turns; 0b0110 and 0b1001 are
// physically impossible and ignored.
var quadTable = [16]int8{
	0b0001: +1,
	0b0111: +1,
	0b1110: +1,
	0b1000: +1,

	0b0010: -1,
	0b1011: -1,
	0b1101: -1,
	0b0100: -1,

	0b0011: +1,
	0b1100: -1,
}

// encoderDebounceMS is the minimum gap between processed polls. Contact
// bounce settles well within 2ms at hand-turning speeds.
const encoderDebounceMS = 2

// Encoder decodes a two-pin quadrature rotary encoder. Poll must be
// called every millisecond or so to catch every transition.
type Encoder struct {
	readPins func() (a, b bool)

	state    uint8
	position int
	delta    int
	lastPoll int64
}

// NewEncoder primes the decoder state from the current pin levels so the
// first real transition is decoded correctly.
func NewEncoder(readPins func() (a, b bool)) *Encoder {
	e := &Encoder{readPins: readPins}
	a, b := readPins()
	e.state = pinState(a, b)
	return e
}

func pinState(a, b bool) uint8 {
	var s uint8
	if a {
		s |= 0b10
	}
	if b {
		s |= 0b01
	}
	return s
}

// Poll samples the pins once. now is a millisecond timestamp; polls
// closer together than the debounce window are skipped entirely.
func (e *Encoder) Poll(now int64) {
	if now-e.lastPoll < encoderDebounceMS {
		return
	}
	e.lastPoll = now

	a, b := e.readPins()
	value := pinState(a, b)
	if value == e.state {
		return
	}

	frame := e.state<<2 | value
	movement := int(quadTable[frame&0b1111])
	if movement != 0 {
		e.position += movement
		e.delta += movement
	}
	// Adopt the new state even for an unrecognized frame, so a missed
	// intermediate state cannot wedge the decoder.
	e.state = value
}

// ReadDelta returns the movement accumulated since the last call and
// resets it.
func (e *Encoder) ReadDelta() int {
	d := e.delta
	e.delta = 0
	return d
}

// Position returns the absolute detent count since boot.
func (e *Encoder) Position() int {
	return e.position
}
