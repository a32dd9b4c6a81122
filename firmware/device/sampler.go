package device

import (
	"math"
	"time"

	dentris "github.com/ekagansahin/Dentist-Tetris"
)

// Accelerometer reads acceleration in micro-g, matching the tinygo
// driver convention.
type Accelerometer interface {
	ReadAcceleration() (x, y, z int32, err error)
}

// Tilt angles outside this range carry no extra meaning for the game, so
// the firmware clamps before sending.
const (
	tiltMin = -30.0
	tiltMax = 30.0
)

// Sampler reads every input sensor and assembles SensorPackets. The roll
// offset captured by Calibrate is subtracted from every sample.
type Sampler struct {
	accel   Accelerometer
	buttonA func() bool
	buttonB func() bool
	pot     func() uint16
	encoder *Encoder
	clock   func() int64

	rollOffset float64
}

// NewSampler wires the sampler up. clock returns milliseconds since boot
// and stamps outgoing packets.
func NewSampler(accel Accelerometer, buttonA, buttonB func() bool, pot func() uint16, encoder *Encoder, clock func() int64) *Sampler {
	return &Sampler{
		accel:   accel,
		buttonA: buttonA,
		buttonB: buttonB,
		pot:     pot,
		encoder: encoder,
		clock:   clock,
	}
}

// rawAngles converts one acceleration reading to roll and pitch degrees.
// The max guard keeps atan2 away from a degenerate zero denominator when
// the board is held vertically.
func (s *Sampler) rawAngles() (roll, pitch float64) {
	x, y, z, err := s.accel.ReadAcceleration()
	if err != nil {
		println("accel read error:", err.Error())
		return 0, 0
	}

	ax := float64(x) / 1e6
	ay := float64(y) / 1e6
	az := float64(z) / 1e6

	roll = degrees(math.Atan2(ay, math.Max(1e-3, az)))
	pitch = degrees(math.Atan2(ax, math.Max(1e-3, math.Sqrt(ay*ay+az*az))))
	return roll, pitch
}

// Sample reads everything once and returns the packet to send.
func (s *Sampler) Sample() dentris.SensorPacket {
	roll, pitch := s.rawAngles()
	tiltX := clamp(roll-s.rollOffset, tiltMin, tiltMax)

	pkt := dentris.SensorPacket{
		TS:   s.clock(),
		Tilt: dentris.Tilt{X: tiltX, Y: pitch},
		Encoder: dentris.Encoder{
			Delta:    s.encoder.ReadDelta(),
			Position: s.encoder.Position(),
		},
		Pot: s.pot(),
	}
	if s.buttonA() {
		pkt.Buttons.A = 1
	}
	if s.buttonB() {
		pkt.Buttons.B = 1
	}
	return pkt
}

// Calibrate averages the resting roll angle over the given number of
// samples and stores it as the zero offset. It blocks for
// samples * interval; the device must be held still the whole time.
func (s *Sampler) Calibrate(samples int, interval time.Duration) float64 {
	println("calibrating tilt, keep the device still")

	var sum float64
	for i := 0; i < samples; i++ {
		roll, _ := s.rawAngles()
		sum += roll
		time.Sleep(interval)
		if (i+1)%10 == 0 {
			println("calibration progress:", i+1, "/", samples)
		}
	}

	s.rollOffset = sum / float64(samples)
	println("calibration done")
	return s.rollOffset
}

// ResetCalibration drops the stored offset, part of the soft reset.
func (s *Sampler) ResetCalibration() {
	s.rollOffset = 0
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
