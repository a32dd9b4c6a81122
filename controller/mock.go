package controller

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	dentris "github.com/ekagansahin/Dentist-Tetris"
)

// MockBridge fakes the controller with keyboard-driven state, so the game
// runs with no hardware attached. The key handlers run on the UI thread
// while ReadSample runs in the session loop, hence the mutex.
type MockBridge struct {
	mu sync.Mutex

	tilt     float64
	buttonA  bool
	buttonB  bool
	position int
	pot      uint16

	start time.Time
	log   *log.Logger
}

// NewMockBridge starts with the stick centered and the pot at its resting
// value.
func NewMockBridge(logger *log.Logger) *MockBridge {
	if logger == nil {
		logger = log.Default()
	}
	return &MockBridge{
		pot:   dentris.DefaultPot,
		start: time.Now(),
		log:   logger,
	}
}

// SetTilt sets the simulated roll angle in degrees.
func (m *MockBridge) SetTilt(deg float64) {
	m.mu.Lock()
	m.tilt = deg
	m.mu.Unlock()
}

// SetButtonA sets the simulated pause/select button level.
func (m *MockBridge) SetButtonA(down bool) {
	m.mu.Lock()
	m.buttonA = down
	m.mu.Unlock()
}

// SetButtonB sets the simulated rotate/back button level.
func (m *MockBridge) SetButtonB(down bool) {
	m.mu.Lock()
	m.buttonB = down
	m.mu.Unlock()
}

// Turn moves the simulated encoder by the given number of detents.
func (m *MockBridge) Turn(detents int) {
	m.mu.Lock()
	m.position += detents
	m.mu.Unlock()
}

// SetPot sets the simulated speed knob.
func (m *MockBridge) SetPot(value uint16) {
	m.mu.Lock()
	m.pot = value
	m.mu.Unlock()
}

// ReadSample always has a sample ready: the current simulated state.
func (m *MockBridge) ReadSample() (dentris.SensorPacket, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pkt := dentris.SensorPacket{
		TS:   time.Since(m.start).Milliseconds(),
		Tilt: dentris.Tilt{X: m.tilt},
		Pot:  m.pot,
		Encoder: dentris.Encoder{
			Position: m.position,
		},
	}
	if m.buttonA {
		pkt.Buttons.A = 1
	}
	if m.buttonB {
		pkt.Buttons.B = 1
	}
	return pkt, true
}

// Send logs the frame instead of transmitting it.
func (m *MockBridge) Send(v any) error {
	m.log.Debug("mock bridge send", "frame", v)
	return nil
}

func (m *MockBridge) Close() error { return nil }
