//go:build tinygo

package device

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/mpu6050"
	"tinygo.org/x/drivers/tone"
)

// BoardConfig is the pin map for the controller build. The defaults
// target a Raspberry Pi Pico.
type BoardConfig struct {
	ButtonA machine.Pin
	ButtonB machine.Pin

	EncoderA machine.Pin
	EncoderB machine.Pin

	PotPin machine.Pin

	BuzzerPin machine.Pin
	BuzzerPWM tone.PWM

	LEDPins []machine.Pin

	I2CSCL machine.Pin
	I2CSDA machine.Pin

	SPISCK   machine.Pin
	SPIMOSI  machine.Pin
	MatrixCS machine.Pin

	OLEDAddress uint16
}

// DefaultBoardConfig matches the hand-wired prototype.
func DefaultBoardConfig() BoardConfig {
	return BoardConfig{
		ButtonA:  machine.GP10,
		ButtonB:  machine.GP11,
		EncoderA: machine.GP14,
		EncoderB: machine.GP15,
		// TODO: GP26 doubles as an LED pin on this board; move the pot
		// to GP29/ADC3 on the next wiring revision.
		PotPin:      machine.GP26,
		BuzzerPin:   machine.GP9,
		BuzzerPWM:   machine.PWM4,
		LEDPins:     []machine.Pin{machine.GP28, machine.GP27, machine.GP26, machine.GP25},
		I2CSCL:      machine.GP13,
		I2CSDA:      machine.GP12,
		SPISCK:      machine.GP6,
		SPIMOSI:     machine.GP7,
		MatrixCS:    machine.GP5,
		OLEDAddress: 0x3C,
	}
}

// imuAdapter narrows the mpu6050 driver to the Accelerometer interface.
type imuAdapter struct {
	dev mpu6050.Device
}

func (a imuAdapter) ReadAcceleration() (int32, int32, int32, error) {
	x, y, z := a.dev.ReadAcceleration()
	return x, y, z, nil
}

// speakerBeeper drives the tone PWM from note frequencies.
type speakerBeeper struct {
	speaker tone.Speaker
}

func (b speakerBeeper) Tone(freq uint16) {
	if freq == 0 {
		b.speaker.Stop()
		return
	}
	b.speaker.SetPeriod(uint64(1e9) / uint64(freq))
}

// NewBoard configures every peripheral and assembles the Device.
func NewBoard(cfg BoardConfig) (*Device, error) {
	err := machine.I2C0.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SCL:       cfg.I2CSCL,
		SDA:       cfg.I2CSDA,
	})
	if err != nil {
		return nil, err
	}
	err = machine.SPI0.Configure(machine.SPIConfig{
		Frequency: 10 * machine.MHz,
		SCK:       cfg.SPISCK,
		SDO:       cfg.SPIMOSI,
	})
	if err != nil {
		return nil, err
	}

	imu := mpu6050.New(machine.I2C0)
	imu.Configure()

	cfg.ButtonA.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	cfg.ButtonB.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	cfg.EncoderA.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	cfg.EncoderB.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	machine.InitADC()
	pot := machine.ADC{Pin: cfg.PotPin}
	pot.Configure(machine.ADCConfig{})

	speaker, err := tone.New(cfg.BuzzerPWM, cfg.BuzzerPin)
	if err != nil {
		return nil, err
	}
	beeper := speakerBeeper{speaker: speaker}

	leds := make([]func(bool), len(cfg.LEDPins))
	for i, pin := range cfg.LEDPins {
		pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		pin := pin
		leds[i] = pin.Set
	}

	display, err := newHardwareDisplay(machine.I2C0, machine.SPI0, cfg.MatrixCS, cfg.OLEDAddress)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	clock := func() int64 {
		return time.Since(start).Milliseconds()
	}

	encoder := NewEncoder(func() (bool, bool) {
		return cfg.EncoderA.Get(), cfg.EncoderB.Get()
	})
	sampler := NewSampler(
		imuAdapter{dev: imu},
		cfg.ButtonA.Get,
		cfg.ButtonB.Get,
		pot.Get,
		encoder,
		clock,
	)

	music := NewMusic(beeper)
	effects := NewEffects(beeper, leds, music)
	board := NewScoreboard(display)

	return New(sampler, effects, music, board, clock), nil
}

// serialIO adapts the USB CDC port to the bridge.
type serialIO struct{}

func (serialIO) ReadByte() (byte, error) {
	return machine.Serial.ReadByte()
}

func (serialIO) WriteByte(b byte) error {
	return machine.Serial.WriteByte(b)
}

// NewSerialBridge returns the bridge over the USB CDC port.
func NewSerialBridge() *Bridge {
	return NewBridge(serialIO{})
}
