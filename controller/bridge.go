package controller

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"go.bug.st/serial"

	dentris "github.com/ekagansahin/Dentist-Tetris"
)

// ErrNoUSBSerial means no candidate serial port was found on the machine.
var ErrNoUSBSerial = errors.New("no usb serial ports found")

// Bridge is the transport between the session and the controller hardware.
// ReadSample never blocks; it reports false when no fresh sample is
// available this tick.
type Bridge interface {
	ReadSample() (dentris.SensorPacket, bool)
	Send(v any) error
	Close() error
}

// SerialBridge reads sensor frames from and writes feedback frames to the
// firmware over a serial port.
type SerialBridge struct {
	port    serial.Port
	frames  dentris.FrameBuffer
	writer  *dentris.FrameWriter
	readBuf []byte
	log     *log.Logger
}

// OpenSerial opens the bridge on the named port. The short read timeout
// keeps ReadSample effectively non-blocking inside the session loop.
func OpenSerial(portName string, baudRate int, logger *log.Logger) (*SerialBridge, error) {
	if logger == nil {
		logger = log.Default()
	}
	mode := &serial.Mode{
		BaudRate: baudRate,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("opening serial port %q: %w", portName, err)
	}
	if err := port.SetReadTimeout(time.Millisecond); err != nil {
		port.Close()
		return nil, fmt.Errorf("setting read timeout: %w", err)
	}

	logger.Info("serial bridge open", "port", portName, "baud", baudRate)
	return &SerialBridge{
		port:    port,
		writer:  dentris.NewFrameWriter(port),
		readBuf: make([]byte, 256),
		log:     logger,
	}, nil
}

// ReadSample pulls whatever bytes are waiting and decodes at most one
// sensor frame. A decode failure is dropped; the firmware sends the next
// sample 10ms later anyway.
func (b *SerialBridge) ReadSample() (dentris.SensorPacket, bool) {
	n, err := b.port.Read(b.readBuf)
	if err != nil {
		b.log.Debug("serial read failed", "error", err)
		return dentris.SensorPacket{}, false
	}
	if n > 0 {
		b.frames.Feed(b.readBuf[:n])
	}

	var pkt dentris.SensorPacket
	if !b.frames.Next(&pkt) {
		return dentris.SensorPacket{}, false
	}
	return pkt, true
}

func (b *SerialBridge) Send(v any) error {
	return b.writer.Write(v)
}

func (b *SerialBridge) Close() error {
	return b.port.Close()
}

// ListPorts returns the serial ports that look like a USB controller,
// preferring ACM/usbmodem device names.
func ListPorts() ([]string, error) {
	all, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("listing serial ports: %w", err)
	}

	var candidates []string
	for _, p := range all {
		lower := strings.ToLower(p)
		if strings.Contains(lower, "usb") || strings.Contains(lower, "acm") {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoUSBSerial
	}
	return candidates, nil
}
