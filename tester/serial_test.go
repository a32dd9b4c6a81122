package main_test

import (
	"os"
	"testing"
	"time"

	"go.bug.st/serial"

	dentris "github.com/ekagansahin/Dentist-Tetris"
)

// Hardware-in-the-loop tests. Flash the firmware, plug the controller in
// and point DENTRIS_PORT at its serial device:
//
//	DENTRIS_PORT=/dev/ttyACM0 go test ./tester

func openPort(t *testing.T) serial.Port {
	t.Helper()

	name := os.Getenv("DENTRIS_PORT")
	if name == "" {
		t.Skip("DENTRIS_PORT not set")
	}

	port, err := serial.Open(name, &serial.Mode{BaudRate: dentris.DefaultBaudRate})
	if err != nil {
		t.Fatalf("unexpected error opening serial connection: %v", err)
	}
	t.Cleanup(func() { port.Close() })

	port.SetReadTimeout(100 * time.Millisecond)
	return port
}

func readSamples(t *testing.T, port serial.Port, window time.Duration) []dentris.SensorPacket {
	t.Helper()

	var frames dentris.FrameBuffer
	var samples []dentris.SensorPacket
	buf := make([]byte, 256)

	deadline := time.Now().Add(window)
	for time.Now().Before(deadline) {
		n, err := port.Read(buf)
		if err != nil {
			t.Fatalf("unexpected error reading serial: %v", err)
		}
		frames.Feed(buf[:n])

		var pkt dentris.SensorPacket
		for frames.Next(&pkt) {
			samples = append(samples, pkt)
		}
	}
	return samples
}

func TestSensorStream(t *testing.T) {
	port := openPort(t)

	samples := readSamples(t, port, 500*time.Millisecond)

	// 10ms cadence, so half a second should yield dozens even with
	// serial jitter.
	if len(samples) < 10 {
		t.Fatalf("expected at least 10 samples, got %d", len(samples))
	}

	for i, s := range samples {
		if s.Tilt.X < -30 || s.Tilt.X > 30 {
			t.Errorf("sample %d: tilt %.1f outside [-30, 30]", i, s.Tilt.X)
		}
		if i > 0 && s.TS < samples[i-1].TS {
			t.Errorf("sample %d: timestamp went backwards: %d after %d", i, s.TS, samples[i-1].TS)
		}
	}
}

func TestCalibrationPausesSampling(t *testing.T) {
	port := openPort(t)
	writer := dentris.NewFrameWriter(port)

	err := writer.Write(dentris.CommandPacket{Command: dentris.CommandCalibrate})
	if err != nil {
		t.Fatalf("unexpected error writing serial: %v", err)
	}

	// Calibration blocks sampling for about a second; the stream must
	// come back afterwards.
	time.Sleep(1500 * time.Millisecond)
	samples := readSamples(t, port, 500*time.Millisecond)
	if len(samples) < 10 {
		t.Fatalf("expected stream to resume after calibration, got %d samples", len(samples))
	}

	// A calibrated controller at rest should report near-zero tilt.
	last := samples[len(samples)-1]
	if last.Tilt.X < -5 || last.Tilt.X > 5 {
		t.Errorf("expected near-zero tilt after calibration, got %.1f", last.Tilt.X)
	}
}
