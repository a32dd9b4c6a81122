package device

import (
	dentris "github.com/ekagansahin/Dentist-Tetris"
)

// ByteIO is the USB CDC byte stream.
type ByteIO interface {
	ReadByte() (byte, error)
	WriteByte(b byte) error
}

// Bridge sends sensor packets to the host and reassembles its downlink
// frames, without ever blocking the main loop.
type Bridge struct {
	io     ByteIO
	frames dentris.FrameBuffer
	writer *dentris.FrameWriter
}

func NewBridge(io ByteIO) *Bridge {
	return &Bridge{
		io:     io,
		writer: dentris.NewFrameWriter(byteWriter{io}),
	}
}

// Send writes one packet as a JSON line. Errors are swallowed; the next
// sample supersedes a lost one anyway.
func (b *Bridge) Send(pkt dentris.SensorPacket) {
	if err := b.writer.Write(pkt); err != nil {
		println("send error:", err.Error())
	}
}

// Receive drains whatever bytes are waiting and returns one decoded
// downlink frame if a complete line arrived.
func (b *Bridge) Receive() (dentris.Downlink, bool) {
	for {
		c, err := b.io.ReadByte()
		if err != nil {
			break
		}
		b.frames.Feed([]byte{c})
	}

	var d dentris.Downlink
	if !b.frames.Next(&d) {
		return dentris.Downlink{}, false
	}
	return d, true
}

// byteWriter adapts the byte-at-a-time serial to io.Writer.
type byteWriter struct {
	io ByteIO
}

func (w byteWriter) Write(p []byte) (int, error) {
	for i, b := range p {
		if err := w.io.WriteByte(b); err != nil {
			return i, err
		}
	}
	return len(p), nil
}
