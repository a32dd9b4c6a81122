package dentris

import (
	"bytes"
	"encoding/json"
	"io"
)

// FrameWriter writes values as newline-terminated JSON frames. Writes are
// fire-and-forget at the call sites: a transport error is returned for
// logging but never retried.
type FrameWriter struct {
	w io.Writer
}

func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{w: w}
}

func (fw *FrameWriter) Write(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = fw.w.Write(data)
	return err
}

// FrameBuffer reassembles newline-delimited frames from a byte stream that
// arrives in arbitrary chunks. Bytes accumulate until a terminator shows
// up; a partial trailing frame stays in the buffer untouched.
type FrameBuffer struct {
	buf []byte
}

// Feed appends raw transport bytes to the buffer.
func (fb *FrameBuffer) Feed(p []byte) {
	fb.buf = append(fb.buf, p...)
}

// Next extracts at most one complete line and decodes it into v. It returns
// false when no full line is buffered or the line fails to decode; either
// way the buffer has advanced past any consumed line, so a malformed frame
// is dropped silently and the next call sees the following frame.
func (fb *FrameBuffer) Next(v any) bool {
	i := bytes.IndexByte(fb.buf, '\n')
	if i < 0 {
		return false
	}
	line := bytes.TrimSpace(fb.buf[:i])
	fb.buf = fb.buf[i+1:]
	if len(line) == 0 {
		return false
	}
	return json.Unmarshal(line, v) == nil
}

// Buffered reports how many bytes are waiting for a terminator.
func (fb *FrameBuffer) Buffered() int {
	return len(fb.buf)
}
