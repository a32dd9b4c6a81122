package dentris

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensorPacketRoundTrip(t *testing.T) {
	sent := SensorPacket{
		TS:      123456,
		Tilt:    Tilt{X: -12.5, Y: 3.25},
		Buttons: Buttons{A: 1, B: 0},
		Encoder: Encoder{Delta: -3, Position: 42},
		Pot:     51234,
	}

	var buf bytes.Buffer
	require.NoError(t, NewFrameWriter(&buf).Write(sent))
	assert.Equal(t, byte('\n'), buf.Bytes()[buf.Len()-1])

	var fb FrameBuffer
	fb.Feed(buf.Bytes())

	var got SensorPacket
	require.True(t, fb.Next(&got))
	assert.Equal(t, sent.TS, got.TS)
	assert.InDelta(t, sent.Tilt.X, got.Tilt.X, 1e-9)
	assert.InDelta(t, sent.Tilt.Y, got.Tilt.Y, 1e-9)
	assert.Equal(t, sent.Buttons, got.Buttons)
	assert.Equal(t, sent.Encoder, got.Encoder)
	assert.Equal(t, sent.Pot, got.Pot)
}

func TestSensorPacketMissingPotDefaultsToMidScale(t *testing.T) {
	var fb FrameBuffer
	fb.Feed([]byte(`{"ts":1,"tilt":{"x":0,"y":0},"buttons":{"a":0,"b":0},"encoder":{"delta":0,"position":0}}` + "\n"))

	var got SensorPacket
	require.True(t, fb.Next(&got))
	assert.Equal(t, DefaultPot, got.Pot, "an absent pot must not read as full speed")

	// An explicit zero is still honored.
	fb.Feed([]byte(`{"ts":2,"pot":0}` + "\n"))
	require.True(t, fb.Next(&got))
	assert.Equal(t, uint16(0), got.Pot)
}

func TestFrameBufferPartialFrame(t *testing.T) {
	var fb FrameBuffer
	fb.Feed([]byte(`{"ts":1,"pot":100`))

	var got SensorPacket
	assert.False(t, fb.Next(&got), "partial frame must not be consumed")

	fb.Feed([]byte(",\"tilt\":{\"x\":5}}\n"))
	require.True(t, fb.Next(&got))
	assert.Equal(t, int64(1), got.TS)
	assert.Equal(t, uint16(100), got.Pot)
	assert.InDelta(t, 5.0, got.Tilt.X, 1e-9)
	assert.Equal(t, 0, fb.Buffered())
}

func TestFrameBufferDropsMalformedLines(t *testing.T) {
	var fb FrameBuffer
	fb.Feed([]byte("this is not json\n{\"ts\":7}\n"))

	var got SensorPacket
	assert.False(t, fb.Next(&got), "malformed line reports no packet")
	require.True(t, fb.Next(&got), "buffer must advance past the bad line")
	assert.Equal(t, int64(7), got.TS)
}

func TestFrameBufferOneLinePerCall(t *testing.T) {
	var fb FrameBuffer
	fb.Feed([]byte("{\"ts\":1}\n{\"ts\":2}\n{\"ts\":3}\n"))

	for i, want := range []int64{1, 2, 3} {
		var got SensorPacket
		require.True(t, fb.Next(&got), "line %d", i)
		assert.Equal(t, want, got.TS)
	}
	var got SensorPacket
	assert.False(t, fb.Next(&got))
}

func TestFrameBufferSkipsBlankLines(t *testing.T) {
	var fb FrameBuffer
	fb.Feed([]byte("\r\n{\"ts\":9}\n"))

	var got SensorPacket
	assert.False(t, fb.Next(&got))
	require.True(t, fb.Next(&got))
	assert.Equal(t, int64(9), got.TS)
}

func TestDownlinkRouting(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		isCommand bool
	}{
		{"command", `{"command":"calibrate"}`, true},
		{"action", `{"action":"resume"}`, true},
		{"feedback", `{"score":10,"level":1,"events":["LINE_CLEARED"],"lines":1,"drop_delay":0.5}`, false},
		{"unknown fields ignored", `{"score":10,"level":1,"bogus":true}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fb FrameBuffer
			fb.Feed([]byte(tt.line + "\n"))

			var d Downlink
			require.True(t, fb.Next(&d))
			assert.Equal(t, tt.isCommand, d.IsCommand())
		})
	}
}

func TestDownlinkMissingScoreIsNil(t *testing.T) {
	var fb FrameBuffer
	fb.Feed([]byte(`{"command":"music_menu"}` + "\n"))

	var d Downlink
	require.True(t, fb.Next(&d))
	assert.Nil(t, d.Score, "command frames carry no score; scoreboard keeps its value")
	assert.Nil(t, d.Level)
}
