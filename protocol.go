package dentris

import "encoding/json"

// Tilt is the calibrated accelerometer angle pair in degrees. X (roll) moves
// the piece; Y (pitch) is reported but unused by the game.
type Tilt struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Buttons reports the raw button levels as 0/1. Edge detection happens on
// the host, not here.
type Buttons struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Encoder reports both the delta accumulated since the previous packet and
// the absolute position since boot, so the host can use either.
type Encoder struct {
	Delta    int `json:"delta"`
	Position int `json:"position"`
}

// SensorPacket is one sensor sample, firmware to host. One packet per 10 ms
// sampling tick.
type SensorPacket struct {
	TS      int64   `json:"ts"`
	Tilt    Tilt    `json:"tilt"`
	Buttons Buttons `json:"buttons"`
	Encoder Encoder `json:"encoder"`
	Pot     uint16  `json:"pot"`
}

// UnmarshalJSON fills documented defaults before decoding. A frame that
// omits the pot reads as mid-scale, never as the fastest drop speed.
func (p *SensorPacket) UnmarshalJSON(data []byte) error {
	type packet SensorPacket
	aux := packet{Pot: DefaultPot}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = SensorPacket(aux)
	return nil
}

// FeedbackPacket is the game state summary, host to firmware. Events holds
// zero or more of the Event* tags, in the order they fired this tick.
type FeedbackPacket struct {
	Score     int      `json:"score"`
	Level     int      `json:"level"`
	Events    []string `json:"events"`
	Lines     int      `json:"lines"`
	DropDelay float64  `json:"drop_delay"`
}

// CommandPacket carries a one-shot command in either direction. Exactly one
// of Command or Action is set.
type CommandPacket struct {
	Command string `json:"command,omitempty"`
	Action  string `json:"action,omitempty"`
}

// Downlink is the firmware's decode target for host frames. Feedback and
// command frames share one line stream, so the firmware decodes into this
// merged shape and routes on IsCommand. Unknown fields are ignored by the
// JSON decoder; absent numeric fields decode to zero and are treated as
// "no change" by the scoreboard.
type Downlink struct {
	Command   string   `json:"command"`
	Action    string   `json:"action"`
	Score     *int     `json:"score"`
	Level     *int     `json:"level"`
	Lines     int      `json:"lines"`
	Events    []string `json:"events"`
	DropDelay float64  `json:"drop_delay"`
}

// IsCommand reports whether the frame should be routed to the command
// dispatcher instead of the scoreboard/effects path.
func (d Downlink) IsCommand() bool {
	return d.Command != "" || d.Action != ""
}
