package device

// Beeper drives the buzzer. A zero frequency silences it.
type Beeper interface {
	Tone(freq uint16)
}

// Note is one step of a track: frequency in Hz (0 is a rest) and
// duration in milliseconds.
type Note struct {
	Freq     uint16
	Duration int64
}

// Track names accepted by PlayTrack.
const (
	TrackMenu  = "menu"
	TrackGame  = "game"
	TrackScore = "scoring"
)

// maxLoops bounds how many times the menu and game tracks repeat before
// going quiet. The scoring jingle never loops.
const maxLoops = 2

// menuTrack is the Nokia ringtone at 180 BPM.
var menuTrack = []Note{
	{659, 166}, {587, 166}, {740, 333}, {831, 333},
	{554, 166}, {494, 166}, {294, 333}, {330, 333},
	{494, 166}, {440, 166}, {277, 333}, {330, 333},
	{440, 666}, {0, 200},
}

// gameTrack is the Star Wars main theme at 108 BPM.
var gameTrack = []Note{
	{466, 277}, {466, 277}, {466, 277}, {698, 1111}, {1047, 1111},
	{932, 277}, {880, 277}, {784, 277}, {1397, 1111}, {1047, 555},
	{932, 277}, {880, 277}, {784, 277}, {1397, 1111}, {1047, 555},
	{932, 277}, {880, 277}, {932, 277}, {784, 1111},
	{523, 277}, {523, 277}, {523, 277}, {698, 1111}, {1047, 1111},
	{932, 277}, {880, 277}, {784, 277}, {1397, 1111}, {1047, 555},
	{932, 277}, {880, 277}, {784, 277}, {1397, 1111}, {1047, 555},
	{932, 277}, {880, 277}, {932, 277}, {784, 1111},
	{523, 416}, {523, 138}, {587, 833}, {587, 277},
	{932, 277}, {880, 277}, {784, 277}, {698, 277},
	{698, 277}, {784, 277}, {880, 277}, {784, 555},
	{587, 277}, {659, 555},
	{523, 416}, {523, 138}, {587, 833}, {587, 277},
	{932, 277}, {880, 277}, {784, 277}, {698, 277},
	{1047, 416}, {784, 138}, {784, 2222}, {0, 277},
	{523, 277}, {587, 1111}, {587, 277},
	{932, 277}, {880, 277}, {784, 277}, {698, 277},
	{698, 277}, {784, 277}, {880, 277}, {784, 555},
	{587, 277}, {659, 555},
	{1047, 416}, {1047, 138}, {1397, 555}, {1245, 277},
	{1109, 555}, {1047, 277}, {932, 555}, {831, 277},
	{784, 555}, {698, 277}, {1047, 2222}, {0, 200},
}

// scoreTrack is a short celebratory jingle.
var scoreTrack = []Note{
	{523, 100}, {659, 100}, {784, 100}, {1047, 200},
	{784, 100}, {1047, 300}, {0, 100},
}

// Music plays background tracks on the buzzer, one note at a time from
// the Update calls in the main loop.
type Music struct {
	beeper Beeper

	track     string
	notes     []Note
	noteIndex int
	noteStart int64
	loopCount int
	enabled   bool
}

func NewMusic(beeper Beeper) *Music {
	return &Music{beeper: beeper, enabled: true}
}

// PlayTrack starts a track from the top. Unknown names are ignored.
func (m *Music) PlayTrack(name string) {
	switch name {
	case TrackMenu:
		m.notes = menuTrack
	case TrackGame:
		m.notes = gameTrack
	case TrackScore:
		m.notes = scoreTrack
	default:
		return
	}

	m.track = name
	m.noteIndex = 0
	m.noteStart = 0
	m.loopCount = 0
}

// Stop silences the buzzer and forgets the current track.
func (m *Music) Stop() {
	m.beeper.Tone(0)
	m.track = ""
	m.noteIndex = 0
	m.noteStart = 0
	m.loopCount = 0
}

// SetEnabled mutes or unmutes. Unmuting restarts the current track from
// the top with a fresh loop budget.
func (m *Music) SetEnabled(enabled bool) {
	was := m.enabled
	m.enabled = enabled
	if !enabled {
		m.Stop()
		return
	}
	if !was {
		m.loopCount = 0
		if m.track != "" {
			m.noteIndex = 0
			m.noteStart = 0
		}
	}
}

func (m *Music) Enabled() bool { return m.enabled }

// Playing reports whether a track is currently loaded.
func (m *Music) Playing() bool { return m.track != "" }

// Restart rewinds the current track and resets the loop budget. Used
// when the host re-enters the menu while the menu track is loaded.
func (m *Music) Restart() {
	m.noteIndex = 0
	m.noteStart = 0
	m.loopCount = 0
}

// Update advances playback. now is a millisecond timestamp; call every
// loop iteration.
func (m *Music) Update(now int64) {
	if !m.enabled || m.track == "" || len(m.notes) == 0 {
		m.beeper.Tone(0)
		return
	}

	if m.noteStart == 0 {
		m.noteStart = now
	}

	note := m.notes[m.noteIndex]
	if now-m.noteStart >= note.Duration {
		m.noteIndex++
		m.noteStart = now

		if m.noteIndex >= len(m.notes) {
			if m.track == TrackScore {
				m.Stop()
				return
			}
			m.loopCount++
			if m.loopCount >= maxLoops {
				m.Stop()
				return
			}
			m.noteIndex = 0
		}
		note = m.notes[m.noteIndex]
	}

	m.beeper.Tone(note.Freq)
}
