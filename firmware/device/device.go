// Package device holds the firmware-side hardware logic: sensor
// sampling, quadrature decoding, the display scoreboard and the audio
// feedback engine. Everything here is plain Go; the machine wiring lives
// behind the tinygo build tag.
package device

import (
	"time"

	dentris "github.com/ekagansahin/Dentist-Tetris"
)

// Effect tones for the game events.
const (
	lineClearedFreq = 1400
	lineClearedMS   = 120
	levelUpFreq     = 800
	levelUpMS       = 200
	gameOverFreq    = 200
	gameOverMS      = 400
)

// Calibration parameters: one second of samples at rest.
const (
	calibrationSamples  = 50
	calibrationInterval = 20 * time.Millisecond
)

// Device ties the firmware subsystems together and carries out host
// commands.
type Device struct {
	sampler *Sampler
	effects *Effects
	music   *Music
	board   *Scoreboard
	clock   func() int64
}

// New assembles the device from its subsystems.
func New(sampler *Sampler, effects *Effects, music *Music, board *Scoreboard, clock func() int64) *Device {
	return &Device{
		sampler: sampler,
		effects: effects,
		music:   music,
		board:   board,
		clock:   clock,
	}
}

// Sample reads all sensors once.
func (d *Device) Sample() dentris.SensorPacket {
	return d.sampler.Sample()
}

// PollEncoder samples the quadrature pins once. Call on a much tighter
// cadence than Sample, or fast turns drop transitions.
func (d *Device) PollEncoder() {
	d.sampler.encoder.Poll(d.clock())
}

// Now returns the device's millisecond timestamp.
func (d *Device) Now() int64 {
	return d.clock()
}

// Update advances effects and music. Call every main loop iteration.
func (d *Device) Update() {
	d.effects.Update(d.clock())
}

// Calibrate blocks while capturing the resting tilt offset. Sampling
// pauses for about a second; the host keeps running on stale input.
func (d *Device) Calibrate() {
	d.sampler.Calibrate(calibrationSamples, calibrationInterval)
}

// PlayTrack starts a background track by name.
func (d *Device) PlayTrack(name string) {
	d.music.PlayTrack(name)
	println("playing track:", name)
}

// StopMusic silences the background track.
func (d *Device) StopMusic() {
	d.music.Stop()
}

// MuteMusic disables the background music only; one-shot effects keep
// playing.
func (d *Device) MuteMusic() {
	d.music.SetEnabled(false)
	println("music muted")
}

// UnmuteMusic re-enables the background music.
func (d *Device) UnmuteMusic() {
	d.music.SetEnabled(true)
	println("music unmuted")
}

// EnableSound turns the global sound gate on and restarts the current
// track from the top.
func (d *Device) EnableSound() {
	d.music.SetEnabled(true)
	d.effects.SetSoundEnabled(true)
	if d.music.Playing() {
		d.music.Restart()
	}
	println("sound enabled")
}

// DisableSound silences everything: music, effects and the buzzer.
func (d *Device) DisableSound() {
	d.music.SetEnabled(false)
	d.music.Stop()
	d.effects.SetSoundEnabled(false)
	println("sound disabled")
}

// SoftReset returns the device to its power-on state without rebooting:
// music off, matrix dark, farewell screen, calibration dropped, sound
// back on. The main loop keeps running so a new session can start.
func (d *Device) SoftReset() {
	d.music.Stop()
	d.board.Reset()
	d.sampler.ResetCalibration()
	d.effects.SetSoundEnabled(true)
	d.music.SetEnabled(true)
	println("reset, ready for a new session")
}

// ApplyFeedback updates the scoreboard and fires event effects from one
// feedback frame. Frames that omit score or level keep the previous
// values, so a command-only frame never blanks the display.
func (d *Device) ApplyFeedback(frame dentris.Downlink) {
	score := d.board.Score()
	if frame.Score != nil {
		score = *frame.Score
	}
	level := d.board.Level()
	if frame.Level != nil {
		level = *frame.Level
	}
	d.board.Update(score, level, frame.Lines)

	if !d.effects.SoundEnabled() {
		return
	}
	now := d.clock()
	for _, event := range frame.Events {
		switch event {
		case dentris.EventLineCleared:
			d.effects.Trigger(lineClearedFreq, lineClearedMS, now)
		case dentris.EventLevelUp:
			d.effects.Trigger(levelUpFreq, levelUpMS, now)
		case dentris.EventGameOver:
			d.effects.Trigger(gameOverFreq, gameOverMS, now)
		}
	}
}
