package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEffects() (*Effects, *fakeBeeper, *[]bool) {
	beeper := &fakeBeeper{}
	ledState := make([]bool, 4)
	leds := make([]func(bool), 4)
	for i := range leds {
		i := i
		leds[i] = func(on bool) { ledState[i] = on }
	}
	music := NewMusic(beeper)
	return NewEffects(beeper, leds, music), beeper, &ledState
}

func TestEffectsOneShot(t *testing.T) {
	e, beeper, leds := testEffects()

	e.Trigger(1400, 120, 1000)
	assert.Equal(t, uint16(1400), beeper.freq)
	for _, on := range *leds {
		assert.True(t, on)
	}

	e.Update(1100)
	assert.Equal(t, uint16(1400), beeper.freq, "effect still active")

	e.Update(1120)
	assert.Equal(t, uint16(0), beeper.freq)
	for _, on := range *leds {
		assert.False(t, on)
	}
}

func TestEffectsSuppressMusicWhileActive(t *testing.T) {
	e, beeper, _ := testEffects()
	e.music.PlayTrack(TrackGame)

	e.Trigger(800, 200, 1000)
	e.Update(1050)
	assert.Equal(t, uint16(800), beeper.freq, "music must not steal the buzzer")

	// After expiry the music takes over again.
	e.Update(1300)
	assert.Equal(t, gameTrack[0].Freq, beeper.freq)
}

func TestEffectsRespectSoundGate(t *testing.T) {
	e, beeper, leds := testEffects()
	e.SetSoundEnabled(false)

	e.Trigger(1400, 120, 1000)
	assert.Equal(t, uint16(0), beeper.freq, "no tone while sound is off")
	for _, on := range *leds {
		assert.False(t, on, "LEDs follow the sound gate")
	}

	e.music.PlayTrack(TrackMenu)
	e.Update(2000)
	assert.Equal(t, uint16(0), beeper.freq)
}

func TestEffectsMusicRunsWhenIdle(t *testing.T) {
	e, beeper, _ := testEffects()
	e.music.PlayTrack(TrackMenu)
	require.True(t, e.music.Playing())

	e.Update(500)
	assert.Equal(t, menuTrack[0].Freq, beeper.freq)
}
