package device

// Effects runs the one-shot LED and buzzer feedback. A one-shot borrows
// the buzzer from the music until it expires.
type Effects struct {
	beeper Beeper
	leds   []func(on bool)
	music  *Music

	activeUntil  int64
	soundEnabled bool
}

func NewEffects(beeper Beeper, leds []func(on bool), music *Music) *Effects {
	return &Effects{
		beeper:       beeper,
		leds:         leds,
		music:        music,
		soundEnabled: true,
	}
}

// Trigger starts a one-shot tone and lights every LED for the duration.
// Silently dropped while sound is disabled.
func (e *Effects) Trigger(freq uint16, durationMS int64, now int64) {
	if !e.soundEnabled {
		return
	}
	e.beeper.Tone(freq)
	for _, led := range e.leds {
		led(true)
	}
	e.activeUntil = now + durationMS
}

// SetSoundEnabled flips the global sound gate covering both effects and
// music.
func (e *Effects) SetSoundEnabled(enabled bool) {
	e.soundEnabled = enabled
}

func (e *Effects) SoundEnabled() bool { return e.soundEnabled }

// Update expires one-shots and, when none is active, hands the buzzer
// back to the music.
func (e *Effects) Update(now int64) {
	if e.activeUntil != 0 && now >= e.activeUntil {
		e.beeper.Tone(0)
		for _, led := range e.leds {
			led(false)
		}
		e.activeUntil = 0
	}

	if e.activeUntil != 0 {
		return
	}
	if !e.soundEnabled {
		e.beeper.Tone(0)
		return
	}
	e.music.Update(now)
}
