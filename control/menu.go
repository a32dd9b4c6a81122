package control

import (
	dentris "github.com/ekagansahin/Dentist-Tetris"
)

// Menu item labels, exported so the renderer draws exactly what the
// navigators select between.
var (
	MainItems    = []string{"Start Game", "Options", "Exit"}
	OptionsItems = []string{"Sound", "Calibration"}
	PauseItems   = []string{"Resume", "Main Menu", "Mute"}
)

// Navigator tracks an encoder-driven selection over a list of items. The
// index always reflects the absolute encoder position; the first sample
// after (re)arming is never acted on, so a button already held when a
// menu opens cannot select anything.
type Navigator struct {
	armed    bool
	selected int
}

// Update feeds the current encoder position. It returns false on the
// arming sample, meaning the caller must not act on select edges this
// tick; afterwards it returns true and keeps the selection current.
func (n *Navigator) Update(position, itemCount int) bool {
	n.selected = IndexForPosition(position, itemCount)
	if !n.armed {
		n.armed = true
		return false
	}
	return true
}

// Selected returns the current item index.
func (n *Navigator) Selected() int { return n.selected }

// Rearm suppresses the next select, used when a menu (re)opens.
func (n *Navigator) Rearm() {
	n.armed = false
}

// MenuResult is what a navigator's select resolves to. At most one field
// is meaningful per select.
type MenuResult struct {
	// Command is a firmware command to send, empty if none.
	Command string
	// StartGame requests leaving the menu into a fresh game.
	StartGame bool
	// Exit requests a full shutdown.
	Exit bool
}

type mainScreen int

const (
	screenMain mainScreen = iota
	screenOptions
)

// MainMenu is the top-level menu with its Options subscreen. Button B
// backs out of Options; the Options entry on the main screen is fixed at
// index 1.
type MainMenu struct {
	nav    Navigator
	screen mainScreen
	sound  bool
}

// NewMainMenu starts on the main screen with sound enabled.
func NewMainMenu() *MainMenu {
	return &MainMenu{sound: true}
}

// Items returns the labels for the screen currently shown.
func (m *MainMenu) Items() []string {
	if m.screen == screenOptions {
		return OptionsItems
	}
	return MainItems
}

// Selected returns the highlighted index on the current screen.
func (m *MainMenu) Selected() int { return m.nav.Selected() }

// InOptions reports whether the Options subscreen is showing.
func (m *MainMenu) InOptions() bool { return m.screen == screenOptions }

// SoundEnabled reports the sound toggle state.
func (m *MainMenu) SoundEnabled() bool { return m.sound }

// Rearm resets encoder tracking, used when returning to this menu.
func (m *MainMenu) Rearm() {
	m.nav.Rearm()
	m.screen = screenMain
}

// Update processes one tick of menu input and returns the result of any
// select this tick.
func (m *MainMenu) Update(in Intents) MenuResult {
	armed := m.nav.Update(in.EncoderPosition, len(m.Items()))
	if !armed {
		return MenuResult{}
	}

	if m.screen == screenOptions && in.RotateEdge {
		// Back out; the main screen highlight stays on Options.
		m.screen = screenMain
		m.nav.selected = 1
		return MenuResult{}
	}

	if !in.SelectEdge {
		return MenuResult{}
	}

	if m.screen == screenOptions {
		switch m.nav.Selected() {
		case 0:
			m.sound = !m.sound
			if m.sound {
				return MenuResult{Command: dentris.CommandSoundOn}
			}
			return MenuResult{Command: dentris.CommandSoundOff}
		case 1:
			return MenuResult{Command: dentris.CommandCalibrate}
		}
		return MenuResult{}
	}

	switch m.nav.Selected() {
	case 0:
		return MenuResult{StartGame: true}
	case 1:
		m.screen = screenOptions
		m.nav.selected = 0
		return MenuResult{}
	case 2:
		return MenuResult{Exit: true}
	}
	return MenuResult{}
}

// PauseResult is the outcome of one pause-menu tick.
type PauseResult struct {
	Resume   bool
	MainMenu bool
	// Command carries the mute or unmute toggle when the Mute entry was
	// selected.
	Command string
}

// PauseMenu is the in-game pause overlay: Resume, Main Menu, Mute.
type PauseMenu struct {
	nav   Navigator
	muted bool
}

func NewPauseMenu() *PauseMenu { return &PauseMenu{} }

func (p *PauseMenu) Items() []string { return PauseItems }

func (p *PauseMenu) Selected() int { return p.nav.Selected() }

// Muted reports whether the Mute entry last toggled music off.
func (p *PauseMenu) Muted() bool { return p.muted }

// Rearm resets encoder tracking for the next time the game pauses.
func (p *PauseMenu) Rearm() {
	p.nav.Rearm()
}

// Update processes one tick of pause-menu input.
func (p *PauseMenu) Update(in Intents) PauseResult {
	armed := p.nav.Update(in.EncoderPosition, len(PauseItems))
	if !armed || !in.SelectEdge {
		return PauseResult{}
	}

	switch p.nav.Selected() {
	case 0:
		return PauseResult{Resume: true}
	case 1:
		return PauseResult{MainMenu: true}
	case 2:
		p.muted = !p.muted
		if p.muted {
			return PauseResult{Command: dentris.CommandMusicMute}
		}
		return PauseResult{Command: dentris.CommandMusicUnmute}
	}
	return PauseResult{}
}
