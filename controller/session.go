// Package controller runs the PC side of the game: it drains sensor
// frames from the bridge, maps them to intents, advances the menus or the
// game, and streams feedback back to the firmware.
package controller

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	dentris "github.com/ekagansahin/Dentist-Tetris"
	"github.com/ekagansahin/Dentist-Tetris/control"
	"github.com/ekagansahin/Dentist-Tetris/game"
)

// maxDrainPerTick bounds how many frames one tick consumes. The firmware
// samples slower than the session ticks, so a small burst is enough to
// catch up after a hiccup without stalling the frame.
const maxDrainPerTick = 3

// MenuView is what the renderer needs to draw a menu overlay.
type MenuView struct {
	Title    string
	Items    []string
	Selected int
}

// Frame is one render tick's worth of state. Sensors is the last raw
// sample, for the debug panel.
type Frame struct {
	Game    game.Snapshot
	Menu    *MenuView
	Running bool
	Sound   bool
	Sensors dentris.SensorPacket
}

// Renderer draws frames. Render is called from the session goroutine
// every tick; implementations throttle and marshal to their own thread.
type Renderer interface {
	Render(Frame)
}

type sessionMode int

const (
	modeMenu sessionMode = iota
	modeRunning
)

// Session drives the whole host loop over one bridge.
type Session struct {
	cfg      Config
	bridge   Bridge
	renderer Renderer
	log      *log.Logger

	game      *game.Game
	mainMenu  *control.MainMenu
	pauseMenu *control.PauseMenu

	mode       sessionMode
	prev       dentris.SensorPacket
	havePrev   bool
	wasPaused  bool
	lastUplink time.Time
}

// NewSession wires a session together. A nil renderer runs headless.
func NewSession(cfg Config, bridge Bridge, renderer Renderer, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Session{
		cfg:       cfg,
		bridge:    bridge,
		renderer:  renderer,
		log:       logger,
		game:      game.New(seed, logger),
		mainMenu:  control.NewMainMenu(),
		pauseMenu: control.NewPauseMenu(),
	}
}

// Run loops until the context is cancelled or the Exit menu entry is
// selected. It owns the bridge and closes it on the way out.
func (s *Session) Run(ctx context.Context) error {
	defer s.bridge.Close()

	s.sendCommand(dentris.CommandMusicMenu)

	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.FrameRate))
	defer ticker.Stop()
	dt := time.Second / time.Duration(s.cfg.FrameRate)

	for {
		select {
		case <-ctx.Done():
			s.sendCommand(dentris.CommandExit)
			return ctx.Err()
		case <-ticker.C:
		}

		if exit := s.tick(dt); exit {
			s.sendCommand(dentris.CommandExit)
			return nil
		}
	}
}

// tick advances one frame. It returns true when the session should end.
func (s *Session) tick(dt time.Duration) bool {
	cur, ok := s.drain()
	if ok {
		if !s.havePrev {
			s.prev = cur
			s.havePrev = true
		}
		in := control.Map(cur, s.prev, game.BoardWidth)
		s.prev = cur

		if s.mode == modeMenu {
			if s.tickMenu(in) {
				return true
			}
		} else {
			s.tickGame(in, dt)
		}
	} else if s.mode == modeRunning && !s.game.Paused() {
		// No fresh sample: gravity still runs off the last known input.
		in := control.Map(s.prev, s.prev, game.BoardWidth)
		s.tickGame(in, dt)
	}

	s.render()
	return false
}

// drain reads up to maxDrainPerTick samples and keeps the latest, so a
// backlog never makes the game react to stale input.
func (s *Session) drain() (dentris.SensorPacket, bool) {
	var latest dentris.SensorPacket
	found := false
	for i := 0; i < maxDrainPerTick; i++ {
		pkt, ok := s.bridge.ReadSample()
		if !ok {
			break
		}
		latest = pkt
		found = true
	}
	return latest, found
}

func (s *Session) tickMenu(in control.Intents) (exit bool) {
	res := s.mainMenu.Update(in)
	if res.Command != "" {
		s.sendCommand(res.Command)
	}
	if res.Exit {
		s.log.Info("exit selected")
		return true
	}
	if res.StartGame {
		s.log.Info("starting game")
		s.game.Reset()
		s.mode = modeRunning
		s.wasPaused = false
		s.sendCommand(dentris.CommandMusicGame)
	}
	return false
}

func (s *Session) tickGame(in control.Intents, dt time.Duration) {
	if s.game.Paused() {
		s.tickPauseMenu(in)
		return
	}

	events := s.game.Update(game.Input{
		TargetColumn: in.TargetColumn,
		RotateEdge:   in.RotateEdge,
		PauseEdge:    in.PauseEdge,
		Pot:          in.Pot,
	}, dt)

	if s.game.Paused() && !s.wasPaused {
		// Fresh pause: the menu re-arms off the current knob position.
		s.pauseMenu.Rearm()
	}
	s.wasPaused = s.game.Paused()

	s.sendFeedback(events)
}

func (s *Session) tickPauseMenu(in control.Intents) {
	res := s.pauseMenu.Update(in)
	switch {
	case res.Resume:
		s.game.SetPaused(false)
		s.wasPaused = false
		s.sendCommand(dentris.CommandMusicGame)
	case res.MainMenu:
		s.returnToMain()
	case res.Command != "":
		s.sendCommand(res.Command)
	}
}

// returnToMain resets the game and both navigators, so neither menu
// carries over a selection from before.
func (s *Session) returnToMain() {
	s.log.Info("returning to main menu")
	s.game.Reset()
	s.mode = modeMenu
	s.wasPaused = false
	s.mainMenu.Rearm()
	s.pauseMenu.Rearm()
	s.sendCommand(dentris.CommandMusicMenu)
}

// sendFeedback rate-limits feedback frames, except frames carrying events
// which always go out immediately.
func (s *Session) sendFeedback(events []string) {
	if len(events) == 0 && time.Since(s.lastUplink) < time.Duration(s.cfg.FeedbackInterval) {
		return
	}
	s.lastUplink = time.Now()

	pkt := dentris.FeedbackPacket{
		Score:     s.game.Score(),
		Level:     s.game.Level(),
		Events:    events,
		Lines:     s.game.Lines(),
		DropDelay: s.game.DropDelay(),
	}
	if err := s.bridge.Send(pkt); err != nil {
		s.log.Warn("feedback send failed", "error", err)
	}

	for _, ev := range events {
		if ev == dentris.EventLineCleared {
			s.sendCommand(dentris.CommandMusicScore)
		}
	}
}

func (s *Session) sendCommand(command string) {
	err := s.bridge.Send(dentris.CommandPacket{Command: command})
	if err != nil {
		s.log.Warn("command send failed", "command", command, "error", err)
	}
}

func (s *Session) render() {
	if s.renderer == nil {
		return
	}

	frame := Frame{
		Game:    s.game.Snapshot(),
		Running: s.mode == modeRunning,
		Sound:   s.mainMenu.SoundEnabled(),
		Sensors: s.prev,
	}
	switch {
	case s.mode == modeMenu && s.mainMenu.InOptions():
		frame.Menu = &MenuView{Title: "Options", Items: s.mainMenu.Items(), Selected: s.mainMenu.Selected()}
	case s.mode == modeMenu:
		frame.Menu = &MenuView{Title: "Dentist Tetris", Items: s.mainMenu.Items(), Selected: s.mainMenu.Selected()}
	case s.game.Paused():
		frame.Menu = &MenuView{Title: "Paused", Items: s.pauseMenu.Items(), Selected: s.pauseMenu.Selected()}
	}
	s.renderer.Render(frame)
}
