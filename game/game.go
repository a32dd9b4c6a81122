package game

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	dentris "github.com/ekagansahin/Dentist-Tetris"
)

// Input is the mapped control state the game consumes each tick. The
// mapping from raw sensor samples happens upstream; by the time it gets
// here everything is discrete.
type Input struct {
	// TargetColumn is where the tilt wants the piece's leftmost cell.
	TargetColumn int
	// RotateEdge is true only on the tick button B was pressed.
	RotateEdge bool
	// PauseEdge is true only on the tick button A was pressed.
	PauseEdge bool
	// Pot is the raw potentiometer reading controlling drop speed.
	Pot uint16
}

// Game is the falling-block state machine. It owns the board and pieces
// exclusively; one caller drives Update once per tick.
type Game struct {
	board  *Board
	active Piece
	next   Piece

	score int
	lines int
	level int

	dropDelay time.Duration
	dropTimer time.Duration
	moveTimer time.Duration
	paused    bool

	events []string
	rng    *rand.Rand
	log    *log.Logger
}

// New returns a fresh game. The seed fixes the piece sequence, which keeps
// tests deterministic; pass time-based seeds for play.
func New(seed int64, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	g := &Game{
		rng: rand.New(rand.NewSource(seed)),
		log: logger,
	}
	g.Reset()
	return g
}

// Reset rebuilds the whole game state: empty board, zero score, fresh
// pieces. Nothing from the previous round is carried over except the
// random stream.
func (g *Game) Reset() {
	g.board = NewBoard(BoardWidth, BoardHeight, g.log)
	g.active = g.spawn()
	g.next = g.spawn()
	g.score = 0
	g.lines = 0
	g.level = 1
	g.dropDelay = MaxDropDelay
	g.dropTimer = 0
	g.moveTimer = 0
	g.paused = false
	g.events = nil
}

func (g *Game) spawn() Piece {
	return NewPiece(Shape(1 + g.rng.Intn(NumShapes)))
}

// Update advances the game by dt and returns the events that fired this
// tick. The returned slice is reused between ticks; callers must not hold
// on to it.
func (g *Game) Update(in Input, dt time.Duration) []string {
	g.events = g.events[:0]

	if in.PauseEdge {
		g.paused = !g.paused
	}
	if g.paused {
		return g.events
	}

	g.updateSpeed(in.Pot)
	g.resolveHorizontal(in.TargetColumn, dt)
	if in.RotateEdge {
		g.tryRotate()
	}
	g.applyGravity(dt)
	return g.events
}

// updateSpeed derives the drop delay from the potentiometer, capped by the
// current level's gravity rule.
func (g *Game) updateSpeed(pot uint16) {
	base := lerpDuration(int(pot), 0, 65535, MinDropDelay, MaxDropDelay)
	target := min(base, g.maxDelayForLevel())
	g.dropDelay = clampDuration(target, MinDropDelay/2, MaxDropDelay)
}

// resolveHorizontal nudges the piece one column toward the target, at most
// once per moveInterval.
func (g *Game) resolveHorizontal(target int, dt time.Duration) {
	cells := g.active.Cells(0, 0, 0)
	leftmost := cells[0].X
	for _, c := range cells[1:] {
		if c.X < leftmost {
			leftmost = c.X
		}
	}

	needed := target - leftmost
	if needed == 0 {
		g.moveTimer = 0
		return
	}
	g.moveTimer += dt
	if g.moveTimer < moveInterval {
		return
	}
	g.moveTimer = 0
	if needed > 0 {
		g.tryMove(1, 0)
	} else {
		g.tryMove(-1, 0)
	}
}

// tryMove shifts the active piece if the destination cells are valid.
func (g *Game) tryMove(dx, dy int) bool {
	if !g.board.Valid(g.active.Cells(dx, dy, 0)) {
		return false
	}
	g.active.X += dx
	g.active.Y += dy
	return true
}

// tryRotate attempts a rotation with wall kicks, in a fixed offset order.
// The first offset whose cell set is valid wins; if none fit, the piece is
// left unchanged.
func (g *Game) tryRotate() {
	for _, kick := range [...]int{0, -1, 1, -2, 2} {
		if g.board.Valid(g.active.Cells(kick, 0, 1)) {
			g.active.X += kick
			g.active.Rotation = (g.active.Rotation + 1) % g.active.RotationCount()
			return
		}
	}
}

func (g *Game) applyGravity(dt time.Duration) {
	g.dropTimer += dt
	if g.dropTimer < g.dropDelay {
		return
	}
	g.dropTimer = 0
	if !g.tryMove(0, 1) {
		g.lockPiece()
	}
}

// lockPiece writes the active piece into the board, clears lines, scores,
// and spawns the next piece. Locking any cell above the board is game
// over: the whole state is rebuilt, but the GAME_OVER event survives the
// reset so the caller observes it.
func (g *Game) lockPiece() {
	for _, c := range g.active.Cells(0, 0, 0) {
		if c.Y < 0 {
			events := append(g.events, dentris.EventGameOver)
			g.log.Info("game over", "score", g.score, "lines", g.lines)
			g.Reset()
			g.events = events
			return
		}
	}
	for _, c := range g.active.Cells(0, 0, 0) {
		g.board.Set(c.X, c.Y, g.active.Shape)
	}

	cleared := g.board.ClearLines()
	if cleared > 0 {
		g.lines += cleared
		gained := lineScores[min(cleared, 4)] * g.level
		g.score += gained
		g.events = append(g.events, dentris.EventLineCleared)
		g.log.Info("lines cleared", "count", cleared, "gained", gained, "score", g.score)

		if g.maxDelayForLevel() < g.dropDelay {
			g.events = append(g.events, dentris.EventLevelUp)
			g.log.Info("level up", "level", g.level)
		}
	}

	g.active = g.next
	g.next = g.spawn()
}

// maxDelayForLevel returns the gravity cap for the highest level whose
// score threshold is met, updating the level as a side effect.
func (g *Game) maxDelayForLevel() time.Duration {
	eligible := levelRules[0]
	for _, rule := range levelRules {
		if g.score >= rule.Score {
			eligible = rule
		}
	}
	g.level = eligible.Level
	return eligible.MaxDelay
}

// GhostCells returns the projected resting cells of the active piece: the
// lowest downward shift that is still valid.
func (g *Game) GhostCells() []Cell {
	drop := 0
	for g.board.Valid(g.active.Cells(0, drop+1, 0)) {
		drop++
	}
	return g.active.Cells(0, drop, 0)
}

func (g *Game) Score() int    { return g.score }
func (g *Game) Lines() int    { return g.lines }
func (g *Game) Level() int    { return g.level }
func (g *Game) Paused() bool  { return g.paused }
func (g *Game) Active() Piece { return g.active }
func (g *Game) Next() Piece   { return g.next }
func (g *Game) Board() *Board { return g.board }

// SetPaused is used by the pause menu's Resume action; in-game pausing
// goes through the PauseEdge input instead.
func (g *Game) SetPaused(paused bool) {
	g.paused = paused
}

// DropDelay returns the current gravity interval in seconds, as reported
// in feedback packets.
func (g *Game) DropDelay() float64 {
	return g.dropDelay.Seconds()
}

func lerpDuration(value, srcMin, srcMax int, dstMin, dstMax time.Duration) time.Duration {
	if srcMax == srcMin {
		return dstMax
	}
	normalized := float64(value-srcMin) / float64(srcMax-srcMin)
	return dstMin + time.Duration(normalized*float64(dstMax-dstMin))
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}
