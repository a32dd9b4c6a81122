package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dentris "github.com/ekagansahin/Dentist-Tetris"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	return New(1, testLogger())
}

func TestScoreTable(t *testing.T) {
	tests := []struct {
		lines  int
		level  int
		gained int
	}{
		{1, 1, 10}, {2, 1, 20}, {3, 1, 30}, {4, 1, 40},
		{1, 2, 20}, {2, 2, 40}, {3, 2, 60}, {4, 2, 80},
	}

	for _, tt := range tests {
		g := newTestGame(t)
		if tt.level == 2 {
			g.score = 200
			g.maxDelayForLevel()
			require.Equal(t, 2, g.level)
		}
		base := g.score

		// Fill the bottom rows except the rightmost column, then lock a
		// vertical I piece into the gap.
		for y := BoardHeight - tt.lines; y < BoardHeight; y++ {
			fillRow(g.board, y, 9)
		}
		g.active = Piece{Shape: ShapeI, Rotation: 1, X: 7, Y: BoardHeight - 4}
		g.events = g.events[:0]
		g.lockPiece()

		assert.Equal(t, tt.gained, g.score-base, "%d lines at level %d", tt.lines, tt.level)
		assert.Contains(t, g.events, dentris.EventLineCleared)
		assert.Equal(t, tt.lines, g.lines)
	}
}

func TestLevelThresholdsInclusive(t *testing.T) {
	tests := []struct {
		score    int
		level    int
		maxDelay time.Duration
	}{
		{0, 1, 600 * time.Millisecond},
		{199, 1, 600 * time.Millisecond},
		{200, 2, 500 * time.Millisecond},
		{600, 3, 400 * time.Millisecond},
		{1200, 4, 300 * time.Millisecond},
		{2000, 5, 200 * time.Millisecond},
		{99999, 5, 200 * time.Millisecond},
	}

	g := newTestGame(t)
	for _, tt := range tests {
		g.score = tt.score
		assert.Equal(t, tt.maxDelay, g.maxDelayForLevel(), "score %d", tt.score)
		assert.Equal(t, tt.level, g.level, "score %d", tt.score)
	}
}

func TestDropDelayFromPot(t *testing.T) {
	g := newTestGame(t)

	g.updateSpeed(0)
	assert.Equal(t, MinDropDelay, g.dropDelay, "fast end of the pot")

	g.updateSpeed(65535)
	assert.Equal(t, 600*time.Millisecond, g.dropDelay, "slow end capped by level 1")

	g.score = 2000
	g.updateSpeed(65535)
	assert.Equal(t, 200*time.Millisecond, g.dropDelay, "level 5 cap wins over the pot")
}

func TestRotationKickOrder(t *testing.T) {
	// Obstacle blocks the unkicked rotation; both -1 and +1 kicks would
	// fit, and -1 must win because it is tried first.
	g := newTestGame(t)
	g.active = Piece{Shape: ShapeT, Rotation: 0, X: 4, Y: 10}
	g.board.Set(5, 10, ShapeO)

	g.tryRotate()

	assert.Equal(t, 1, g.active.Rotation)
	assert.Equal(t, 3, g.active.X, "first valid kick (-1) accepted")
}

func TestRotationKickAgainstWall(t *testing.T) {
	// Vertical I hugging the left wall: kicks 0, -1, +1 all collide or
	// leave the board, so +2 is the first valid offset.
	g := newTestGame(t)
	g.active = Piece{Shape: ShapeI, Rotation: 1, X: -2, Y: 10}

	g.tryRotate()

	assert.Equal(t, 0, g.active.Rotation)
	assert.Equal(t, 0, g.active.X)
}

func TestRotationRejectedWhenNoKickFits(t *testing.T) {
	g := newTestGame(t)
	g.active = Piece{Shape: ShapeT, Rotation: 0, X: 4, Y: 10}
	for x := 0; x < BoardWidth; x++ {
		g.board.Set(x, 10, ShapeO) // wall through every kick position
	}
	before := g.active

	g.tryRotate()

	assert.Equal(t, before, g.active, "failed rotation leaves the piece unchanged")
}

func TestHorizontalRateLimit(t *testing.T) {
	g := newTestGame(t)
	g.active = Piece{Shape: ShapeO, Rotation: 0, X: 3, Y: 5}
	in := Input{TargetColumn: 9, Pot: 32768}

	g.Update(in, 20*time.Millisecond)
	assert.Equal(t, 3, g.active.X, "no move before the rate-limit interval")

	g.Update(in, 20*time.Millisecond)
	assert.Equal(t, 3, g.active.X)

	g.Update(in, 20*time.Millisecond)
	assert.Equal(t, 4, g.active.X, "one column per interval, not a jump")
}

func TestHorizontalStopsAtTarget(t *testing.T) {
	g := newTestGame(t)
	g.active = Piece{Shape: ShapeO, Rotation: 0, X: 3, Y: 5} // leftmost cell at 4
	in := Input{TargetColumn: 4, Pot: 32768}

	for i := 0; i < 10; i++ {
		g.Update(in, moveInterval)
	}
	cells := g.active.Cells(0, 0, 0)
	leftmost := cells[0].X
	for _, c := range cells {
		if c.X < leftmost {
			leftmost = c.X
		}
	}
	assert.Equal(t, 4, leftmost)
}

func TestPauseFreezesGravity(t *testing.T) {
	g := newTestGame(t)
	startY := g.active.Y

	events := g.Update(Input{PauseEdge: true, Pot: 32768}, time.Second)
	assert.Empty(t, events)
	require.True(t, g.Paused())
	assert.Equal(t, startY, g.active.Y, "no gravity while paused")

	g.Update(Input{PauseEdge: true, Pot: 32768}, 0)
	assert.False(t, g.Paused(), "pause edge toggles back")
}

func TestGravityLocksPiece(t *testing.T) {
	g := newTestGame(t)
	g.active = Piece{Shape: ShapeO, Rotation: 0, X: 3, Y: BoardHeight - 3}

	// One gravity step reaches the floor, the next one locks.
	g.Update(Input{TargetColumn: 4, Pot: 0}, time.Second)
	g.Update(Input{TargetColumn: 4, Pot: 0}, time.Second)

	assert.True(t, g.board.Occupied(4, BoardHeight-1), "piece locked into the board")
	assert.True(t, g.board.Occupied(5, BoardHeight-2))
}

func TestGameOverResetsEverything(t *testing.T) {
	g := newTestGame(t)
	g.score = 500
	g.lines = 7
	// Vertical I still inside the spawn buffer, resting on a block.
	g.board.Set(2, 2, ShapeO)
	g.active = Piece{Shape: ShapeI, Rotation: 1, X: 0, Y: -2}

	events := g.Update(Input{TargetColumn: 2, Pot: 0}, time.Second)

	assert.Contains(t, events, dentris.EventGameOver)
	assert.Equal(t, 0, g.Score(), "score reset")
	assert.Equal(t, 0, g.Lines())
	assert.Equal(t, 0, countCells(g.board), "board reset")
	assert.False(t, g.Paused())
}

func TestLevelUpEvent(t *testing.T) {
	g := newTestGame(t)
	g.score = 190 // one line away from level 2
	g.maxDelayForLevel()
	g.dropDelay = 600 * time.Millisecond
	g.level = 1

	fillRow(g.board, BoardHeight-1, 9)
	g.active = Piece{Shape: ShapeI, Rotation: 1, X: 7, Y: BoardHeight - 4}
	g.events = g.events[:0]
	g.score = 195
	g.lockPiece()

	require.GreaterOrEqual(t, g.score, 200)
	assert.Contains(t, g.events, dentris.EventLineCleared)
	assert.Contains(t, g.events, dentris.EventLevelUp)
}

func TestGhostProjection(t *testing.T) {
	g := newTestGame(t)
	g.active = Piece{Shape: ShapeO, Rotation: 0, X: 3, Y: 0}
	g.board.Set(4, 10, ShapeZ)

	ghost := g.GhostCells()

	// O cells sit at columns 4-5; the stack at (4,10) stops them at rows 8-9.
	assert.ElementsMatch(t, []Cell{{4, 8}, {5, 8}, {4, 9}, {5, 9}}, ghost)
	assert.Equal(t, 0, g.active.Y, "ghost query must not move the piece")
}

func TestSpawnIsUniformlyOneOfSeven(t *testing.T) {
	g := newTestGame(t)
	seen := map[Shape]bool{}
	for i := 0; i < 500; i++ {
		p := g.spawn()
		require.True(t, p.Shape >= ShapeI && p.Shape <= ShapeL)
		seen[p.Shape] = true
	}
	assert.Len(t, seen, NumShapes, "all seven shapes appear")
}
