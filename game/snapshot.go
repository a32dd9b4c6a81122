package game

// Snapshot is an immutable view of the game for the renderer. The core
// never hands out its live board or pieces.
type Snapshot struct {
	Board  [][]Shape
	Active []Cell
	Ghost  []Cell
	Shape  Shape
	Next   Piece
	Score  int
	Level  int
	Lines  int
	Paused bool
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Board:  g.board.Snapshot(),
		Active: g.active.Cells(0, 0, 0),
		Ghost:  g.GhostCells(),
		Shape:  g.active.Shape,
		Next:   g.next,
		Score:  g.score,
		Level:  g.level,
		Lines:  g.lines,
		Paused: g.paused,
	}
}
