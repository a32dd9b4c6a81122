package game

import "github.com/charmbracelet/log"

// Board dimensions. The top two rows are a hidden spawn buffer; only the
// bottom VisibleHeight rows are drawn.
const (
	BoardWidth    = 10
	BoardHeight   = 22
	VisibleHeight = 20
)

// Board is a fixed-size grid of cells. Dimensions never change after
// construction.
type Board struct {
	width  int
	height int
	rows   [][]Shape
	log    *log.Logger
}

// NewBoard returns an empty board. A nil logger falls back to the default.
func NewBoard(width, height int, logger *log.Logger) *Board {
	if logger == nil {
		logger = log.Default()
	}
	rows := make([][]Shape, height)
	for i := range rows {
		rows[i] = make([]Shape, width)
	}
	return &Board{width: width, height: height, rows: rows, log: logger}
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// Occupied reports whether the cell at (x, y) holds a locked shape. Cells
// above the board (y < 0) are never occupied; they are the spawn buffer.
func (b *Board) Occupied(x, y int) bool {
	if y < 0 {
		return false
	}
	return b.rows[y][x] != ShapeNone
}

// At returns the shape locked at (x, y), or ShapeNone.
func (b *Board) At(x, y int) Shape {
	return b.rows[y][x]
}

// Set writes a shape into the board. Out-of-range cells are ignored so a
// partially off-board lock cannot corrupt the grid.
func (b *Board) Set(x, y int, s Shape) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.rows[y][x] = s
}

// Valid reports whether a cell set fits the board: every column in range,
// no row at or below the floor, and no overlap with locked cells. Rows
// above the board count as free space.
func (b *Board) Valid(cells []Cell) bool {
	for _, c := range cells {
		if c.X < 0 || c.X >= b.width || c.Y >= b.height {
			return false
		}
		if c.Y >= 0 && b.rows[c.Y][c.X] != ShapeNone {
			return false
		}
	}
	return true
}

// ClearLines removes fully occupied rows, prepends that many empty rows at
// the top and returns the count removed. Board height is preserved. A row
// with a broken width is repaired to an empty row instead of aborting; on
// a hobby device availability beats strictness.
func (b *Board) ClearLines() int {
	keep := make([][]Shape, 0, b.height)
	for i, row := range b.rows {
		if len(row) != b.width {
			b.log.Error("invalid board row, replacing with empty", "row", i, "width", len(row))
			keep = append(keep, make([]Shape, b.width))
			continue
		}
		full := true
		for _, cell := range row {
			if cell == ShapeNone {
				full = false
				break
			}
		}
		if !full {
			keep = append(keep, row)
		}
	}

	cleared := b.height - len(keep)
	for len(keep) < b.height {
		keep = append([][]Shape{make([]Shape, b.width)}, keep...)
	}
	b.rows = keep
	return cleared
}

// Snapshot returns a copy of the grid for rendering.
func (b *Board) Snapshot() [][]Shape {
	out := make([][]Shape, b.height)
	for i, row := range b.rows {
		out[i] = make([]Shape, b.width)
		copy(out[i], row)
	}
	return out
}
