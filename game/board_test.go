package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func fillRow(b *Board, y int, except ...int) {
	skip := map[int]bool{}
	for _, x := range except {
		skip[x] = true
	}
	for x := 0; x < b.Width(); x++ {
		if !skip[x] {
			b.Set(x, y, ShapeI)
		}
	}
}

func countCells(b *Board) int {
	n := 0
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if b.Occupied(x, y) {
				n++
			}
		}
	}
	return n
}

func TestClearLinesPreservesHeight(t *testing.T) {
	b := NewBoard(BoardWidth, BoardHeight, testLogger())
	fillRow(b, BoardHeight-1)
	fillRow(b, BoardHeight-2)
	fillRow(b, BoardHeight-3, 4) // gap, must survive
	before := countCells(b)

	cleared := b.ClearLines()

	assert.Equal(t, 2, cleared)
	assert.Equal(t, BoardHeight, b.Height())
	assert.Len(t, b.Snapshot(), BoardHeight)
	assert.Equal(t, before-2*BoardWidth, countCells(b))
}

func TestClearLinesShiftsRowsDown(t *testing.T) {
	b := NewBoard(BoardWidth, BoardHeight, testLogger())
	b.Set(0, BoardHeight-2, ShapeT) // one cell above a full bottom row
	fillRow(b, BoardHeight-1)

	require.Equal(t, 1, b.ClearLines())
	assert.Equal(t, ShapeT, b.At(0, BoardHeight-1), "surviving row falls into the cleared space")
	assert.False(t, b.Occupied(0, BoardHeight-2))
}

func TestClearLinesEmptyBoard(t *testing.T) {
	b := NewBoard(BoardWidth, BoardHeight, testLogger())
	assert.Equal(t, 0, b.ClearLines())
	assert.Equal(t, 0, countCells(b))
}

func TestClearLinesRepairsBrokenRow(t *testing.T) {
	b := NewBoard(BoardWidth, BoardHeight, testLogger())
	fillRow(b, BoardHeight-1)
	b.rows[5] = b.rows[5][:4] // simulate a corrupted row

	cleared := b.ClearLines()

	assert.Equal(t, 1, cleared)
	assert.Equal(t, BoardHeight, len(b.Snapshot()))
	for x := 0; x < BoardWidth; x++ {
		assert.False(t, b.Occupied(x, 6), "repaired row is empty after shift")
	}
}

func TestValidCells(t *testing.T) {
	b := NewBoard(BoardWidth, BoardHeight, testLogger())
	b.Set(5, 10, ShapeZ)

	tests := []struct {
		name  string
		cells []Cell
		want  bool
	}{
		{"in bounds", []Cell{{0, 0}, {9, 21}}, true},
		{"negative rows are spawn buffer", []Cell{{3, -2}, {3, -1}}, true},
		{"left of board", []Cell{{-1, 5}}, false},
		{"right of board", []Cell{{10, 5}}, false},
		{"below floor", []Cell{{0, 22}}, false},
		{"overlaps locked cell", []Cell{{5, 10}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Valid(tt.cells))
		})
	}
}
