// Package control turns raw sensor samples into discrete game and menu
// intents: tilt into a target column, button transitions into edges, and
// encoder positions into menu selections.
package control

import (
	"math"

	dentris "github.com/ekagansahin/Dentist-Tetris"
)

// Tilt angles at or beyond these map to the outermost columns.
const (
	tiltMin = -30.0
	tiltMax = 30.0
)

// Intents is one tick's worth of mapped input.
type Intents struct {
	// TargetColumn is the board column the tilt angle selects for the
	// piece's leftmost cell.
	TargetColumn int
	// RotateEdge fires on the sample where button B went down.
	RotateEdge bool
	// PauseEdge fires on the sample where button A went down.
	PauseEdge bool
	// SelectEdge mirrors PauseEdge; menus treat button A as confirm.
	SelectEdge bool

	Pot             uint16
	EncoderPosition int
	EncoderDelta    int
}

// Map compares the current sample against the previous one and produces
// the intents for this tick. boardWidth bounds the target column.
func Map(cur, prev dentris.SensorPacket, boardWidth int) Intents {
	aEdge := cur.Buttons.A == 1 && prev.Buttons.A == 0
	bEdge := cur.Buttons.B == 1 && prev.Buttons.B == 0

	return Intents{
		TargetColumn:    targetColumn(cur.Tilt.X, boardWidth),
		RotateEdge:      bEdge,
		PauseEdge:       aEdge,
		SelectEdge:      aEdge,
		Pot:             cur.Pot,
		EncoderPosition: cur.Encoder.Position,
		EncoderDelta:    cur.Encoder.Delta,
	}
}

// targetColumn bins the roll angle into a column. The usable range
// [-30, +30] degrees is split into equal bands, one per column.
func targetColumn(tilt float64, boardWidth int) int {
	span := tiltMax - tiltMin
	band := span / float64(boardWidth)
	col := int(math.Floor((tilt - tiltMin) / band))
	if col < 0 {
		col = 0
	}
	if col > boardWidth-1 {
		col = boardWidth - 1
	}
	return col
}

// IndexForPosition maps an absolute encoder position onto a menu item
// index. The position wraps every 31 detents so the knob never runs out
// of travel; the two and three item bands are hand tuned to feel even on
// the physical knob.
func IndexForPosition(position, itemCount int) int {
	if itemCount <= 1 {
		return 0
	}
	norm := position % 31
	if norm < 0 {
		norm = -norm
	}

	switch itemCount {
	case 2:
		if norm <= 10 {
			return 0
		}
		return 1
	case 3:
		switch {
		case norm <= 7:
			return 0
		case norm <= 15:
			return 1
		default:
			return 2
		}
	}

	steps := 20 / itemCount
	idx := norm / (steps + 1)
	if idx > itemCount-1 {
		idx = itemCount - 1
	}
	return idx
}
