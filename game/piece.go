package game

// Shape identifies one of the seven tetromino shapes. The zero value marks
// an empty board cell.
type Shape uint8

const (
	ShapeNone Shape = iota
	ShapeI
	ShapeO
	ShapeT
	ShapeS
	ShapeZ
	ShapeJ
	ShapeL
)

// NumShapes is the count of spawnable shapes (ShapeNone excluded).
const NumShapes = 7

func (s Shape) String() string {
	switch s {
	case ShapeI:
		return "I"
	case ShapeO:
		return "O"
	case ShapeT:
		return "T"
	case ShapeS:
		return "S"
	case ShapeZ:
		return "Z"
	case ShapeJ:
		return "J"
	case ShapeL:
		return "L"
	default:
		return "."
	}
}

// Cell is a board coordinate. Row 0 is the topmost (hidden) row; Y grows
// downward and may be negative while a piece sits in the spawn buffer.
type Cell struct {
	X, Y int
}

// rotationTables holds the cell offsets for every rotation of every shape.
// The rotation index is taken modulo the table length, so shapes with
// rotational symmetry list only their distinct orientations.
var rotationTables = [...][][]Cell{
	ShapeI: {
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
	},
	ShapeO: {
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
	},
	ShapeT: {
		{{1, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {1, 2}},
		{{1, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	ShapeS: {
		{{1, 0}, {2, 0}, {0, 1}, {1, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
	},
	ShapeZ: {
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
		{{2, 0}, {1, 1}, {2, 1}, {1, 2}},
	},
	ShapeJ: {
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 0}, {1, 1}, {0, 2}, {1, 2}},
	},
	ShapeL: {
		{{2, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {0, 2}},
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
	},
}

// Piece is the active tetromino: shape, rotation index and board-relative
// anchor. Pieces are replaced, never mutated in place, by spawn and by a
// rotation that fails its kicks.
type Piece struct {
	Shape    Shape
	Rotation int
	X, Y     int
}

// spawn position: column 3, two rows above the visible playfield.
const (
	spawnX = 3
	spawnY = -2
)

// NewPiece returns a piece of the given shape at the spawn position.
func NewPiece(s Shape) Piece {
	return Piece{Shape: s, X: spawnX, Y: spawnY}
}

// RotationCount returns the number of distinct orientations for the shape.
func (p Piece) RotationCount() int {
	return len(rotationTables[p.Shape])
}

// Cells returns the absolute board cells the piece would occupy after
// shifting by (dx, dy) and rotating by rotationDelta steps.
func (p Piece) Cells(dx, dy, rotationDelta int) []Cell {
	table := rotationTables[p.Shape]
	offsets := table[(p.Rotation+rotationDelta)%len(table)]
	cells := make([]Cell, len(offsets))
	for i, o := range offsets {
		cells[i] = Cell{X: p.X + dx + o.X, Y: p.Y + dy + o.Y}
	}
	return cells
}
