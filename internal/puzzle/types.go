// Package puzzle provides the core board model and generator for the
// arithmetic crossword game. This package is UI-agnostic and deterministic:
// all randomness flows through an injected seeded source.
package puzzle

import (
	"fmt"
	"strconv"
	"strings"
)

// Coord identifies a cell on the board. The canonical textual form is
// "x-y", which is also the key used in serialized states.
type Coord struct {
	X int
	Y int
}

// C is a shorthand constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Key returns the canonical "x-y" form of the coordinate.
func (c Coord) Key() string {
	return fmt.Sprintf("%d-%d", c.X, c.Y)
}

// ParseKey parses a coordinate from its "x-y" form.
func ParseKey(key string) (Coord, error) {
	xs, ys, ok := strings.Cut(key, "-")
	if !ok {
		return Coord{}, fmt.Errorf("puzzle: malformed coordinate %q", key)
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return Coord{}, fmt.Errorf("puzzle: malformed coordinate %q: %w", key, err)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return Coord{}, fmt.Errorf("puzzle: malformed coordinate %q: %w", key, err)
	}
	return Coord{X: x, Y: y}, nil
}

// Step returns the coordinate n cells away along the given orientation.
func (c Coord) Step(o Orientation, n int) Coord {
	if o == Vertical {
		return Coord{X: c.X, Y: c.Y + n}
	}
	return Coord{X: c.X + n, Y: c.Y}
}

// CellType classifies what a cell holds.
type CellType uint8

const (
	CellEmpty CellType = iota
	CellNumber
	CellOperator
	CellEquals
)

// String returns the serialized name of the cell type.
func (t CellType) String() string {
	switch t {
	case CellEmpty:
		return "empty"
	case CellNumber:
		return "number"
	case CellOperator:
		return "operator"
	case CellEquals:
		return "equals"
	default:
		return "unknown"
	}
}

// ParseCellType is the inverse of CellType.String.
func ParseCellType(s string) (CellType, error) {
	switch s {
	case "empty":
		return CellEmpty, nil
	case "number":
		return CellNumber, nil
	case "operator":
		return CellOperator, nil
	case "equals":
		return CellEquals, nil
	default:
		return CellEmpty, fmt.Errorf("puzzle: unknown cell type %q", s)
	}
}

// Correctness is the tri-state flag set on number cells after their owning
// equation has been evaluated.
type Correctness uint8

const (
	CorrectnessUnknown Correctness = iota
	CorrectnessRight
	CorrectnessWrong
)

// String returns the serialized name of the correctness state.
func (c Correctness) String() string {
	switch c {
	case CorrectnessRight:
		return "right"
	case CorrectnessWrong:
		return "wrong"
	default:
		return "unknown"
	}
}

// ParseCorrectness is the inverse of Correctness.String.
func ParseCorrectness(s string) (Correctness, error) {
	switch s {
	case "unknown":
		return CorrectnessUnknown, nil
	case "right":
		return CorrectnessRight, nil
	case "wrong":
		return CorrectnessWrong, nil
	default:
		return CorrectnessUnknown, fmt.Errorf("puzzle: unknown correctness %q", s)
	}
}

// NoTile marks a number cell that has no player tile on it.
const NoTile = -1

// Cell is a single board cell. Type, Op, and Fixed are set once by the
// generator; Value, Filled, TileID, and Correct mutate during play (number
// cells only). The occupying tile id is stored directly on the cell so
// removal never has to replay the move log.
type Cell struct {
	Pos       Coord
	Type      CellType
	Value     int      // number cells; meaningful when Filled
	Op        Operator // operator cells only
	Fixed     bool     // pre-filled by the generator, immutable in play
	Filled    bool     // operator/equals/fixed cells are filled by construction
	TileID    int      // occupying tile, NoTile when none
	Correct   Correctness
	Equations []EquationID
}

// Editable reports whether the player may place or remove a tile here.
func (c *Cell) Editable() bool {
	return c.Type == CellNumber && !c.Fixed
}

// Display returns the string shown for this cell.
func (c *Cell) Display() string {
	switch c.Type {
	case CellNumber:
		if !c.Filled {
			return ""
		}
		return strconv.Itoa(c.Value)
	case CellOperator:
		return c.Op.String()
	case CellEquals:
		return "="
	default:
		return ""
	}
}

// Tile is one entry in the player's hand. IDs are dense indices into the
// shuffled hand slice.
type Tile struct {
	ID    int
	Value int
	Used  bool
}
