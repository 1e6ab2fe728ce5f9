package puzzle

// Grid owns all cells and equations of one board. Cells are addressed by
// coordinate with O(1) lookup; equations by id. The grid is built once by
// the generator and after that only non-fixed number cells mutate.
type Grid struct {
	W int
	H int

	cells     map[Coord]*Cell
	equations map[EquationID]*Equation
	order     []EquationID // placement order, for deterministic iteration
}

// NewGrid creates a grid of the given dimensions with every cell empty.
func NewGrid(w, h int) *Grid {
	g := &Grid{
		W:         w,
		H:         h,
		cells:     make(map[Coord]*Cell, w*h),
		equations: make(map[EquationID]*Equation),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := C(x, y)
			g.cells[c] = &Cell{Pos: c, Type: CellEmpty, TileID: NoTile}
		}
	}
	return g
}

// InBounds reports whether the coordinate lies on the board.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// Cell returns the cell at the coordinate, or nil if out of bounds.
func (g *Grid) Cell(c Coord) *Cell {
	return g.cells[c]
}

// CellByKey returns the cell addressed by its "x-y" key, or nil.
func (g *Grid) CellByKey(key string) *Cell {
	c, err := ParseKey(key)
	if err != nil {
		return nil
	}
	return g.cells[c]
}

// Equation returns the equation with the given id, or nil.
func (g *Grid) Equation(id EquationID) *Equation {
	return g.equations[id]
}

// Equations returns all equations in placement order.
func (g *Grid) Equations() []*Equation {
	out := make([]*Equation, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.equations[id])
	}
	return out
}

// EquationCount returns the number of placed equations.
func (g *Grid) EquationCount() int {
	return len(g.order)
}

// addEquation registers a committed equation. Placement order is preserved.
func (g *Grid) addEquation(e *Equation) {
	g.equations[e.ID] = e
	g.order = append(g.order, e.ID)
}

// RestoreEquation registers an equation rebuilt from a serialized state.
// Cell contents and membership are the caller's responsibility.
func (g *Grid) RestoreEquation(e *Equation) {
	g.addEquation(e)
}

// EditableCells returns all player-editable number cells in row-major
// order. Row-major order keeps seeded runs deterministic.
func (g *Grid) EditableCells() []*Cell {
	var out []*Cell
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := g.cells[C(x, y)]
			if c.Editable() {
				out = append(out, c)
			}
		}
	}
	return out
}

// BlankCells returns the editable cells that currently hold no value, in
// row-major order.
func (g *Grid) BlankCells() []*Cell {
	var out []*Cell
	for _, c := range g.EditableCells() {
		if !c.Filled {
			out = append(out, c)
		}
	}
	return out
}

// Filled reports whether every number cell on the board holds a value.
func (g *Grid) Filled() bool {
	return len(g.BlankCells()) == 0
}
