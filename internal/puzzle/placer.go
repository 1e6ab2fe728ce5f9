package puzzle

import "math/rand"

// placer lays single equation strips onto a grid. A strip is committed
// atomically: either all five cells are written or none are.
type placer struct {
	grid   *Grid
	rng    *rand.Rand
	params GenParams
	nextID EquationID
}

// noHint marks a strip with no pre-filled slot.
const noHint = -1

// canPlace reports whether a strip starting at start along o fits on the
// board without touching any claimed cell.
func (p *placer) canPlace(start Coord, o Orientation) bool {
	for i := 0; i < StripLen; i++ {
		pos := start.Step(o, i)
		if !p.grid.InBounds(pos) {
			return false
		}
		if p.grid.Cell(pos).Type != CellEmpty {
			return false
		}
	}
	return true
}

// tryPlace attempts one full-difficulty strip at the given position.
// Declines (without touching the board) when the position is infeasible.
func (p *placer) tryPlace(start Coord, o Orientation) bool {
	if !p.canPlace(start, o) {
		return false
	}
	op := p.pickOperator()
	a, b, result := p.makeTriple(op)
	hintSlot := noHint
	if p.rng.Float64() < p.params.HintProbability {
		hintSlot = NumberSlots[p.rng.Intn(len(NumberSlots))]
	}
	p.commit(start, o, op, a, b, result, hintSlot)
	return true
}

// trySimplePlace attempts a backfill strip: smaller operand ranges, no
// division, never pre-filled.
func (p *placer) trySimplePlace(start Coord, o Orientation) bool {
	if !p.canPlace(start, o) {
		return false
	}
	op, a, b, result := p.makeSimpleTriple()
	p.commit(start, o, op, a, b, result, noHint)
	return true
}

// pickOperator selects the strip operator. Division is appended to the
// candidate set with 10% probability before the uniform pick, keeping it
// deliberately rare.
func (p *placer) pickOperator() Operator {
	ops := []Operator{OpAdd, OpSub, OpMul}
	if p.rng.Float64() < p.params.DivisionProbability {
		ops = append(ops, OpDiv)
	}
	return ops[p.rng.Intn(len(ops))]
}

// makeTriple generates a canonical operand/result triple that is exact for
// the operator and stays inside the per-operator difficulty bounds.
func (p *placer) makeTriple(op Operator) (a, b, result int) {
	switch op {
	case OpSub:
		// Build from the result up so a > b > 0 and the difference is exact.
		result = 1 + p.rng.Intn(30)
		b = 1 + p.rng.Intn(result)
		a = result + b
	case OpMul:
		a = 1 + p.rng.Intn(12)
		b = 1 + p.rng.Intn(12)
		result = a * b
	case OpDiv:
		// Build from the quotient up so division is exact and b >= 2.
		result = 1 + p.rng.Intn(20)
		b = 2 + p.rng.Intn(10)
		a = result * b
	default:
		a = 1 + p.rng.Intn(20)
		b = 1 + p.rng.Intn(20)
		result = a + b
	}
	return a, b, result
}

// makeSimpleTriple generates a small backfill triple.
func (p *placer) makeSimpleTriple() (op Operator, a, b, result int) {
	switch p.rng.Intn(3) {
	case 0:
		op = OpAdd
		a = 1 + p.rng.Intn(9)
		b = 1 + p.rng.Intn(9)
		result = a + b
	case 1:
		op = OpSub
		result = 1 + p.rng.Intn(9)
		b = 1 + p.rng.Intn(result)
		a = result + b
	default:
		op = OpMul
		a = 1 + p.rng.Intn(5)
		b = 1 + p.rng.Intn(5)
		result = a * b
	}
	return op, a, b, result
}

// commit writes a strip into the grid. The caller must have verified
// feasibility; commit itself never declines.
func (p *placer) commit(start Coord, o Orientation, op Operator, a, b, result, hintSlot int) EquationID {
	eq := &Equation{
		ID:          p.nextID,
		Op:          op,
		A:           a,
		B:           b,
		Result:      result,
		Orientation: o,
	}
	p.nextID++

	for i := 0; i < StripLen; i++ {
		eq.Cells[i] = start.Step(o, i)
	}

	for i := 0; i < StripLen; i++ {
		cell := p.grid.Cell(eq.Cells[i])
		cell.Equations = append(cell.Equations, eq.ID)
		switch i {
		case SlotOperator:
			cell.Type = CellOperator
			cell.Op = op
			cell.Filled = true
		case SlotEquals:
			cell.Type = CellEquals
			cell.Filled = true
		default:
			cell.Type = CellNumber
			if i == hintSlot {
				value, _ := eq.CorrectValue(i)
				cell.Value = value
				cell.Fixed = true
				cell.Filled = true
			}
		}
	}

	p.grid.addEquation(eq)
	return eq.ID
}

// randomStart returns a uniformly random board coordinate.
func (p *placer) randomStart() Coord {
	return C(p.rng.Intn(p.grid.W), p.rng.Intn(p.grid.H))
}
