package puzzle

import "fmt"

// Operator is the arithmetic operator of an equation strip.
type Operator uint8

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
)

// String returns the one-character symbol of the operator.
func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

// ParseOperator is the inverse of Operator.String.
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "+":
		return OpAdd, nil
	case "-":
		return OpSub, nil
	case "*":
		return OpMul, nil
	case "/":
		return OpDiv, nil
	default:
		return OpAdd, fmt.Errorf("puzzle: unknown operator %q", s)
	}
}

// Apply evaluates a <op> b. ok is false when the operation is undefined for
// the inputs: division by zero or a non-exact quotient.
func (o Operator) Apply(a, b int) (result int, ok bool) {
	switch o {
	case OpAdd:
		return a + b, true
	case OpSub:
		return a - b, true
	case OpMul:
		return a * b, true
	case OpDiv:
		if b == 0 || a%b != 0 {
			return 0, false
		}
		return a / b, true
	default:
		return 0, false
	}
}

// Orientation is the direction of an equation strip.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

// String returns the serialized name of the orientation.
func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseOrientation is the inverse of Orientation.String.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	default:
		return Horizontal, fmt.Errorf("puzzle: unknown orientation %q", s)
	}
}

// EquationID identifies an equation within its grid.
type EquationID int

// StripLen is the fixed length of an equation strip:
// operand, operator, operand, equals, result.
const StripLen = 5

// Structural slot indices within a strip. Hint resolution, validation, and
// tile-hand derivation all rely on this fixed order.
const (
	SlotOperand1 = 0
	SlotOperator = 1
	SlotOperand2 = 2
	SlotEquals   = 3
	SlotResult   = 4
)

// NumberSlots lists the three slots holding numbers, in strip order.
var NumberSlots = [3]int{SlotOperand1, SlotOperand2, SlotResult}

// Equation is one placed strip. A, B, and Result are the canonical values
// the generator committed to; Complete and Valid track the live play state
// and are recomputed after every board mutation.
type Equation struct {
	ID          EquationID
	Cells       [StripLen]Coord
	Op          Operator
	A           int
	B           int
	Result      int
	Orientation Orientation
	Complete    bool
	Valid       bool
}

// Expression returns the canonical expression, e.g. "5 + 3 = 8".
func (e *Equation) Expression() string {
	return fmt.Sprintf("%d %s %d = %d", e.A, e.Op, e.B, e.Result)
}

// CorrectValue resolves the canonical value for a structural slot.
// Only the three number slots resolve; ok is false otherwise.
func (e *Equation) CorrectValue(slot int) (value int, ok bool) {
	switch slot {
	case SlotOperand1:
		return e.A, true
	case SlotOperand2:
		return e.B, true
	case SlotResult:
		return e.Result, true
	default:
		return 0, false
	}
}

// SlotOf returns the structural slot index of the given coordinate within
// this equation, or -1 if the coordinate is not part of it.
func (e *Equation) SlotOf(pos Coord) int {
	for i, c := range e.Cells {
		if c == pos {
			return i
		}
	}
	return -1
}
