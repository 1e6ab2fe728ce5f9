package puzzle

import "testing"

func TestOperatorApply(t *testing.T) {
	tests := []struct {
		name   string
		op     Operator
		a, b   int
		result int
		ok     bool
	}{
		{name: "addition", op: OpAdd, a: 7, b: 13, result: 20, ok: true},
		{name: "subtraction", op: OpSub, a: 30, b: 12, result: 18, ok: true},
		{name: "multiplication", op: OpMul, a: 12, b: 12, result: 144, ok: true},
		{name: "exact division", op: OpDiv, a: 40, b: 8, result: 5, ok: true},
		{name: "division by zero", op: OpDiv, a: 40, b: 0, result: 0, ok: false},
		{name: "non-exact division", op: OpDiv, a: 40, b: 7, result: 0, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := tt.op.Apply(tt.a, tt.b)
			if ok != tt.ok {
				t.Errorf("Apply(%d, %d) ok = %v, want %v", tt.a, tt.b, ok, tt.ok)
			}
			if ok && result != tt.result {
				t.Errorf("Apply(%d, %d) = %d, want %d", tt.a, tt.b, result, tt.result)
			}
		})
	}
}

func TestCoordKeyRoundTrip(t *testing.T) {
	orig := C(7, 11)
	key := orig.Key()
	if key != "7-11" {
		t.Errorf("Key() = %q, want %q", key, "7-11")
	}

	parsed, err := ParseKey(key)
	if err != nil {
		t.Fatalf("ParseKey(%q) failed: %v", key, err)
	}
	if parsed != orig {
		t.Errorf("ParseKey(%q) = %v, want %v", key, parsed, orig)
	}

	if _, err := ParseKey("garbage"); err == nil {
		t.Error("ParseKey should reject malformed keys")
	}
}

func TestCoordStep(t *testing.T) {
	start := C(2, 3)
	if got := start.Step(Horizontal, 4); got != C(6, 3) {
		t.Errorf("horizontal step = %v, want %v", got, C(6, 3))
	}
	if got := start.Step(Vertical, 4); got != C(2, 7) {
		t.Errorf("vertical step = %v, want %v", got, C(2, 7))
	}
}

func TestEquationCorrectValue(t *testing.T) {
	eq := &Equation{Op: OpMul, A: 6, B: 7, Result: 42}

	cases := []struct {
		slot int
		want int
		ok   bool
	}{
		{SlotOperand1, 6, true},
		{SlotOperand2, 7, true},
		{SlotResult, 42, true},
		{SlotOperator, 0, false},
		{SlotEquals, 0, false},
	}
	for _, c := range cases {
		got, ok := eq.CorrectValue(c.slot)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("CorrectValue(%d) = %d, %v; want %d, %v", c.slot, got, ok, c.want, c.ok)
		}
	}
}
