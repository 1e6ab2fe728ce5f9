package game

import (
	"testing"

	"github.com/vovakirdan/tui-mathcross/internal/config"
	"github.com/vovakirdan/tui-mathcross/internal/puzzle"
)

// testConfig returns a config whose single tier, with all attempt budgets
// zeroed, always generates the fixed fallback board:
//
//	2 + 3 = 5   at row 0
//	9 - 4 = 5   at row 2
//	3 * 4 = 12  at row 4
//
// Nine blank cells, no pre-filled slots, fully deterministic.
func testConfig() config.Config {
	return config.Config{
		Tiers: []config.Tier{
			{Name: "tiny", Equations: 3, GridWidth: 8, GridHeight: 6, BonusMultiplier: 1.0},
		},
		Scoring: config.Scoring{
			EquationPoints:         50,
			CompletionPoints:       100,
			HintPenalty:            25,
			HintsPerGame:           3,
			TimeBonusWindowSeconds: 300,
			TimeBonusMultiplier:    2,
		},
		Generator: config.Generator{
			DecoyRatio:    0.2,
			MaxDecoyValue: 50,
		},
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := New(testConfig(), 1, nil)
	if err := e.StartNewGame("tiny"); err != nil {
		t.Fatalf("StartNewGame() failed: %v", err)
	}
	return e
}

// findTile returns an unused tile with the given value.
func findTile(t *testing.T, e *Engine, value int) int {
	t.Helper()
	for _, tile := range e.Tiles() {
		if !tile.Used && tile.Value == value {
			return tile.ID
		}
	}
	t.Fatalf("no unused tile with value %d in hand", value)
	return -1
}

// mustPlace places a tile of the given value on the cell.
func mustPlace(t *testing.T, e *Engine, value int, cell puzzle.Coord) {
	t.Helper()
	if !e.PlaceTile(findTile(t, e, value), cell) {
		t.Fatalf("PlaceTile(%d, %s) declined", value, cell.Key())
	}
}

// solveAll fills every blank cell with its correct value.
func solveAll(t *testing.T, e *Engine) {
	t.Helper()
	for _, eq := range e.Grid().Equations() {
		for _, slot := range puzzle.NumberSlots {
			c := e.Grid().Cell(eq.Cells[slot])
			if c.Filled {
				continue
			}
			v, _ := eq.CorrectValue(slot)
			mustPlace(t, e, v, c.Pos)
		}
	}
}

func TestStartNewGame(t *testing.T) {
	e := newTestEngine(t)

	if e.Phase() != PhaseInProgress {
		t.Errorf("Phase() = %v, want %v", e.Phase(), PhaseInProgress)
	}
	if e.Score() != 0 {
		t.Errorf("Score() = %d, want 0", e.Score())
	}
	if e.HintsLeft() != 3 {
		t.Errorf("HintsLeft() = %d, want 3", e.HintsLeft())
	}
	if got := e.Grid().EquationCount(); got != 3 {
		t.Errorf("EquationCount() = %d, want 3", got)
	}
	// 9 needed values plus ceil(0.2*9) = 2 decoys.
	if got := len(e.Tiles()); got != 11 {
		t.Errorf("hand size = %d, want 11", got)
	}
}

func TestStartNewGameUnknownTier(t *testing.T) {
	e := New(testConfig(), 1, nil)
	if err := e.StartNewGame("nope"); err == nil {
		t.Error("StartNewGame should reject an unknown tier")
	}
	if e.Phase() != PhaseIdle {
		t.Errorf("Phase() = %v after failed start, want %v", e.Phase(), PhaseIdle)
	}
}

func TestPlaceTile(t *testing.T) {
	e := newTestEngine(t)

	id := findTile(t, e, 2)
	pos := puzzle.C(0, 0)
	if !e.PlaceTile(id, pos) {
		t.Fatal("PlaceTile declined a valid placement")
	}

	c := e.Grid().Cell(pos)
	if !c.Filled || c.Value != 2 || c.TileID != id {
		t.Errorf("cell after place = %+v, want filled with 2 from tile %d", c, id)
	}
	if !e.Tiles()[id].Used {
		t.Error("placed tile should be marked used")
	}
	if e.MoveCount() != 1 {
		t.Errorf("MoveCount() = %d, want 1", e.MoveCount())
	}

	// The same tile cannot be placed twice.
	if e.PlaceTile(id, puzzle.C(2, 0)) {
		t.Error("a used tile must not be placeable")
	}
	// An occupied cell cannot take a second tile.
	if e.PlaceTile(findTile(t, e, 3), pos) {
		t.Error("an occupied cell must not take a second tile")
	}
}

func TestCanPlaceTileIsPure(t *testing.T) {
	e := newTestEngine(t)
	id := findTile(t, e, 2)
	pos := puzzle.C(0, 0)

	if !e.CanPlaceTile(id, pos) {
		t.Fatal("CanPlaceTile should accept a valid placement")
	}
	// The predicate must not mutate anything.
	if e.Grid().Cell(pos).Filled || e.Tiles()[id].Used || e.MoveCount() != 0 {
		t.Error("CanPlaceTile mutated engine state")
	}

	if e.CanPlaceTile(id, puzzle.C(1, 0)) {
		t.Error("CanPlaceTile should reject an operator cell")
	}
	if e.CanPlaceTile(-1, pos) {
		t.Error("CanPlaceTile should reject a bad tile id")
	}
}

func TestPlaceTileRejections(t *testing.T) {
	e := newTestEngine(t)
	id := findTile(t, e, 2)

	cases := []struct {
		name string
		pos  puzzle.Coord
	}{
		{name: "operator cell", pos: puzzle.C(1, 0)},
		{name: "equals cell", pos: puzzle.C(3, 0)},
		{name: "empty cell", pos: puzzle.C(0, 1)},
		{name: "out of bounds", pos: puzzle.C(50, 50)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if e.PlaceTile(id, c.pos) {
				t.Errorf("PlaceTile onto %s should be declined", c.name)
			}
		})
	}

	if e.PlaceTile(999, puzzle.C(0, 0)) {
		t.Error("PlaceTile with an unknown tile id should be declined")
	}
	if e.MoveCount() != 0 {
		t.Errorf("declined placements logged %d moves", e.MoveCount())
	}
}

func TestRemoveTile(t *testing.T) {
	e := newTestEngine(t)
	pos := puzzle.C(0, 0)
	mustPlace(t, e, 2, pos)
	id := e.Grid().Cell(pos).TileID

	if !e.RemoveTile(pos) {
		t.Fatal("RemoveTile declined a filled editable cell")
	}

	c := e.Grid().Cell(pos)
	if c.Filled || c.TileID != puzzle.NoTile {
		t.Errorf("cell after remove = %+v, want blank", c)
	}
	if e.Tiles()[id].Used {
		t.Error("removed tile should return to the hand")
	}
	if e.MoveCount() != 2 {
		t.Errorf("MoveCount() = %d, want 2 (place + remove)", e.MoveCount())
	}

	// Blank cells have nothing to remove.
	if e.RemoveTile(pos) {
		t.Error("RemoveTile on a blank cell should be declined")
	}
}

func TestUndoPlace(t *testing.T) {
	e := newTestEngine(t)
	pos := puzzle.C(0, 0)
	mustPlace(t, e, 2, pos)
	id := e.Grid().Cell(pos).TileID

	if !e.UndoLastMove() {
		t.Fatal("UndoLastMove declined with one move logged")
	}

	c := e.Grid().Cell(pos)
	if c.Filled || c.TileID != puzzle.NoTile || c.Correct != puzzle.CorrectnessUnknown {
		t.Errorf("cell after undo = %+v, want pristine blank", c)
	}
	if e.Tiles()[id].Used {
		t.Error("undone tile should be back in the hand")
	}
	if e.MoveCount() != 0 {
		t.Errorf("MoveCount() = %d after undo, want 0", e.MoveCount())
	}

	if e.UndoLastMove() {
		t.Error("UndoLastMove with an empty log should be declined")
	}
}

func TestUndoRemoveRestoresCell(t *testing.T) {
	e := newTestEngine(t)
	pos := puzzle.C(0, 0)
	mustPlace(t, e, 2, pos)
	id := e.Grid().Cell(pos).TileID

	if !e.RemoveTile(pos) {
		t.Fatal("RemoveTile declined")
	}
	if !e.UndoLastMove() {
		t.Fatal("UndoLastMove declined after a remove")
	}

	c := e.Grid().Cell(pos)
	if !c.Filled || c.Value != 2 || c.TileID != id {
		t.Errorf("cell after undo-of-remove = %+v, want refilled with 2 from tile %d", c, id)
	}
	if !e.Tiles()[id].Used {
		t.Error("tile should be used again after undo-of-remove")
	}
	if e.MoveCount() != 1 {
		t.Errorf("MoveCount() = %d, want 1 (the original place)", e.MoveCount())
	}
}

func TestEquationScoring(t *testing.T) {
	e := newTestEngine(t)

	mustPlace(t, e, 2, puzzle.C(0, 0))
	mustPlace(t, e, 3, puzzle.C(2, 0))
	if e.Score() != 0 {
		t.Errorf("partial equation scored %d points", e.Score())
	}

	mustPlace(t, e, 5, puzzle.C(4, 0))
	if e.Score() != 50 {
		t.Errorf("Score() = %d after solving one equation, want 50", e.Score())
	}

	for _, pos := range []puzzle.Coord{puzzle.C(0, 0), puzzle.C(2, 0), puzzle.C(4, 0)} {
		if got := e.Grid().Cell(pos).Correct; got != puzzle.CorrectnessRight {
			t.Errorf("cell %s Correct = %v, want right", pos.Key(), got)
		}
	}
}

func TestWrongTileMarksEquation(t *testing.T) {
	e := newTestEngine(t)

	// 2 + 3 = 12 does not hold.
	mustPlace(t, e, 2, puzzle.C(0, 0))
	mustPlace(t, e, 3, puzzle.C(2, 0))
	mustPlace(t, e, 12, puzzle.C(4, 0))

	eq := e.Grid().Equations()[0]
	if !eq.Complete || eq.Valid {
		t.Errorf("equation state = complete %v valid %v, want complete and invalid", eq.Complete, eq.Valid)
	}
	if e.Score() != 0 {
		t.Errorf("an invalid equation scored %d points", e.Score())
	}
	for _, pos := range []puzzle.Coord{puzzle.C(0, 0), puzzle.C(2, 0), puzzle.C(4, 0)} {
		if got := e.Grid().Cell(pos).Correct; got != puzzle.CorrectnessWrong {
			t.Errorf("cell %s Correct = %v, want wrong", pos.Key(), got)
		}
	}

	// Removing the bad result resets the marks.
	if !e.RemoveTile(puzzle.C(4, 0)) {
		t.Fatal("RemoveTile declined")
	}
	if got := e.Grid().Cell(puzzle.C(0, 0)).Correct; got != puzzle.CorrectnessUnknown {
		t.Errorf("Correct = %v after removal, want unknown", got)
	}
}

func TestHints(t *testing.T) {
	e := newTestEngine(t)

	hint, ok := e.GetHint()
	if !ok {
		t.Fatal("GetHint declined with a full budget")
	}
	if e.HintsLeft() != 2 || e.HintsUsed() != 1 {
		t.Errorf("hints left/used = %d/%d, want 2/1", e.HintsLeft(), e.HintsUsed())
	}
	// Score was zero; the penalty clamps there.
	if e.Score() != 0 {
		t.Errorf("Score() = %d after hint at zero, want 0", e.Score())
	}

	// The revealed value must be the cell's canonical value.
	c := e.Grid().Cell(hint.Cell)
	eq := e.Grid().Equation(c.Equations[0])
	want, _ := eq.CorrectValue(eq.SlotOf(hint.Cell))
	if hint.Value != want {
		t.Errorf("hint value = %d, want %d", hint.Value, want)
	}
	// The hint reveals but never fills.
	if c.Filled {
		t.Error("GetHint must not fill the cell")
	}

	// Exhaust the budget.
	e.GetHint()
	e.GetHint()
	if _, ok := e.GetHint(); ok {
		t.Error("GetHint should decline once the budget is spent")
	}
	if e.HintsUsed() != 3 {
		t.Errorf("HintsUsed() = %d, want 3", e.HintsUsed())
	}
}

func TestHintPenaltyDeducted(t *testing.T) {
	e := newTestEngine(t)

	// Bank 50 points first so the deduction is visible.
	mustPlace(t, e, 2, puzzle.C(0, 0))
	mustPlace(t, e, 3, puzzle.C(2, 0))
	mustPlace(t, e, 5, puzzle.C(4, 0))

	if _, ok := e.GetHint(); !ok {
		t.Fatal("GetHint declined")
	}
	if e.Score() != 25 {
		t.Errorf("Score() = %d after hint, want 25", e.Score())
	}
}

func TestCompletion(t *testing.T) {
	e := newTestEngine(t)
	solveAll(t, e)

	if !e.Complete() {
		t.Fatal("engine should be complete after solving every equation")
	}

	elapsed := e.ElapsedSeconds()
	timeBonus := 0
	if remaining := 300 - elapsed; remaining > 0 {
		timeBonus = remaining * 2
	}
	want := 3*50 + timeBonus + 100
	if e.Score() != want {
		t.Errorf("Score() = %d, want %d (3 equations + time bonus + tier bonus)", e.Score(), want)
	}

	// A finished game accepts no further commands.
	if e.PlaceTile(0, puzzle.C(0, 0)) {
		t.Error("PlaceTile should decline after completion")
	}
	if e.RemoveTile(puzzle.C(0, 0)) {
		t.Error("RemoveTile should decline after completion")
	}
	if e.UndoLastMove() {
		t.Error("UndoLastMove should decline after completion")
	}
	if _, ok := e.GetHint(); ok {
		t.Error("GetHint should decline after completion")
	}

	// The clock is frozen.
	if e.ElapsedSeconds() != elapsed {
		t.Error("elapsed time should be frozen at completion")
	}
}

func TestEndToEndGeneratedBoard(t *testing.T) {
	// Full budgets: real generated boards, not the fallback. Placing every
	// needed tile must finish the game whatever the seed produced.
	cfg := testConfig()
	cfg.Tiers[0] = config.Tier{
		Name: "easy", Equations: 10, GridWidth: 8, GridHeight: 6, BonusMultiplier: 1.0,
	}
	cfg.Generator = config.Generator{
		HorizontalShare:     0.6,
		PrimaryAttempts:     80,
		MixedAttempts:       60,
		BackfillAttempts:    20,
		HintProbability:     0.4,
		DivisionProbability: 0.1,
		DecoyRatio:          0.2,
		MaxDecoyValue:       50,
	}

	for seed := int64(1); seed <= 20; seed++ {
		e := New(cfg, seed, nil)
		if err := e.StartNewGame("easy"); err != nil {
			t.Fatalf("seed %d: StartNewGame() failed: %v", seed, err)
		}

		solveAll(t, e)

		if !e.Complete() {
			t.Fatalf("seed %d: board not complete after placing every needed tile", seed)
		}
		eqs := e.Grid().EquationCount()
		floor := eqs*cfg.Scoring.EquationPoints +
			int(float64(cfg.Scoring.CompletionPoints)*cfg.Tiers[0].BonusMultiplier)
		if e.Score() < floor {
			t.Errorf("seed %d: Score() = %d, want at least %d (%d equations + tier bonus)",
				seed, e.Score(), floor, eqs)
		}
	}
}

func TestEvents(t *testing.T) {
	e := New(testConfig(), 1, nil)

	counts := make(map[EventKind]int)
	for _, kind := range []EventKind{EventGameStarted, EventTilePlaced, EventEquationCompleted, EventGameCompleted} {
		kind := kind
		e.Subscribe(kind, func(ev Event) {
			if ev.Kind() != kind {
				t.Errorf("handler for %s received %s", kind, ev.Kind())
			}
			counts[kind]++
		})
	}

	if err := e.StartNewGame("tiny"); err != nil {
		t.Fatalf("StartNewGame() failed: %v", err)
	}
	solveAll(t, e)

	if counts[EventGameStarted] != 1 {
		t.Errorf("game started events = %d, want 1", counts[EventGameStarted])
	}
	if counts[EventTilePlaced] != 9 {
		t.Errorf("tile placed events = %d, want 9", counts[EventTilePlaced])
	}
	if counts[EventEquationCompleted] != 3 {
		t.Errorf("equation completed events = %d, want 3", counts[EventEquationCompleted])
	}
	if counts[EventGameCompleted] != 1 {
		t.Errorf("game completed events = %d, want 1", counts[EventGameCompleted])
	}
}

func TestEventHandlerPanicIsolated(t *testing.T) {
	e := New(testConfig(), 1, nil)

	e.Subscribe(EventGameStarted, func(Event) {
		panic("misbehaving handler")
	})
	called := false
	e.Subscribe(EventGameStarted, func(Event) {
		called = true
	})

	if err := e.StartNewGame("tiny"); err != nil {
		t.Fatalf("StartNewGame() failed: %v", err)
	}
	if !called {
		t.Error("a panicking handler must not block later handlers")
	}
}

func TestScoreNeverNegative(t *testing.T) {
	e := newTestEngine(t)

	for i := 0; i < 3; i++ {
		e.GetHint()
		if e.Score() < 0 {
			t.Fatalf("Score() = %d, must never go negative", e.Score())
		}
	}
}
