// Package game implements the live game engine: a single-owner state
// machine over the generated board that accepts place/remove/undo/hint
// commands, re-validates equations, keeps score, and notifies observers.
//
// Commands run synchronously to completion; rejected commands (wrong phase,
// bad target, occupied cell) return false without mutating anything — they
// are expected outcomes of normal play, not errors.
package game

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mathcross/internal/config"
	"github.com/vovakirdan/tui-mathcross/internal/puzzle"
)

// Phase is the engine lifecycle state.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseInProgress
	PhaseComplete
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseInProgress:
		return "in-progress"
	case PhaseComplete:
		return "complete"
	default:
		return "no-game"
	}
}

// MoveKind tags a move-log entry.
type MoveKind uint8

const (
	MovePlace MoveKind = iota
	MoveRemove
)

// String returns the serialized move kind.
func (k MoveKind) String() string {
	if k == MoveRemove {
		return "remove"
	}
	return "place"
}

// ParseMoveKind is the inverse of MoveKind.String.
func ParseMoveKind(s string) (MoveKind, error) {
	switch s {
	case "place":
		return MovePlace, nil
	case "remove":
		return MoveRemove, nil
	default:
		return MovePlace, fmt.Errorf("game: unknown move kind %q", s)
	}
}

// Move is one append-only move-log entry. The log exists purely for undo
// and audit; cell occupancy is tracked on the cells themselves.
type Move struct {
	Kind   MoveKind
	TileID int
	Cell   puzzle.Coord
	Value  int
	At     time.Time
}

// Hint is the answer to a hint request: the cell to fill and its correct
// value. The engine does not fill the cell itself.
type Hint struct {
	Cell  puzzle.Coord
	Value int
}

// Engine owns exactly one game at a time. It is not safe for concurrent
// use; the platform layer issues commands from a single goroutine.
type Engine struct {
	cfg    config.Config
	logger *log.Logger
	seed   int64

	phase     Phase
	tier      config.Tier
	grid      *puzzle.Grid
	tiles     []puzzle.Tile
	score     int
	hintsLeft int
	hintsUsed int
	moves     []Move
	rng       *rand.Rand

	startedAt       time.Time
	restoredElapsed int // seconds carried over from a restored save
	finalElapsed    int // frozen at completion

	handlers map[EventKind][]Handler
}

// New creates an engine in the no-game phase. A zero seed means a
// time-based seed per game.
func New(cfg config.Config, seed int64, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{
		cfg:      cfg,
		logger:   logger,
		seed:     seed,
		handlers: make(map[EventKind][]Handler),
	}
}

// StartNewGame discards any current game and starts a fresh one for the
// tier. The only failure is an unknown tier name; generation itself always
// yields a usable board.
func (e *Engine) StartNewGame(name config.TierName) error {
	tier, ok := e.cfg.Tier(name)
	if !ok {
		return fmt.Errorf("game: unknown tier %q", name)
	}

	seed := e.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	gen := e.cfg.Generator
	params := puzzle.GenParams{
		Width:               tier.GridWidth,
		Height:              tier.GridHeight,
		TargetEquations:     tier.Equations,
		HorizontalShare:     gen.HorizontalShare,
		PrimaryAttempts:     gen.PrimaryAttempts,
		MixedAttempts:       gen.MixedAttempts,
		BackfillAttempts:    gen.BackfillAttempts,
		HintProbability:     gen.HintProbability,
		DivisionProbability: gen.DivisionProbability,
		DecoyRatio:          gen.DecoyRatio,
		MaxDecoyValue:       gen.MaxDecoyValue,
		Seed:                seed,
	}
	pz := puzzle.NewGenerator(params, e.logger).Generate()

	e.phase = PhaseInProgress
	e.tier = tier
	e.grid = pz.Grid
	e.tiles = pz.Tiles
	e.score = 0
	e.hintsLeft = e.cfg.Scoring.HintsPerGame
	e.hintsUsed = 0
	e.moves = nil
	e.rng = newHintRNG(seed)
	e.startedAt = time.Now()
	e.restoredElapsed = 0
	e.finalElapsed = 0

	e.logger.Info("game started",
		"tier", tier.Name,
		"equations", e.grid.EquationCount(),
		"tiles", len(e.tiles),
		"seed", seed)

	e.emit(GameStartedEvent{
		Tier:      tier.Name,
		Equations: e.grid.EquationCount(),
		GridW:     e.grid.W,
		GridH:     e.grid.H,
	})
	return nil
}

// Phase returns the engine lifecycle state.
func (e *Engine) Phase() Phase { return e.phase }

// Complete reports whether the current game has been solved.
func (e *Engine) Complete() bool { return e.phase == PhaseComplete }

// Tier returns the active tier preset.
func (e *Engine) Tier() config.Tier { return e.tier }

// Grid returns the live board. Callers must treat it as read-only.
func (e *Engine) Grid() *puzzle.Grid { return e.grid }

// Tiles returns the player's hand in hand order. Callers must treat it as
// read-only.
func (e *Engine) Tiles() []puzzle.Tile { return e.tiles }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// HintsLeft returns the remaining hint budget.
func (e *Engine) HintsLeft() int { return e.hintsLeft }

// HintsUsed returns how many hints were consumed this game.
func (e *Engine) HintsUsed() int { return e.hintsUsed }

// MoveCount returns the length of the move log.
func (e *Engine) MoveCount() int { return len(e.moves) }

// ElapsedSeconds returns the wall-clock play time. Frozen at completion;
// derived from the start instant otherwise, so there is no ticking state to
// race with commands.
func (e *Engine) ElapsedSeconds() int {
	switch e.phase {
	case PhaseComplete:
		return e.finalElapsed
	case PhaseInProgress:
		return e.restoredElapsed + int(time.Since(e.startedAt).Seconds())
	default:
		return 0
	}
}

// tile returns the tile with the given id, or nil.
func (e *Engine) tile(id int) *puzzle.Tile {
	if id < 0 || id >= len(e.tiles) {
		return nil
	}
	return &e.tiles[id]
}

// CanPlaceTile is the pure feasibility predicate behind PlaceTile: same
// preconditions, no mutation. Used by the UI for drag feedback.
func (e *Engine) CanPlaceTile(tileID int, cell puzzle.Coord) bool {
	if e.phase != PhaseInProgress {
		return false
	}
	t := e.tile(tileID)
	if t == nil || t.Used {
		return false
	}
	c := e.grid.Cell(cell)
	return c != nil && c.Editable() && !c.Filled
}

// PlaceTile places an unused tile onto a blank editable number cell.
// Returns false, with no mutation, when any precondition fails.
func (e *Engine) PlaceTile(tileID int, cell puzzle.Coord) bool {
	if !e.CanPlaceTile(tileID, cell) {
		return false
	}
	t := e.tile(tileID)
	c := e.grid.Cell(cell)

	t.Used = true
	c.Value = t.Value
	c.Filled = true
	c.TileID = t.ID
	e.moves = append(e.moves, Move{Kind: MovePlace, TileID: t.ID, Cell: cell, Value: t.Value, At: time.Now()})

	e.emit(TilePlacedEvent{TileID: t.ID, Cell: cell, Value: t.Value})
	e.revalidate()
	e.checkCompletion()
	return true
}

// RemoveTile takes the tile off a filled editable cell, freeing it for
// reuse. Removal can never complete the puzzle, so no completion check.
func (e *Engine) RemoveTile(cell puzzle.Coord) bool {
	if e.phase != PhaseInProgress {
		return false
	}
	c := e.grid.Cell(cell)
	if c == nil || !c.Editable() || !c.Filled {
		return false
	}

	tileID := c.TileID
	value := c.Value
	if t := e.tile(tileID); t != nil {
		t.Used = false
	}
	e.clearCell(c)
	e.moves = append(e.moves, Move{Kind: MoveRemove, TileID: tileID, Cell: cell, Value: value, At: time.Now()})

	e.revalidate()
	return true
}

// UndoLastMove pops the most recent move and applies its structural
// inverse. The log shrinks; this is a true undo with no redo.
func (e *Engine) UndoLastMove() bool {
	if e.phase != PhaseInProgress || len(e.moves) == 0 {
		return false
	}
	m := e.moves[len(e.moves)-1]
	e.moves = e.moves[:len(e.moves)-1]

	c := e.grid.Cell(m.Cell)
	switch m.Kind {
	case MovePlace:
		if t := e.tile(m.TileID); t != nil {
			t.Used = false
		}
		e.clearCell(c)
		e.revalidate()
	case MoveRemove:
		if t := e.tile(m.TileID); t != nil {
			t.Used = true
		}
		c.Value = m.Value
		c.Filled = true
		c.TileID = m.TileID
		e.revalidate()
		// Refilling a cell can finish the board.
		e.checkCompletion()
	}
	return true
}

// GetHint picks a random blank editable cell and returns its correct value,
// consuming one hint and deducting the penalty (score clamps at zero).
// The cell is not filled; the caller decides what to do with the answer.
func (e *Engine) GetHint() (Hint, bool) {
	if e.phase != PhaseInProgress || e.hintsLeft <= 0 {
		return Hint{}, false
	}
	blanks := e.grid.BlankCells()
	if len(blanks) == 0 {
		return Hint{}, false
	}
	cell := blanks[e.rng.Intn(len(blanks))]

	value, ok := e.correctValueFor(cell)
	if !ok {
		// A number cell outside any equation would be a generator bug.
		e.logger.Error("hint target has no owning equation", "cell", cell.Pos.Key())
		return Hint{}, false
	}

	e.hintsLeft--
	e.hintsUsed++
	e.score -= e.cfg.Scoring.HintPenalty
	if e.score < 0 {
		e.score = 0
	}
	return Hint{Cell: cell.Pos, Value: value}, true
}

// correctValueFor resolves a cell's correct value through its owning
// equation's structural slot, the same resolution used for the tile hand.
func (e *Engine) correctValueFor(cell *puzzle.Cell) (int, bool) {
	for _, id := range cell.Equations {
		eq := e.grid.Equation(id)
		if eq == nil {
			continue
		}
		if slot := eq.SlotOf(cell.Pos); slot >= 0 {
			if v, ok := eq.CorrectValue(slot); ok {
				return v, true
			}
		}
	}
	return 0, false
}

// clearCell resets the play state of an editable number cell.
func (e *Engine) clearCell(c *puzzle.Cell) {
	c.Value = 0
	c.Filled = false
	c.TileID = puzzle.NoTile
	c.Correct = puzzle.CorrectnessUnknown
}

// revalidate recomputes completion and validity for every equation and
// mirrors the result onto the participating number cells. Freshly solved
// equations score once per transition; points are never retracted.
func (e *Engine) revalidate() {
	e.revalidateWith(true)
}

// revalidateWith optionally suppresses scoring and events; restore needs
// the flags recomputed without re-awarding the saved score.
func (e *Engine) revalidateWith(award bool) {
	for _, eq := range e.grid.Equations() {
		wasComplete := eq.Complete
		wasSolved := eq.Complete && eq.Valid

		var vals [3]int
		complete := true
		for i, slot := range puzzle.NumberSlots {
			c := e.grid.Cell(eq.Cells[slot])
			if !c.Filled {
				complete = false
				break
			}
			vals[i] = c.Value
		}

		eq.Complete = complete
		if !complete {
			eq.Valid = false
			for _, slot := range puzzle.NumberSlots {
				e.grid.Cell(eq.Cells[slot]).Correct = puzzle.CorrectnessUnknown
			}
			continue
		}

		want, ok := eq.Op.Apply(vals[0], vals[1])
		eq.Valid = ok && want == vals[2]

		mark := puzzle.CorrectnessWrong
		if eq.Valid {
			mark = puzzle.CorrectnessRight
		}
		for _, slot := range puzzle.NumberSlots {
			e.grid.Cell(eq.Cells[slot]).Correct = mark
		}

		if !award {
			continue
		}
		if !wasComplete {
			e.emit(EquationCompletedEvent{EquationID: eq.ID, Valid: eq.Valid})
		}
		if eq.Valid && !wasSolved {
			e.score += e.cfg.Scoring.EquationPoints
		}
	}
}

// newHintRNG seeds the hint selection source. Offset from the board seed so
// hint order does not mirror generation order.
func newHintRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed + 1))
}

// checkCompletion transitions to PhaseComplete when every equation is
// complete and valid, awarding the one-time time and tier bonuses.
func (e *Engine) checkCompletion() {
	if e.phase != PhaseInProgress {
		return
	}
	for _, eq := range e.grid.Equations() {
		if !eq.Complete || !eq.Valid {
			return
		}
	}

	elapsed := e.ElapsedSeconds()
	e.finalElapsed = elapsed
	e.phase = PhaseComplete

	timeBonus := 0
	if remaining := e.cfg.Scoring.TimeBonusWindowSeconds - elapsed; remaining > 0 {
		timeBonus = remaining * e.cfg.Scoring.TimeBonusMultiplier
	}
	tierBonus := int(float64(e.cfg.Scoring.CompletionPoints) * e.tier.BonusMultiplier)
	e.score += timeBonus + tierBonus

	e.logger.Info("game completed",
		"tier", e.tier.Name,
		"score", e.score,
		"elapsed", elapsed,
		"time_bonus", timeBonus,
		"tier_bonus", tierBonus)

	e.emit(GameCompletedEvent{Score: e.score, ElapsedSeconds: elapsed, Tier: e.tier.Name})
}
