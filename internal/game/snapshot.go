package game

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-mathcross/internal/config"
	"github.com/vovakirdan/tui-mathcross/internal/puzzle"
)

// saveVersion is bumped on incompatible SaveState changes.
const saveVersion = 1

// SaveState is the serialized form of a whole game. Cells and equations are
// flattened to keyed lists; Decode rebuilds the coordinate-addressed maps.
type SaveState struct {
	Version        int    `yaml:"version"`
	Tier           string `yaml:"tier"`
	Seed           int64  `yaml:"seed"`
	Score          int    `yaml:"score"`
	HintsLeft      int    `yaml:"hints_left"`
	HintsUsed      int    `yaml:"hints_used"`
	ElapsedSeconds int    `yaml:"elapsed_seconds"`
	Complete       bool   `yaml:"complete"`

	GridWidth  int             `yaml:"grid_width"`
	GridHeight int             `yaml:"grid_height"`
	Cells      []savedCell     `yaml:"cells"`
	Equations  []savedEquation `yaml:"equations"`
	Tiles      []savedTile     `yaml:"tiles"`
	Moves      []savedMove     `yaml:"moves"`
}

// savedCell records one non-empty cell, keyed by its "x-y" coordinate.
type savedCell struct {
	ID      string `yaml:"id"`
	Type    string `yaml:"type"`
	Value   int    `yaml:"value,omitempty"`
	Op      string `yaml:"op,omitempty"`
	Fixed   bool   `yaml:"fixed,omitempty"`
	Filled  bool   `yaml:"filled,omitempty"`
	TileID  int    `yaml:"tile_id"`
	Correct string `yaml:"correct,omitempty"`
}

type savedEquation struct {
	ID          int      `yaml:"id"`
	Cells       []string `yaml:"cells"`
	Op          string   `yaml:"op"`
	A           int      `yaml:"a"`
	B           int      `yaml:"b"`
	Result      int      `yaml:"result"`
	Orientation string   `yaml:"orientation"`
}

type savedTile struct {
	ID    int  `yaml:"id"`
	Value int  `yaml:"value"`
	Used  bool `yaml:"used,omitempty"`
}

type savedMove struct {
	Kind   string    `yaml:"kind"`
	TileID int       `yaml:"tile_id"`
	Cell   string    `yaml:"cell"`
	Value  int       `yaml:"value"`
	At     time.Time `yaml:"at"`
}

// Save serializes the current game to YAML. Fails only when no game has
// been started.
func (e *Engine) Save() ([]byte, error) {
	if e.phase == PhaseIdle {
		return nil, fmt.Errorf("game: nothing to save")
	}

	st := SaveState{
		Version:        saveVersion,
		Tier:           string(e.tier.Name),
		Seed:           e.seed,
		Score:          e.score,
		HintsLeft:      e.hintsLeft,
		HintsUsed:      e.hintsUsed,
		ElapsedSeconds: e.ElapsedSeconds(),
		Complete:       e.phase == PhaseComplete,
		GridWidth:      e.grid.W,
		GridHeight:     e.grid.H,
	}

	for y := 0; y < e.grid.H; y++ {
		for x := 0; x < e.grid.W; x++ {
			c := e.grid.Cell(puzzle.C(x, y))
			if c.Type == puzzle.CellEmpty {
				continue
			}
			sc := savedCell{
				ID:     c.Pos.Key(),
				Type:   c.Type.String(),
				Fixed:  c.Fixed,
				Filled: c.Filled,
				TileID: c.TileID,
			}
			switch c.Type {
			case puzzle.CellNumber:
				sc.Value = c.Value
				sc.Correct = c.Correct.String()
			case puzzle.CellOperator:
				sc.Op = c.Op.String()
			}
			st.Cells = append(st.Cells, sc)
		}
	}

	for _, eq := range e.grid.Equations() {
		se := savedEquation{
			ID:          int(eq.ID),
			Op:          eq.Op.String(),
			A:           eq.A,
			B:           eq.B,
			Result:      eq.Result,
			Orientation: eq.Orientation.String(),
		}
		for _, pos := range eq.Cells {
			se.Cells = append(se.Cells, pos.Key())
		}
		st.Equations = append(st.Equations, se)
	}

	for _, t := range e.tiles {
		st.Tiles = append(st.Tiles, savedTile{ID: t.ID, Value: t.Value, Used: t.Used})
	}

	for _, m := range e.moves {
		st.Moves = append(st.Moves, savedMove{
			Kind:   m.Kind.String(),
			TileID: m.TileID,
			Cell:   m.Cell.Key(),
			Value:  m.Value,
			At:     m.At,
		})
	}

	return yaml.Marshal(st)
}

// Decode parses a serialized game state. A decode failure is reported as an
// error; nothing else happens — any live game is untouched.
func Decode(data []byte) (*SaveState, error) {
	var st SaveState
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("game: cannot decode save: %w", err)
	}
	if st.Version != saveVersion {
		return nil, fmt.Errorf("game: unsupported save version %d", st.Version)
	}
	if st.GridWidth <= 0 || st.GridHeight <= 0 {
		return nil, fmt.Errorf("game: save has invalid grid size %dx%d", st.GridWidth, st.GridHeight)
	}
	if len(st.Equations) == 0 {
		return nil, fmt.Errorf("game: save has no equations")
	}
	return &st, nil
}

// Restore replaces the engine's game with a decoded save. The new state is
// built and validated fully before anything is swapped in, so a bad save
// leaves the current game untouched. The elapsed-time clock resumes if the
// restored game is not complete.
func (e *Engine) Restore(st *SaveState) error {
	tier, ok := e.cfg.Tier(config.TierName(st.Tier))
	if !ok {
		return fmt.Errorf("game: save references unknown tier %q", st.Tier)
	}

	grid := puzzle.NewGrid(st.GridWidth, st.GridHeight)

	for _, se := range st.Equations {
		if len(se.Cells) != puzzle.StripLen {
			return fmt.Errorf("game: equation %d has %d cells, want %d", se.ID, len(se.Cells), puzzle.StripLen)
		}
		op, err := puzzle.ParseOperator(se.Op)
		if err != nil {
			return err
		}
		orient, err := puzzle.ParseOrientation(se.Orientation)
		if err != nil {
			return err
		}
		eq := &puzzle.Equation{
			ID:          puzzle.EquationID(se.ID),
			Op:          op,
			A:           se.A,
			B:           se.B,
			Result:      se.Result,
			Orientation: orient,
		}
		for i, key := range se.Cells {
			pos, err := puzzle.ParseKey(key)
			if err != nil {
				return err
			}
			eq.Cells[i] = pos
		}
		grid.RestoreEquation(eq)
	}

	for _, sc := range st.Cells {
		cell := grid.CellByKey(sc.ID)
		if cell == nil {
			return fmt.Errorf("game: save references out-of-bounds cell %q", sc.ID)
		}
		typ, err := puzzle.ParseCellType(sc.Type)
		if err != nil {
			return err
		}
		cell.Type = typ
		cell.Fixed = sc.Fixed
		cell.Filled = sc.Filled
		cell.TileID = sc.TileID
		switch typ {
		case puzzle.CellNumber:
			cell.Value = sc.Value
			correct, err := puzzle.ParseCorrectness(sc.Correct)
			if err != nil && sc.Correct != "" {
				return err
			}
			cell.Correct = correct
		case puzzle.CellOperator:
			op, err := puzzle.ParseOperator(sc.Op)
			if err != nil {
				return err
			}
			cell.Op = op
		}
	}

	// Rebuild membership links from the equations; the cell list does not
	// carry them.
	for _, eq := range grid.Equations() {
		for _, pos := range eq.Cells {
			cell := grid.Cell(pos)
			if cell == nil {
				return fmt.Errorf("game: equation %d references out-of-bounds cell %s", eq.ID, pos.Key())
			}
			cell.Equations = append(cell.Equations, eq.ID)
		}
	}

	if err := puzzle.Validate(grid); err != nil {
		return fmt.Errorf("game: save failed integrity check: %w", err)
	}

	tiles := make([]puzzle.Tile, len(st.Tiles))
	for i, t := range st.Tiles {
		if t.ID != i {
			return fmt.Errorf("game: tile ids not dense at index %d", i)
		}
		tiles[i] = puzzle.Tile{ID: t.ID, Value: t.Value, Used: t.Used}
	}

	moves := make([]Move, 0, len(st.Moves))
	for _, sm := range st.Moves {
		kind, err := ParseMoveKind(sm.Kind)
		if err != nil {
			return err
		}
		pos, err := puzzle.ParseKey(sm.Cell)
		if err != nil {
			return err
		}
		moves = append(moves, Move{Kind: kind, TileID: sm.TileID, Cell: pos, Value: sm.Value, At: sm.At})
	}

	// Everything parsed; swap in the restored game.
	e.tier = tier
	e.grid = grid
	e.tiles = tiles
	e.moves = moves
	e.score = st.Score
	e.hintsLeft = st.HintsLeft
	e.hintsUsed = st.HintsUsed
	if e.rng == nil {
		e.rng = newHintRNG(st.Seed)
	}
	if st.Complete {
		e.phase = PhaseComplete
		e.finalElapsed = st.ElapsedSeconds
	} else {
		e.phase = PhaseInProgress
		e.restoredElapsed = st.ElapsedSeconds
		e.startedAt = time.Now()
		e.finalElapsed = 0
	}

	e.revalidateWith(false)
	return nil
}
