// Package tui provides the Bubble Tea front end for the game and the SSH
// server that exposes it remotely via Wish.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mathcross/internal/config"
	"github.com/vovakirdan/tui-mathcross/internal/game"
	"github.com/vovakirdan/tui-mathcross/internal/puzzle"
	"github.com/vovakirdan/tui-mathcross/internal/storage"
)

// sessionState is the top-level view state: tier menu, live board, or the
// completion screen.
type sessionState uint8

const (
	stateMenu sessionState = iota
	statePlaying
	stateComplete
)

// clockTickMsg refreshes the elapsed-time display once per second.
type clockTickMsg time.Time

func clockTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

// Options tweaks session startup.
type Options struct {
	StartTier  config.TierName // jump straight into a game when set
	ResumeSave string          // load this save slot at startup
	SaveSlot   string          // slot written by the save key
}

// Model is the Bubble Tea model for one play session:
// menu -> board -> completion -> menu.
type Model struct {
	cfg    config.Config
	store  *storage.Store
	logger *log.Logger
	engine *game.Engine
	keys   KeyMap
	help   help.Model
	opts   Options

	state       sessionState
	menuCursor  int
	cursor      puzzle.Coord
	tileIdx     int
	width       int
	height      int
	status      string
	resultSaved bool
	quitting    bool
}

// New creates a session model. store may be nil; the game then runs without
// leaderboard and save support.
func New(cfg config.Config, store *storage.Store, logger *log.Logger, seed int64, opts Options) Model {
	if logger == nil {
		logger = log.Default()
	}
	if opts.SaveSlot == "" {
		opts.SaveSlot = "autosave"
	}

	eng := game.New(cfg, seed, logger)
	eng.Subscribe(game.EventEquationCompleted, func(ev game.Event) {
		e := ev.(game.EquationCompletedEvent)
		logger.Debug("equation completed", "equation", e.EquationID, "valid", e.Valid)
	})
	eng.Subscribe(game.EventGameCompleted, func(ev game.Event) {
		e := ev.(game.GameCompletedEvent)
		logger.Info("puzzle solved", "tier", e.Tier, "score", e.Score, "seconds", e.ElapsedSeconds)
	})

	m := Model{
		cfg:    cfg,
		store:  store,
		logger: logger,
		engine: eng,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		opts:   opts,
		width:  80,
		height: 24,
	}

	switch {
	case opts.ResumeSave != "" && store != nil:
		if err := m.resumeFromSlot(opts.ResumeSave); err != nil {
			logger.Warn("cannot resume save", "slot", opts.ResumeSave, "error", err)
		}
	case opts.StartTier != "":
		m.startGame(opts.StartTier)
	}

	return m
}

// Init starts the clock when a game is already running.
func (m Model) Init() tea.Cmd {
	if m.state == statePlaying {
		return clockTickCmd()
	}
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case clockTickMsg:
		if m.state == statePlaying {
			return m, clockTickCmd()
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey dispatches a key press to the active view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case stateMenu:
		return m.handleMenuKey(msg)
	case statePlaying:
		return m.handlePlayKey(msg)
	default:
		return m.handleCompleteKey(msg)
	}
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.menuCursor < len(m.cfg.Tiers)-1 {
			m.menuCursor++
		}
	case key.Matches(msg, m.keys.Place):
		tier := m.cfg.Tiers[m.menuCursor]
		m.startGame(tier.Name)
		return m, clockTickCmd()
	}
	return m, nil
}

func (m Model) handlePlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.NextTile):
		m.cycleTile(1)
	case key.Matches(msg, m.keys.PrevTile):
		m.cycleTile(-1)
	case key.Matches(msg, m.keys.Place):
		m.placeSelected()
	case key.Matches(msg, m.keys.Remove):
		if !m.engine.RemoveTile(m.cursor) {
			m.status = "nothing to remove here"
		} else {
			m.status = ""
		}
	case key.Matches(msg, m.keys.Undo):
		if !m.engine.UndoLastMove() {
			m.status = "nothing to undo"
		} else {
			m.status = "undone"
		}
	case key.Matches(msg, m.keys.Hint):
		if hint, ok := m.engine.GetHint(); ok {
			m.status = fmt.Sprintf("hint: cell %s wants %d (%d hints left)",
				hint.Cell.Key(), hint.Value, m.engine.HintsLeft())
		} else {
			m.status = "no hints left"
		}
	case key.Matches(msg, m.keys.Save):
		m.saveToSlot()
	case key.Matches(msg, m.keys.Back):
		m.state = stateMenu
		m.status = ""
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	if m.engine.Complete() && m.state == statePlaying {
		m.finishGame()
	}
	return m, nil
}

func (m Model) handleCompleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Place) {
		m.state = stateMenu
		m.status = ""
	}
	return m, nil
}

// startGame begins a fresh game and seats the cursor on the first editable
// cell.
func (m *Model) startGame(tier config.TierName) {
	if err := m.engine.StartNewGame(tier); err != nil {
		m.status = err.Error()
		return
	}
	m.state = statePlaying
	m.status = ""
	m.resultSaved = false
	m.tileIdx = 0
	m.cycleTileToUnused()
	if cells := m.engine.Grid().EditableCells(); len(cells) > 0 {
		m.cursor = cells[0].Pos
	} else {
		m.cursor = puzzle.C(0, 0)
	}
}

// finishGame switches to the completion screen and records the result once.
func (m *Model) finishGame() {
	m.state = stateComplete
	if m.store == nil || m.resultSaved {
		return
	}
	m.resultSaved = true
	_, err := m.store.SaveResult(storage.ResultEntry{
		Tier:         string(m.engine.Tier().Name),
		Score:        m.engine.Score(),
		DurationSecs: m.engine.ElapsedSeconds(),
		Equations:    m.engine.Grid().EquationCount(),
		HintsUsed:    m.engine.HintsUsed(),
	})
	if err != nil {
		m.logger.Warn("cannot record result", "error", err)
	}
	if m.opts.SaveSlot != "" {
		// A finished game makes its autosave stale.
		if err := m.store.DeleteSave(m.opts.SaveSlot); err != nil {
			m.logger.Warn("cannot clear save slot", "error", err)
		}
	}
}

// placeSelected places the currently selected tray tile at the cursor.
func (m *Model) placeSelected() {
	tiles := m.engine.Tiles()
	if m.tileIdx < 0 || m.tileIdx >= len(tiles) || tiles[m.tileIdx].Used {
		m.status = "no tile selected"
		return
	}
	if !m.engine.PlaceTile(tiles[m.tileIdx].ID, m.cursor) {
		m.status = "cannot place here"
		return
	}
	m.status = ""
	m.cycleTileToUnused()
}

// moveCursor shifts the board cursor, clamped to the grid.
func (m *Model) moveCursor(dx, dy int) {
	g := m.engine.Grid()
	next := puzzle.C(m.cursor.X+dx, m.cursor.Y+dy)
	if g.InBounds(next) {
		m.cursor = next
	}
}

// cycleTile moves the tray selection to the next/previous unused tile.
func (m *Model) cycleTile(dir int) {
	tiles := m.engine.Tiles()
	if len(tiles) == 0 {
		return
	}
	idx := m.tileIdx
	for i := 0; i < len(tiles); i++ {
		idx = (idx + dir + len(tiles)) % len(tiles)
		if !tiles[idx].Used {
			m.tileIdx = idx
			return
		}
	}
}

// cycleTileToUnused keeps the selection on an unused tile after placement.
func (m *Model) cycleTileToUnused() {
	tiles := m.engine.Tiles()
	if m.tileIdx >= 0 && m.tileIdx < len(tiles) && !tiles[m.tileIdx].Used {
		return
	}
	m.cycleTile(1)
}

// saveToSlot serializes the running game into the configured slot.
func (m *Model) saveToSlot() {
	if m.store == nil {
		m.status = "no database, cannot save"
		return
	}
	data, err := m.engine.Save()
	if err != nil {
		m.status = err.Error()
		return
	}
	if err := m.store.SaveGame(m.opts.SaveSlot, string(m.engine.Tier().Name), m.engine.Score(), data); err != nil {
		m.logger.Warn("cannot save game", "error", err)
		m.status = "save failed"
		return
	}
	m.status = fmt.Sprintf("saved as %q", m.opts.SaveSlot)
}

// resumeFromSlot restores a saved game from storage.
func (m *Model) resumeFromSlot(slot string) error {
	data, err := m.store.LoadGame(slot)
	if err != nil {
		return err
	}
	st, err := game.Decode(data)
	if err != nil {
		return err
	}
	if err := m.engine.Restore(st); err != nil {
		return err
	}
	if m.engine.Complete() {
		m.state = stateComplete
		m.resultSaved = true
		return nil
	}
	m.state = statePlaying
	m.tileIdx = 0
	m.cycleTileToUnused()
	if cells := m.engine.Grid().EditableCells(); len(cells) > 0 {
		m.cursor = cells[0].Pos
	}
	return nil
}

// IsQuitting reports whether the user chose to exit.
func (m Model) IsQuitting() bool {
	return m.quitting
}
