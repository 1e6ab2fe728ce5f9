package game

import (
	"github.com/vovakirdan/tui-mathcross/internal/config"
	"github.com/vovakirdan/tui-mathcross/internal/puzzle"
)

// EventKind enumerates the notifications an engine emits.
type EventKind uint8

const (
	EventGameStarted EventKind = iota
	EventTilePlaced
	EventEquationCompleted
	EventGameCompleted
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventGameStarted:
		return "game-started"
	case EventTilePlaced:
		return "tile-placed"
	case EventEquationCompleted:
		return "equation-completed"
	case EventGameCompleted:
		return "game-completed"
	default:
		return "unknown"
	}
}

// Event is the closed set of engine notifications.
type Event interface {
	Kind() EventKind
}

// GameStartedEvent is emitted once per new game.
type GameStartedEvent struct {
	Tier      config.TierName
	Equations int
	GridW     int
	GridH     int
}

func (GameStartedEvent) Kind() EventKind { return EventGameStarted }

// TilePlacedEvent is emitted after every successful placement.
type TilePlacedEvent struct {
	TileID int
	Cell   puzzle.Coord
	Value  int
}

func (TilePlacedEvent) Kind() EventKind { return EventTilePlaced }

// EquationCompletedEvent is emitted when an equation transitions to
// complete. Valid reports whether the filled values are arithmetically
// correct.
type EquationCompletedEvent struct {
	EquationID puzzle.EquationID
	Valid      bool
}

func (EquationCompletedEvent) Kind() EventKind { return EventEquationCompleted }

// GameCompletedEvent is emitted once, at the moment the whole board becomes
// complete and valid.
type GameCompletedEvent struct {
	Score          int
	ElapsedSeconds int
	Tier           config.TierName
}

func (GameCompletedEvent) Kind() EventKind { return EventGameCompleted }

// Handler receives engine events. Handlers run synchronously on the command
// that produced the event.
type Handler func(Event)

// Subscribe registers a handler for one event kind. Multiple handlers per
// kind are delivered in registration order.
func (e *Engine) Subscribe(kind EventKind, h Handler) {
	e.handlers[kind] = append(e.handlers[kind], h)
}

// emit delivers an event to all subscribers of its kind. Each handler runs
// isolated: a panicking handler is recovered and logged so it cannot block
// delivery to the rest.
func (e *Engine) emit(ev Event) {
	for _, h := range e.handlers[ev.Kind()] {
		func() {
			defer func() {
				if r := recover(); r != nil {
					e.logger.Error("event handler panicked", "kind", ev.Kind(), "panic", r)
				}
			}()
			h(ev)
		}()
	}
}
