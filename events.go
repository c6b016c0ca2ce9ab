package jigsaw

import "github.com/google/uuid"

// EventType identifies a kind of puzzle event.
type EventType uint8

const (
	EventGrab         EventType = iota // a piece was picked up
	EventRelease                       // a held piece was let go
	EventLocked                        // a released piece snapped and locked
	EventRestored                      // a released piece returned to its pre-drag spot
	EventSolved                        // every piece is locked in its home position
	EventMisassembled                  // every piece is locked but the picture is wrong
	EventReset                         // the puzzle was reshuffled
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventGrab:
		return "grab"
	case EventRelease:
		return "release"
	case EventLocked:
		return "locked"
	case EventRestored:
		return "restored"
	case EventSolved:
		return "solved"
	case EventMisassembled:
		return "misassembled"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event carries puzzle state changes to an EventSink. Piece is -1 for
// puzzle-wide events.
type Event struct {
	Type     EventType
	Round    uuid.UUID
	Piece    int
	Row, Col int
	Position Vec3
	// Relation is set on EventLocked when the piece snapped to a neighbor.
	Relation Adjacency
	// From is where the piece was dropped, before snapping or restoring.
	// It is set on EventRelease, EventLocked and EventRestored.
	From Vec3
}

// EventSink receives puzzle events. See the ecs submodule for a donburi
// backed implementation.
type EventSink interface {
	Emit(event Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(Event)

// Emit calls f(event).
func (f EventSinkFunc) Emit(event Event) { f(event) }

func pieceEvent(t EventType, round uuid.UUID, p *Piece) Event {
	return Event{
		Type:     t,
		Round:    round,
		Piece:    p.Index,
		Row:      p.Row,
		Col:      p.Col,
		Position: p.Position,
	}
}

func puzzleEvent(t EventType, round uuid.UUID) Event {
	return Event{Type: t, Round: round, Piece: -1, Row: -1, Col: -1}
}
