package ecs

import (
	"github.com/phanxgames/jigsaw"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// PuzzleEventType is the Donburi event type for jigsaw puzzle events.
// Subscribe to this in your ECS systems to receive grab, lock and win events.
var PuzzleEventType = events.NewEventType[jigsaw.Event]()

// PieceStateData mirrors the last known state of one puzzle piece.
type PieceStateData struct {
	Index    int
	Row, Col int
	Position jigsaw.Vec3
	Held     bool
	Locked   bool
}

// PieceState is the component attached to every mirrored piece entity.
var PieceState = donburi.NewComponentType[PieceStateData]()

var pieceQuery = donburi.NewQuery(filter.Contains(PieceState))

type donburiSink struct {
	world  donburi.World
	pieces map[int]donburi.Entity
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Puzzle events are published to PuzzleEventType and can be consumed with
// events.Subscribe and ProcessEvents. Pieces named by events are mirrored
// as PieceState entities; a reset removes them all.
func NewDonburiSink(world donburi.World) jigsaw.EventSink {
	return &donburiSink{world: world, pieces: make(map[int]donburi.Entity)}
}

func (s *donburiSink) Emit(event jigsaw.Event) {
	s.mirror(event)
	PuzzleEventType.Publish(s.world, event)
}

func (s *donburiSink) mirror(event jigsaw.Event) {
	if event.Type == jigsaw.EventReset {
		for _, e := range s.pieces {
			if s.world.Valid(e) {
				s.world.Remove(e)
			}
		}
		clear(s.pieces)
		return
	}
	if event.Piece < 0 {
		return
	}

	state := s.state(event)
	state.Position = event.Position
	switch event.Type {
	case jigsaw.EventGrab:
		state.Held = true
	case jigsaw.EventRelease:
		state.Held = false
	case jigsaw.EventLocked:
		state.Held = false
		state.Locked = true
	}
}

func (s *donburiSink) state(event jigsaw.Event) *PieceStateData {
	e, ok := s.pieces[event.Piece]
	if !ok || !s.world.Valid(e) {
		e = s.world.Create(PieceState)
		s.pieces[event.Piece] = e
		PieceState.SetValue(s.world.Entry(e), PieceStateData{
			Index: event.Piece,
			Row:   event.Row,
			Col:   event.Col,
		})
	}
	return PieceState.Get(s.world.Entry(e))
}

// LockedPieces returns how many mirrored pieces are locked in place.
func LockedPieces(world donburi.World) int {
	n := 0
	pieceQuery.Each(world, func(entry *donburi.Entry) {
		if PieceState.Get(entry).Locked {
			n++
		}
	})
	return n
}

// HeldPiece returns the state of the piece currently being dragged.
func HeldPiece(world donburi.World) (PieceStateData, bool) {
	var held PieceStateData
	found := false
	pieceQuery.Each(world, func(entry *donburi.Entry) {
		if st := PieceState.Get(entry); st.Held {
			held, found = *st, true
		}
	})
	return held, found
}

// TrackedPieces returns the number of mirrored piece entities.
func TrackedPieces(world donburi.World) int {
	return pieceQuery.Count(world)
}
