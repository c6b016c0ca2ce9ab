package jigsaw

import (
	"errors"
	"log"
)

// ErrAlreadyDragging is returned by Grab while another piece is held.
var ErrAlreadyDragging = errors.New("jigsaw: a piece is already being dragged")

// MisassembledMessage is shown when every piece locked but the picture is
// wrong.
const MisassembledMessage = "Puzzle assembled incorrectly. Resetting..."

// Hit is a pick result from the rendering side: which mesh was hit, where,
// and how far along the ray.
type Hit struct {
	Handle MeshHandle
	// Point is the world-space hit point. It is only meaningful when
	// HasPoint is true.
	Point    Vec3
	HasPoint bool
	Distance float64
}

// CameraControl is toggled off while a piece is dragged so the drag does
// not also pan or zoom the view.
type CameraControl interface {
	SetControlEnabled(enabled bool)
}

// Celebrator plays the solved animation.
type Celebrator interface {
	Celebrate(pieces []*Piece)
}

// Controller owns the drag state machine. Every input source (mouse, touch,
// motion controllers) goes through the same Controller, so at most one
// piece is held at a time.
type Controller struct {
	session *Session
	sched   *Scheduler
	log     *log.Logger

	handles map[MeshHandle]*Piece

	dragged *Piece
	offset  Vec3
	preDrag Vec3

	interactive bool
	message     string
	resetTimer  *Timer

	sink       EventSink
	camera     CameraControl
	celebrator Celebrator
}

// NewController creates a controller for session. Delayed resets are armed
// on sched.
func NewController(session *Session, sched *Scheduler) *Controller {
	return &Controller{
		session:     session,
		sched:       sched,
		log:         session.cfg.logger(),
		handles:     make(map[MeshHandle]*Piece, len(session.pieces)),
		interactive: true,
	}
}

// SetEventSink sets the receiver of puzzle events. Nil disables events.
func (c *Controller) SetEventSink(sink EventSink) { c.sink = sink }

// SetCameraControl sets the camera toggled around drags.
func (c *Controller) SetCameraControl(cam CameraControl) { c.camera = cam }

// SetCelebrator sets the solved animation.
func (c *Controller) SetCelebrator(cel Celebrator) { c.celebrator = cel }

// Register maps a mesh handle to the piece it renders.
func (c *Controller) Register(h MeshHandle, p *Piece) {
	c.handles[h] = p
}

// PieceFor returns the piece registered for h, or nil.
func (c *Controller) PieceFor(h MeshHandle) *Piece {
	return c.handles[h]
}

// Session returns the controlled session.
func (c *Controller) Session() *Session { return c.session }

// State returns the drag state.
func (c *Controller) State() DragState {
	if c.dragged != nil {
		return StateDragging
	}
	return StateIdle
}

// Dragged returns the held piece, or nil.
func (c *Controller) Dragged() *Piece { return c.dragged }

// DragOffset returns the grab offset of the held piece.
func (c *Controller) DragOffset() Vec3 { return c.offset }

// Interactive reports whether grabs are accepted. It is false once the
// puzzle is solved, until the next reset.
func (c *Controller) Interactive() bool { return c.interactive }

// Message returns the current status message, empty when there is none.
func (c *Controller) Message() string { return c.message }

// Solved reports whether the current round has been won.
func (c *Controller) Solved() bool { return c.session.solved }

// ResetPending reports whether a delayed reset is armed.
func (c *Controller) ResetPending() bool { return c.resetTimer.Active() }

// Grab picks up the piece behind hit. Locked or unknown pieces, and any
// grab after the puzzle is solved, are ignored.
func (c *Controller) Grab(hit Hit) error {
	if c.dragged != nil {
		return ErrAlreadyDragging
	}
	if !c.interactive {
		return nil
	}
	p := c.handles[hit.Handle]
	if p == nil || p.Locked {
		return nil
	}

	c.dragged = p
	c.preDrag = p.Position
	p.Position.Z += 2 * c.session.cfg.PieceThickness

	if hit.HasPoint {
		c.offset = hit.Point.Sub(p.Position)
	} else {
		c.log.Printf("grab of piece %d (%d,%d) has no hit point; using zero drag offset", p.Index, p.Row, p.Col)
		c.offset = Vec3{}
	}

	if c.camera != nil {
		c.camera.SetControlEnabled(false)
	}
	c.emit(pieceEvent(EventGrab, c.session.round, p))
	return nil
}

// Move places the held piece under point, keeping its drag height. It is a
// no-op when nothing is held or ok is false.
func (c *Controller) Move(point Vec3, ok bool) {
	if c.dragged == nil || !ok {
		return
	}
	c.dragged.Position.X = point.X - c.offset.X
	c.dragged.Position.Y = point.Y - c.offset.Y
}

// Release drops the held piece, snaps or restores it, then runs the win
// check. It returns the snap result and the win outcome. With nothing held
// only the win check runs.
func (c *Controller) Release() (SnapResult, WinOutcome) {
	p := c.dragged
	if p == nil {
		return SnapResult{}, c.checkWin()
	}

	dropped := p.Position
	res := c.session.Snap(p, c.preDrag)

	c.dragged = nil
	c.offset = Vec3{}
	c.preDrag = Vec3{}
	if c.camera != nil {
		c.camera.SetControlEnabled(true)
	}

	round := c.session.round
	release := pieceEvent(EventRelease, round, p)
	release.From = dropped
	c.emit(release)
	if res.Locked {
		ev := pieceEvent(EventLocked, round, p)
		ev.Relation = res.Relation
		ev.From = dropped
		c.emit(ev)
	} else {
		ev := pieceEvent(EventRestored, round, p)
		ev.From = dropped
		c.emit(ev)
	}

	return res, c.checkWin()
}

// checkWin runs the win check and applies its side effects.
func (c *Controller) checkWin() WinOutcome {
	outcome := c.session.CheckWin()
	switch outcome {
	case WinSolved:
		c.interactive = false
		c.message = ""
		c.emit(puzzleEvent(EventSolved, c.session.round))
		if c.celebrator != nil {
			c.celebrator.Celebrate(c.session.pieces)
		}
	case WinMisassembled:
		if c.resetTimer.Active() {
			break
		}
		c.message = MisassembledMessage
		c.emit(puzzleEvent(EventMisassembled, c.session.round))
		c.log.Printf("all %d pieces locked but misplaced; resetting in %v",
			len(c.session.pieces), c.session.cfg.ResetDelay.Std())
		round := c.session.round
		c.resetTimer = c.sched.After(c.session.cfg.ResetDelay.Std(), func() {
			if c.session.round != round {
				return
			}
			c.Reset()
		})
	}
	return outcome
}

// Reset reshuffles the puzzle, clears the solved flag and message, cancels
// any pending delayed reset and re-enables interaction. A held piece is
// dropped without snapping.
func (c *Controller) Reset() {
	c.resetTimer.Stop()
	c.resetTimer = nil

	if c.dragged != nil {
		c.dragged = nil
		c.offset = Vec3{}
		c.preDrag = Vec3{}
		if c.camera != nil {
			c.camera.SetControlEnabled(true)
		}
	}

	c.session.Shuffle()
	c.interactive = true
	c.message = ""
	c.emit(puzzleEvent(EventReset, c.session.round))
}

func (c *Controller) emit(e Event) {
	if c.sink != nil {
		c.sink.Emit(e)
	}
}
