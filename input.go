package jigsaw

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Constants ---

const (
	maxPointers       = 10          // pointer 0 = mouse, 1-9 = touch
	motionPointerBase = maxPointers // motion controllers use IDs from here up
	noPointer         = -1

	reticleSpeed     = 700.0 // pixels per second at full stick deflection
	stickDeadZone    = 0.2
	cameraPadSpeed   = 500.0 // pixels per second of pan at full right-stick deflection
	motionTrigger    = ebiten.StandardGamepadButtonFrontBottomRight
	motionResetKey   = ebiten.StandardGamepadButtonCenterRight
	keyboardResetKey = ebiten.KeyR
)

// inputBackend is the set of input queries the game polls each frame.
// Tests replace it with scripted functions.
type inputBackend struct {
	cursorPosition       func() (int, int)
	isMouseButtonPressed func(ebiten.MouseButton) bool
	wheel                func() (float64, float64)
	appendTouchIDs       func([]ebiten.TouchID) []ebiten.TouchID
	touchPosition        func(ebiten.TouchID) (int, int)
	isKeyJustPressed     func(ebiten.Key) bool

	appendJustConnectedGamepadIDs func([]ebiten.GamepadID) []ebiten.GamepadID
	isGamepadJustDisconnected     func(ebiten.GamepadID) bool
	gamepadAxis                   func(ebiten.GamepadID, ebiten.StandardGamepadAxis) float64
	isGamepadButtonPressed        func(ebiten.GamepadID, ebiten.StandardGamepadButton) bool
	isGamepadButtonJustPressed    func(ebiten.GamepadID, ebiten.StandardGamepadButton) bool
}

func ebitenBackend() inputBackend {
	return inputBackend{
		cursorPosition:                ebiten.CursorPosition,
		isMouseButtonPressed:          ebiten.IsMouseButtonPressed,
		wheel:                         ebiten.Wheel,
		appendTouchIDs:                ebiten.AppendTouchIDs,
		touchPosition:                 ebiten.TouchPosition,
		isKeyJustPressed:              inpututil.IsKeyJustPressed,
		appendJustConnectedGamepadIDs: inpututil.AppendJustConnectedGamepadIDs,
		isGamepadJustDisconnected:     inpututil.IsGamepadJustDisconnected,
		gamepadAxis:                   ebiten.StandardGamepadAxisValue,
		isGamepadButtonPressed:        ebiten.IsStandardGamepadButtonPressed,
		isGamepadButtonJustPressed:    inpututil.IsStandardGamepadButtonJustPressed,
	}
}

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	lastX    float64
	lastY    float64
	onButton bool // press started on the reset button
}

// motionController is a gamepad driven as a pointing device: the left stick
// steers an on-screen reticle that casts the picking ray, and the right
// trigger is the primary action.
type motionController struct {
	pad     ebiten.GamepadID
	id      int
	x, y    float64
	pointer pointerState
}

type inputState struct {
	backend inputBackend

	pointers  [maxPointers]pointerState
	touchMap  [maxPointers]ebiten.TouchID
	touchUsed [maxPointers]bool
	touchIDs  []ebiten.TouchID

	motion       []*motionController
	nextMotionID int
	padBuf       []ebiten.GamepadID

	panning    bool
	panX, panY float64

	// owner is the pointer holding the dragged piece.
	owner int
	// dragMissed is set once a miss of the drag plane has been logged for
	// the current drag.
	dragMissed bool

	injectQueue []syntheticPointerEvent
}

func newInputState() inputState {
	return inputState{
		backend:      ebitenBackend(),
		owner:        noPointer,
		nextMotionID: motionPointerBase,
	}
}

// MotionControllers returns the number of connected motion controllers.
func (g *Game) MotionControllers() int {
	return len(g.input.motion)
}

// --- Input processing ---

// processInput polls every input source once and feeds the controller.
func (g *Game) processInput(dt float64) {
	in := &g.input
	if g.ctrl.State() == StateIdle {
		in.owner = noPointer
	}

	if in.backend.isKeyJustPressed(keyboardResetKey) {
		g.Reset()
	}

	if !g.processInjectedInput() {
		g.processMousePointer()
	}
	g.processTouchPointers()
	g.processMotionControllers(dt)
}

// processMousePointer handles the mouse (pointer 0). The left button drags
// pieces, the right button pans and the wheel zooms.
func (g *Game) processMousePointer() {
	in := &g.input
	mx, my := in.backend.cursorPosition()
	sx, sy := float64(mx), float64(my)

	if in.backend.isMouseButtonPressed(ebiten.MouseButtonRight) {
		if in.panning {
			g.camera.Pan(sx-in.panX, sy-in.panY)
		}
		in.panning = true
		in.panX, in.panY = sx, sy
	} else {
		in.panning = false
	}
	if _, wy := in.backend.wheel(); wy != 0 {
		g.camera.Zoom(wy)
	}

	pressed := in.backend.isMouseButtonPressed(ebiten.MouseButtonLeft)
	g.processPointer(&in.pointers[0], 0, sx, sy, pressed)
}

// processTouchPointers handles touch input (pointers 1-9).
func (g *Game) processTouchPointers() {
	in := &g.input
	in.touchIDs = in.backend.appendTouchIDs(in.touchIDs[:0])

	var activeSlots [maxPointers]bool
	for _, tid := range in.touchIDs {
		slot := in.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := in.backend.touchPosition(tid)
		g.processPointer(&in.pointers[slot], slot, float64(tx), float64(ty), true)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && !activeSlots[i] {
			ps := &in.pointers[i]
			if ps.down {
				g.processPointer(ps, i, ps.lastX, ps.lastY, false)
			}
			in.touchUsed[i] = false
			in.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (in *inputState) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && in.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processMotionControllers tracks gamepad connects and disconnects, moves
// each reticle and runs its trigger through the pointer state machine.
func (g *Game) processMotionControllers(dt float64) {
	in := &g.input

	in.padBuf = in.backend.appendJustConnectedGamepadIDs(in.padBuf[:0])
	for _, pad := range in.padBuf {
		vp := g.camera.Viewport
		in.motion = append(in.motion, &motionController{
			pad: pad,
			id:  in.nextMotionID,
			x:   vp.X + vp.Width/2,
			y:   vp.Y + vp.Height/2,
		})
		in.nextMotionID++
		g.log.Printf("motion controller %d connected", pad)
	}

	kept := in.motion[:0]
	for _, mc := range in.motion {
		if in.backend.isGamepadJustDisconnected(mc.pad) {
			if mc.pointer.down {
				g.processPointer(&mc.pointer, mc.id, mc.x, mc.y, false)
			}
			g.log.Printf("motion controller %d disconnected", mc.pad)
			continue
		}
		kept = append(kept, mc)
	}
	for i := len(kept); i < len(in.motion); i++ {
		in.motion[i] = nil
	}
	in.motion = kept

	for _, mc := range in.motion {
		if in.backend.isGamepadButtonJustPressed(mc.pad, motionResetKey) {
			g.Reset()
		}

		ax := deadZone(in.backend.gamepadAxis(mc.pad, ebiten.StandardGamepadAxisLeftStickHorizontal))
		ay := deadZone(in.backend.gamepadAxis(mc.pad, ebiten.StandardGamepadAxisLeftStickVertical))
		vp := g.camera.Viewport
		mc.x = math.Max(vp.X, math.Min(mc.x+ax*reticleSpeed*dt, vp.X+vp.Width))
		mc.y = math.Max(vp.Y, math.Min(mc.y+ay*reticleSpeed*dt, vp.Y+vp.Height))

		rx := deadZone(in.backend.gamepadAxis(mc.pad, ebiten.StandardGamepadAxisRightStickHorizontal))
		ry := deadZone(in.backend.gamepadAxis(mc.pad, ebiten.StandardGamepadAxisRightStickVertical))
		if rx != 0 || ry != 0 {
			g.camera.Pan(-rx*cameraPadSpeed*dt, -ry*cameraPadSpeed*dt)
		}

		pressed := in.backend.isGamepadButtonPressed(mc.pad, motionTrigger)
		g.processPointer(&mc.pointer, mc.id, mc.x, mc.y, pressed)
	}
}

func deadZone(v float64) float64 {
	if math.Abs(v) < stickDeadZone {
		return 0
	}
	return v
}

// processPointer runs the pointer state machine for a single pointer in
// screen coordinates. Only the pointer that grabbed a piece may move or
// release it.
func (g *Game) processPointer(ps *pointerState, pointerID int, sx, sy float64, pressed bool) {
	in := &g.input

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.lastX, ps.lastY = sx, sy
		if g.hud.resetButton.Contains(sx, sy) {
			ps.onButton = true
			return
		}
		g.tryGrab(pointerID, sx, sy)

	case pressed && ps.down:
		if in.owner == pointerID && (sx != ps.lastX || sy != ps.lastY) {
			g.moveDragged(sx, sy)
		}
		ps.lastX, ps.lastY = sx, sy

	case !pressed && ps.down:
		ps.down = false
		if ps.onButton {
			ps.onButton = false
			if g.hud.resetButton.Contains(sx, sy) {
				g.Reset()
			}
			return
		}
		if in.owner == pointerID {
			g.moveDragged(sx, sy)
			in.owner = noPointer
			g.ctrl.Release()
		}
		ps.lastX, ps.lastY = sx, sy

	default:
		ps.lastX, ps.lastY = sx, sy
	}
}

// tryGrab picks under (sx, sy) and grabs the hit piece when no other
// pointer holds one.
func (g *Game) tryGrab(pointerID int, sx, sy float64) {
	if g.input.owner != noPointer {
		return
	}
	ray := g.camera.Ray(sx, sy)
	hit, ok := g.picker.Pick(ray)
	if !ok {
		return
	}
	// The offset is measured on the plane the piece is dragged in, so it
	// does not jump on the first move.
	if p := g.ctrl.PieceFor(hit.Handle); p != nil {
		lifted := p.Position.Z + 2*g.cfg.PieceThickness
		if pt, ok := g.picker.DragPoint(ray, lifted); ok {
			hit.Point = pt.WithZ(lifted)
		}
	}
	if err := g.ctrl.Grab(hit); err != nil {
		g.log.Printf("pointer %d: %v", pointerID, err)
		return
	}
	if g.ctrl.Dragged() != nil {
		g.input.owner = pointerID
		g.input.dragMissed = false
	}
}

// moveDragged moves the held piece under screen point (sx, sy).
func (g *Game) moveDragged(sx, sy float64) {
	p := g.ctrl.Dragged()
	if p == nil {
		return
	}
	pt, ok := g.picker.DragPoint(g.camera.Ray(sx, sy), p.Position.Z)
	if !ok && !g.input.dragMissed {
		g.input.dragMissed = true
		g.log.Printf("drag of piece %d (%d,%d): pointer at (%.0f,%.0f) misses the drag plane; holding position",
			p.Index, p.Row, p.Col, sx, sy)
	}
	g.ctrl.Move(pt, ok)
}
