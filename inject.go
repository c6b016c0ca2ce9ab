package jigsaw

// syntheticPointerEvent represents a single injected pointer event in
// screen coordinates. It is picked and projected through the camera exactly
// like real mouse input.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
}

// InjectPress queues a primary-button press at the given screen
// coordinates. The event is consumed on the next frame's input pass.
func (g *Game) InjectPress(x, y float64) {
	g.input.injectQueue = append(g.input.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y, pressed: true,
	})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (g *Game) InjectMove(x, y float64) {
	g.input.injectQueue = append(g.input.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y, pressed: true,
	})
}

// InjectRelease queues a button release at the given screen coordinates.
func (g *Game) InjectRelease(x, y float64) {
	g.input.injectQueue = append(g.input.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y, pressed: false,
	})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (g *Game) InjectClick(x, y float64) {
	g.InjectPress(x, y)
	g.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). Minimum frames is 2 (press + release).
func (g *Game) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	g.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		g.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	g.InjectRelease(toX, toY)
}

// InjectPending returns the number of queued synthetic events.
func (g *Game) InjectPending() int {
	return len(g.input.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the mouse pointer. Returns true if an event was consumed, in
// which case real mouse input is skipped this frame.
func (g *Game) processInjectedInput() bool {
	in := &g.input
	if len(in.injectQueue) == 0 {
		return false
	}
	evt := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]

	g.processPointer(&in.pointers[0], 0, evt.screenX, evt.screenY, evt.pressed)
	return true
}
