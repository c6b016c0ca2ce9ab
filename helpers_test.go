package jigsaw

import (
	"bytes"
	"io"
	"log"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// testConfig returns a deterministic config for a rows x cols grid on a
// 2x2 puzzle, with tiles of 1 unit when rows == cols == 2.
func testConfig(rows, cols int) Config {
	cfg := DefaultConfig()
	cfg.Rows = rows
	cfg.Cols = cols
	cfg.PuzzleWidth = 2
	cfg.Seed = 7
	cfg.Logger = log.New(io.Discard, "", 0)
	return cfg
}

// newTestSessionConfig builds a session over a square image.
func newTestSessionConfig(t *testing.T, cfg Config) *Session {
	t.Helper()
	layout, err := NewLayout(200, 200, cfg)
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	return NewSession(layout, cfg)
}

func newTestSession(t *testing.T, rows, cols int) *Session {
	t.Helper()
	return newTestSessionConfig(t, testConfig(rows, cols))
}

// placeHome locks p at its home position.
func placeHome(s *Session, p *Piece) {
	p.Position = p.Original().WithZ(s.cfg.SettleZ)
	p.Locked = true
}

// recordingSink collects emitted events.
type recordingSink struct {
	events []Event
}

func (r *recordingSink) Emit(e Event) { r.events = append(r.events, e) }

func (r *recordingSink) types() []EventType {
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

// fakeCamera records control toggles.
type fakeCamera struct {
	enabled bool
	toggles int
}

func (f *fakeCamera) SetControlEnabled(enabled bool) {
	f.enabled = enabled
	f.toggles++
}

// fakeCelebrator counts celebrations.
type fakeCelebrator struct {
	calls  int
	pieces int
}

func (f *fakeCelebrator) Celebrate(pieces []*Piece) {
	f.calls++
	f.pieces = len(pieces)
}

// newTestController returns a controller over a fresh session with every
// piece registered under handle Index+1.
func newTestController(t *testing.T, cfg Config) (*Controller, *Scheduler, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	cfg.Logger = log.New(&logs, "", 0)
	s := newTestSessionConfig(t, cfg)
	sched := &Scheduler{}
	c := NewController(s, sched)
	for _, p := range s.Pieces() {
		c.Register(MeshHandle(p.Index+1), p)
	}
	return c, sched, &logs
}

// fakeInput is a scripted input backend. Every query reads the current
// field values.
type fakeInput struct {
	cursorX, cursorY int
	mouse            map[ebiten.MouseButton]bool
	wheelY           float64
	touches          map[ebiten.TouchID][2]int
	keys             map[ebiten.Key]bool

	connected    []ebiten.GamepadID
	disconnected map[ebiten.GamepadID]bool
	axes         map[ebiten.StandardGamepadAxis]float64
	buttons      map[ebiten.StandardGamepadButton]bool
	justPressed  map[ebiten.StandardGamepadButton]bool
}

func newFakeInput() *fakeInput {
	return &fakeInput{
		mouse:        map[ebiten.MouseButton]bool{},
		touches:      map[ebiten.TouchID][2]int{},
		keys:         map[ebiten.Key]bool{},
		disconnected: map[ebiten.GamepadID]bool{},
		axes:         map[ebiten.StandardGamepadAxis]float64{},
		buttons:      map[ebiten.StandardGamepadButton]bool{},
		justPressed:  map[ebiten.StandardGamepadButton]bool{},
	}
}

func (f *fakeInput) backend() inputBackend {
	return inputBackend{
		cursorPosition:       func() (int, int) { return f.cursorX, f.cursorY },
		isMouseButtonPressed: func(b ebiten.MouseButton) bool { return f.mouse[b] },
		wheel:                func() (float64, float64) { return 0, f.wheelY },
		appendTouchIDs: func(ids []ebiten.TouchID) []ebiten.TouchID {
			for id := range f.touches {
				ids = append(ids, id)
			}
			return ids
		},
		touchPosition: func(id ebiten.TouchID) (int, int) {
			p := f.touches[id]
			return p[0], p[1]
		},
		isKeyJustPressed: func(k ebiten.Key) bool { return f.keys[k] },
		appendJustConnectedGamepadIDs: func(ids []ebiten.GamepadID) []ebiten.GamepadID {
			ids = append(ids, f.connected...)
			f.connected = nil
			return ids
		},
		isGamepadJustDisconnected: func(id ebiten.GamepadID) bool { return f.disconnected[id] },
		gamepadAxis: func(_ ebiten.GamepadID, a ebiten.StandardGamepadAxis) float64 {
			return f.axes[a]
		},
		isGamepadButtonPressed: func(_ ebiten.GamepadID, b ebiten.StandardGamepadButton) bool {
			return f.buttons[b]
		},
		isGamepadButtonJustPressed: func(_ ebiten.GamepadID, b ebiten.StandardGamepadButton) bool {
			return f.justPressed[b]
		},
	}
}

// newTestGame builds a game over a blank square image, driven by a fake
// input backend with nothing pressed.
func newTestGame(t *testing.T, rows, cols int) *Game {
	t.Helper()
	g, err := NewGame(ebiten.NewImage(200, 200), testConfig(rows, cols), RunConfig{Width: 800, Height: 600})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	g.input.backend = newFakeInput().backend()
	return g
}

// newTestGameInput is newTestGame with the fake backend returned for
// scripting.
func newTestGameInput(t *testing.T, rows, cols int) (*Game, *fakeInput) {
	t.Helper()
	g := newTestGame(t, rows, cols)
	in := newFakeInput()
	g.input.backend = in.backend()
	return g, in
}

// screenOf projects the top face center of p.
func screenOf(t *testing.T, g *Game, p *Piece) (float64, float64) {
	t.Helper()
	sx, sy, _, ok := g.camera.Project(p.Position.Add(Vec3{Z: g.cfg.PieceThickness / 2}))
	if !ok {
		t.Fatalf("piece (%d,%d) projects behind the camera", p.Row, p.Col)
	}
	return sx, sy
}
