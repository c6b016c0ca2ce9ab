package jigsaw

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Row    int     `json:"row,omitempty"`
	Col    int     `json:"col,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"screenshot": true,
	"click":      true,
	"drag":       true,
	"place":      true,
	"wait":       true,
	"reset":      true,
}

// TestRunner sequences injected input, resets and screenshots across frames
// for automated play-throughs. Attach to a Game via SetTestRunner.
//
// Besides the screen-space actions, "place" drags piece (row, col) from
// wherever it currently is onto its home position.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Game via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the game. The runner's step method
// is called from Game.Update before input is processed each frame.
func (g *Game) SetTestRunner(runner *TestRunner) {
	g.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Game.Update.
func (r *TestRunner) step(g *Game) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if g.InjectPending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		g.Screenshot(st.Label)
	case "click":
		g.InjectClick(st.X, st.Y)
	case "drag":
		g.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "place":
		if err := g.injectPlace(st.Row, st.Col, max(st.Frames, 2)); err != nil {
			g.log.Printf("test script step %d: %v", r.cursor-1, err)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "reset":
		g.Reset()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && g.InjectPending() == 0 {
		r.done = true
	}
}

// injectPlace queues a drag of piece (row, col) from its current screen
// position to the screen position of its home. Both ends are taken on the
// plane the piece is dragged in, so the grab offset is zero.
func (g *Game) injectPlace(row, col, frames int) error {
	p := g.session.Piece(row, col)
	if p == nil {
		return fmt.Errorf("place: no piece at (%d,%d)", row, col)
	}
	dragZ := p.Position.Z + 2*g.cfg.PieceThickness + g.cfg.PieceThickness/2
	fromX, fromY, _, ok := g.camera.Project(p.Position.WithZ(dragZ))
	if !ok {
		return fmt.Errorf("place: piece (%d,%d) is behind the camera", row, col)
	}
	toX, toY, _, ok := g.camera.Project(p.Original().WithZ(dragZ))
	if !ok {
		return fmt.Errorf("place: home of (%d,%d) is behind the camera", row, col)
	}
	g.InjectDrag(fromX, fromY, toX, toY, frames)
	return nil
}
