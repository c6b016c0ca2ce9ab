package jigsaw

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// ErrNoImage is returned by NewGame when no source image is given.
var ErrNoImage = errors.New("jigsaw: no source image")

const (
	settleDuration    = 0.2
	lockFlashDuration = 0.35
	celebratePulses   = 3
	celebratePeriod   = 0.8
	celebrateFlight   = 1.5
	tableMargin       = 1.1
	solvedMargin      = 1.15
)

var lockFlashColor = Color{1, 0.95, 0.75, 1}

// animation is a tween that runs until it finishes or is stopped.
type animation interface {
	Update(dt float32)
	Stop()
	Finished() bool
}

// RunConfig holds optional configuration for Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Debug logs per-frame render stats to stderr.
	Debug bool
	// ScreenshotDir is where Screenshot writes PNGs. Defaults to
	// "screenshots".
	ScreenshotDir string
	// ClearColor fills the table before pieces are drawn.
	ClearColor Color
}

// Game is the top-level object that owns the puzzle session, the controller
// and everything needed to render and interact with it. It implements
// ebiten.Game.
type Game struct {
	cfg Config
	run RunConfig
	log *log.Logger

	image   *ebiten.Image
	layout  *Layout
	session *Session
	ctrl    *Controller
	sched   Scheduler

	camera *Camera
	meshes []*PieceMesh
	meshOf map[*Piece]*PieceMesh
	picker *Picker
	batch  meshBatch

	input inputState
	hud   hud

	// pieceAnims holds at most one running tint animation per piece and
	// settleAnims one settle glide per mesh.
	pieceAnims  map[*Piece]animation
	settleAnims map[*PieceMesh]animation
	sink        EventSink

	testRunner      *TestRunner
	screenshotQueue []string
	// ScreenshotDir is the directory screenshots are written to.
	ScreenshotDir string

	debug bool
	stats debugStats
}

// NewGame builds a puzzle over img. The camera starts far enough back to
// see the whole shuffle area.
func NewGame(img *ebiten.Image, cfg Config, run RunConfig) (*Game, error) {
	if img == nil {
		return nil, ErrNoImage
	}
	b := img.Bounds()
	layout, err := NewLayout(b.Dx(), b.Dy(), cfg)
	if err != nil {
		return nil, err
	}
	if run.Width <= 0 {
		run.Width = 1280
	}
	if run.Height <= 0 {
		run.Height = 720
	}
	if run.ScreenshotDir == "" {
		run.ScreenshotDir = "screenshots"
	}
	if run.ClearColor == (Color{}) {
		run.ClearColor = Color{0.12, 0.14, 0.17, 1}
	}

	session := NewSession(layout, cfg)
	g := &Game{
		cfg:           cfg,
		run:           run,
		log:           cfg.logger(),
		image:         img,
		layout:        layout,
		session:       session,
		camera:        NewCamera(Rect{Width: float64(run.Width), Height: float64(run.Height)}),
		meshes:        NewPieceMeshes(layout, session.Pieces()),
		input:         newInputState(),
		meshOf:        make(map[*Piece]*PieceMesh, len(session.Pieces())),
		pieceAnims:    make(map[*Piece]animation),
		settleAnims:   make(map[*PieceMesh]animation),
		ScreenshotDir: run.ScreenshotDir,
		debug:         run.Debug,
	}
	g.ctrl = NewController(session, &g.sched)
	for _, m := range g.meshes {
		g.ctrl.Register(m.Handle, m.piece)
		g.meshOf[m.piece] = m
	}
	g.picker = NewPicker(g.meshes, cfg.PieceThickness)
	g.camera.Distance = g.camera.FitDistance(layout.Width*cfg.SpreadX, layout.Height*cfg.SpreadY, tableMargin)

	g.ctrl.SetCameraControl(g.camera)
	g.ctrl.SetCelebrator(g)
	g.ctrl.SetEventSink(g)

	g.hud = newHUD(run.ShowFPS, g.log)
	g.hud.layout(float64(run.Width), float64(run.Height))
	return g, nil
}

// Controller returns the interaction controller.
func (g *Game) Controller() *Controller { return g.ctrl }

// Session returns the puzzle session.
func (g *Game) Session() *Session { return g.session }

// Camera returns the scene camera.
func (g *Game) Camera() *Camera { return g.camera }

// SetEventSink sets an additional receiver for puzzle events, such as an
// ECS bridge. Nil removes it.
func (g *Game) SetEventSink(sink EventSink) { g.sink = sink }

// SetDebugMode enables per-frame render stats on stderr.
func (g *Game) SetDebugMode(enabled bool) { g.debug = enabled }

// Reset reshuffles the puzzle and starts a new round.
func (g *Game) Reset() {
	g.input.owner = noPointer
	g.ctrl.Reset()
}

// Update advances timers, scripted input, live input and animations by one
// tick.
func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	g.sched.Advance(time.Duration(dt * float64(time.Second)))
	if g.testRunner != nil {
		g.testRunner.step(g)
	}
	g.processInput(dt)
	g.camera.Update(float32(dt))
	g.updateAnimations(float32(dt))
	g.hud.update(dt)
	return nil
}

func (g *Game) updateAnimations(dt float32) {
	for p, a := range g.pieceAnims {
		a.Update(dt)
		if a.Finished() {
			delete(g.pieceAnims, p)
		}
	}
	for m, a := range g.settleAnims {
		a.Update(dt)
		if a.Finished() {
			m.settle = Vec3{}
			delete(g.settleAnims, m)
		}
	}
}

// animate starts a on p, stopping whatever p was running before.
func (g *Game) animate(p *Piece, a animation) {
	if old := g.pieceAnims[p]; old != nil {
		old.Stop()
	}
	g.pieceAnims[p] = a
}

// settle glides the drawn piece from the drop point to where it now rests.
func (g *Game) settle(p *Piece, from Vec3) {
	m := g.meshOf[p]
	if m == nil {
		return
	}
	if old := g.settleAnims[m]; old != nil {
		old.Stop()
	}
	m.settle = from.Sub(p.Position)
	g.settleAnims[m] = TweenValues(
		[]*float64{&m.settle.X, &m.settle.Y, &m.settle.Z},
		[]float64{0, 0, 0},
		settleDuration, ease.OutCubic)
}

func (g *Game) stopAnimations() {
	for p, a := range g.pieceAnims {
		a.Stop()
		delete(g.pieceAnims, p)
	}
	for m, a := range g.settleAnims {
		a.Stop()
		m.settle = Vec3{}
		delete(g.settleAnims, m)
	}
}

// Draw renders the table, the pieces and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	var start time.Time
	if g.debug {
		start = time.Now()
	}

	screen.Fill(g.run.ClearColor.RGBA())
	drawPieces(screen, g.image, g.camera, g.layout, g.meshes, g.cfg.PieceThickness, &g.batch)
	g.hud.draw(screen, g)

	if g.debug {
		g.stats.record(time.Since(start), len(g.batch.verts), len(g.batch.inds)/3)
		g.debugLog()
	}
	g.flushScreenshots(screen)
}

// Layout tracks the window size so the camera and HUD fill it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := float64(outsideWidth), float64(outsideHeight)
	if g.camera.Viewport.Width != w || g.camera.Viewport.Height != h {
		g.camera.Viewport = Rect{Width: w, Height: h}
		g.hud.layout(w, h)
	}
	return outsideWidth, outsideHeight
}

// Emit receives controller events, plays feedback and forwards them to the
// sink set with SetEventSink.
func (g *Game) Emit(e Event) {
	switch e.Type {
	case EventLocked:
		p := g.session.Piece(e.Row, e.Col)
		if p != nil {
			g.settle(p, e.From)
			g.animate(p, NewTweenSequence(
				func() *TweenGroup { return TweenTint(p, lockFlashColor, lockFlashDuration/2, ease.OutQuad) },
				func() *TweenGroup { return TweenTint(p, ColorWhite, lockFlashDuration/2, ease.InQuad) },
			))
		}
	case EventRestored:
		if p := g.session.Piece(e.Row, e.Col); p != nil {
			g.settle(p, e.From)
		}
	case EventReset:
		g.stopAnimations()
		g.input.owner = noPointer
	}
	if g.sink != nil {
		g.sink.Emit(e)
	}
}

// Celebrate pulses every piece gold and flies the camera to frame the
// finished picture.
func (g *Game) Celebrate(pieces []*Piece) {
	for _, p := range pieces {
		g.animate(p, PulseTint(p, ColorGold, ColorWhite, celebratePulses, celebratePeriod))
	}
	dist := g.camera.FitDistance(g.layout.Width, g.layout.Height, solvedMargin)
	g.camera.FlyTo(0, 0, dist, celebrateFlight, ease.InOutCubic)
	g.log.Printf("puzzle solved (%dx%d)", g.layout.Rows, g.layout.Cols)
}

// Run is a convenience entry point that creates an Ebitengine game loop
// around g.
func Run(g *Game) error {
	title := g.run.Title
	if title == "" {
		title = fmt.Sprintf("Jigsaw %dx%d", g.layout.Rows, g.layout.Cols)
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.run.Width, g.run.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
