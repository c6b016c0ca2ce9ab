package jigsaw

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	hudFontSize      = 18
	hudPadding       = 12
	resetButtonW     = 96
	resetButtonH     = 34
	reticleRadius    = 10
	fpsRefreshPeriod = 0.5
	resetButtonLabel = "Reset"
)

var (
	hudTextColor     = Color{1, 1, 1, 0.92}
	hudMessageColor  = Color{1, 0.55, 0.45, 1}
	hudSolvedColor   = ColorGold
	buttonFill       = color.RGBA{40, 44, 52, 220}
	buttonBorder     = color.RGBA{200, 200, 210, 255}
	reticleColor     = color.RGBA{255, 255, 255, 200}
	reticleHeldColor = color.RGBA{255, 214, 77, 255}
)

// hud draws the status line, the reset button, motion controller reticles
// and an optional FPS readout on top of the table.
type hud struct {
	font        *TTFFont // nil falls back to the debug font
	resetButton Rect

	showFPS  bool
	fpsText  string
	fpsTimer float64
}

func newHUD(showFPS bool, logger *log.Logger) hud {
	h := hud{showFPS: showFPS}
	f, err := LoadTTFFont(goregular.TTF, hudFontSize)
	if err != nil {
		logger.Printf("hud: %v; using debug font", err)
	} else {
		h.font = f
	}
	return h
}

// layout places the reset button in the top-right corner of a w x h screen.
func (h *hud) layout(w, _ float64) {
	h.resetButton = Rect{
		X:      w - resetButtonW - hudPadding,
		Y:      hudPadding,
		Width:  resetButtonW,
		Height: resetButtonH,
	}
}

func (h *hud) update(dt float64) {
	if !h.showFPS {
		return
	}
	h.fpsTimer += dt
	if h.fpsTimer < fpsRefreshPeriod && h.fpsText != "" {
		return
	}
	h.fpsTimer = 0
	h.fpsText = fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
}

// status returns the status line and its color.
func (h *hud) status(g *Game) (string, Color) {
	switch {
	case g.ctrl.Solved():
		return "Solved!", hudSolvedColor
	case g.ctrl.Message() != "":
		return g.ctrl.Message(), hudMessageColor
	}
	return fmt.Sprintf("%d / %d pieces placed", g.session.LockedCount(), len(g.session.Pieces())), hudTextColor
}

func (h *hud) draw(screen *ebiten.Image, g *Game) {
	msg, c := h.status(g)
	h.text(screen, msg, hudPadding, hudPadding, c)

	b := h.resetButton
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), buttonFill, false)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), 1, buttonBorder, false)
	lw, lh := h.measure(resetButtonLabel)
	h.text(screen, resetButtonLabel, b.X+(b.Width-lw)/2, b.Y+(b.Height-lh)/2, hudTextColor)

	for _, mc := range g.input.motion {
		rc := reticleColor
		if g.input.owner == mc.id {
			rc = reticleHeldColor
		}
		x, y := float32(mc.x), float32(mc.y)
		vector.StrokeCircle(screen, x, y, reticleRadius, 2, rc, true)
		vector.StrokeLine(screen, x-reticleRadius/2, y, x+reticleRadius/2, y, 1, rc, true)
		vector.StrokeLine(screen, x, y-reticleRadius/2, x, y+reticleRadius/2, 1, rc, true)
	}

	if h.showFPS && h.fpsText != "" {
		_, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
		h.text(screen, h.fpsText, hudPadding, float64(sh)-hudPadding-hudFontSize, hudTextColor)
	}
}

func (h *hud) text(screen *ebiten.Image, s string, x, y float64, c Color) {
	if h.font == nil {
		ebitenutil.DebugPrintAt(screen, s, int(x), int(y))
		return
	}
	h.font.Draw(screen, s, x, y, c)
}

func (h *hud) measure(s string) (float64, float64) {
	if h.font == nil {
		// The debug font is 6x16 per glyph.
		return float64(6 * len(s)), 16
	}
	return h.font.MeasureString(s)
}
