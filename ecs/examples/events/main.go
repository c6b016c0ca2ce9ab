// Events runs a small puzzle with its events routed through a Donburi world.
// A logging system subscribes to the puzzle events and the window title
// tracks the locked piece count from the mirrored PieceState entities.
package main

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/jigsaw"
	"github.com/phanxgames/jigsaw/ecs"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

const (
	windowTitle = "Jigsaw: ECS Events"
	screenW     = 960
	screenH     = 640
	gridRows    = 3
	gridCols    = 4
)

type world struct {
	*jigsaw.Game
	ecs    donburi.World
	locked int
}

func (w *world) Update() error {
	if err := w.Game.Update(); err != nil {
		return err
	}
	events.ProcessAllEvents(w.ecs)
	if n := ecs.LockedPieces(w.ecs); n != w.locked {
		w.locked = n
		ebiten.SetWindowTitle(fmt.Sprintf("%s (%d locked)", windowTitle, n))
	}
	return nil
}

func main() {
	img := image.NewRGBA(image.Rect(0, 0, 400, 300))
	for y := 0; y < 300; y++ {
		for x := 0; x < 400; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 255 / 400), G: uint8(y * 255 / 300), B: 160, A: 255})
		}
	}

	cfg := jigsaw.DefaultConfig()
	cfg.Rows, cfg.Cols = gridRows, gridCols
	game, err := jigsaw.NewGame(ebiten.NewImageFromImage(img), cfg, jigsaw.RunConfig{
		Title:  windowTitle,
		Width:  screenW,
		Height: screenH,
	})
	if err != nil {
		log.Fatal(err)
	}

	w := &world{Game: game, ecs: donburi.NewWorld()}
	game.SetEventSink(ecs.NewDonburiSink(w.ecs))
	ecs.PuzzleEventType.Subscribe(w.ecs, func(_ donburi.World, e jigsaw.Event) {
		if e.Piece < 0 {
			log.Printf("%s", e.Type)
			return
		}
		log.Printf("%s piece (%d,%d)", e.Type, e.Row, e.Col)
	})

	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(w); err != nil {
		log.Fatal(err)
	}
}
