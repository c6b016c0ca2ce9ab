// Package jigsaw is a 3D jigsaw puzzle built on [Ebitengine].
//
// An image is cut into a rows x cols grid of rectangular pieces, each a thin
// box whose top face shows its part of the picture. The pieces are scattered
// above a table; the player drags them back into place with a mouse, touch
// or gamepad-driven motion controller.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	img, _, _ := ebitenutil.NewImageFromFile("picture.png")
//	cfg := jigsaw.DefaultConfig()
//	cfg.Rows, cfg.Cols = 4, 6
//	game, err := jigsaw.NewGame(img, cfg, jigsaw.RunConfig{Title: "Puzzle"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	log.Fatal(jigsaw.Run(game))
//
// # Rules
//
// A grabbed piece is lifted by twice its thickness and follows the pointer.
// On release it locks when it lies within the snap threshold of its home
// position, or of the ideal spot beside an already locked neighbor.
// Otherwise it returns to where it was picked up. Locked pieces never move
// again until the next shuffle.
//
// Once every piece is locked the puzzle is checked. A correct picture
// celebrates and stops accepting grabs. A wrong one shows a message and
// reshuffles after [Config.ResetDelay] unless the player resets first.
//
// # Layers
//
// [Layout] and [Session] hold the pure geometry and rules and need no
// window. [Controller] is the drag state machine; it talks to the camera,
// the celebration and the event sink through small interfaces. [Game] wires
// them to Ebitengine input, a pin-hole [Camera] and a batched mesh renderer.
//
// Puzzle events can be routed into a [Donburi] world with the jigsaw/ecs
// module. Tweens use [gween].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package jigsaw
