// Package ecs provides ECS adapters for jigsaw's puzzle events.
//
// The primary adapter is [NewDonburiSink], which publishes puzzle events
// (grab, release, lock, solve, reset) into a [Donburi] world as typed events
// and mirrors every piece as an entity carrying a [PieceState] component.
// Subscribe to [PuzzleEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	game.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
