package jigsaw

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when vertices are submitted.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default piece tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorGold is the tint pieces pulse to when the puzzle is solved.
var ColorGold = Color{1, 0.84, 0.3, 1}

// RGBA converts c to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	clamp := func(v float64) uint8 {
		return uint8(math.Max(0, math.Min(1, v))*255 + 0.5)
	}
	return color.RGBA{
		R: clamp(c.R * c.A),
		G: clamp(c.G * c.A),
		B: clamp(c.B * c.A),
		A: clamp(c.A),
	}
}

// Vec3 is a point or offset in puzzle-local space. X grows to the right,
// Y grows upward and Z grows toward the camera.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// PlanarDist returns the distance between v and o on the XY plane, ignoring Z.
func (v Vec3) PlanarDist(o Vec3) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// WithZ returns v with its Z component replaced.
func (v Vec3) WithZ(z float64) Vec3 {
	v.Z = z
	return v
}

// Rect is an axis-aligned screen rectangle. The origin is at the top-left,
// with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// MeshHandle is an opaque identifier for a piece's rendered mesh. The
// controller maps handles back to pieces; meshes never carry domain data.
type MeshHandle uint32

// DragState is the interaction controller's state.
type DragState uint8

const (
	StateIdle     DragState = iota // no piece held
	StateDragging                  // exactly one piece held
)

// String returns the state name.
func (s DragState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Adjacency names the relation between a released piece and the locked
// neighbor it snapped against.
type Adjacency uint8

const (
	AdjacencyNone  Adjacency = iota // snapped to its own home or not at all
	AdjacencyAbove                  // piece sits directly above the neighbor
	AdjacencyBelow                  // piece sits directly below the neighbor
	AdjacencyRight                  // piece sits directly right of the neighbor
	AdjacencyLeft                   // piece sits directly left of the neighbor
)

// String returns the relation name.
func (a Adjacency) String() string {
	switch a {
	case AdjacencyAbove:
		return "above"
	case AdjacencyBelow:
		return "below"
	case AdjacencyRight:
		return "right"
	case AdjacencyLeft:
		return "left"
	default:
		return "none"
	}
}
