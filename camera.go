package jigsaw

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	defaultFOV         = 50 * math.Pi / 180
	defaultMinDistance = 1.0
	defaultMaxDistance = 40.0
	zoomStep           = 1.1
)

// flyAnim holds active fly-to tweens for the camera target and distance.
type flyAnim struct {
	tweenX, tweenY, tweenD *gween.Tween
	doneX, doneY, doneD    bool
}

// Camera is a pin-hole camera hovering above the puzzle and looking straight
// down the -Z axis. It projects puzzle-local points to the screen and casts
// picking rays back into the scene.
type Camera struct {
	// X and Y are the point on the table the camera centers on.
	X, Y float64
	// Distance is the camera's height above z = 0.
	Distance float64
	// FOV is the vertical field of view in radians.
	FOV float64
	// Viewport is the screen-space rectangle the camera renders into.
	Viewport Rect

	// MinDistance and MaxDistance clamp zooming.
	MinDistance, MaxDistance float64

	controlEnabled bool
	fly            *flyAnim
}

// NewCamera creates a camera for the viewport, centered on the origin.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Distance:       10,
		FOV:            defaultFOV,
		Viewport:       viewport,
		MinDistance:    defaultMinDistance,
		MaxDistance:    defaultMaxDistance,
		controlEnabled: true,
	}
}

// SetControlEnabled turns user pan and zoom on or off.
func (c *Camera) SetControlEnabled(enabled bool) {
	c.controlEnabled = enabled
}

// ControlEnabled reports whether user pan and zoom are accepted.
func (c *Camera) ControlEnabled() bool {
	return c.controlEnabled
}

// focal returns the focal length in pixels.
func (c *Camera) focal() float64 {
	return c.Viewport.Height / (2 * math.Tan(c.FOV/2))
}

func (c *Camera) center() (float64, float64) {
	return c.Viewport.X + c.Viewport.Width/2, c.Viewport.Y + c.Viewport.Height/2
}

// Eye returns the camera position.
func (c *Camera) Eye() Vec3 {
	return Vec3{c.X, c.Y, c.Distance}
}

// Project maps p to screen coordinates. scale is the number of pixels per
// puzzle unit at p's depth; ok is false when p is at or behind the camera.
func (c *Camera) Project(p Vec3) (sx, sy, scale float64, ok bool) {
	depth := c.Distance - p.Z
	if depth <= 1e-9 {
		return 0, 0, 0, false
	}
	scale = c.focal() / depth
	cx, cy := c.center()
	sx = cx + (p.X-c.X)*scale
	sy = cy - (p.Y-c.Y)*scale
	return sx, sy, scale, true
}

// Ray is a half-line from Origin along Dir.
type Ray struct {
	Origin, Dir Vec3
}

// Ray returns the picking ray through screen point (sx, sy).
func (c *Camera) Ray(sx, sy float64) Ray {
	cx, cy := c.center()
	f := c.focal()
	return Ray{
		Origin: c.Eye(),
		Dir:    Vec3{(sx - cx) / f, -(sy - cy) / f, -1},
	}
}

// IntersectZ intersects r with the plane at height z. dist is measured along
// the ray; ok is false when the plane is behind the ray or parallel to it.
func (r Ray) IntersectZ(z float64) (p Vec3, dist float64, ok bool) {
	if math.Abs(r.Dir.Z) < 1e-12 {
		return Vec3{}, 0, false
	}
	t := (z - r.Origin.Z) / r.Dir.Z
	if t <= 0 {
		return Vec3{}, 0, false
	}
	p = r.Origin.Add(r.Dir.Scale(t))
	return p, t * r.Dir.Len(), true
}

// Pan moves the camera by a screen-space delta, measured at the table plane.
func (c *Camera) Pan(dx, dy float64) {
	if !c.controlEnabled {
		return
	}
	scale := c.focal() / c.Distance
	c.X -= dx / scale
	c.Y += dy / scale
	c.fly = nil
}

// Zoom moves the camera closer for positive steps and away for negative
// ones, within MinDistance and MaxDistance.
func (c *Camera) Zoom(steps float64) {
	if !c.controlEnabled || steps == 0 {
		return
	}
	c.Distance = math.Max(c.MinDistance, math.Min(c.Distance/math.Pow(zoomStep, steps), c.MaxDistance))
	c.fly = nil
}

// FitDistance returns the distance at which a w x h area fills the viewport
// with the given margin factor.
func (c *Camera) FitDistance(w, h, margin float64) float64 {
	f := c.focal()
	dw := w * margin * f / c.Viewport.Width
	dh := h * margin * f / c.Viewport.Height
	return math.Max(dw, dh)
}

// FlyTo animates the camera to center (x, y) at distance over duration
// seconds.
func (c *Camera) FlyTo(x, y, distance float64, duration float32, easeFn ease.TweenFunc) {
	c.fly = &flyAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
		tweenD: gween.New(float32(c.Distance), float32(distance), duration, easeFn),
	}
}

// Flying reports whether a FlyTo animation is running.
func (c *Camera) Flying() bool {
	return c.fly != nil
}

// Update advances the fly-to animation by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.fly == nil {
		return
	}
	if !c.fly.doneX {
		val, done := c.fly.tweenX.Update(dt)
		c.X = float64(val)
		c.fly.doneX = done
	}
	if !c.fly.doneY {
		val, done := c.fly.tweenY.Update(dt)
		c.Y = float64(val)
		c.fly.doneY = done
	}
	if !c.fly.doneD {
		val, done := c.fly.tweenD.Update(dt)
		c.Distance = float64(val)
		c.fly.doneD = done
	}
	if c.fly.doneX && c.fly.doneY && c.fly.doneD {
		c.fly = nil
	}
}
