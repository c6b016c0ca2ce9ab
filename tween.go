package jigsaw

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// TweenTint or TweenValues and call Update(dt) each frame; the group writes
// the values back on every update.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Stop ends the group where it is.
func (g *TweenGroup) Stop() {
	g.Done = true
}

// Finished reports whether the group has completed or been stopped.
func (g *TweenGroup) Finished() bool { return g.Done }

// TweenValues animates each field to the matching target. At most 4 fields
// are animated; extra fields are ignored.
func TweenValues(fields []*float64, to []float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	for i := 0; i < len(fields) && i < len(to) && i < len(g.tweens); i++ {
		g.tweens[i] = gween.New(float32(*fields[i]), float32(to[i]), duration, fn)
		g.fields[i] = fields[i]
		g.count++
	}
	return g
}

// TweenTint animates all four components of p.Tint to the target color.
func TweenTint(p *Piece, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	return TweenValues(
		[]*float64{&p.Tint.R, &p.Tint.G, &p.Tint.B, &p.Tint.A},
		[]float64{to.R, to.G, to.B, to.A},
		duration, fn)
}

// TweenSequence runs tween groups one after another. Each step is built
// when it starts, so it tweens from the values the previous step left.
type TweenSequence struct {
	steps   []func() *TweenGroup
	current *TweenGroup
	next    int
	Done    bool
}

// NewTweenSequence creates a sequence from step constructors.
func NewTweenSequence(steps ...func() *TweenGroup) *TweenSequence {
	s := &TweenSequence{steps: steps}
	s.Done = len(steps) == 0
	return s
}

// Update advances the running step by dt seconds, starting the next step
// once it finishes.
func (s *TweenSequence) Update(dt float32) {
	if s.Done {
		return
	}
	if s.current == nil || s.current.Done {
		if s.next >= len(s.steps) {
			s.Done = true
			return
		}
		s.current = s.steps[s.next]()
		s.next++
	}
	s.current.Update(dt)
	if s.current.Done && s.next >= len(s.steps) {
		s.Done = true
	}
}

// Stop ends the sequence where it is.
func (s *TweenSequence) Stop() {
	if s.current != nil {
		s.current.Stop()
	}
	s.Done = true
}

// Finished reports whether the sequence has completed or been stopped.
func (s *TweenSequence) Finished() bool { return s.Done }

// PulseTint builds a sequence that pulses p to peak and back to rest, count
// times, each pulse lasting period seconds. The first pulse starts from
// whatever tint p has when the sequence starts.
func PulseTint(p *Piece, peak, rest Color, count int, period float32) *TweenSequence {
	steps := make([]func() *TweenGroup, 0, 2*count)
	for i := 0; i < count; i++ {
		steps = append(steps,
			func() *TweenGroup { return TweenTint(p, peak, period/2, ease.InOutSine) },
			func() *TweenGroup { return TweenTint(p, rest, period/2, ease.InOutSine) },
		)
	}
	return NewTweenSequence(steps...)
}
