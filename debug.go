package jigsaw

import (
	"fmt"
	"math"
	"os"
	"time"
)

// debugLogInterval is how many frames debug stats are averaged over.
const debugLogInterval = 60

// debugStats holds per-frame timing and draw metrics.
// Only populated when Game.debug is true.
type debugStats struct {
	frames    int
	drawTime  time.Duration
	vertices  int
	triangles int
}

func (s *debugStats) record(draw time.Duration, vertices, triangles int) {
	s.frames++
	s.drawTime += draw
	s.vertices = vertices
	s.triangles = triangles
}

// debugLog prints averaged stats to stderr every debugLogInterval frames
// and checks the piece invariants.
func (g *Game) debugLog() {
	if !g.debug || g.stats.frames < debugLogInterval {
		return
	}
	st := g.stats
	_, _ = fmt.Fprintf(os.Stderr,
		"[jigsaw] draw: %v avg | vertices: %d | triangles: %d | locked: %d/%d\n",
		st.drawTime/time.Duration(st.frames), st.vertices, st.triangles,
		g.session.LockedCount(), len(g.session.Pieces()))
	g.stats = debugStats{}
	debugCheckPieces(g.session)
}

// debugCheckPieces warns on stderr about locked pieces that are not resting
// at the settle height.
func debugCheckPieces(s *Session) {
	for _, p := range s.pieces {
		if p.Locked && math.Abs(p.Position.Z-s.cfg.SettleZ) > s.cfg.Epsilon {
			_, _ = fmt.Fprintf(os.Stderr, "[jigsaw] warning: locked piece (%d,%d) at z=%.3f, want %.3f\n",
				p.Row, p.Col, p.Position.Z, s.cfg.SettleZ)
		}
	}
}
