package jigsaw

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

// Session is the aggregate puzzle state for the lifetime of the app. Pieces
// are created once; every shuffle starts a new round.
type Session struct {
	layout *Layout
	cfg    Config
	pieces []*Piece
	rng    *rand.Rand

	solved bool
	round  uuid.UUID
}

// NewSession creates the pieces for layout and shuffles them. A zero
// cfg.Seed draws a random seed.
func NewSession(layout *Layout, cfg Config) *Session {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	s := &Session{
		layout: layout,
		cfg:    cfg,
		pieces: layout.Pieces(),
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	s.Shuffle()
	return s
}

// Layout returns the puzzle geometry.
func (s *Session) Layout() *Layout { return s.layout }

// Config returns the session's configuration.
func (s *Session) Config() Config { return s.cfg }

// Pieces returns all pieces in row-major order. The slice MUST NOT be mutated.
func (s *Session) Pieces() []*Piece { return s.pieces }

// Piece returns the piece at (row, col), or nil when out of range.
func (s *Session) Piece(row, col int) *Piece {
	if row < 0 || row >= s.layout.Rows || col < 0 || col >= s.layout.Cols {
		return nil
	}
	return s.pieces[row*s.layout.Cols+col]
}

// Solved reports whether the current round has been won.
func (s *Session) Solved() bool { return s.solved }

// Round identifies the current shuffle. It changes on every Shuffle.
func (s *Session) Round() uuid.UUID { return s.round }

// Shuffle scatters and unlocks every piece, clears the solved flag and
// starts a new round.
func (s *Session) Shuffle() {
	s.layout.Shuffle(s.pieces, s.cfg, s.rng)
	s.solved = false
	s.round = uuid.New()
}

// LockedCount returns how many pieces are locked.
func (s *Session) LockedCount() int {
	n := 0
	for _, p := range s.pieces {
		if p.Locked {
			n++
		}
	}
	return n
}
