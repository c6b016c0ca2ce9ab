package jigsaw

import "math"

// WinOutcome is the result of a win check.
type WinOutcome uint8

const (
	WinIncomplete    WinOutcome = iota // at least one piece is unlocked
	WinSolved                          // this check solved the puzzle
	WinAlreadySolved                   // the round was already won
	WinMisassembled                    // all locked, but not all at home
)

// String returns the outcome name.
func (o WinOutcome) String() string {
	switch o {
	case WinIncomplete:
		return "incomplete"
	case WinSolved:
		return "solved"
	case WinAlreadySolved:
		return "already-solved"
	case WinMisassembled:
		return "misassembled"
	default:
		return "unknown"
	}
}

// AllLocked reports whether every piece is locked.
func (s *Session) AllLocked() bool {
	for _, p := range s.pieces {
		if !p.Locked {
			return false
		}
	}
	return true
}

// AllHome reports whether every piece sits at its original position at the
// settle depth, within cfg.Epsilon on each axis.
func (s *Session) AllHome() bool {
	eps := s.cfg.Epsilon
	for _, p := range s.pieces {
		home := p.original.WithZ(s.cfg.SettleZ)
		if math.Abs(p.Position.X-home.X) > eps ||
			math.Abs(p.Position.Y-home.Y) > eps ||
			math.Abs(p.Position.Z-home.Z) > eps {
			return false
		}
	}
	return true
}

// CheckWin evaluates the win condition. The solved flag is set by the first
// check that finds every piece locked and home; later checks in the same
// round report WinAlreadySolved.
func (s *Session) CheckWin() WinOutcome {
	if s.solved {
		return WinAlreadySolved
	}
	if !s.AllLocked() {
		return WinIncomplete
	}
	if !s.AllHome() {
		return WinMisassembled
	}
	s.solved = true
	return WinSolved
}
