package jigsaw

import "testing"

func TestCheckWin_Incomplete(t *testing.T) {
	s := newTestSession(t, 2, 2)
	placeHome(s, s.Piece(0, 0))
	if got := s.CheckWin(); got != WinIncomplete {
		t.Errorf("CheckWin = %v, want incomplete", got)
	}
	if s.Solved() {
		t.Error("should not be solved")
	}
}

func TestCheckWin_SolvedOnce(t *testing.T) {
	s := newTestSession(t, 2, 2)
	for _, p := range s.Pieces() {
		placeHome(s, p)
	}
	if got := s.CheckWin(); got != WinSolved {
		t.Fatalf("first CheckWin = %v, want solved", got)
	}
	for i := 0; i < 3; i++ {
		if got := s.CheckWin(); got != WinAlreadySolved {
			t.Errorf("repeat CheckWin = %v, want already-solved", got)
		}
	}
	if !s.Solved() {
		t.Error("Solved() = false after win")
	}
}

func TestCheckWin_Epsilon(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		want   WinOutcome
	}{
		{"within epsilon", 0.0005, WinSolved},
		{"outside epsilon", 0.01, WinMisassembled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, 2, 2)
			for _, p := range s.Pieces() {
				placeHome(s, p)
			}
			s.Piece(1, 0).Position.Y += tt.offset
			if got := s.CheckWin(); got != tt.want {
				t.Errorf("CheckWin = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckWin_DepthMatters(t *testing.T) {
	s := newTestSession(t, 1, 2)
	for _, p := range s.Pieces() {
		placeHome(s, p)
	}
	s.Piece(0, 1).Position.Z = s.cfg.FloatZ
	if got := s.CheckWin(); got != WinMisassembled {
		t.Errorf("CheckWin = %v, want misassembled", got)
	}
}

func TestShuffle_ClearsSolved(t *testing.T) {
	s := newTestSession(t, 1, 1)
	placeHome(s, s.Piece(0, 0))
	s.CheckWin()
	round := s.Round()

	s.Shuffle()
	if s.Solved() {
		t.Error("Solved() = true after shuffle")
	}
	if s.Round() == round {
		t.Error("round unchanged after shuffle")
	}
	if s.LockedCount() != 0 {
		t.Errorf("LockedCount = %d, want 0", s.LockedCount())
	}
}

func TestWinOutcome_String(t *testing.T) {
	tests := []struct {
		o    WinOutcome
		want string
	}{
		{WinIncomplete, "incomplete"},
		{WinSolved, "solved"},
		{WinAlreadySolved, "already-solved"},
		{WinMisassembled, "misassembled"},
		{WinOutcome(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.o.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.o, got, tt.want)
		}
	}
}
