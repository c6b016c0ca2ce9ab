package jigsaw

import (
	"testing"
	"time"
)

func TestSchedulerFiresWhenDue(t *testing.T) {
	var s Scheduler
	fired := 0
	s.After(100*time.Millisecond, func() { fired++ })

	s.Advance(99 * time.Millisecond)
	if fired != 0 {
		t.Fatal("fired early")
	}
	s.Advance(time.Millisecond)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
	s.Advance(time.Second)
	if fired != 1 {
		t.Errorf("one-shot timer fired %d times", fired)
	}
	if s.Now() != 100*time.Millisecond+time.Second {
		t.Errorf("Now = %v", s.Now())
	}
}

func TestSchedulerOrder(t *testing.T) {
	var s Scheduler
	var got []int
	s.After(20*time.Millisecond, func() { got = append(got, 1) })
	s.After(10*time.Millisecond, func() { got = append(got, 2) })
	s.After(30*time.Millisecond, func() { got = append(got, 3) })

	s.Advance(50 * time.Millisecond)
	// Due timers run in arming order.
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestTimerStop(t *testing.T) {
	var s Scheduler
	fired := false
	tm := s.After(time.Millisecond, func() { fired = true })
	if !tm.Active() {
		t.Fatal("new timer should be active")
	}
	if !tm.Stop() {
		t.Fatal("Stop on an active timer should report true")
	}
	if tm.Stop() {
		t.Error("second Stop should report false")
	}
	s.Advance(time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", s.Pending())
	}
}

func TestTimerNilSafe(t *testing.T) {
	var tm *Timer
	if tm.Stop() || tm.Active() {
		t.Error("nil timer should be inactive")
	}
}

func TestSchedulerArmFromCallback(t *testing.T) {
	var s Scheduler
	fired := 0
	s.After(0, func() {
		s.After(0, func() { fired++ })
	})
	s.Advance(time.Millisecond)
	if fired != 0 {
		t.Fatal("timer armed inside a callback ran in the same Advance")
	}
	if s.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", s.Pending())
	}
	s.Advance(time.Millisecond)
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
}
