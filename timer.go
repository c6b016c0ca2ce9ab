package jigsaw

import "time"

// Timer is a one-shot callback armed on a Scheduler.
type Timer struct {
	due     time.Duration
	fn      func()
	stopped bool
	fired   bool
}

// Stop prevents the timer from firing. It reports whether the call stopped
// the timer, false if it had already fired or been stopped.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Active reports whether the timer is still waiting to fire.
func (t *Timer) Active() bool {
	return t != nil && !t.stopped && !t.fired
}

// Scheduler runs delayed callbacks on the game's own clock. It is advanced
// from Update, so callbacks run on the game goroutine between frames.
type Scheduler struct {
	now    time.Duration
	timers []*Timer
}

// Now returns the scheduler clock.
func (s *Scheduler) Now() time.Duration { return s.now }

// After arms fn to run once d has elapsed on the scheduler clock.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	t := &Timer{due: s.now + d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward by dt and runs every due timer in the
// order it was armed. Timers armed by a callback wait for the next Advance.
func (s *Scheduler) Advance(dt time.Duration) {
	s.now += dt
	pending := s.timers
	s.timers = nil
	var keep []*Timer
	for _, t := range pending {
		switch {
		case t.stopped:
		case t.due <= s.now:
			t.fired = true
			t.fn()
		default:
			keep = append(keep, t)
		}
	}
	s.timers = append(keep, s.timers...)
}

// Pending returns the number of armed timers.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if t.Active() {
			n++
		}
	}
	return n
}
