package combo

import "time"

// BulletTime tracks the slow-motion window. A retrigger moves the deadline
// and bumps the generation; a revert carrying an older generation is
// ignored, so a window is never cut short by an earlier trigger's timer.
type BulletTime struct {
	active     bool
	until      time.Time
	generation uint64
}

// Trigger opens (or rearms) the window and returns the generation the
// matching revert must present.
func (b *BulletTime) Trigger(now time.Time, d time.Duration) uint64 {
	b.generation++
	b.active = true
	b.until = now.Add(d)
	return b.generation
}

// Expire closes the window if gen is current and the deadline has passed.
// It reports whether the window closed.
func (b *BulletTime) Expire(gen uint64, now time.Time) bool {
	if !b.active || gen != b.generation || now.Before(b.until) {
		return false
	}
	b.active = false
	return true
}

// ExpireDue closes the window regardless of generation once its deadline
// has passed, for callers reconciling on a tick rather than a timer.
func (b *BulletTime) ExpireDue(now time.Time) bool {
	return b.Expire(b.generation, now)
}

func (b *BulletTime) Active() bool {
	return b.active
}

// Remaining is how much of an open window is left at now, zero when closed.
func (b *BulletTime) Remaining(now time.Time) time.Duration {
	if !b.active || !now.Before(b.until) {
		return 0
	}
	return b.until.Sub(now)
}
