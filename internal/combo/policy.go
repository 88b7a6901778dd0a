// Package combo holds the two time-driven rules layered on top of hits:
// combo decay and milestone-triggered bullet time.
package combo

import "time"

const (
	DefaultTimeout            = 2000 * time.Millisecond
	DefaultBulletTimeDuration = 2000 * time.Millisecond
	DefaultMilestone          = 10
	DefaultSlowScale          = 0.2
	NormalScale               = 1.0
	PointsPerHit              = 10
	SlowedVignette            = 1.1
)

type Policy struct {
	Timeout            time.Duration
	BulletTimeDuration time.Duration
	Milestone          int
	SlowScale          float64
}

func DefaultPolicy() Policy {
	return Policy{
		Timeout:            DefaultTimeout,
		BulletTimeDuration: DefaultBulletTimeDuration,
		Milestone:          DefaultMilestone,
		SlowScale:          DefaultSlowScale,
	}
}

// Normalized fills zero or negative fields with defaults.
func (p Policy) Normalized() Policy {
	d := DefaultPolicy()
	if p.Timeout <= 0 {
		p.Timeout = d.Timeout
	}
	if p.BulletTimeDuration <= 0 {
		p.BulletTimeDuration = d.BulletTimeDuration
	}
	if p.Milestone <= 0 {
		p.Milestone = d.Milestone
	}
	if p.SlowScale <= 0 || p.SlowScale > 1 {
		p.SlowScale = d.SlowScale
	}
	return p
}

// Points is the score for a hit landed while holding combo.
func Points(combo int) int {
	return PointsPerHit * (combo + 1)
}

// Decayed reports whether a running combo has timed out. The timeout is
// strict: exactly Timeout after the last hit the combo still stands.
func (p Policy) Decayed(combo int, lastHit, now time.Time) bool {
	return combo > 0 && now.Sub(lastHit) > p.Timeout
}

// IsMilestone is edge-triggered: it fires on the change into a positive
// multiple of Milestone, never while the combo sits there.
func (p Policy) IsMilestone(before, after int) bool {
	return after > 0 && after != before && after%p.Milestone == 0
}

func (p Policy) TimeScale(slowed bool) float64 {
	if slowed {
		return p.SlowScale
	}
	return NormalScale
}

func Vignette(slowed bool) float64 {
	if slowed {
		return SlowedVignette
	}
	return 0
}

// Progress is how far the combo is toward the next milestone, in [0, 1).
func (p Policy) Progress(combo int) float64 {
	return float64(combo%p.Milestone) / float64(p.Milestone)
}
