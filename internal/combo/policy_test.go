package combo

import (
	"testing"
	"time"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	if p.Timeout != 2000*time.Millisecond {
		t.Errorf("Timeout = %v, want 2s", p.Timeout)
	}
	if p.BulletTimeDuration != 2000*time.Millisecond {
		t.Errorf("BulletTimeDuration = %v, want 2s", p.BulletTimeDuration)
	}
	if p.Milestone != 10 {
		t.Errorf("Milestone = %d, want 10", p.Milestone)
	}
	if p.SlowScale != 0.2 {
		t.Errorf("SlowScale = %f, want 0.2", p.SlowScale)
	}
}

func TestPolicy_Normalized(t *testing.T) {
	p := Policy{Milestone: 5, SlowScale: 3}.Normalized()
	if p.Milestone != 5 {
		t.Errorf("Milestone = %d, want 5", p.Milestone)
	}
	if p.Timeout != DefaultTimeout || p.BulletTimeDuration != DefaultBulletTimeDuration {
		t.Errorf("durations not defaulted: %+v", p)
	}
	if p.SlowScale != DefaultSlowScale {
		t.Errorf("SlowScale = %f, want %f", p.SlowScale, DefaultSlowScale)
	}
}

func TestPoints(t *testing.T) {
	cases := map[int]int{0: 10, 1: 20, 9: 100}
	for combo, want := range cases {
		if got := Points(combo); got != want {
			t.Errorf("Points(%d) = %d, want %d", combo, got, want)
		}
	}
}

func TestPolicy_Decayed(t *testing.T) {
	p := DefaultPolicy()
	cases := []struct {
		name    string
		combo   int
		elapsed time.Duration
		want    bool
	}{
		{"no combo", 0, 10 * time.Second, false},
		{"fresh", 3, 100 * time.Millisecond, false},
		{"exactly at timeout", 3, 2000 * time.Millisecond, false},
		{"just past timeout", 3, 2001 * time.Millisecond, true},
		{"long gap", 1, 2100 * time.Millisecond, true},
	}
	for _, tc := range cases {
		if got := p.Decayed(tc.combo, t0, t0.Add(tc.elapsed)); got != tc.want {
			t.Errorf("%s: Decayed = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestPolicy_IsMilestone(t *testing.T) {
	p := DefaultPolicy()
	cases := []struct {
		before, after int
		want          bool
	}{
		{9, 10, true},
		{19, 20, true},
		{10, 10, false},
		{10, 0, false},
		{0, 0, false},
		{10, 11, false},
		{4, 5, false},
	}
	for _, tc := range cases {
		if got := p.IsMilestone(tc.before, tc.after); got != tc.want {
			t.Errorf("IsMilestone(%d, %d) = %v, want %v", tc.before, tc.after, got, tc.want)
		}
	}
}

func TestPolicy_TimeScaleAndVignette(t *testing.T) {
	p := DefaultPolicy()
	if p.TimeScale(true) != 0.2 {
		t.Errorf("TimeScale(true) = %f, want 0.2", p.TimeScale(true))
	}
	if p.TimeScale(false) != 1.0 {
		t.Errorf("TimeScale(false) = %f, want 1.0", p.TimeScale(false))
	}
	if Vignette(true) != 1.1 || Vignette(false) != 0 {
		t.Errorf("Vignette = %f/%f, want 1.1/0", Vignette(true), Vignette(false))
	}
}

func TestPolicy_Progress(t *testing.T) {
	p := DefaultPolicy()
	if got := p.Progress(0); got != 0 {
		t.Errorf("Progress(0) = %f, want 0", got)
	}
	if got := p.Progress(7); got != 0.7 {
		t.Errorf("Progress(7) = %f, want 0.7", got)
	}
	if got := p.Progress(10); got != 0 {
		t.Errorf("Progress(10) = %f, want 0", got)
	}
}
