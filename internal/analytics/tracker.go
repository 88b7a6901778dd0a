package analytics

import (
	"aimrange/internal/game"
	"sync"
	"time"
)

// Tracker keeps per-session shot statistics in memory. It is a
// game.Journal; nothing it holds outlives the process.
type Tracker struct {
	mu       sync.Mutex
	sessions map[string]*tally
}

type tally struct {
	shots, hits, misses int
	score               int
	bestCombo           int
	highestWave         int
	bulletTimes         int
	reactionSum         time.Duration
	bestReaction        time.Duration
	firstShot, lastShot time.Time
}

func NewTracker() *Tracker {
	return &Tracker{
		sessions: make(map[string]*tally),
	}
}

// Open starts tallying a session. Records for sessions that were never
// opened, or were already forgotten, are dropped.
func (t *Tracker) Open(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.sessions[sessionID]; !ok {
		t.sessions[sessionID] = &tally{}
	}
}

func (t *Tracker) RecordShot(shot game.Shot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	tl, ok := t.sessions[shot.SessionID]
	if !ok {
		return
	}

	switch shot.Result {
	case game.ResultHit:
		tl.hits++
		tl.reactionSum += shot.Reaction
		if tl.bestReaction == 0 || shot.Reaction < tl.bestReaction {
			tl.bestReaction = shot.Reaction
		}
	case game.ResultMiss:
		tl.misses++
	default:
		return
	}
	tl.shots++
	if tl.firstShot.IsZero() {
		tl.firstShot = shot.At
	}
	tl.lastShot = shot.At
	tl.score = shot.Score
	if shot.ComboAfter > tl.bestCombo {
		tl.bestCombo = shot.ComboAfter
	}
	if shot.Wave > tl.highestWave {
		tl.highestWave = shot.Wave
	}
}

func (t *Tracker) RecordWave(sessionID string, wave int, _ int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	tl, ok := t.sessions[sessionID]
	if !ok {
		return
	}
	if wave > tl.highestWave {
		tl.highestWave = wave
	}
}

func (t *Tracker) RecordBulletTime(sessionID string, active bool) {
	if !active {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if tl, ok := t.sessions[sessionID]; ok {
		tl.bulletTimes++
	}
}

// Stats summarizes a session and evaluates its badges.
func (t *Tracker) Stats(sessionID string) (SessionStats, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	tl, ok := t.sessions[sessionID]
	if !ok {
		return SessionStats{}, false
	}

	stats := SessionStats{
		SessionID:    sessionID,
		Shots:        tl.shots,
		Hits:         tl.hits,
		Misses:       tl.misses,
		Score:        tl.score,
		BestCombo:    tl.bestCombo,
		HighestWave:  tl.highestWave,
		BulletTimes:  tl.bulletTimes,
		BestReaction: int(tl.bestReaction.Milliseconds()),
		FirstShot:    tl.firstShot,
		LastShot:     tl.lastShot,
		Duration:     tl.lastShot.Sub(tl.firstShot),
	}
	if tl.shots > 0 {
		stats.Accuracy = float64(tl.hits) / float64(tl.shots) * 100
	}
	if tl.hits > 0 {
		stats.AvgReaction = float64(tl.reactionSum.Milliseconds()) / float64(tl.hits)
	}
	if secs := stats.Duration.Seconds(); secs > 0 {
		stats.SPS = float64(tl.shots) / secs
	}
	stats.Badges = EvaluateSessionBadges(stats)
	return stats, true
}

// Forget drops a session's statistics.
func (t *Tracker) Forget(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, sessionID)
}
