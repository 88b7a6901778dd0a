package game

//go:generate go tool mockgen -source=journal.go -destination=mock_journal_test.go -package=game

import (
	"aimrange/internal/targets"
	"time"
)

type Result string

const (
	ResultHit   = Result("hit")
	ResultMiss  = Result("miss")
	ResultStale = Result("stale")
)

// Shot is what a Journal learns about each resolved aim action.
type Shot struct {
	SessionID   string
	Result      Result
	TargetID    targets.ID
	Points      int
	ComboBefore int
	ComboAfter  int
	Score       int
	Wave        int
	Reaction    time.Duration
	At          time.Time
}

// Journal observes session transitions. Methods run while the session
// lock is held and must not call back into the session.
type Journal interface {
	RecordShot(shot Shot)
	RecordWave(sessionID string, wave int, targets int)
	RecordBulletTime(sessionID string, active bool)
}

// Journals fans out to several journals in order.
type Journals []Journal

func (js Journals) RecordShot(shot Shot) {
	for _, j := range js {
		j.RecordShot(shot)
	}
}

func (js Journals) RecordWave(sessionID string, wave int, targets int) {
	for _, j := range js {
		j.RecordWave(sessionID, wave, targets)
	}
}

func (js Journals) RecordBulletTime(sessionID string, active bool) {
	for _, j := range js {
		j.RecordBulletTime(sessionID, active)
	}
}

type nopJournal struct{}

func (nopJournal) RecordShot(Shot)               {}
func (nopJournal) RecordWave(string, int, int)   {}
func (nopJournal) RecordBulletTime(string, bool) {}
