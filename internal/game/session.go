package game

import (
	"aimrange/internal/clock"
	"aimrange/internal/combo"
	"aimrange/internal/events"
	"aimrange/internal/hitresolve"
	"aimrange/internal/targets"
	"log"
	"math/rand/v2"
	"sync"
	"time"
)

type Options struct {
	ID         string
	Policy     combo.Policy
	Clock      clock.Clock
	Rand       *rand.Rand
	HalfExtent float64
	// Props defaults to hitresolve.DefaultProps when nil.
	Props   []hitresolve.Prop
	Journal Journal
	// Bus is optional; events are only published when set.
	Bus *events.Bus
}

// Session owns all mutable game state for one player. Every entry point
// takes the lock, so input events, frame ticks and timer callbacks apply
// one at a time.
type Session struct {
	mu      sync.Mutex
	id      string
	policy  combo.Policy
	clock   clock.Clock
	targets *targets.Store
	props   []hitresolve.Prop
	journal Journal
	bus     *events.Bus

	score       int
	wave        int
	combo       int
	frame       uint64
	startedAt   time.Time
	lastHitTime time.Time
	bullet      combo.BulletTime
	revert      clock.Timer
	closed      bool
}

// Outcome describes what one aim action did.
type Outcome struct {
	Result      Result     `json:"result"`
	TargetID    targets.ID `json:"targetId,omitempty"`
	Points      int        `json:"points"`
	Combo       int        `json:"combo"`
	Score       int        `json:"score"`
	Wave        int        `json:"wave"`
	BulletTime  bool       `json:"bulletTime"`
	WaveCleared bool       `json:"waveCleared"`
}

// State is the per-frame read model for the render layer.
type State struct {
	ID            string           `json:"id"`
	Targets       []targets.Target `json:"targets"`
	Score         int              `json:"score"`
	Wave          int              `json:"wave"`
	Combo         int              `json:"combo"`
	ComboProgress float64          `json:"comboProgress"`
	BulletTime    bool             `json:"bulletTime"`
	TimeScale     float64          `json:"timeScale"`
	Vignette      float64          `json:"vignette"`
	Frame         uint64           `json:"frame"`
	StartedAt     time.Time        `json:"startedAt"`

	// Countdown of the open slow-motion window, and the bound on target X
	// and Z for the renderer's floor.
	BulletTimeLeftMs int64   `json:"bulletTimeLeftMs"`
	ArenaHalfExtent  float64 `json:"arenaHalfExtent"`
}

// New creates a session at wave 1 with score and combo at zero.
func New(opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Journal == nil {
		opts.Journal = nopJournal{}
	}
	if opts.Props == nil {
		opts.Props = hitresolve.DefaultProps()
	}
	now := opts.Clock.Now()
	s := &Session{
		id:          opts.ID,
		policy:      opts.Policy.Normalized(),
		clock:       opts.Clock,
		targets:     targets.NewStore(opts.Rand, opts.HalfExtent),
		props:       opts.Props,
		journal:     opts.Journal,
		bus:         opts.Bus,
		startedAt:   now,
		lastHitTime: now,
	}
	s.mu.Lock()
	s.startWaveLocked(1, now)
	s.mu.Unlock()
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Policy() combo.Policy {
	return s.policy
}

// StartWave replaces the live set with n*2 fresh targets and makes n the
// current wave. Values below 1 are treated as 1.
func (s *Session) StartWave(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startWaveLocked(n, s.clock.Now())
}

func (s *Session) startWaveLocked(n int, now time.Time) {
	if n < 1 {
		n = 1
	}
	s.wave = n
	spawned := s.targets.Replace(targets.WaveSize(n), now)
	s.journal.RecordWave(s.id, n, len(spawned))
	s.publish(events.WaveStarted, now, len(spawned))
	log.Printf("[Session] %s wave %d started with %d targets\n", s.id, n, len(spawned))
}

// ResolveHit applies one aim action. A hit on a live target scores and
// extends the combo; a miss (hit == false) resets the combo; a hit on an
// id that is not live changes nothing and reports ResultStale.
func (s *Session) ResolveHit(id targets.ID, hit bool) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveLocked(id, hit, s.clock.Now())
}

func (s *Session) Hit(id targets.ID) Outcome {
	return s.ResolveHit(id, true)
}

func (s *Session) Miss() Outcome {
	return s.ResolveHit(0, false)
}

// Aim casts the reticle ray from cam against the live targets and scene
// props, then resolves the result, all under one lock.
func (s *Session) Aim(cam hitresolve.Camera) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	s.reconcileLocked(now)
	id, hit := hitresolve.Resolve(cam, s.targets.GetList(), s.props)
	return s.resolveLocked(id, hit, now)
}

func (s *Session) resolveLocked(id targets.ID, hit bool, now time.Time) Outcome {
	s.reconcileLocked(now)

	if !hit {
		before := s.combo
		s.combo = 0
		if before > 0 {
			s.publish(events.ComboReset, now, 0)
		}
		s.journal.RecordShot(Shot{
			SessionID:   s.id,
			Result:      ResultMiss,
			ComboBefore: before,
			Score:       s.score,
			Wave:        s.wave,
			At:          now,
		})
		return s.outcomeLocked(ResultMiss, 0, 0, false, false)
	}

	target, live := s.targets.Get(id)
	if !live || !s.targets.Kill(id) {
		return s.outcomeLocked(ResultStale, id, 0, false, false)
	}

	before := s.combo
	points := combo.Points(before)
	s.score += points
	s.combo++
	s.lastHitTime = now

	triggered := s.policy.IsMilestone(before, s.combo)
	if triggered {
		s.triggerBulletTimeLocked(now)
	}

	s.journal.RecordShot(Shot{
		SessionID:   s.id,
		Result:      ResultHit,
		TargetID:    id,
		Points:      points,
		ComboBefore: before,
		ComboAfter:  s.combo,
		Score:       s.score,
		Wave:        s.wave,
		Reaction:    now.Sub(target.SpawnedAt),
		At:          now,
	})

	cleared := s.targets.Len() == 0
	s.reconcileLocked(now)
	return s.outcomeLocked(ResultHit, id, points, triggered, cleared)
}

func (s *Session) outcomeLocked(r Result, id targets.ID, points int, bullet, cleared bool) Outcome {
	return Outcome{
		Result:      r,
		TargetID:    id,
		Points:      points,
		Combo:       s.combo,
		Score:       s.score,
		Wave:        s.wave,
		BulletTime:  bullet,
		WaveCleared: cleared,
	}
}

// reconcileLocked re-derives every time- and count-driven transition from
// current state: bullet time past its deadline ends, a stale combo decays,
// and an empty target set advances the wave.
func (s *Session) reconcileLocked(now time.Time) {
	if s.bullet.ExpireDue(now) {
		s.bulletTimeEndedLocked(now)
	}
	if s.policy.Decayed(s.combo, s.lastHitTime, now) {
		s.combo = 0
		s.publish(events.ComboReset, now, 0)
	}
	if s.targets.Len() == 0 {
		s.startWaveLocked(s.wave+1, now)
	}
}

// triggerBulletTimeLocked rearms the window. The pending revert is
// cancelled; a revert that still fires carries a stale generation and is
// ignored.
func (s *Session) triggerBulletTimeLocked(now time.Time) {
	d := s.policy.BulletTimeDuration
	gen := s.bullet.Trigger(now, d)
	if s.revert != nil {
		s.revert.Stop()
	}
	s.revert = s.clock.AfterFunc(d, func() {
		s.revertBulletTime(gen)
	})
	s.journal.RecordBulletTime(s.id, true)
	s.publish(events.BulletTimeStart, now, 0)
}

func (s *Session) revertBulletTime(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	now := s.clock.Now()
	if s.bullet.Expire(gen, now) {
		s.bulletTimeEndedLocked(now)
	}
}

func (s *Session) bulletTimeEndedLocked(now time.Time) {
	if s.revert != nil {
		s.revert.Stop()
		s.revert = nil
	}
	s.journal.RecordBulletTime(s.id, false)
	s.publish(events.BulletTimeEnd, now, 0)
}

// Tick is the per-frame entry point: it reconciles, counts the frame and
// returns the state to render.
func (s *Session) Tick() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame++
	return s.snapshotLocked(s.clock.Now())
}

// Snapshot reconciles and returns the current state without counting a frame.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(s.clock.Now())
}

func (s *Session) snapshotLocked(now time.Time) State {
	s.reconcileLocked(now)
	slowed := s.bullet.Active()
	return State{
		ID:            s.id,
		Targets:       s.targets.GetList(),
		Score:         s.score,
		Wave:          s.wave,
		Combo:         s.combo,
		ComboProgress: s.policy.Progress(s.combo),
		BulletTime:    slowed,
		TimeScale:     s.policy.TimeScale(slowed),
		Vignette:      combo.Vignette(slowed),
		Frame:         s.frame,
		StartedAt:     s.startedAt,

		BulletTimeLeftMs: s.bullet.Remaining(now).Milliseconds(),
		ArenaHalfExtent:  s.targets.HalfExtent(),
	}
}

// Close cancels the pending bullet-time revert and ends the event stream.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.revert != nil {
		s.revert.Stop()
		s.revert = nil
	}
	if s.bus != nil {
		s.bus.Close()
	}
}

func (s *Session) publish(kind events.Kind, now time.Time, spawned int) {
	if s.bus == nil || s.closed {
		return
	}
	s.bus.Publish(events.Event{
		Kind:    kind,
		Wave:    s.wave,
		Combo:   s.combo,
		Score:   s.score,
		Targets: spawned,
		At:      now,
	})
}
