// Package metrics exports game counters to Prometheus.
package metrics

import (
	"aimrange/internal/game"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "aimrange"

// Recorder is a game.Journal backed by its own registry.
type Recorder struct {
	Registry *prometheus.Registry

	mu     sync.Mutex
	slowed map[string]bool

	shots        *prometheus.CounterVec
	points       prometheus.Counter
	waves        prometheus.Counter
	bulletTimes  prometheus.Counter
	bulletActive prometheus.Gauge
	sessions     prometheus.Gauge
	reaction     prometheus.Histogram
}

func New() *Recorder {
	r := &Recorder{
		Registry: prometheus.NewRegistry(),
		slowed:   make(map[string]bool),
		shots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shots_total",
			Help:      "Aim actions resolved, by result.",
		}, []string{"result"}),
		points: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_total",
			Help:      "Points awarded across all sessions.",
		}),
		waves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "waves_started_total",
			Help:      "Waves spawned across all sessions.",
		}),
		bulletTimes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bullet_time_triggers_total",
			Help:      "Bullet-time windows opened or rearmed.",
		}),
		bulletActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bullet_time_active",
			Help:      "Sessions currently in bullet time.",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Live game sessions.",
		}),
		reaction: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "hit_reaction_seconds",
			Help:      "Time from target spawn to hit.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16},
		}),
	}
	r.Registry.MustRegister(
		r.shots, r.points, r.waves, r.bulletTimes, r.bulletActive, r.sessions, r.reaction,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) RecordShot(shot game.Shot) {
	r.shots.WithLabelValues(string(shot.Result)).Inc()
	if shot.Result == game.ResultHit {
		r.points.Add(float64(shot.Points))
		r.reaction.Observe(shot.Reaction.Seconds())
	}
}

func (r *Recorder) RecordWave(string, int, int) {
	r.waves.Inc()
}

// RecordBulletTime counts every trigger, including rearms, but moves the
// active gauge only when a session enters or leaves its window.
func (r *Recorder) RecordBulletTime(sessionID string, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if active {
		r.bulletTimes.Inc()
		if !r.slowed[sessionID] {
			r.slowed[sessionID] = true
			r.bulletActive.Inc()
		}
		return
	}
	r.leaveBulletTimeLocked(sessionID)
}

func (r *Recorder) leaveBulletTimeLocked(sessionID string) {
	if r.slowed[sessionID] {
		delete(r.slowed, sessionID)
		r.bulletActive.Dec()
	}
}

func (r *Recorder) SessionOpened(string) {
	r.sessions.Inc()
}

// SessionClosed also clears a bullet-time window the session never got to end.
func (r *Recorder) SessionClosed(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveBulletTimeLocked(sessionID)
	r.sessions.Dec()
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{})
}
