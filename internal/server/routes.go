package server

import (
	"aimrange/internal/analytics"
	"aimrange/internal/combo"
	"aimrange/internal/config"
	"aimrange/internal/game"
	"aimrange/internal/metrics"
	"aimrange/internal/sessions"
	"fmt"
	"net/http"
	"time"
)

// New wires the session store to the in-memory tracker and the Prometheus
// recorder.
func New(cfg config.Config) *Server {
	tracker := analytics.NewTracker()
	recorder := metrics.New()

	store := sessions.NewStore(sessions.Options{
		Policy: combo.Policy{
			Timeout:            cfg.ComboTimeout,
			BulletTimeDuration: cfg.BulletTimeDuration,
			Milestone:          cfg.ComboMilestone,
		},
		HalfExtent: cfg.ArenaHalfExtent,
		TTL:        cfg.SessionTTL,
		Journal:    game.Journals{tracker, recorder},
		OnOpen: func(id string) {
			tracker.Open(id)
			recorder.SessionOpened(id)
		},
		OnClose: func(id string) {
			recorder.SessionClosed(id)
			tracker.Forget(id)
		},
	})

	frameRate := cfg.FrameRate
	if frameRate <= 0 {
		frameRate = 60
	}
	return &Server{
		Sessions:      store,
		Tracker:       tracker,
		Metrics:       recorder,
		FrameInterval: time.Second / time.Duration(frameRate),
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleState)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("POST /sessions/{id}/aim", s.handleAim)
	mux.HandleFunc("GET /sessions/{id}/ws", s.handleWS)
	mux.HandleFunc("GET /sessions/{id}/events", s.handleEvents)
	mux.HandleFunc("GET /sessions/{id}/stats", s.handleStats)
	mux.HandleFunc("GET /join/{code}", s.handleJoin)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.Metrics.Handler())
	return mux
}

func Run() error {
	cfg := config.Load()
	srv := New(cfg)
	defer srv.Sessions.Close()

	addr := "0.0.0.0:" + cfg.Port
	fmt.Printf("Server listening on http://localhost:%s\n", cfg.Port)
	return http.ListenAndServe(addr, srv.Routes())
}
