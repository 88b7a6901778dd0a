package server

import (
	"aimrange/internal/analytics"
	"aimrange/internal/metrics"
	"aimrange/internal/sessions"
	"aimrange/internal/wshub"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

const maxAimBody = 4 << 10

type Server struct {
	Sessions      *sessions.Store
	Tracker       *analytics.Tracker
	Metrics       *metrics.Recorder
	FrameInterval time.Duration
}

type sessionRef struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Server] Encode error: %v\n", err)
	}
}

func setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
}

// getSession resolves the {id} path segment, writing a 404 when the
// session does not exist.
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) (*sessions.Entry, bool) {
	entry, err := s.Sessions.Get(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, sessions.ErrNotFound) {
			http.Error(w, "Session not found", http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return nil, false
	}
	return entry, true
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	entry, err := s.Sessions.Create()
	if err != nil {
		log.Printf("[Server] Create session: %v\n", err)
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}
	setSessionCookie(w, entry.ID)
	writeJSON(w, http.StatusCreated, sessionRef{ID: entry.ID, Code: entry.Code})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.getSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, entry.Game.Snapshot())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.Sessions.Delete(r.PathValue("id")) {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAim(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.getSession(w, r)
	if !ok {
		return
	}

	var msg wshub.ClientMessage
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAimBody)).Decode(&msg); err != nil {
		http.Error(w, fmt.Sprintf("decoding aim: %v", err), http.StatusBadRequest)
		return
	}

	out, err := applyAim(entry, msg)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	entry.Hub.Broadcast(wshub.ServerMessage{Type: wshub.TypeShot, Shot: &out})
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.getSession(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Subscribe before the headers go out so a client that saw the response
	// cannot miss the next event.
	msgChan := entry.Broadcaster.Subscribe()
	defer entry.Broadcaster.Unsubscribe(msgChan)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-msgChan:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\n", msg.Event)
			for _, line := range strings.Split(msg.Msg, "\n") {
				fmt.Fprintf(w, "data: %s\n", line)
			}
			fmt.Fprint(w, "\n")
			flusher.Flush()
		}
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.getSession(w, r)
	if !ok {
		return
	}
	stats, ok := s.Tracker.Stats(entry.ID)
	if !ok {
		stats = analytics.SessionStats{SessionID: entry.ID, Badges: []analytics.Badge{}}
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(r.PathValue("code")))
	entry, err := s.Sessions.GetByCode(code)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	setSessionCookie(w, entry.ID)
	writeJSON(w, http.StatusOK, sessionRef{ID: entry.ID, Code: entry.Code})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	clients := 0
	for _, e := range s.Sessions.List() {
		clients += e.Hub.Len()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.Sessions.Len(),
		"clients":  clients,
	})
}
