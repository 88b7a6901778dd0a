package server

import (
	"aimrange/internal/game"
	"aimrange/internal/sessions"
	"aimrange/internal/wshub"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var errUnknownMessage = errors.New("unknown message type")

// applyAim runs one client input against the session. An empty type is
// treated as an aim so the HTTP endpoint can take a bare camera body.
func applyAim(entry *sessions.Entry, msg wshub.ClientMessage) (game.Outcome, error) {
	switch msg.Type {
	case wshub.TypeMiss:
		return entry.Game.Miss(), nil
	case wshub.TypeAim, "":
		cam, err := msg.Camera()
		if err != nil {
			return game.Outcome{}, err
		}
		return entry.Game.Aim(cam), nil
	}
	return game.Outcome{}, fmt.Errorf("%q: %w", msg.Type, errUnknownMessage)
}

// handleWS upgrades to a WebSocket that pushes a state frame every
// FrameInterval and accepts aim/miss input. The read loop, write pump and
// frame loop share one context; the first to stop ends the other two.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.getSession(w, r)
	if !ok {
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Printf("[WS] Accept error: %v\n", err)
		return
	}
	defer conn.CloseNow()

	client := &wshub.Client{
		ID:   uuid.New().String(),
		Conn: conn,
		Send: make(chan []byte, 64),
	}
	entry.Hub.Register(client)
	defer entry.Hub.Unregister(client.ID)
	log.Printf("[WS] Client %s attached to session %s\n", client.ID, entry.ID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer cancel()
		return client.WritePump(ctx)
	})
	eg.Go(func() error {
		defer cancel()
		return s.readLoop(ctx, entry, client)
	})
	eg.Go(func() error {
		defer cancel()
		s.frameLoop(ctx, entry, client.ID)
		return nil
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("[WS] Client %s: %v\n", client.ID, err)
		return
	}
	conn.Close(websocket.StatusNormalClosure, "")
}

func (s *Server) readLoop(ctx context.Context, entry *sessions.Entry, client *wshub.Client) error {
	for {
		_, data, err := client.Conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("reading websocket: %w", err)
		}

		s.Sessions.Touch(entry)

		var msg wshub.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			entry.Hub.SendTo(client.ID, wshub.ServerMessage{Type: "error", Error: "malformed message"})
			continue
		}
		out, err := applyAim(entry, msg)
		if err != nil {
			entry.Hub.SendTo(client.ID, wshub.ServerMessage{Type: "error", Error: err.Error()})
			continue
		}
		entry.Hub.Broadcast(wshub.ServerMessage{Type: wshub.TypeShot, Shot: &out})
	}
}

// frameLoop advances the session one frame per tick and pushes the state
// to this client. Frames are dropped, not queued, when the client lags. An
// open connection keeps the session from being swept as idle.
func (s *Server) frameLoop(ctx context.Context, entry *sessions.Entry, clientID string) {
	ticker := time.NewTicker(s.FrameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sessions.Touch(entry)
			st := entry.Game.Tick()
			entry.Hub.SendTo(clientID, wshub.ServerMessage{Type: wshub.TypeState, State: &st})
		}
	}
}
