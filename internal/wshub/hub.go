package wshub

import (
	"aimrange/internal/game"
	"aimrange/internal/hitresolve"
	"aimrange/internal/vmath"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/coder/websocket"
)

// ErrBadCamera is returned for aim messages that carry neither a usable
// direction nor yaw/pitch angles.
var ErrBadCamera = errors.New("aim needs a non-zero dir or yaw and pitch")

const (
	TypeAim   = "aim"
	TypeMiss  = "miss"
	TypeState = "state"
	TypeShot  = "shot"
)

// ClientMessage is the JSON structure received from clients. The same shape
// is accepted as the body of the HTTP aim endpoint.
type ClientMessage struct {
	Type  string      `json:"t"`
	Pos   [3]float64  `json:"pos"`
	Dir   *[3]float64 `json:"dir,omitempty"`
	Yaw   *float64    `json:"yaw,omitempty"`
	Pitch *float64    `json:"pitch,omitempty"`
}

// Camera converts an aim message into the reticle camera. An explicit dir
// wins over angles.
func (m ClientMessage) Camera() (hitresolve.Camera, error) {
	pos := vmath.FromArray(m.Pos)
	if !pos.Finite() {
		return hitresolve.Camera{}, ErrBadCamera
	}
	switch {
	case m.Dir != nil:
		cam := hitresolve.Camera{Position: pos, Forward: vmath.FromArray(*m.Dir)}
		if _, ok := cam.Ray(); !ok {
			return hitresolve.Camera{}, ErrBadCamera
		}
		return cam, nil
	case m.Yaw != nil && m.Pitch != nil:
		cam := hitresolve.CameraFromAngles(pos, *m.Yaw, *m.Pitch)
		if _, ok := cam.Ray(); !ok {
			return hitresolve.Camera{}, ErrBadCamera
		}
		return cam, nil
	}
	return hitresolve.Camera{}, ErrBadCamera
}

// ServerMessage is the JSON structure sent to clients. State is set on
// "state" frames and Shot on "shot" replies.
type ServerMessage struct {
	Type  string        `json:"t"`
	State *game.State   `json:"state,omitempty"`
	Shot  *game.Outcome `json:"shot,omitempty"`
	Error string        `json:"error,omitempty"`
}

// Client represents a single WebSocket connection in the hub.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

// WritePump reads from the Send channel and writes to the WebSocket connection.
func (c *Client) WritePump(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-c.Send:
			if !ok {
				return nil
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("writing websocket: %w", err)
			}
		}
	}
}

// Hub manages the WebSocket connections watching one session.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

// Unregister removes a client and closes its Send channel.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[id]
	if !ok {
		return
	}
	close(c.Send)
	delete(h.clients, id)
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// SendTo queues a message for one client. It reports false when the client
// is gone or its channel is full.
func (h *Hub) SendTo(id string, msg ServerMessage) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[WSHub] Marshal error: %v\n", err)
		return false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[id]
	if !ok {
		return false
	}
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

// Broadcast sends a message to every client. Non-blocking: drops if a
// client's channel is full.
func (h *Hub) Broadcast(msg ServerMessage) {
	h.BroadcastExcept("", msg)
}

// BroadcastExcept sends a message to all clients except the sender.
func (h *Hub) BroadcastExcept(senderID string, msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[WSHub] Marshal error: %v\n", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, c := range h.clients {
		if id == senderID {
			continue
		}
		select {
		case c.Send <- data:
		default:
			// Drop message if channel full
		}
	}
}

// CloseAll unregisters every client, ending their write pumps.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		close(c.Send)
		delete(h.clients, id)
	}
}
