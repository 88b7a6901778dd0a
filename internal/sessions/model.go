package sessions

import (
	"aimrange/internal/broadcast"
	"aimrange/internal/game"
	"aimrange/internal/wshub"
	"sync"
	"time"
)

// Entry is one live game session together with the channels that watch it.
type Entry struct {
	ID          string
	Code        string
	Game        *game.Session
	Broadcaster *broadcast.Broadcaster
	Hub         *wshub.Hub
	CreatedAt   time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

// LastSeen is the last time the session was looked up or played.
func (e *Entry) LastSeen() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastSeen
}

func (e *Entry) touch(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if now.After(e.lastSeen) {
		e.lastSeen = now
	}
}

// Close stops the game's timers, ends its event stream and disconnects
// every WebSocket client.
func (e *Entry) Close() {
	e.Game.Close()
	e.Hub.CloseAll()
}
