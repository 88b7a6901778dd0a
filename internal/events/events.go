package events

import (
	"log"
	"sync"
	"time"
)

type Kind string

const (
	WaveStarted     = Kind("waveStarted")
	ComboReset      = Kind("comboReset")
	BulletTimeStart = Kind("bulletTimeStart")
	BulletTimeEnd   = Kind("bulletTimeEnd")
)

type Event struct {
	Kind    Kind      `json:"kind"`
	Wave    int       `json:"wave"`
	Combo   int       `json:"combo"`
	Score   int       `json:"score"`
	Targets int       `json:"targets,omitempty"`
	At      time.Time `json:"at"`
}

const busBuffer = 64

type Bus struct {
	mu     sync.Mutex
	closed bool
	Events chan Event
}

func NewBus() *Bus {
	return &Bus{
		Events: make(chan Event, busBuffer),
	}
}

// Publish never blocks: publishers hold the session lock, so a full
// buffer drops the event instead.
func (b *Bus) Publish(ev Event) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return false
	}
	select {
	case b.Events <- ev:
		return true
	default:
		log.Printf("[Events] Bus full, dropping %s\n", ev.Kind)
		return false
	}
}

// Close ends the stream. Later publishes are dropped.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	close(b.Events)
}
