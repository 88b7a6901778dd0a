package broadcast

import (
	"aimrange/internal/events"
	"encoding/json"
	"log"
	"sync"
)

// Message is one server-sent event: Event is the SSE event name, Msg the
// JSON payload.
type Message struct {
	Event string
	Msg   string
}

type Broadcaster struct {
	Mu      sync.Mutex
	Clients map[chan Message]bool
}

// NewBroadcaster relays every bus event to subscribers until the bus closes.
func NewBroadcaster(bus *events.Bus) *Broadcaster {
	b := &Broadcaster{
		Clients: make(map[chan Message]bool),
	}
	go func() {
		for ev := range bus.Events {
			data, err := json.Marshal(ev)
			if err != nil {
				log.Printf("[Broadcast] Marshal error: %v\n", err)
				continue
			}
			b.Broadcast(string(ev.Kind), string(data))
		}
	}()
	return b
}

func (b *Broadcaster) Subscribe() chan Message {
	ch := make(chan Message, 10)
	b.Mu.Lock()
	b.Clients[ch] = true
	b.Mu.Unlock()
	return ch
}

func (b *Broadcaster) Unsubscribe(ch chan Message) {
	b.Mu.Lock()
	defer b.Mu.Unlock()
	if _, ok := b.Clients[ch]; !ok {
		return
	}
	delete(b.Clients, ch)
	close(ch)
}

func (b *Broadcaster) Broadcast(event string, message string) {
	b.Mu.Lock()
	defer b.Mu.Unlock()
	for ch := range b.Clients {
		select {
		case ch <- Message{Event: event, Msg: message}:
		default:
			// skip clients with full data channels
		}
	}
}
