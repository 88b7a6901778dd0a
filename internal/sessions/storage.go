package sessions

import (
	"aimrange/internal/broadcast"
	"aimrange/internal/clock"
	"aimrange/internal/combo"
	"aimrange/internal/events"
	"aimrange/internal/game"
	"aimrange/internal/wshub"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

const (
	DefaultTTL    = 1 * time.Hour
	sweepInterval = 5 * time.Minute
)

type Options struct {
	Policy     combo.Policy
	HalfExtent float64
	// TTL is how long a session may go untouched before it is swept.
	TTL     time.Duration
	Clock   clock.Clock
	Journal game.Journal
	// OnOpen runs under the store lock before the game starts, so it sees
	// the session ahead of any journal record. OnClose runs outside the lock
	// after the game has stopped.
	OnOpen  func(id string)
	OnClose func(id string)
}

type Store struct {
	mu     sync.Mutex
	byID   map[string]*Entry
	byCode map[string]*Entry
	opts   Options
	stop   chan struct{}
	once   sync.Once
}

func NewStore(opts Options) *Store {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	s := &Store{
		byID:   make(map[string]*Entry),
		byCode: make(map[string]*Entry),
		opts:   opts,
		stop:   make(chan struct{}),
	}
	go s.sweepStale()
	return s
}

func (s *Store) Create() (*Entry, error) {
	s.mu.Lock()
	entry, err := s.createLocked()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	log.Printf("[Sessions] Created %s (code %s)\n", entry.ID, entry.Code)
	return entry, nil
}

func (s *Store) createLocked() (*Entry, error) {
	// Try up to 10 times to generate a unique code
	for range 10 {
		code, err := GenerateCode()
		if err != nil {
			return nil, fmt.Errorf("generating session code: %w", err)
		}
		if _, exists := s.byCode[code]; exists {
			continue
		}

		id := uuid.New().String()
		if s.opts.OnOpen != nil {
			s.opts.OnOpen(id)
		}
		bus := events.NewBus()
		now := s.opts.Clock.Now()
		entry := &Entry{
			ID:   id,
			Code: code,
			Game: game.New(game.Options{
				ID:         id,
				Policy:     s.opts.Policy,
				Clock:      s.opts.Clock,
				HalfExtent: s.opts.HalfExtent,
				Journal:    s.opts.Journal,
				Bus:        bus,
			}),
			Broadcaster: broadcast.NewBroadcaster(bus),
			Hub:         wshub.NewHub(),
			CreatedAt:   now,
			lastSeen:    now,
		}
		s.byID[id] = entry
		s.byCode[code] = entry
		return entry, nil
	}
	return nil, errors.New("failed to generate unique session code after 10 attempts")
}

// Get looks a session up by id and marks it as recently used.
func (s *Store) Get(id string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, ErrNotFound)
	}
	entry.touch(s.opts.Clock.Now())
	return entry, nil
}

func (s *Store) GetByCode(code string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.byCode[code]
	if !ok {
		return nil, fmt.Errorf("code %q: %w", code, ErrNotFound)
	}
	entry.touch(s.opts.Clock.Now())
	return entry, nil
}

// Delete removes and closes a session. It reports whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	entry, ok := s.byID[id]
	if ok {
		s.removeLocked(entry)
	}
	s.mu.Unlock()
	if ok {
		s.closeEntry(entry)
	}
	return ok
}

func (s *Store) List() []*Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]*Entry, 0, len(s.byID))
	for _, e := range s.byID {
		list = append(list, e)
	}
	return list
}

// Touch marks a session as in use. Long-lived connections hold their entry
// and call this on every input and frame instead of going through Get.
func (s *Store) Touch(e *Entry) {
	e.touch(s.opts.Clock.Now())
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// Sweep closes every session idle for longer than the TTL and returns how
// many were removed.
func (s *Store) Sweep() int {
	now := s.opts.Clock.Now()
	var stale []*Entry
	s.mu.Lock()
	for _, e := range s.byID {
		if now.Sub(e.LastSeen()) > s.opts.TTL {
			s.removeLocked(e)
			stale = append(stale, e)
		}
	}
	s.mu.Unlock()

	for _, e := range stale {
		s.closeEntry(e)
	}
	if len(stale) > 0 {
		log.Printf("[Sessions] Swept %d idle sessions\n", len(stale))
	}
	return len(stale)
}

// Close stops the sweeper and closes every remaining session.
func (s *Store) Close() {
	s.once.Do(func() { close(s.stop) })
	s.mu.Lock()
	all := make([]*Entry, 0, len(s.byID))
	for _, e := range s.byID {
		s.removeLocked(e)
		all = append(all, e)
	}
	s.mu.Unlock()
	for _, e := range all {
		s.closeEntry(e)
	}
}

func (s *Store) removeLocked(e *Entry) {
	delete(s.byID, e.ID)
	delete(s.byCode, e.Code)
}

func (s *Store) closeEntry(e *Entry) {
	e.Close()
	if s.opts.OnClose != nil {
		s.opts.OnClose(e.ID)
	}
}

func (s *Store) sweepStale() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
