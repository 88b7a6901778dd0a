package targets

import (
	"aimrange/internal/vmath"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/kamstrup/intmap"
)

const (
	DefaultHalfExtent = 10.0
	Height            = 0.0
	HalfSize          = 0.5
	PerWave           = 2
)

// Store is the live target set of one session. Ids come from a counter
// that is never reset, so an id is never reused within the session.
type Store struct {
	mu         sync.Mutex
	live       *intmap.Map[ID, *Target]
	nextID     ID
	rng        *rand.Rand
	halfExtent float64
}

// NewStore samples positions from rng in [-halfExtent, halfExtent] on X and Z.
// A nil rng uses a randomly seeded source.
func NewStore(rng *rand.Rand, halfExtent float64) *Store {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if halfExtent <= 0 {
		halfExtent = DefaultHalfExtent
	}
	return &Store{
		live:       intmap.New[ID, *Target](16),
		nextID:     1,
		rng:        rng,
		halfExtent: halfExtent,
	}
}

// WaveSize is the number of targets a wave spawns.
func WaveSize(wave int) int {
	return wave * PerWave
}

func (s *Store) addLocked(now time.Time) *Target {
	id := s.nextID
	s.nextID++
	target := &Target{
		ID: id,
		Position: vmath.V3(
			s.sample(),
			Height,
			s.sample(),
		),
		SpawnedAt: now,
	}
	s.live.Put(id, target)
	return target
}

func (s *Store) sample() float64 {
	return s.rng.Float64()*2*s.halfExtent - s.halfExtent
}

// Replace drops every live target and spawns n fresh ones.
func (s *Store) Replace(n int, now time.Time) []Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live.Clear()
	spawned := make([]Target, 0, n)
	for i := 0; i < n; i++ {
		spawned = append(spawned, *s.addLocked(now))
	}
	return spawned
}

func (s *Store) Get(id ID) (Target, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.live.Get(id)
	if !ok {
		return Target{}, false
	}
	return *t, true
}

// Kill removes a live target. It reports false when id is not live.
func (s *Store) Kill(id ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live.Del(id)
}

// GetList returns copies of the live targets ordered by id.
func (s *Store) GetList() []Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]Target, 0, s.live.Len())
	s.live.ForEach(func(_ ID, t *Target) bool {
		list = append(list, *t)
		return true
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live.Len()
}

func (s *Store) HalfExtent() float64 {
	return s.halfExtent
}
