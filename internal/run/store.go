package run

import (
	"sort"
	"sync"
)

// Store caches one Run per ID. A capture and its label only ever enter the
// store together through Put, so readers never see one without the other.
type Store struct {
	mu       sync.RWMutex
	runs     map[ID]Run
	viewed   map[ID]uint64
	clock    uint64
	limit    int
	changeCh chan struct{}
}

func NewStore() *Store {
	return &Store{
		runs:     make(map[ID]Run),
		viewed:   make(map[ID]uint64),
		changeCh: make(chan struct{}, 1),
	}
}

// SetLimit caps the number of cached runs. Zero means unlimited. When the
// cap is exceeded the least recently viewed runs are evicted first.
func (s *Store) SetLimit(n int) {
	s.mu.Lock()
	s.limit = n
	evicted := s.evictLocked(0)
	s.mu.Unlock()
	if evicted {
		s.notify()
	}
}

// Put replaces the run stored under r.ID. The stored copy does not share
// the capture slice with the caller.
func (s *Store) Put(r Run) {
	s.mu.Lock()
	s.runs[r.ID] = r.clone()
	s.touchLocked(r.ID)
	s.evictLocked(r.ID)
	s.mu.Unlock()
	s.notify()
}

// Get returns a copy of the run, or false if nothing was captured for id
// (or it was evicted).
func (s *Store) Get(id ID) (Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	if !ok {
		return Run{}, false
	}
	return r.clone(), true
}

// Label returns only the label, avoiding a copy of the capture.
func (s *Store) Label(id ID) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	return r.Label, ok
}

// Touch marks id as viewed for eviction ordering. Ids without a stored run
// are ignored.
func (s *Store) Touch(id ID) {
	s.mu.Lock()
	if _, ok := s.runs[id]; ok {
		s.touchLocked(id)
	}
	s.mu.Unlock()
}

// List returns copies of all cached runs ordered by ID.
func (s *Store) List() []Run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]Run, 0, len(s.runs))
	for _, r := range s.runs {
		result = append(result, r.clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}

// Changes delivers a coalesced notification after every mutation.
func (s *Store) Changes() <-chan struct{} {
	return s.changeCh
}

func (s *Store) touchLocked(id ID) {
	s.clock++
	s.viewed[id] = s.clock
}

// evictLocked drops least recently viewed runs until the limit holds. keep
// is never evicted.
func (s *Store) evictLocked(keep ID) bool {
	if s.limit <= 0 {
		return false
	}
	evicted := false
	for len(s.runs) > s.limit {
		var victim ID
		oldest := ^uint64(0)
		for id := range s.runs {
			if id == keep {
				continue
			}
			if v := s.viewed[id]; v < oldest {
				oldest, victim = v, id
			}
		}
		if victim == 0 {
			break
		}
		delete(s.runs, victim)
		delete(s.viewed, victim)
		evicted = true
	}
	return evicted
}

func (s *Store) notify() {
	select {
	case s.changeCh <- struct{}{}:
	default:
	}
}
