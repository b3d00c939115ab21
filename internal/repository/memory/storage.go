package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Rrens/code-search-web/internal/domain"
)

type area struct {
	values    map[string]string
	expiresAt time.Time
}

// Storage implements domain.Storage in process memory. Contents are lost on
// restart.
type Storage struct {
	mu    sync.Mutex
	areas map[string]*area
	ttl   time.Duration
	now   func() time.Time

	stop chan struct{}
	once sync.Once
}

// NewStorage creates a new in-memory storage. A positive sweepInterval starts
// a goroutine that drops expired areas until Close is called.
func NewStorage(ttl, sweepInterval time.Duration) *Storage {
	s := &Storage{
		areas: make(map[string]*area),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	if sweepInterval > 0 {
		go s.sweepLoop(sweepInterval)
	}
	return s
}

func (s *Storage) Get(_ context.Context, browserID, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.live(browserID)
	if a == nil {
		return "", domain.ErrNotFound
	}
	value, ok := a.values[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return value, nil
}

func (s *Storage) Set(_ context.Context, browserID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.live(browserID)
	if a == nil {
		a = &area{values: make(map[string]string)}
		s.areas[browserID] = a
	}
	a.values[key] = value
	if s.ttl > 0 {
		a.expiresAt = s.now().Add(s.ttl)
	}
	return nil
}

func (s *Storage) Remove(_ context.Context, browserID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a := s.live(browserID); a != nil {
		delete(a.values, key)
		if len(a.values) == 0 {
			delete(s.areas, browserID)
		}
	}
	return nil
}

func (s *Storage) Ping(context.Context) error {
	return nil
}

func (s *Storage) Close() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}

// Sweep drops expired areas and returns how many were removed
func (s *Storage) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, a := range s.areas {
		if !a.expiresAt.IsZero() && now.After(a.expiresAt) {
			delete(s.areas, id)
			removed++
		}
	}
	return removed
}

// live returns the browser's area, dropping it if expired. Callers hold mu.
func (s *Storage) live(browserID string) *area {
	a, ok := s.areas[browserID]
	if !ok {
		return nil
	}
	if !a.expiresAt.IsZero() && s.now().After(a.expiresAt) {
		delete(s.areas, browserID)
		return nil
	}
	return a
}

func (s *Storage) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.stop:
			return
		}
	}
}
