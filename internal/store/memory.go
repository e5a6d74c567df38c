package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/marine-forecast/internal/weather"
)

var (
	// ErrNotFound is returned before the first snapshot has been stored.
	ErrNotFound = errors.New("no forecast snapshot available yet")
	// ErrNoSlot is returned when the current snapshot has no observations.
	ErrNoSlot = errors.New("no forecast slot for requested time")
)

// MemoryStore is a concurrency-safe holder for the current forecast snapshot.
//
// The snapshot is swapped by pointer: writers build a new snapshot elsewhere and
// only take the lock to install it, readers only take it to copy the pointer.
// A reader therefore always works on one complete snapshot.
type MemoryStore struct {
	mu      sync.RWMutex
	current *weather.Snapshot
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Replace installs snapshot as the current one.
func (s *MemoryStore) Replace(snapshot weather.Snapshot) {
	// Own the slice so later changes to the caller's backing array cannot leak in.
	snapshot.Series = append(weather.Series(nil), snapshot.Series...)

	s.mu.Lock()
	s.current = &snapshot
	s.mu.Unlock()
}

func (s *MemoryStore) load() *weather.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Current returns the stored snapshot.
func (s *MemoryStore) Current() (weather.Snapshot, error) {
	snap := s.load()
	if snap == nil {
		return weather.Snapshot{}, ErrNotFound
	}
	return *snap, nil
}

// ForTime returns the observation applicable at t using the forecast window
// rule: next slot within two hours, else the earliest slot.
func (s *MemoryStore) ForTime(t time.Time) (weather.Lookup, error) {
	snap := s.load()
	if snap == nil {
		return weather.Lookup{}, ErrNotFound
	}

	obs, fallback, ok := snap.Series.ForTime(t)
	if !ok {
		return weather.Lookup{}, ErrNoSlot
	}

	return weather.Lookup{
		Observation: obs,
		Fallback:    fallback,
		SnapshotID:  snap.ID,
		Spot:        snap.Spot,
		FetchedAt:   snap.FetchedAt,
	}, nil
}
