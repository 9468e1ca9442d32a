package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	v1 "github.com/tapstand/pours/internal/api/v1"
	"github.com/tapstand/pours/internal/core/storage"
)

// Store is an in-memory implementation of storage.EventStore and
// storage.SummaryStore. Useful for testing and development; data is lost
// on restart.
type Store struct {
	mu     sync.RWMutex
	events map[string]*v1.PourEvent // keyed by EventID
	nextID int64
}

// NewStore creates a new in-memory pour event store.
func NewStore() *Store {
	return &Store{
		events: make(map[string]*v1.PourEvent),
	}
}

// TryInsert stores the event unless one with the same EventID exists.
// The map insert happens under one lock, so concurrent identical
// submissions resolve to exactly one created.
func (s *Store) TryInsert(ctx context.Context, event *v1.PourEvent) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.events[event.EventID]; exists {
		return false, nil
	}

	s.nextID++
	event.ID = s.nextID
	event.RecordedAt = time.Now().UTC()

	// Store a copy to prevent external modification
	copy := *event
	s.events[event.EventID] = &copy
	return true, nil
}

// VolumeByProduct reduces the window to per-product totals.
func (s *Store) VolumeByProduct(ctx context.Context, deviceID string, from, to time.Time) ([]storage.GroupTotal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.groupTotals(deviceID, from, to, func(evt *v1.PourEvent) string {
		return evt.ProductID
	}), nil
}

// VolumeByLocation reduces the window to per-location totals.
func (s *Store) VolumeByLocation(ctx context.Context, deviceID string, from, to time.Time) ([]storage.GroupTotal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.groupTotals(deviceID, from, to, func(evt *v1.PourEvent) string {
		return evt.LocationID
	}), nil
}

// Len reports the number of stored events.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// groupTotals filters the event log to one device and the inclusive
// [from, to] window on StartedAt, then folds totals per group key.
// Ordering matches the postgres adapter: total volume descending, key
// ascending on ties.
func (s *Store) groupTotals(deviceID string, from, to time.Time, key func(*v1.PourEvent) string) []storage.GroupTotal {
	s.mu.RLock()
	byKey := make(map[string]*storage.GroupTotal)
	for _, evt := range s.events {
		if evt.DeviceID != deviceID {
			continue
		}
		if evt.StartedAt.Before(from) || evt.StartedAt.After(to) {
			continue
		}
		k := key(evt)
		gt, ok := byKey[k]
		if !ok {
			gt = &storage.GroupTotal{Key: k}
			byKey[k] = gt
		}
		gt.TotalVolumeMl += int64(evt.VolumeMl)
		gt.TotalPours++
	}
	s.mu.RUnlock()

	totals := make([]storage.GroupTotal, 0, len(byKey))
	for _, gt := range byKey {
		totals = append(totals, *gt)
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].TotalVolumeMl != totals[j].TotalVolumeMl {
			return totals[i].TotalVolumeMl > totals[j].TotalVolumeMl
		}
		return totals[i].Key < totals[j].Key
	})
	return totals
}
