package storage

import (
	"context"
	"time"

	v1 "github.com/tapstand/pours/internal/api/v1"
)

// GroupTotal is one row of a grouped volume reduction: the group key
// (product or location) with its total volume and pour count.
type GroupTotal struct {
	Key           string
	TotalVolumeMl int64
	TotalPours    int64
}

// EventStore persists pour events.
type EventStore interface {
	// TryInsert atomically persists the event unless one with the same
	// EventID already exists. Returns (true, nil) when the event was
	// stored, (false, nil) when it was a duplicate. A duplicate is a
	// normal outcome, not an error. On success the store populates the
	// event's ID and RecordedAt.
	//
	// The uniqueness check and the insert are a single atomic storage
	// operation: under concurrent identical submissions exactly one call
	// reports created.
	TryInsert(ctx context.Context, event *v1.PourEvent) (bool, error)
}

// SummaryStore answers grouped volume reductions over one device's
// events with started_at inside [from, to], both bounds inclusive.
// Results are ordered by total volume descending, key ascending.
type SummaryStore interface {
	VolumeByProduct(ctx context.Context, deviceID string, from, to time.Time) ([]GroupTotal, error)
	VolumeByLocation(ctx context.Context, deviceID string, from, to time.Time) ([]GroupTotal, error)
}
