package v1

import (
	"time"
)

// PourEvent is one dispense action recorded by a tap device.
// Events are append-only: once stored they are never updated or deleted.
type PourEvent struct {
	// ID is the storage-assigned sequence number.
	// Owned by the event store; never exposed to clients and never used
	// for business logic.
	ID int64 `json:"-"`

	// EventID is the client-supplied idempotency key (a UUID).
	// It MUST be unique across all stored events.
	EventID string `json:"eventId"`

	// DeviceID identifies the tap that produced the pour.
	DeviceID string `json:"deviceId"`

	// LocationID identifies the physical site of the tap.
	LocationID string `json:"locationId"`

	// ProductID identifies the beverage dispensed.
	ProductID string `json:"productId"`

	// StartedAt/EndedAt are the client-side time bounds of the pour,
	// with timezone offset. EndedAt >= StartedAt.
	StartedAt time.Time `json:"startedAt"`
	EndedAt   time.Time `json:"endedAt"`

	// VolumeMl is the dispensed volume in millilitres. Constrained to the
	// fixed set of physically valid glass/bottle sizes.
	VolumeMl int `json:"volumeMl"`

	// RecordedAt is the server-assigned ingestion timestamp, set by the
	// database at insert time.
	RecordedAt time.Time `json:"recordedAt"`
}

// RecordPourRequest is the wire contract for POST /v1/pours.
type RecordPourRequest struct {
	EventID    string    `json:"eventId"`
	DeviceID   string    `json:"deviceId"`
	LocationID string    `json:"locationId"`
	ProductID  string    `json:"productId"`
	StartedAt  time.Time `json:"startedAt"`
	EndedAt    time.Time `json:"endedAt"`
	VolumeMl   int       `json:"volumeMl"`
}

// ProductVolume is one entry of the per-product breakdown.
type ProductVolume struct {
	ProductID     string `json:"productId"`
	TotalVolumeMl int64  `json:"totalVolumeMl"`
	TotalPours    int64  `json:"totalPours"`
}

// LocationVolume is one entry of the per-location breakdown.
type LocationVolume struct {
	LocationID    string `json:"locationId"`
	TotalVolumeMl int64  `json:"totalVolumeMl"`
	TotalPours    int64  `json:"totalPours"`
}

// DeviceSummary is the windowed read model for one device.
// Breakdowns are ordered by total volume descending; ties break on
// ascending key so repeated queries over the same data agree.
// Top fields are empty (and omitted from JSON) when the window holds
// no events.
type DeviceSummary struct {
	TotalVolumeMl int64            `json:"totalVolumeMl"`
	TotalPours    int64            `json:"totalPours"`
	ByProduct     []ProductVolume  `json:"byProduct"`
	ByLocation    []LocationVolume `json:"byLocation"`
	TopProduct    string           `json:"topProduct,omitempty"`
	TopLocation   string           `json:"topLocation,omitempty"`
}
