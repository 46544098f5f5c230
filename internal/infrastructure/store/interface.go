package store

import (
	"context"
	"encoding/json"
	"time"
)

// EventStoreInterface is the order event log.
type EventStoreInterface interface {
	Append(ctx context.Context, aggregateID, aggregateType, eventType string, data any) (*Event, error)
	GetEvents(aggregateID string) []Event
	GetAllEvents() []Event
	GetEventsFromVersion(ctx context.Context, aggregateID string, fromVersion int) []Event
	SaveSnapshot(ctx context.Context, snapshot *Snapshot) error
	GetSnapshot(ctx context.Context, aggregateID string) (*Snapshot, error)
}

// Publisher forwards stored events to a message bus.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// CollectionOrders holds *readmodel.OrderReadModel values keyed by order id.
const CollectionOrders = "orders"

// ReadStoreInterface is a collection/id keyed store for projected views.
// Update reports false when id is absent and leaves the store untouched.
type ReadStoreInterface interface {
	Set(collection, id string, data any)
	Get(collection, id string) (any, bool)
	GetAll(collection string) []any
	Delete(collection, id string)
	Update(collection, id string, updateFn func(current any) any) bool
}

// SnapshotThreshold is how many order versions pass between snapshots.
const SnapshotThreshold = 5

// Snapshot is an aggregate's JSON state at Version.
type Snapshot struct {
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	Version       int             `json:"version"`
	State         json.RawMessage `json:"state"`
	CreatedAt     time.Time       `json:"created_at"`
}
