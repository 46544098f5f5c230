// Package aggregate holds the load/append/snapshot cycle shared by event-sourced aggregates.
package aggregate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/example/fpv-storefront/internal/infrastructure/store"
	"go.uber.org/zap"
)

// ErrNotFound is returned by Load when neither a snapshot nor events exist
var ErrNotFound = errors.New("aggregate not found")

// Aggregate is implemented by event-sourced domain types
type Aggregate interface {
	GetID() string
	GetVersion() int
	ApplyEvent(store.Event) error
}

// Load restores an aggregate from its latest snapshot plus the events after it.
func Load[T Aggregate](ctx context.Context, es store.EventStoreInterface, id string, newAggregate func() T) (T, error) {
	var zero T
	agg := newAggregate()

	snapshot, err := es.GetSnapshot(ctx, id)
	if err != nil {
		return zero, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var events []store.Event
	if snapshot != nil {
		if err := json.Unmarshal(snapshot.State, agg); err != nil {
			return zero, fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
		events = es.GetEventsFromVersion(ctx, id, snapshot.Version)
	} else {
		events = es.GetEvents(id)
	}

	if snapshot == nil && len(events) == 0 {
		return zero, ErrNotFound
	}

	for _, event := range events {
		if err := agg.ApplyEvent(event); err != nil {
			return zero, fmt.Errorf("failed to apply event %s: %w", event.ID, err)
		}
	}
	return agg, nil
}

// Append stores an event for agg, applies it and snapshots when the
// version crosses the threshold. Snapshot failures are logged only.
func Append(
	ctx context.Context,
	es store.EventStoreInterface,
	logger *zap.Logger,
	agg Aggregate,
	aggregateType, eventType string,
	data any,
) (*store.Event, error) {
	event, err := es.Append(ctx, agg.GetID(), aggregateType, eventType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to append %s: %w", eventType, err)
	}
	if err := agg.ApplyEvent(*event); err != nil {
		return nil, fmt.Errorf("failed to apply %s: %w", eventType, err)
	}

	if err := MaybeSnapshot(ctx, es, agg, aggregateType); err != nil && logger != nil {
		logger.Warn("snapshot failed",
			zap.String("aggregate_id", agg.GetID()),
			zap.Int("version", agg.GetVersion()),
			zap.Error(err),
		)
	}
	return event, nil
}

// MaybeSnapshot saves the aggregate state every store.SnapshotThreshold versions
func MaybeSnapshot(ctx context.Context, es store.EventStoreInterface, agg Aggregate, aggregateType string) error {
	version := agg.GetVersion()
	if version == 0 || version%store.SnapshotThreshold != 0 {
		return nil
	}

	state, err := json.Marshal(agg)
	if err != nil {
		return fmt.Errorf("failed to marshal aggregate state: %w", err)
	}
	if err := es.SaveSnapshot(ctx, &store.Snapshot{
		AggregateID:   agg.GetID(),
		AggregateType: aggregateType,
		Version:       version,
		State:         state,
		CreatedAt:     time.Now(),
	}); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
