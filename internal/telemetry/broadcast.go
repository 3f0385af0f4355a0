package telemetry

import "time"

// BroadcastRepository wraps a Repository and pushes every recorded event to
// a sink (the websocket hub) after it is stored.
type BroadcastRepository struct {
	inner Repository
	sink  func(Event)
}

func NewBroadcastRepository(inner Repository, sink func(Event)) *BroadcastRepository {
	return &BroadcastRepository{inner: inner, sink: sink}
}

func (r *BroadcastRepository) RecordEvent(eventType EventType, metadata EventMetadata) error {
	if err := r.inner.RecordEvent(eventType, metadata); err != nil {
		return err
	}
	if r.sink != nil {
		if evs, err := r.inner.Recent(1); err == nil && len(evs) == 1 {
			r.sink(evs[0])
		}
	}
	return nil
}

func (r *BroadcastRepository) GetEvents(since time.Time, eventTypes []EventType) ([]Event, error) {
	return r.inner.GetEvents(since, eventTypes)
}

func (r *BroadcastRepository) Recent(limit int) ([]Event, error) {
	return r.inner.Recent(limit)
}

func (r *BroadcastRepository) Clear() error {
	return r.inner.Clear()
}
