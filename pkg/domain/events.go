package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventDispatch EventType = "dispatch"
	EventApplied  EventType = "applied"
	EventRejected EventType = "rejected"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	ChangeID  string    `json:"change_id"`
}

// DispatchEvent describes one action flowing through a host container.
type DispatchEvent struct {
	EventBase
	ActionType string        `json:"action_type"`
	Path       string        `json:"path"`
	Op         string        `json:"op"`
	Duration   time.Duration `json:"duration,omitempty"`
	Err        error         `json:"-"`

	// After is the collection installed by an applied action.
	After any `json:"-"`
}

// LifecycleHooks defines callbacks for container observability.
// Every hook is optional.
type LifecycleHooks struct {
	OnDispatch func(context.Context, *DispatchEvent)
	OnApplied  func(context.Context, *DispatchEvent)
	OnRejected func(context.Context, *DispatchEvent)
}

// Merge combines two hook sets; both callbacks run, h first.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnDispatch: chain(h.OnDispatch, other.OnDispatch),
		OnApplied:  chain(h.OnApplied, other.OnApplied),
		OnRejected: chain(h.OnRejected, other.OnRejected),
	}
}

func chain(a, b func(context.Context, *DispatchEvent)) func(context.Context, *DispatchEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *DispatchEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
