package events

import "time"

// Kind names an event type, namespaced by the part of the engine that
// emits it (for example "scheduling.conflict_detected").
type Kind string

// Event is the contract every emitted event satisfies. Handlers switch on
// the concrete type or on Kind, whichever reads better at the call site.
type Event interface {
	Kind() Kind
	Timestamp() time.Time
}

// Base supplies the Kind and Timestamp methods for concrete events. Embed
// it and initialize it through NewBase so the emission time is always set.
type Base struct {
	kind      Kind
	timestamp time.Time
}

// NewBase stamps a base with the given kind and the current time.
func NewBase(kind Kind) Base {
	return Base{kind: kind, timestamp: time.Now()}
}

func (b Base) Kind() Kind { return b.kind }

func (b Base) Timestamp() time.Time { return b.timestamp }
