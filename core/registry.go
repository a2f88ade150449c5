package orchestration

import (
	"context"
	"sync"
	"time"

	"github.com/Dikshant67/voice-scheduling-agent/core/events"
	"github.com/Dikshant67/voice-scheduling-agent/core/nlu"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// Registry tracks the sessions of concurrently connected users. Sessions
// are identified by generated IDs and discarded wholesale on close; nothing
// conversational survives a disconnect.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	now     func() time.Time
	onEvent func(events.Event)
}

type RegistryOption func(*Registry)

func WithRegistryClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithRegistryEventHandler receives session lifecycle events.
func WithRegistryEventHandler(handler func(events.Event)) RegistryOption {
	return func(r *Registry) {
		r.onEvent = handler
	}
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		sessions: map[string]*Session{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) emit(event events.Event) {
	if r.onEvent != nil {
		r.onEvent(event)
	}
}

// Open creates a fresh session in the collecting state.
func (r *Registry) Open(ctx context.Context) *Session {
	_, span := tracer.Start(ctx, "open session")
	defer span.End()

	now := r.now()
	session := &Session{
		id:        uuid.NewString(),
		state:     StateCollecting,
		createdAt: now,
		updatedAt: now,
	}

	r.mu.Lock()
	r.sessions[session.id] = session
	r.mu.Unlock()

	logger.InfoContext(ctx, "session opened", "session_id", session.id)
	r.emit(events.NewSessionStarted(session.id))
	return session
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	return session, ok
}

// Close discards a session and everything it has gathered. Closing an
// unknown or already closed session is a no-op.
func (r *Registry) Close(ctx context.Context, id string) {
	r.mu.Lock()
	session, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return
	}

	session.mu.Lock()
	session.closed = true
	session.mu.Unlock()

	logger.InfoContext(ctx, "session closed", "session_id", id)
	r.emit(events.NewSessionClosed(id))
}

// Len reports how many sessions are currently open.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// SessionSnapshot is a detached copy of a session's observable state, safe
// to inspect without holding any locks.
type SessionSnapshot struct {
	ID        string
	State     State
	Entities  nlu.Entities
	History   []nlu.Exchange
	Retries   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snapshot deep-copies a session's observable state for introspection.
func (r *Registry) Snapshot(id string) (SessionSnapshot, bool) {
	session, ok := r.Get(id)
	if !ok {
		return SessionSnapshot{}, false
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	snapshot := SessionSnapshot{
		ID:        session.id,
		State:     session.state,
		Retries:   session.retries,
		CreatedAt: session.createdAt,
		UpdatedAt: session.updatedAt,
	}
	if err := copier.CopyWithOption(&snapshot.Entities, &session.entities, copier.Option{DeepCopy: true}); err != nil {
		return SessionSnapshot{}, false
	}
	if err := copier.CopyWithOption(&snapshot.History, &session.history, copier.Option{DeepCopy: true}); err != nil {
		return SessionSnapshot{}, false
	}
	return snapshot, true
}

// Snapshots lists detached copies of every open session.
func (r *Registry) Snapshots() []SessionSnapshot {
	r.mu.RLock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	snapshots := make([]SessionSnapshot, 0, len(ids))
	for _, id := range ids {
		if snapshot, ok := r.Snapshot(id); ok {
			snapshots = append(snapshots, snapshot)
		}
	}
	return snapshots
}
