package calendar

import (
	"context"
	"time"
)

// Client is the calendar collaborator boundary. Implementations wrap a
// concrete backend (Google Calendar, CalDAV, an in-memory fake in tests);
// the engine only ever sees Event snapshots and Refs.
type Client interface {
	// ListEvents returns event snapshots overlapping [windowStart, windowEnd),
	// ordered by start time. Timezone names the zone the caller is working
	// in, for backends that localize responses.
	ListEvents(ctx context.Context, windowStart, windowEnd time.Time, timezone string) ([]Event, error)

	CreateEvent(ctx context.Context, title string, interval Interval, timezone string, attendees []string) (Ref, error)

	PatchEvent(ctx context.Context, id string, interval Interval, timezone string) (Ref, error)

	DeleteEvent(ctx context.Context, id string) (bool, error)
}
