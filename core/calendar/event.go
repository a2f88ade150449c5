package calendar

import "time"

// Event is an immutable snapshot of an existing calendar event, refetched
// per query rather than cached, so conflict checks never run against stale
// state.
type Event struct {
	ID    string
	Title string
	Start time.Time
	End   time.Time

	Organizer string
	Attendees []string
	Link      string
	Status    string
}

// Malformed reports whether the event is missing either bound. All-day
// events arrive from the collaborator without concrete timestamps and are
// skipped by conflict checks and slot sweeps.
func (e Event) Malformed() bool {
	return e.Start.IsZero() || e.End.IsZero()
}

func (e Event) Interval() Interval {
	return Interval{Start: e.Start, End: e.End}
}

// Ref identifies an event created or updated on the backing calendar.
type Ref struct {
	ID   string
	Link string
}
