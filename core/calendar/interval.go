package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidInterval = errors.New("interval start must precede end")

// Interval is a half-open time window [Start, End). Both bounds carry an
// explicit location; see ParseEventTime for how collaborator payloads are
// validated.
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, fmt.Errorf("%w: start=%s end=%s", ErrInvalidInterval, start, end)
	}
	return Interval{Start: start, End: end}, nil
}

// IntervalStarting builds an interval of the given duration.
func IntervalStarting(start time.Time, duration time.Duration) Interval {
	return Interval{Start: start, End: start.Add(duration)}
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// In shifts both bounds into loc without changing the instants they denote.
func (i Interval) In(loc *time.Location) Interval {
	return Interval{Start: i.Start.In(loc), End: i.End.In(loc)}
}

// OverlapsBuffered reports whether i intersects other once other has been
// expanded by buffer on both ends. The intervals are disjoint only when
// i.End <= other.Start-buffer or i.Start >= other.End+buffer.
func (i Interval) OverlapsBuffered(other Interval, buffer time.Duration) bool {
	return !(!i.End.After(other.Start.Add(-buffer)) ||
		!i.Start.Before(other.End.Add(buffer)))
}

// ParseEventTime parses a timestamp string from the calendar collaborator.
// Payloads use RFC 3339 with either a "Z" suffix or a numeric offset;
// offset-less timestamps are rejected as malformed.
func ParseEventTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty event timestamp")
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed event timestamp %q: %w", value, err)
	}
	return parsed, nil
}
