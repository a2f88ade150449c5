package calendar

import "time"

// DefaultBuffer is the minimum gap enforced around existing events when
// checking a candidate interval for conflicts.
const DefaultBuffer = 15 * time.Minute

// HasConflict reports whether candidate intersects any existing event once
// each event's interval is expanded by buffer on both ends. Events missing
// either bound are skipped. The check is side-effect free, deterministic,
// and linear in the number of events.
func HasConflict(existing []Event, candidate Interval, buffer time.Duration) bool {
	for _, event := range existing {
		if event.Malformed() {
			continue
		}
		if candidate.OverlapsBuffered(event.Interval(), buffer) {
			return true
		}
	}
	return false
}
