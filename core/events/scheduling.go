package events

import (
	"github.com/Dikshant67/voice-scheduling-agent/core/calendar"
	"github.com/Dikshant67/voice-scheduling-agent/core/nlu"
)

const (
	// KindConflictDetected identifies a requested slot colliding with
	// existing events.
	KindConflictDetected Kind = "scheduling.conflict_detected"
	// KindSuggestionsOffered identifies alternatives presented to the user.
	KindSuggestionsOffered Kind = "scheduling.suggestions_offered"
	// KindSelectionAccepted identifies the user picking an offered slot.
	KindSelectionAccepted Kind = "scheduling.selection_accepted"
	// KindSelectionRejected identifies the user declining all offered slots.
	KindSelectionRejected Kind = "scheduling.selection_rejected"
	// KindSelectionRetry identifies an uninterpretable selection utterance.
	KindSelectionRetry Kind = "scheduling.selection_retry"
	// KindClarificationRequested identifies a request for missing details.
	KindClarificationRequested Kind = "scheduling.clarification_requested"
	// KindMeetingScheduled identifies a booked meeting.
	KindMeetingScheduled Kind = "scheduling.meeting_scheduled"
	// KindMeetingCancelled identifies a removed meeting.
	KindMeetingCancelled Kind = "scheduling.meeting_cancelled"
	// KindMeetingRescheduled identifies a meeting moved to a new slot.
	KindMeetingRescheduled Kind = "scheduling.meeting_rescheduled"
)

// ConflictDetected reports that the requested interval collided with one
// or more existing events.
type ConflictDetected struct {
	Base
	Requested   calendar.Interval
	Conflicting []calendar.Event
}

// NewConflictDetected creates a conflict detected event.
func NewConflictDetected(requested calendar.Interval, conflicting []calendar.Event) ConflictDetected {
	return ConflictDetected{Base: NewBase(KindConflictDetected), Requested: requested, Conflicting: conflicting}
}

// SuggestionsOffered carries the alternative slots spoken to the user, in
// the order they were numbered.
type SuggestionsOffered struct {
	Base
	Suggestions []calendar.Slot
}

// NewSuggestionsOffered creates a suggestions offered event.
func NewSuggestionsOffered(suggestions []calendar.Slot) SuggestionsOffered {
	return SuggestionsOffered{Base: NewBase(KindSuggestionsOffered), Suggestions: suggestions}
}

// SelectionAccepted reports which offered slot the user picked. Index is
// one-based, matching how the options were spoken.
type SelectionAccepted struct {
	Base
	Index int
	Slot  calendar.Slot
}

// NewSelectionAccepted creates a selection accepted event.
func NewSelectionAccepted(index int, slot calendar.Slot) SelectionAccepted {
	return SelectionAccepted{Base: NewBase(KindSelectionAccepted), Index: index, Slot: slot}
}

// SelectionRejected marks the user declining all offered slots.
type SelectionRejected struct{ Base }

// NewSelectionRejected creates a selection rejected event.
func NewSelectionRejected() SelectionRejected {
	return SelectionRejected{Base: NewBase(KindSelectionRejected)}
}

// SelectionRetry reports an uninterpretable selection utterance; Attempt
// counts consecutive failures within the same conflict dialog.
type SelectionRetry struct {
	Base
	Attempt int
}

// NewSelectionRetry creates a selection retry event.
func NewSelectionRetry(attempt int) SelectionRetry {
	return SelectionRetry{Base: NewBase(KindSelectionRetry), Attempt: attempt}
}

// ClarificationRequested reports which meeting details are still missing.
type ClarificationRequested struct {
	Base
	Missing []nlu.Field
}

// NewClarificationRequested creates a clarification requested event.
func NewClarificationRequested(missing []nlu.Field) ClarificationRequested {
	return ClarificationRequested{Base: NewBase(KindClarificationRequested), Missing: missing}
}

// MeetingScheduled reports a successful booking.
type MeetingScheduled struct {
	Base
	Title    string
	Ref      calendar.Ref
	Interval calendar.Interval
}

// NewMeetingScheduled creates a meeting scheduled event.
func NewMeetingScheduled(title string, ref calendar.Ref, interval calendar.Interval) MeetingScheduled {
	return MeetingScheduled{Base: NewBase(KindMeetingScheduled), Title: title, Ref: ref, Interval: interval}
}

// MeetingCancelled reports a removed meeting.
type MeetingCancelled struct {
	Base
	ID    string
	Title string
}

// NewMeetingCancelled creates a meeting cancelled event.
func NewMeetingCancelled(id, title string) MeetingCancelled {
	return MeetingCancelled{Base: NewBase(KindMeetingCancelled), ID: id, Title: title}
}

// MeetingRescheduled reports a meeting moved to a new slot.
type MeetingRescheduled struct {
	Base
	Title    string
	Ref      calendar.Ref
	Interval calendar.Interval
}

// NewMeetingRescheduled creates a meeting rescheduled event.
func NewMeetingRescheduled(title string, ref calendar.Ref, interval calendar.Interval) MeetingRescheduled {
	return MeetingRescheduled{Base: NewBase(KindMeetingRescheduled), Title: title, Ref: ref, Interval: interval}
}
