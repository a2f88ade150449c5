package orchestration

import (
	"errors"
	"sync"
	"time"

	"github.com/Dikshant67/voice-scheduling-agent/core/calendar"
	"github.com/Dikshant67/voice-scheduling-agent/core/nlu"
)

var ErrSessionClosed = errors.New("session is closed")

// State is the conversation phase a session is in.
type State string

const (
	// StateCollecting gathers meeting details across turns.
	StateCollecting State = "collecting"
	// StateScheduling is the transient phase while the calendar is checked
	// and the booking attempted.
	StateScheduling State = "scheduling"
	// StateAwaitingSelection means alternatives were offered and the next
	// utterance is interpreted as a choice among them.
	StateAwaitingSelection State = "awaiting_selection"
	// StateScheduled means the last request completed; the session accepts
	// fresh requests from here.
	StateScheduled State = "scheduled"
)

// conflictAction distinguishes what a pending selection will book.
type conflictAction string

const (
	conflictActionSchedule   conflictAction = "schedule"
	conflictActionReschedule conflictAction = "reschedule"
)

// conflictState is the transient context of an open conflict dialog.
type conflictState struct {
	action      conflictAction
	title       string
	timezone    string
	duration    time.Duration
	requested   calendar.Interval
	suggestions []calendar.Slot
	attendees   []string

	// eventID is set for reschedules: the event being moved, excluded from
	// revalidation so it cannot conflict with itself.
	eventID string
}

// Session is the per-user conversation state. All turn processing for a
// session is serialized through its mutex; concurrent utterances from the
// same user are handled one at a time in arrival order.
type Session struct {
	mu sync.Mutex

	id        string
	state     State
	entities  nlu.Entities
	history   []nlu.Exchange
	conflict  *conflictState
	retries   int
	closed    bool
	createdAt time.Time
	updatedAt time.Time
}

func (s *Session) ID() string {
	return s.id
}

// State returns the current conversation phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(next State) {
	s.state = next
}

// transition moves the session to next and reports the previous state.
// Callers hold the session mutex.
func (s *Session) transition(next State) (State, State) {
	previous := s.state
	s.state = next
	return previous, next
}

// remember appends a completed exchange, bounding history growth so
// long-lived sessions do not accumulate without limit.
func (s *Session) remember(exchange nlu.Exchange) {
	const maxHistory = 20
	s.history = append(s.history, exchange)
	if len(s.history) > maxHistory {
		s.history = s.history[len(s.history)-maxHistory:]
	}
}

// clearRequest drops the request-scoped state after a completed booking,
// keeping history so follow-up requests stay contextual.
func (s *Session) clearRequest() {
	s.entities = nlu.Entities{}
	s.conflict = nil
	s.retries = 0
}

// abandonConflict closes the conflict dialog but keeps gathered entities,
// so the user can adjust details instead of starting over.
func (s *Session) abandonConflict() {
	s.conflict = nil
	s.retries = 0
}
