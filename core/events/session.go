package events

const (
	// KindSessionStarted identifies a newly opened conversation session.
	KindSessionStarted Kind = "session.started"
	// KindSessionStateChanged identifies a conversation state transition.
	KindSessionStateChanged Kind = "session.state_changed"
	// KindSessionClosed identifies the end of a session.
	KindSessionClosed Kind = "session.closed"
)

// SessionStarted marks a newly opened conversation session.
type SessionStarted struct {
	Base
	SessionID string
}

// NewSessionStarted creates a session started event.
func NewSessionStarted(sessionID string) SessionStarted {
	return SessionStarted{Base: NewBase(KindSessionStarted), SessionID: sessionID}
}

// SessionStateChanged reports a conversation state transition.
type SessionStateChanged struct {
	Base
	SessionID string
	From      string
	To        string
}

// NewSessionStateChanged creates a session state transition event.
func NewSessionStateChanged(sessionID, from, to string) SessionStateChanged {
	return SessionStateChanged{Base: NewBase(KindSessionStateChanged), SessionID: sessionID, From: from, To: to}
}

// SessionClosed marks the end of a session; its transient conversation
// state is discarded at this point.
type SessionClosed struct {
	Base
	SessionID string
}

// NewSessionClosed creates a session closed event.
func NewSessionClosed(sessionID string) SessionClosed {
	return SessionClosed{Base: NewBase(KindSessionClosed), SessionID: sessionID}
}
