package orchestration

import (
	"time"

	"github.com/Dikshant67/voice-scheduling-agent/core/calendar"
	"github.com/Dikshant67/voice-scheduling-agent/core/events"
	"github.com/Dikshant67/voice-scheduling-agent/core/nlu"
)

// Controller drives scheduling conversations against a calendar. It is
// stateless across turns except for what lives in each Session, so one
// controller serves any number of concurrent sessions.
type Controller struct {
	calendar    calendar.Client
	extractor   nlu.Extractor
	synthesizer Synthesizer
	suggester   *calendar.Suggester
	matcher     *calendar.Matcher
	registry    *Registry

	buffer          time.Duration
	defaultDuration time.Duration
	maxSuggestions  int
	retryLimit      int
	defaultTimezone string

	now     func() time.Time
	onEvent func(events.Event)
}

const (
	defaultMeetingDuration = time.Hour
	defaultMaxSuggestions  = 3
	defaultRetryLimit      = 5
)

func NewController(calendarClient calendar.Client, opts ...ControllerOption) *Controller {
	c := &Controller{
		calendar:        calendarClient,
		buffer:          calendar.DefaultBuffer,
		defaultDuration: defaultMeetingDuration,
		maxSuggestions:  defaultMaxSuggestions,
		retryLimit:      defaultRetryLimit,
		defaultTimezone: "UTC",
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.suggester = calendar.NewSuggester(calendarClient,
		calendar.WithSuggesterBuffer(c.buffer),
		calendar.WithSuggesterClock(c.now),
	)
	c.matcher = calendar.NewMatcher(calendar.WithMatcherClock(c.now))
	c.registry = NewRegistry(
		WithRegistryClock(c.now),
		WithRegistryEventHandler(c.emit),
	)
	return c
}

// Sessions exposes the session registry for opening, closing, and
// inspecting conversations.
func (c *Controller) Sessions() *Registry {
	return c.registry
}

func (c *Controller) emit(event events.Event) {
	if c.onEvent != nil {
		c.onEvent(event)
	}
}
