package orchestration

import (
	"context"
	"time"

	"github.com/Dikshant67/voice-scheduling-agent/core/config"
	"github.com/Dikshant67/voice-scheduling-agent/core/events"
	"github.com/Dikshant67/voice-scheduling-agent/core/nlu"
	"github.com/Dikshant67/voice-scheduling-agent/core/texttospeech"
)

type ControllerOption func(*Controller)

// WithExtractor sets the entity extraction collaborator. Without one the
// controller can only process turns whose intent and entities were resolved
// upstream.
func WithExtractor(extractor nlu.Extractor) ControllerOption {
	return func(c *Controller) {
		c.extractor = extractor
	}
}

// Synthesizer renders reply text to speech audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, opts ...texttospeech.SynthesisOption) ([]byte, error)
}

// WithSynthesizer makes the controller attach spoken audio to every turn
// output. Synthesis failures degrade to text-only replies.
func WithSynthesizer(synthesizer Synthesizer) ControllerOption {
	return func(c *Controller) {
		c.synthesizer = synthesizer
	}
}

// WithEventHandler receives every event the controller emits, in the order
// the engine produced them.
func WithEventHandler(handler func(events.Event)) ControllerOption {
	return func(c *Controller) {
		c.onEvent = handler
	}
}

func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithConflictBuffer pads both sides of every event during conflict checks.
func WithConflictBuffer(buffer time.Duration) ControllerOption {
	return func(c *Controller) {
		if buffer >= 0 {
			c.buffer = buffer
		}
	}
}

// WithDefaultDuration applies when the user gives only a start time.
func WithDefaultDuration(duration time.Duration) ControllerOption {
	return func(c *Controller) {
		if duration > 0 {
			c.defaultDuration = duration
		}
	}
}

func WithMaxSuggestions(max int) ControllerOption {
	return func(c *Controller) {
		if max > 0 {
			c.maxSuggestions = max
		}
	}
}

// WithRetryLimit caps re-prompts within one conflict dialog before the
// controller gives up and returns to collecting details.
func WithRetryLimit(limit int) ControllerOption {
	return func(c *Controller) {
		if limit > 0 {
			c.retryLimit = limit
		}
	}
}

// WithDefaultTimezone is assumed for users that never state a timezone.
func WithDefaultTimezone(timezone string) ControllerOption {
	return func(c *Controller) {
		if timezone != "" {
			c.defaultTimezone = timezone
		}
	}
}

// WithConfig applies the engine tunables from a loaded configuration.
func WithConfig(cfg config.Config) ControllerOption {
	return func(c *Controller) {
		WithConflictBuffer(cfg.ConflictBuffer)(c)
		WithDefaultDuration(cfg.DefaultMeetingDuration)(c)
		WithMaxSuggestions(cfg.MaxSuggestions)(c)
		WithRetryLimit(cfg.SelectionRetryLimit)(c)
		WithDefaultTimezone(cfg.DefaultTimezone)(c)
	}
}
