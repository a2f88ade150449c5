package nlu

import (
	"context"
	"time"
)

// Exchange is one completed user/engine turn kept for extraction context.
type Exchange struct {
	Utterance string
	Intent    Intent
	Response  string
}

// Context is everything the collaborator gets to see besides the latest
// utterance: where and when the user is, what was said before, and which
// details were already gathered.
type Context struct {
	Timezone string
	Now      time.Time
	History  []Exchange
	Partial  Entities
}

// Result is a single extraction outcome.
type Result struct {
	Intent   Intent
	Entities Entities

	// Reply optionally carries a collaborator-authored message to relay to
	// the user, e.g. when the utterance could not be interpreted at all.
	Reply string
}

// Extractor turns a raw utterance into an intent and entities. Extraction
// failures are returned as errors; the engine degrades to a generic
// clarification prompt rather than guessing.
type Extractor interface {
	Extract(ctx context.Context, utterance string, conversation Context) (Result, error)
}
