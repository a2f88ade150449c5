package calendar

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"go.opentelemetry.io/otel/attribute"
)

// ConfidenceThreshold is the similarity score (0..100) under which a fuzzy
// title match is flagged as low confidence. The match is still returned;
// callers decide whether to ask for confirmation.
const ConfidenceThreshold = 75

// flexibleSearchWindow bounds the lookup when the user gave no date at all.
const flexibleSearchWindow = 30 * 24 * time.Hour

// Match is the outcome of a fuzzy event lookup.
type Match struct {
	Event Event
	// Score is the normalized title similarity (0..100). 100 when the
	// lookup was by time proximity alone.
	Score         int
	LowConfidence bool
}

// Matcher resolves informal event references ("the sync with John") to
// concrete events by approximate title similarity and time proximity.
type Matcher struct {
	similarity *metrics.Levenshtein
	now        func() time.Time
}

type MatcherOption func(*Matcher)

func WithMatcherClock(now func() time.Time) MatcherOption {
	return func(m *Matcher) {
		if now != nil {
			m.now = now
		}
	}
}

func NewMatcher(opts ...MatcherOption) *Matcher {
	m := &Matcher{
		similarity: metrics.NewLevenshtein(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FindByDescription picks the best match for an approximate title and/or
// target time among the given events. The caller supplies the search window
// by choosing which events to pass in.
//
// Without a title the event starting closest to targetTime wins (closest to
// "now" when targetTime is zero). With a title, events are ranked by
// similarity score, ties broken by proximity to targetTime, and the top
// match is returned unconditionally, flagged when it scores below
// ConfidenceThreshold.
func (m *Matcher) FindByDescription(events []Event, title string, targetTime time.Time) (Match, bool) {
	if targetTime.IsZero() {
		targetTime = m.now()
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return m.closestTo(events, targetTime)
	}

	type scored struct {
		score int
		event Event
	}
	query := strings.ToLower(title)
	candidates := make([]scored, 0, len(events))
	for _, event := range events {
		eventTitle := strings.TrimSpace(event.Title)
		if eventTitle == "" {
			continue
		}
		score := int(strutil.Similarity(query, strings.ToLower(eventTitle), m.similarity) * 100)
		candidates = append(candidates, scored{score: score, event: event})
	}
	if len(candidates) == 0 {
		return Match{}, false
	}

	slices.SortStableFunc(candidates, func(a, b scored) int {
		if a.score != b.score {
			return b.score - a.score
		}
		distA := absDuration(a.event.Start.Sub(targetTime))
		distB := absDuration(b.event.Start.Sub(targetTime))
		return int(distA - distB)
	})

	best := candidates[0]
	if best.score < ConfidenceThreshold {
		logger.Warn("low confidence event match",
			"query", title, "matched", best.event.Title, "score", best.score)
	}
	return Match{
		Event:         best.event,
		Score:         best.score,
		LowConfidence: best.score < ConfidenceThreshold,
	}, true
}

// FindUpcoming resolves an event reference when no date is known: it scans
// the next thirty days and prefers, in order, the best fuzzy title match
// (soonest upcoming on ties), the future event closest to a given
// time-of-day today, or simply the next upcoming event.
func (m *Matcher) FindUpcoming(ctx context.Context, client Client, title, timeOfDay string, loc *time.Location) (Match, bool, error) {
	ctx, span := tracer.Start(ctx, "find upcoming event")
	defer span.End()
	span.SetAttributes(attribute.String("request.title", title))

	now := m.now().In(loc)
	events, err := client.ListEvents(ctx, now, now.Add(flexibleSearchWindow), loc.String())
	if err != nil {
		span.RecordError(err)
		return Match{}, false, fmt.Errorf("failed to list events for flexible lookup: %w", err)
	}
	if len(events) == 0 {
		return Match{}, false, nil
	}

	if strings.TrimSpace(title) != "" {
		match, ok := m.FindByDescription(events, title, now)
		return match, ok, nil
	}

	future := make([]Event, 0, len(events))
	for _, event := range events {
		if !event.Malformed() && !event.Start.Before(now) {
			future = append(future, event)
		}
	}
	if len(future) == 0 {
		return Match{}, false, nil
	}

	if strings.TrimSpace(timeOfDay) != "" {
		target := now
		if normalized, err := To24Hour(timeOfDay); err == nil {
			if at, err := At(now.Format("2006-01-02"), normalized, loc); err == nil {
				target = at
			}
		}
		match, ok := m.closestTo(future, target)
		return match, ok, nil
	}

	slices.SortStableFunc(future, func(a, b Event) int {
		return a.Start.Compare(b.Start)
	})
	return Match{Event: future[0], Score: 100}, true, nil
}

func (m *Matcher) closestTo(events []Event, targetTime time.Time) (Match, bool) {
	var (
		best  Event
		found bool
	)
	for _, event := range events {
		if event.Malformed() {
			continue
		}
		if !found || absDuration(event.Start.Sub(targetTime)) < absDuration(best.Start.Sub(targetTime)) {
			best = event
			found = true
		}
	}
	if !found {
		return Match{}, false
	}
	return Match{Event: best, Score: 100}, true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
