package calendar

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// Strategy labels which heuristic produced a suggested slot.
type Strategy string

const (
	StrategyNextAvailable    Strategy = "next_available"
	StrategyEarlierSameDay   Strategy = "earlier_same_day"
	StrategyNextDaySameTime  Strategy = "next_day_same_time"
	StrategyNextDayAvailable Strategy = "next_day_available"
	StrategyCommonTime       Strategy = "common_time"
)

// Slot is a candidate interval proposed as an alternative to a conflicting
// request. Slots are generated fresh per conflict and never persisted.
type Slot struct {
	Interval    Interval
	Strategy    Strategy
	Description string
}

// commonHours are popular meeting hours tried by the common_time strategy,
// in preference order.
var commonHours = []int{10, 14, 16}

// workdayStartHour bounds the earlier_same_day search.
const workdayStartHour = 9

// Suggester generates ranked alternative slots around a conflicting
// request. The ranking is a fixed strategy order rather than an
// optimization search: the consumer is a spoken dialog, so the option list
// must stay small, stable, and explainable.
type Suggester struct {
	client Client
	buffer time.Duration
	now    func() time.Time
}

type SuggesterOption func(*Suggester)

func WithSuggesterBuffer(buffer time.Duration) SuggesterOption {
	return func(s *Suggester) {
		if buffer >= 0 {
			s.buffer = buffer
		}
	}
}

// WithSuggesterClock overrides the wall clock, used by the common_time
// strategy to discard past hours.
func WithSuggesterClock(now func() time.Time) SuggesterOption {
	return func(s *Suggester) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSuggester creates a suggester. The client is only used to look at the
// following day's events for the next_day strategies; it may be nil, in
// which case those strategies are skipped.
func NewSuggester(client Client, opts ...SuggesterOption) *Suggester {
	s := &Suggester{
		client: client,
		buffer: DefaultBuffer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Suggest runs the strategies in priority order, deduplicates by start
// minute, and stops once maxSuggestions unique conflict-free slots are
// collected.
//
// Order: next_available (always yields one), earlier_same_day (bounded to
// the 09:00..desiredStart window), next_day_same_time falling back to
// next_day_available, then common_time over the popular-hour set.
func (s *Suggester) Suggest(ctx context.Context, existing []Event, desiredStart time.Time, duration time.Duration, maxSuggestions int) []Slot {
	ctx, span := tracer.Start(ctx, "suggest slots")
	defer span.End()
	span.SetAttributes(
		attribute.String("request.desired_start", desiredStart.Format(time.RFC3339)),
		attribute.Int("request.max_suggestions", maxSuggestions),
	)

	if maxSuggestions <= 0 {
		return nil
	}

	collected := make([]Slot, 0, maxSuggestions)
	seen := map[string]struct{}{}

	add := func(slot Slot, against []Event) bool {
		if len(collected) >= maxSuggestions {
			return false
		}
		key := slot.Interval.Start.Format("2006-01-02 15:04")
		if _, dup := seen[key]; dup {
			return false
		}
		if HasConflict(against, slot.Interval, s.buffer) {
			return false
		}
		seen[key] = struct{}{}
		collected = append(collected, slot)
		return true
	}

	// Strategy 1: first gap at or after the requested time.
	next := NextAvailable(existing, desiredStart, duration, s.buffer)
	add(Slot{
		Interval:    IntervalStarting(next, duration),
		Strategy:    StrategyNextAvailable,
		Description: "Next available time slot",
	}, existing)

	// Strategy 2: a gap earlier the same day, no earlier than the start of
	// the working day.
	dayStart := time.Date(desiredStart.Year(), desiredStart.Month(), desiredStart.Day(),
		workdayStartHour, 0, 0, 0, desiredStart.Location())
	if dayStart.Before(desiredStart) && len(collected) < maxSuggestions {
		if earlier, ok := availableInRange(existing, dayStart, desiredStart, duration, s.buffer); ok {
			add(Slot{
				Interval:    IntervalStarting(earlier, duration),
				Strategy:    StrategyEarlierSameDay,
				Description: "Earlier the same day",
			}, existing)
		}
	}

	// Strategy 3: same time tomorrow, checked against tomorrow's events,
	// falling back to tomorrow's first open gap.
	if s.client != nil && len(collected) < maxSuggestions {
		nextDay := desiredStart.Add(24 * time.Hour)
		nextDayEvents, err := s.client.ListEvents(ctx, nextDay, nextDay.Add(12*time.Hour), desiredStart.Location().String())
		if err != nil {
			span.RecordError(fmt.Errorf("failed to list next-day events: %w", err))
			logger.WarnContext(ctx, "skipping next-day suggestion strategies", "error", err)
		} else if !HasConflict(nextDayEvents, IntervalStarting(nextDay, duration), s.buffer) {
			add(Slot{
				Interval:    IntervalStarting(nextDay, duration),
				Strategy:    StrategyNextDaySameTime,
				Description: "Same time tomorrow",
			}, nextDayEvents)
		} else {
			open := NextAvailable(nextDayEvents, nextDay, duration, s.buffer)
			add(Slot{
				Interval:    IntervalStarting(open, duration),
				Strategy:    StrategyNextDayAvailable,
				Description: "Next available slot tomorrow",
			}, nextDayEvents)
		}
	}

	// Strategy 4: popular meeting hours on the requested day, future-only,
	// skipping the hour that was asked for in the first place.
	now := s.now().In(desiredStart.Location())
	for _, hour := range commonHours {
		if len(collected) >= maxSuggestions {
			break
		}
		commonStart := time.Date(desiredStart.Year(), desiredStart.Month(), desiredStart.Day(),
			hour, 0, 0, 0, desiredStart.Location())
		if commonStart.Equal(desiredStart) || !commonStart.After(now) {
			continue
		}
		add(Slot{
			Interval:    IntervalStarting(commonStart, duration),
			Strategy:    StrategyCommonTime,
			Description: fmt.Sprintf("Popular meeting time (%s)", commonStart.Format("03:04 PM")),
		}, existing)
	}

	span.SetAttributes(attribute.Int("response.suggestions", len(collected)))
	return collected
}

// NextAvailable sweeps the events in start order with a cursor initialized
// to desiredStart: a slot is returned as soon as it fits before the next
// event's buffered start, otherwise the cursor advances past the event's
// buffered end. With no remaining conflicts the cursor lands after the last
// event, so the sweep always yields a result.
func NextAvailable(existing []Event, desiredStart time.Time, duration, buffer time.Duration) time.Time {
	cursor := desiredStart
	for _, event := range sortedByStart(existing) {
		if cursor.Add(duration).Compare(event.Start.Add(-buffer)) <= 0 {
			return cursor
		}
		if buffered := event.End.Add(buffer); buffered.After(cursor) {
			cursor = buffered
		}
	}
	return cursor
}

// availableInRange runs the same sweep restricted to [rangeStart,
// rangeEnd); unlike NextAvailable it may find nothing when the window is
// fully booked.
func availableInRange(existing []Event, rangeStart, rangeEnd time.Time, duration, buffer time.Duration) (time.Time, bool) {
	cursor := rangeStart
	for _, event := range sortedByStart(existing) {
		if !event.End.After(rangeStart) || !event.Start.Before(rangeEnd) {
			continue
		}
		if cursor.Add(duration).Compare(event.Start.Add(-buffer)) <= 0 &&
			cursor.Add(duration).Compare(rangeEnd) <= 0 {
			return cursor, true
		}
		if buffered := event.End.Add(buffer); buffered.After(cursor) {
			cursor = buffered
		}
	}

	if cursor.Add(duration).Compare(rangeEnd) <= 0 {
		return cursor, true
	}
	return time.Time{}, false
}

func sortedByStart(events []Event) []Event {
	wellFormed := make([]Event, 0, len(events))
	for _, event := range events {
		if !event.Malformed() {
			wellFormed = append(wellFormed, event)
		}
	}
	slices.SortStableFunc(wellFormed, func(a, b Event) int {
		return a.Start.Compare(b.Start)
	})
	return wellFormed
}
