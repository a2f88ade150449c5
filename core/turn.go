package orchestration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Dikshant67/voice-scheduling-agent/core/calendar"
	"github.com/Dikshant67/voice-scheduling-agent/core/events"
	"github.com/Dikshant67/voice-scheduling-agent/core/nlu"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// TurnOutput is everything a transport needs to answer one utterance.
type TurnOutput struct {
	// Prompt is the engine's reply, phrased for speech.
	Prompt string
	// State is the session's conversation phase after the turn.
	State State
	// Booking is set when the turn created or moved a calendar event.
	Booking *calendar.Ref
	// Audio carries the synthesized prompt when a synthesizer is
	// configured; nil otherwise or when synthesis failed.
	Audio []byte
}

// ProcessTurn interprets one utterance within a session and advances the
// conversation. Turns within a session are serialized; concurrent calls
// for the same session block until the previous turn finishes.
func (c *Controller) ProcessTurn(ctx context.Context, session *Session, utterance string) (TurnOutput, error) {
	ctx, span := tracer.Start(ctx, "process turn")
	defer span.End()

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.closed {
		span.SetStatus(codes.Error, ErrSessionClosed.Error())
		return TurnOutput{}, ErrSessionClosed
	}
	span.SetAttributes(
		attribute.String("session.id", session.id),
		attribute.String("session.state", string(session.state)),
	)

	prompt, intent, booking := c.handleUtterance(ctx, session, utterance)

	session.remember(nlu.Exchange{Utterance: utterance, Intent: intent, Response: prompt})
	session.updatedAt = c.now()
	c.emit(events.NewAssistantPrompt(prompt))
	span.SetAttributes(attribute.String("response.state", string(session.state)))

	output := TurnOutput{Prompt: prompt, State: session.state, Booking: booking}
	output.Audio = c.synthesize(ctx, prompt)
	return output, nil
}

// Greet produces the session's opening prompt without consuming a turn.
func (c *Controller) Greet(ctx context.Context, session *Session) (TurnOutput, error) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed {
		return TurnOutput{}, ErrSessionClosed
	}

	prompt := greetingPrompt()
	c.emit(events.NewAssistantPrompt(prompt))
	return TurnOutput{
		Prompt: prompt,
		State:  session.state,
		Audio:  c.synthesize(ctx, prompt),
	}, nil
}

func (c *Controller) synthesize(ctx context.Context, prompt string) []byte {
	if c.synthesizer == nil {
		return nil
	}
	audio, err := c.synthesizer.Synthesize(ctx, prompt)
	if err != nil {
		logger.WarnContext(ctx, "speech synthesis failed, replying with text only", "error", err)
		return nil
	}
	c.emit(events.NewAssistantSpeechFinal())
	return audio
}

func (c *Controller) handleUtterance(ctx context.Context, session *Session, utterance string) (string, nlu.Intent, *calendar.Ref) {
	if session.state == StateAwaitingSelection && session.conflict != nil {
		return c.handleSelection(ctx, session, utterance)
	}

	if c.extractor == nil {
		return misheardPrompt(), nlu.IntentOther, nil
	}

	result, err := c.extractor.Extract(ctx, utterance, nlu.Context{
		Timezone: c.timezoneOrDefault(session.entities.Timezone),
		Now:      c.now(),
		History:  session.history,
		Partial:  session.entities,
	})
	if err != nil {
		logger.WarnContext(ctx, "entity extraction failed", "error", err)
		return misheardPrompt(), nlu.IntentOther, nil
	}

	session.entities = session.entities.Merge(result.Entities)

	switch result.Intent {
	case nlu.IntentScheduleMeeting:
		prompt, booking := c.handleSchedule(ctx, session)
		return prompt, result.Intent, booking
	case nlu.IntentCancelMeeting:
		return c.handleCancel(ctx, session), result.Intent, nil
	case nlu.IntentRescheduleMeeting:
		prompt, booking := c.handleReschedule(ctx, session)
		return prompt, result.Intent, booking
	case nlu.IntentGetMeetingsDay:
		return c.handleDayListing(ctx, session), result.Intent, nil
	default:
		if result.Reply != "" {
			return result.Reply, result.Intent, nil
		}
		return greetingPrompt(), result.Intent, nil
	}
}

// handleSchedule books the requested slot or opens a conflict dialog.
func (c *Controller) handleSchedule(ctx context.Context, session *Session) (string, *calendar.Ref) {
	if session.entities.Timezone == "" {
		session.entities.Timezone = c.defaultTimezone
	}
	entities := session.entities

	if missing := missingScheduleFields(entities); len(missing) > 0 {
		c.moveState(session, StateCollecting)
		c.emit(events.NewClarificationRequested(missing))
		return clarificationPrompt(missing[0]), nil
	}

	loc, err := calendar.LoadTimezone(entities.Timezone)
	if err != nil {
		session.entities.Timezone = ""
		c.moveState(session, StateCollecting)
		c.emit(events.NewClarificationRequested([]nlu.Field{nlu.FieldTimezone}))
		return fmt.Sprintf("I don't recognize the timezone %q. %s", entities.Timezone, clarificationPrompt(nlu.FieldTimezone)), nil
	}

	start, err := calendar.At(entities.Date, entities.Time, loc)
	if err != nil {
		c.moveState(session, StateCollecting)
		return misheardPrompt(), nil
	}
	requested := calendar.IntervalStarting(start, c.defaultDuration)

	c.moveState(session, StateScheduling)

	dayStart, dayEnd, _ := calendar.DayRange(entities.Date, loc)
	existing, err := c.calendar.ListEvents(ctx, dayStart, dayEnd, entities.Timezone)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list events for conflict check", "error", err)
		c.moveState(session, StateCollecting)
		return bookingFailedPrompt(), nil
	}

	if calendar.HasConflict(existing, requested, c.buffer) {
		suggestions := c.suggester.Suggest(ctx, existing, start, c.defaultDuration, c.maxSuggestions)
		c.emit(events.NewConflictDetected(requested, overlapping(existing, requested, c.buffer)))
		if len(suggestions) == 0 {
			c.moveState(session, StateCollecting)
			return fullyBookedPrompt(entities.Date), nil
		}

		session.conflict = &conflictState{
			action:      conflictActionSchedule,
			title:       entities.Title,
			timezone:    entities.Timezone,
			duration:    c.defaultDuration,
			requested:   requested,
			suggestions: suggestions,
			attendees:   validAttendees(ctx, entities.Attendees),
		}
		session.retries = 0
		c.moveState(session, StateAwaitingSelection)
		c.emit(events.NewSuggestionsOffered(suggestions))
		return conflictPrompt(start, suggestions), nil
	}

	ref, err := c.calendar.CreateEvent(ctx, entities.Title, requested, entities.Timezone, validAttendees(ctx, entities.Attendees))
	if err != nil {
		logger.ErrorContext(ctx, "failed to create event", "error", err)
		c.moveState(session, StateCollecting)
		return bookingFailedPrompt(), nil
	}

	title := entities.Title
	c.emit(events.NewMeetingScheduled(title, ref, requested))
	session.clearRequest()
	c.moveState(session, StateScheduled)
	return scheduledPrompt(title, start), &ref
}

// handleSelection interprets the next utterance as a choice among the
// offered slots.
func (c *Controller) handleSelection(ctx context.Context, session *Session, utterance string) (string, nlu.Intent, *calendar.Ref) {
	conflict := session.conflict
	intent := nlu.IntentScheduleMeeting
	if conflict.action == conflictActionReschedule {
		intent = nlu.IntentRescheduleMeeting
	}

	index, outcome := ParseSelection(utterance, len(conflict.suggestions))
	switch outcome {
	case SelectionDeclined:
		c.emit(events.NewSelectionRejected())
		session.abandonConflict()
		c.moveState(session, StateCollecting)
		return rejectionPrompt(), intent, nil

	case SelectionUnrecognized:
		session.retries++
		c.emit(events.NewSelectionRetry(session.retries))
		if session.retries >= c.retryLimit {
			logger.WarnContext(ctx, "abandoning conflict dialog after repeated failures",
				"session_id", session.id, "attempts", session.retries)
			session.abandonConflict()
			c.moveState(session, StateCollecting)
			return selectionAbortedPrompt(), intent, nil
		}
		return retryPrompt(session.retries, conflict.suggestions), intent, nil
	}

	slot := conflict.suggestions[index-1]

	// The slot was computed when the conflict was announced; the calendar
	// may have moved since, so verify it is still free before booking.
	dayStart, dayEnd, err := calendar.DayRange(slot.Interval.Start.Format("2006-01-02"), slot.Interval.Start.Location())
	if err == nil {
		existing, listErr := c.calendar.ListEvents(ctx, dayStart, dayEnd, conflict.timezone)
		if listErr != nil {
			logger.ErrorContext(ctx, "failed to revalidate selected slot", "error", listErr)
			return bookingFailedPrompt(), intent, nil
		}
		if calendar.HasConflict(withoutEvent(existing, conflict.eventID), slot.Interval, c.buffer) {
			session.abandonConflict()
			c.moveState(session, StateCollecting)
			return slotTakenPrompt(), intent, nil
		}
	}

	var (
		ref     calendar.Ref
		bookErr error
	)
	if conflict.action == conflictActionReschedule {
		ref, bookErr = c.calendar.PatchEvent(ctx, conflict.eventID, slot.Interval, conflict.timezone)
	} else {
		ref, bookErr = c.calendar.CreateEvent(ctx, conflict.title, slot.Interval, conflict.timezone, conflict.attendees)
	}
	if bookErr != nil {
		logger.ErrorContext(ctx, "failed to book selected slot", "error", bookErr)
		return bookingFailedPrompt(), intent, nil
	}

	c.emit(events.NewSelectionAccepted(index, slot))
	title := conflict.title
	prompt := scheduledPrompt(title, slot.Interval.Start)
	if conflict.action == conflictActionReschedule {
		c.emit(events.NewMeetingRescheduled(title, ref, slot.Interval))
		prompt = rescheduledPrompt(title, slot.Interval.Start)
	} else {
		c.emit(events.NewMeetingScheduled(title, ref, slot.Interval))
	}

	session.clearRequest()
	c.moveState(session, StateScheduled)
	return prompt, intent, &ref
}

func (c *Controller) handleCancel(ctx context.Context, session *Session) string {
	entities := session.entities
	if !entities.Identifies() {
		return identifyEventPrompt()
	}

	match, ok, prompt := c.resolveEvent(ctx, session)
	if prompt != "" {
		return prompt
	}
	if !ok {
		return notFoundPrompt()
	}

	deleted, err := c.calendar.DeleteEvent(ctx, match.Event.ID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to delete event", "error", err)
		return bookingFailedPrompt()
	}
	if !deleted {
		return notFoundPrompt()
	}

	c.emit(events.NewMeetingCancelled(match.Event.ID, match.Event.Title))
	session.clearRequest()
	c.moveState(session, StateCollecting)

	response := cancelledPrompt(match.Event.Title)
	if match.LowConfidence {
		response = lowConfidencePrefix(match.Event.Title) + response
	}
	return response
}

func (c *Controller) handleReschedule(ctx context.Context, session *Session) (string, *calendar.Ref) {
	entities := session.entities
	if !entities.Identifies() {
		return identifyEventPrompt(), nil
	}

	if missing := missingRescheduleFields(entities); len(missing) > 0 {
		c.emit(events.NewClarificationRequested(missing))
		return clarificationPrompt(missing[0]), nil
	}

	match, ok, failure := c.resolveEvent(ctx, session)
	if failure != "" {
		return failure, nil
	}
	if !ok {
		return notFoundPrompt(), nil
	}

	timezone := c.timezoneOrDefault(entities.Timezone)
	loc, err := calendar.LoadTimezone(timezone)
	if err != nil {
		session.entities.Timezone = ""
		c.emit(events.NewClarificationRequested([]nlu.Field{nlu.FieldTimezone}))
		return clarificationPrompt(nlu.FieldTimezone), nil
	}

	newStart, err := calendar.At(entities.NewDate, entities.NewTime, loc)
	if err != nil {
		return misheardPrompt(), nil
	}

	duration := match.Event.End.Sub(match.Event.Start)
	if duration <= 0 {
		duration = c.defaultDuration
	}
	target := calendar.IntervalStarting(newStart, duration)

	c.moveState(session, StateScheduling)

	dayStart, dayEnd, _ := calendar.DayRange(entities.NewDate, loc)
	existing, err := c.calendar.ListEvents(ctx, dayStart, dayEnd, timezone)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list events for reschedule check", "error", err)
		c.moveState(session, StateCollecting)
		return bookingFailedPrompt(), nil
	}
	others := withoutEvent(existing, match.Event.ID)

	if calendar.HasConflict(others, target, c.buffer) {
		suggestions := c.suggester.Suggest(ctx, others, newStart, duration, c.maxSuggestions)
		c.emit(events.NewConflictDetected(target, overlapping(others, target, c.buffer)))
		if len(suggestions) == 0 {
			c.moveState(session, StateCollecting)
			return fullyBookedPrompt(entities.NewDate), nil
		}

		session.conflict = &conflictState{
			action:      conflictActionReschedule,
			title:       match.Event.Title,
			timezone:    timezone,
			duration:    duration,
			requested:   target,
			suggestions: suggestions,
			eventID:     match.Event.ID,
		}
		session.retries = 0
		c.moveState(session, StateAwaitingSelection)
		c.emit(events.NewSuggestionsOffered(suggestions))
		return conflictPrompt(newStart, suggestions), nil
	}

	ref, err := c.calendar.PatchEvent(ctx, match.Event.ID, target, timezone)
	if err != nil {
		logger.ErrorContext(ctx, "failed to move event", "error", err)
		c.moveState(session, StateCollecting)
		return bookingFailedPrompt(), nil
	}

	c.emit(events.NewMeetingRescheduled(match.Event.Title, ref, target))
	prompt := rescheduledPrompt(match.Event.Title, newStart)
	if match.LowConfidence {
		prompt = lowConfidencePrefix(match.Event.Title) + prompt
	}
	session.clearRequest()
	c.moveState(session, StateScheduled)
	return prompt, &ref
}

func (c *Controller) handleDayListing(ctx context.Context, session *Session) string {
	entities := session.entities
	if !calendar.IsValidDate(entities.Date) {
		c.emit(events.NewClarificationRequested([]nlu.Field{nlu.FieldDate}))
		return "Which day would you like to hear about?"
	}

	timezone := c.timezoneOrDefault(entities.Timezone)
	loc, err := calendar.LoadTimezone(timezone)
	if err != nil {
		session.entities.Timezone = ""
		return clarificationPrompt(nlu.FieldTimezone)
	}

	dayStart, dayEnd, _ := calendar.DayRange(entities.Date, loc)
	existing, err := c.calendar.ListEvents(ctx, dayStart, dayEnd, timezone)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list day events", "error", err)
		return bookingFailedPrompt()
	}

	wellFormed := existing[:0:0]
	for _, event := range existing {
		if !event.Malformed() {
			wellFormed = append(wellFormed, event)
		}
	}
	if len(entities.Attendees) > 0 {
		wellFormed = filterByAttendees(wellFormed, entities.Attendees)
	}
	return daySummaryPrompt(entities.Date, wellFormed)
}

// resolveEvent locates the event the gathered entities refer to. A
// non-empty third return is a failure prompt to relay as-is.
func (c *Controller) resolveEvent(ctx context.Context, session *Session) (calendar.Match, bool, string) {
	entities := session.entities
	timezone := c.timezoneOrDefault(entities.Timezone)
	loc, err := calendar.LoadTimezone(timezone)
	if err != nil {
		session.entities.Timezone = ""
		return calendar.Match{}, false, clarificationPrompt(nlu.FieldTimezone)
	}

	if calendar.IsValidDate(entities.Date) && calendar.IsValidTime(entities.Time) {
		target, err := calendar.At(entities.Date, entities.Time, loc)
		if err != nil {
			return calendar.Match{}, false, misheardPrompt()
		}
		dayStart, dayEnd, _ := calendar.DayRange(entities.Date, loc)
		existing, err := c.calendar.ListEvents(ctx, dayStart, dayEnd, timezone)
		if err != nil {
			logger.ErrorContext(ctx, "failed to list events for lookup", "error", err)
			return calendar.Match{}, false, bookingFailedPrompt()
		}
		match, ok := c.matcher.FindByDescription(existing, entities.Title, target)
		return match, ok, ""
	}

	match, ok, err := c.matcher.FindUpcoming(ctx, c.calendar, entities.Title, entities.Time, loc)
	if err != nil {
		logger.ErrorContext(ctx, "failed flexible event lookup", "error", err)
		return calendar.Match{}, false, bookingFailedPrompt()
	}
	return match, ok, ""
}

func (c *Controller) moveState(session *Session, next State) {
	if session.state == next {
		return
	}
	from, to := session.transition(next)
	c.emit(events.NewSessionStateChanged(session.id, string(from), string(to)))
}

func (c *Controller) timezoneOrDefault(timezone string) string {
	if timezone != "" {
		return timezone
	}
	return c.defaultTimezone
}

// missingScheduleFields treats unparseable dates and times as missing so
// the user is asked again instead of the booking failing later.
func missingScheduleFields(entities nlu.Entities) []nlu.Field {
	var missing []nlu.Field
	if strings.TrimSpace(entities.Title) == "" {
		missing = append(missing, nlu.FieldTitle)
	}
	if !calendar.IsValidDate(entities.Date) {
		missing = append(missing, nlu.FieldDate)
	}
	if !calendar.IsValidTime(entities.Time) {
		missing = append(missing, nlu.FieldTime)
	}
	return missing
}

func missingRescheduleFields(entities nlu.Entities) []nlu.Field {
	var missing []nlu.Field
	if !calendar.IsValidDate(entities.NewDate) {
		missing = append(missing, nlu.FieldNewDate)
	}
	if !calendar.IsValidTime(entities.NewTime) {
		missing = append(missing, nlu.FieldNewTime)
	}
	return missing
}

func overlapping(existing []calendar.Event, candidate calendar.Interval, buffer time.Duration) []calendar.Event {
	var conflicting []calendar.Event
	for _, event := range existing {
		if event.Malformed() {
			continue
		}
		if candidate.OverlapsBuffered(event.Interval(), buffer) {
			conflicting = append(conflicting, event)
		}
	}
	return conflicting
}

func withoutEvent(existing []calendar.Event, id string) []calendar.Event {
	if id == "" {
		return existing
	}
	filtered := existing[:0:0]
	for _, event := range existing {
		if event.ID != id {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

func filterByAttendees(existing []calendar.Event, attendees []string) []calendar.Event {
	filtered := existing[:0:0]
	for _, event := range existing {
		for _, wanted := range attendees {
			if attendeePresent(event.Attendees, wanted) {
				filtered = append(filtered, event)
				break
			}
		}
	}
	return filtered
}

// validAttendees keeps entries that look like email addresses. Dropped
// entries are logged but never block a booking; users often name
// colleagues the backend cannot resolve.
func validAttendees(ctx context.Context, attendees []string) []string {
	kept := attendees[:0:0]
	for _, attendee := range attendees {
		trimmed := strings.TrimSpace(attendee)
		if emailish(trimmed) {
			kept = append(kept, trimmed)
			continue
		}
		logger.WarnContext(ctx, "dropping attendee without a usable email address", "attendee", attendee)
	}
	return kept
}

func emailish(s string) bool {
	at := strings.Index(s, "@")
	if at < 1 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1 && !strings.ContainsAny(s, " \t")
}

func attendeePresent(attendees []string, wanted string) bool {
	wanted = strings.ToLower(strings.TrimSpace(wanted))
	for _, attendee := range attendees {
		if strings.Contains(strings.ToLower(attendee), wanted) {
			return true
		}
	}
	return false
}
