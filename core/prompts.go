package orchestration

import (
	"fmt"
	"strings"
	"time"

	"github.com/Dikshant67/voice-scheduling-agent/core/calendar"
	"github.com/Dikshant67/voice-scheduling-agent/core/nlu"
)

// spokenTime renders a timestamp the way it should be read aloud.
func spokenTime(t time.Time) string {
	return t.Format("Monday, January 2 at 03:04 PM")
}

func greetingPrompt() string {
	return "Hello! I can help you schedule, move, or cancel meetings. What would you like to do?"
}

func clarificationPrompt(field nlu.Field) string {
	switch field {
	case nlu.FieldTitle:
		return "What should the title of the meeting be?"
	case nlu.FieldDate:
		return "What date should I schedule that for?"
	case nlu.FieldTime:
		return "And for what time?"
	case nlu.FieldTimezone:
		return "Which timezone should I use for that?"
	case nlu.FieldNewDate:
		return "What date should I move it to?"
	case nlu.FieldNewTime:
		return "And what time should I move it to?"
	default:
		return fmt.Sprintf("What is the %s?", field)
	}
}

// conflictPrompt announces a conflict and reads the numbered alternatives.
func conflictPrompt(requested time.Time, suggestions []calendar.Slot) string {
	parts := []string{
		fmt.Sprintf("I found a conflict with your requested time of %s.", spokenTime(requested)),
		"Here are some alternative options:",
	}
	for i, suggestion := range suggestions {
		parts = append(parts, fmt.Sprintf("Option %d: %s - %s.",
			i+1, spokenTime(suggestion.Interval.Start), suggestion.Description))
	}
	parts = append(parts,
		"Which option would you prefer? You can say 'option 1', 'option 2', or ask me to suggest different times.")
	return strings.Join(parts, " ")
}

// retryPrompt re-reads the options; after repeated failures the phrasing
// gets more explicit about what to say.
func retryPrompt(attempt int, suggestions []calendar.Slot) string {
	var b strings.Builder
	if attempt <= 2 {
		b.WriteString("Sorry, I didn't catch which option you wanted. ")
	} else {
		b.WriteString("I'm still not sure which option you meant. Please answer with just the option number, like 'one' or 'two'. ")
	}
	b.WriteString("Your options are:")
	for i, suggestion := range suggestions {
		fmt.Fprintf(&b, " Option %d: %s.", i+1, spokenTime(suggestion.Interval.Start))
	}
	b.WriteString(" Or say 'different times' to hear other choices.")
	return b.String()
}

func fullyBookedPrompt(date string) string {
	return fmt.Sprintf("I couldn't find any open slots around your requested time on %s. Could you try a different day?", date)
}

func scheduledPrompt(title string, start time.Time) string {
	return fmt.Sprintf("Done! I've scheduled %q for %s.", title, spokenTime(start))
}

func rescheduledPrompt(title string, start time.Time) string {
	return fmt.Sprintf("All set. I've moved %q to %s.", title, spokenTime(start))
}

func cancelledPrompt(title string) string {
	return fmt.Sprintf("Okay, I've cancelled %q.", title)
}

func slotTakenPrompt() string {
	return "It looks like that slot was just taken. What other time would work for you?"
}

func selectionAbortedPrompt() string {
	return "Let's start over. What time would you like for the meeting?"
}

func rejectionPrompt() string {
	return "No problem. What other time would work for you?"
}

func notFoundPrompt() string {
	return "I couldn't find a meeting matching that description. Could you give me the title, or the date and time?"
}

func lowConfidencePrefix(title string) string {
	return fmt.Sprintf("The closest match I found is %q. ", title)
}

func bookingFailedPrompt() string {
	return "Sorry, I ran into a problem talking to the calendar. Nothing was changed; please try again."
}

func misheardPrompt() string {
	return "Sorry, I didn't quite get that. Could you rephrase?"
}

func identifyEventPrompt() string {
	return "Which meeting do you mean? You can give me its title, or its date and time."
}

// daySummaryPrompt reads out a day's agenda.
func daySummaryPrompt(date string, eventsForDay []calendar.Event) string {
	if len(eventsForDay) == 0 {
		return fmt.Sprintf("You have no meetings scheduled on %s.", date)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %d meeting", len(eventsForDay))
	if len(eventsForDay) > 1 {
		b.WriteString("s")
	}
	fmt.Fprintf(&b, " on %s:", date)
	for _, event := range eventsForDay {
		title := event.Title
		if title == "" {
			title = "an untitled meeting"
		}
		fmt.Fprintf(&b, " %s at %s.", title, event.Start.Format("03:04 PM"))
	}
	return b.String()
}
