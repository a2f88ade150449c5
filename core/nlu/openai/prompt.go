package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Dikshant67/voice-scheduling-agent/core/nlu"
)

// buildSystemPrompt frames the extraction task: where and when the user
// is, what was said before, and which details were already gathered, so an
// answer like "make it 5 PM" resolves against the running conversation
// instead of being interpreted in isolation.
func buildSystemPrompt(conversation nlu.Context) string {
	timezone := conversation.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	history := "No previous conversation history."
	if len(conversation.History) > 0 {
		lines := make([]string, 0, len(conversation.History))
		for _, exchange := range conversation.History {
			lines = append(lines, fmt.Sprintf("- User said: %q (interpreted intent: %s)",
				exchange.Utterance, exchange.Intent))
		}
		history = strings.Join(lines, "\n")
	}

	partial, _ := json.Marshal(conversation.Partial)

	var b strings.Builder
	b.WriteString("You are a stateful, context-aware voice assistant for scheduling meetings.\n")
	b.WriteString("Your goal is to complete the meeting details by having a natural conversation.\n\n")

	b.WriteString("# Context\n")
	fmt.Fprintf(&b, "- Current date is: %s\n", conversation.Now.Format("2006-01-02"))
	fmt.Fprintf(&b, "- User's timezone is: %s\n\n", timezone)

	b.WriteString("# Conversation History (most recent is last)\n")
	b.WriteString(history)
	b.WriteString("\n\n# Details Gathered So Far\n")
	b.Write(partial)
	b.WriteString("\n\n# Instructions\n")
	b.WriteString("1. Analyze the user's very latest input.\n")
	b.WriteString("2. Refer to the conversation history and the details gathered so far to understand the full context.\n")
	b.WriteString("3. The latest input might be an answer to a previous question, a correction, or new information.\n")
	b.WriteString("4. Intelligently combine the latest input with the details already gathered.\n")
	b.WriteString("5. If the user says \"with John\" and the title is empty, set the title to \"Meeting with John\".\n")
	b.WriteString("6. If the user corrects a detail (e.g. \"no, make it 5 PM\"), update the existing detail.\n")
	b.WriteString("7. Emit every entity you know about, not only the ones mentioned in the latest input.\n\n")

	b.WriteString("# Intent Mapping\n")
	b.WriteString("- Booking or creating a meeting: intent=schedule_meeting.\n")
	b.WriteString("- Cancelling or deleting: intent=cancel_meeting. Identify the event by title, or by date and time.\n")
	b.WriteString("- Moving or changing time/date: intent=reschedule_meeting. Put the target in new_date/new_time.\n")
	b.WriteString("- Listing meetings for a day: intent=get_meetings_day, with the date inferred from context.\n")
	b.WriteString("- Anything else: intent=other, with a short reply explaining what you can help with.\n")

	return b.String()
}
