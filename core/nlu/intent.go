package nlu

// Intent classifies what the user is trying to do with their latest
// utterance. Anything the collaborator cannot place lands on IntentOther.
type Intent string

const (
	IntentScheduleMeeting   Intent = "schedule_meeting"
	IntentCancelMeeting     Intent = "cancel_meeting"
	IntentRescheduleMeeting Intent = "reschedule_meeting"
	IntentGetMeetingsDay    Intent = "get_meetings_day"
	IntentOther             Intent = "other"
)

// ParseIntent maps a collaborator-provided label onto a known intent,
// falling back to IntentOther for anything unrecognized.
func ParseIntent(label string) Intent {
	switch Intent(label) {
	case IntentScheduleMeeting, IntentCancelMeeting,
		IntentRescheduleMeeting, IntentGetMeetingsDay:
		return Intent(label)
	default:
		return IntentOther
	}
}
