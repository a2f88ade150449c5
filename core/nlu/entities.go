package nlu

// Entities holds the scheduling details extracted from the conversation so
// far. Empty strings and empty slices mean "not provided yet"; the
// collaborator echoes back everything it knows on every turn, so a field
// that was gathered earlier stays filled unless the user corrects it.
type Entities struct {
	Title    string `json:"title,omitempty"`
	Date     string `json:"date,omitempty"` // YYYY-MM-DD
	Time     string `json:"time,omitempty"`
	Timezone string `json:"timezone,omitempty"` // IANA identifier

	Attendees []string `json:"attendees,omitempty"`

	// NewDate and NewTime carry the target of a reschedule request, kept
	// apart from Date/Time which then identify the event being moved.
	NewDate string `json:"new_date,omitempty"`
	NewTime string `json:"new_time,omitempty"`
}

// Field names a single entity slot, used to report what is still missing.
type Field string

const (
	FieldTitle    Field = "title"
	FieldDate     Field = "date"
	FieldTime     Field = "time"
	FieldTimezone Field = "timezone"
	FieldNewDate  Field = "new_date"
	FieldNewTime  Field = "new_time"
)

// Merge overlays other onto e: non-empty values win, so a correction or a
// newly answered question replaces the old value while everything else is
// retained.
func (e Entities) Merge(other Entities) Entities {
	if other.Title != "" {
		e.Title = other.Title
	}
	if other.Date != "" {
		e.Date = other.Date
	}
	if other.Time != "" {
		e.Time = other.Time
	}
	if other.Timezone != "" {
		e.Timezone = other.Timezone
	}
	if len(other.Attendees) > 0 {
		e.Attendees = other.Attendees
	}
	if other.NewDate != "" {
		e.NewDate = other.NewDate
	}
	if other.NewTime != "" {
		e.NewTime = other.NewTime
	}
	return e
}

// MissingForSchedule lists the slots still required before a meeting can be
// booked, in the order they should be asked for.
func (e Entities) MissingForSchedule() []Field {
	var missing []Field
	if e.Title == "" {
		missing = append(missing, FieldTitle)
	}
	if e.Date == "" {
		missing = append(missing, FieldDate)
	}
	if e.Time == "" {
		missing = append(missing, FieldTime)
	}
	if e.Timezone == "" {
		missing = append(missing, FieldTimezone)
	}
	return missing
}

// MissingForReschedule lists the slots required to move an event: something
// to identify it by is checked elsewhere, but the new date and time are
// mandatory.
func (e Entities) MissingForReschedule() []Field {
	var missing []Field
	if e.NewDate == "" {
		missing = append(missing, FieldNewDate)
	}
	if e.NewTime == "" {
		missing = append(missing, FieldNewTime)
	}
	return missing
}

// Identifies reports whether the entities carry enough to look up an
// existing event, either by title or by a date and time pair.
func (e Entities) Identifies() bool {
	return e.Title != "" || (e.Date != "" && e.Time != "")
}
