package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownTimezone = errors.New("unknown timezone identifier")
	ErrUnparseableTime = errors.New("unparseable time of day")
	ErrUnparseableDate = errors.New("unparseable calendar date")
)

const dateLayout = "2006-01-02"

// timeLayouts covers the spoken-language time formats the extraction
// collaborator produces: "17:00", "5:00 PM", "5:00PM", "5 PM", "5PM", "17".
var timeLayouts = []string{
	"15:04",
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
	"15",
}

// To24Hour normalizes a time-of-day string to 24-hour "HH:MM" form.
func To24Hour(value string) (string, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty input", ErrUnparseableTime)
	}

	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Format("15:04"), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnparseableTime, value)
}

func IsValidDate(value string) bool {
	_, err := time.Parse(dateLayout, strings.TrimSpace(value))
	return err == nil
}

func IsValidTime(value string) bool {
	_, err := To24Hour(value)
	return err == nil
}

// LoadTimezone resolves an IANA timezone identifier through the standard
// library's zone database.
func LoadTimezone(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrUnknownTimezone)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}
	return loc, nil
}

// At combines a calendar date and a time-of-day string into a zoned
// timestamp.
func At(date, timeOfDay string, loc *time.Location) (time.Time, error) {
	normalized, err := To24Hour(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}

	combined, err := time.ParseInLocation(dateLayout+" 15:04", strings.TrimSpace(date)+" "+normalized, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, date)
	}
	return combined, nil
}

// DayRange returns the local window covering a calendar date, from midnight
// to one minute before the next midnight.
func DayRange(date string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, date)
	}
	return start, start.Add(24*time.Hour - time.Minute), nil
}
