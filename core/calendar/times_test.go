package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestTo24HourAcceptsSpokenFormats(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"17:00", "17:00"},
		{"5:00 PM", "17:00"},
		{"5:00PM", "17:00"},
		{"5 PM", "17:00"},
		{"5PM", "17:00"},
		{"17", "17:00"},
		{" 9:30 am ", "09:30"},
		{"12:00 AM", "00:00"},
	}
	for _, tc := range cases {
		got, err := To24Hour(tc.input)
		if err != nil {
			t.Fatalf("expected %q to parse, got error %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("expected %q to normalize to %q, got %q", tc.input, tc.want, got)
		}
	}
}

func TestTo24HourRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "   ", "25:00", "noonish", "17:60"} {
		if _, err := To24Hour(input); !errors.Is(err, ErrUnparseableTime) {
			t.Fatalf("expected %q to fail with ErrUnparseableTime, got %v", input, err)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if !IsValidDate("2025-09-01") {
		t.Fatalf("expected ISO date to validate")
	}
	for _, input := range []string{"09/01/2025", "2025-13-01", "tomorrow", ""} {
		if IsValidDate(input) {
			t.Fatalf("expected %q to be rejected", input)
		}
	}
}

func TestAtCombinesDateAndTime(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)

	got, err := At("2025-09-01", "5 PM", loc)
	if err != nil {
		t.Fatalf("expected combination to succeed, got %v", err)
	}
	want := time.Date(2025, 9, 1, 17, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestAtRejectsBadInputs(t *testing.T) {
	if _, err := At("2025-09-01", "whenever", time.UTC); !errors.Is(err, ErrUnparseableTime) {
		t.Fatalf("expected ErrUnparseableTime, got %v", err)
	}
	if _, err := At("someday", "17:00", time.UTC); !errors.Is(err, ErrUnparseableDate) {
		t.Fatalf("expected ErrUnparseableDate, got %v", err)
	}
}

func TestDayRangeCoversLocalDay(t *testing.T) {
	start, end, err := DayRange("2025-09-01", time.UTC)
	if err != nil {
		t.Fatalf("expected day range to resolve, got %v", err)
	}
	if want := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Fatalf("expected window start %s, got %s", want, start)
	}
	if want := time.Date(2025, 9, 1, 23, 59, 0, 0, time.UTC); !end.Equal(want) {
		t.Fatalf("expected window end %s, got %s", want, end)
	}
}

func TestLoadTimezoneRejectsUnknownNames(t *testing.T) {
	if _, err := LoadTimezone("Mars/Olympus_Mons"); !errors.Is(err, ErrUnknownTimezone) {
		t.Fatalf("expected ErrUnknownTimezone, got %v", err)
	}
	if _, err := LoadTimezone(""); !errors.Is(err, ErrUnknownTimezone) {
		t.Fatalf("expected empty identifier to be rejected, got %v", err)
	}
}
