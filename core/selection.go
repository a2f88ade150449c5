package orchestration

import (
	"regexp"
	"strconv"
	"strings"
)

// SelectionOutcome classifies what a selection utterance meant.
type SelectionOutcome int

const (
	// SelectionUnrecognized means the utterance could not be interpreted as
	// a choice or a rejection.
	SelectionUnrecognized SelectionOutcome = iota
	// SelectionPicked means one of the offered options was chosen.
	SelectionPicked
	// SelectionDeclined means the user turned down all offered options.
	SelectionDeclined
)

var (
	// rejectionPattern matches whole words only, so "no" never fires inside
	// "number one".
	rejectionPattern = regexp.MustCompile(`\b(different|other|another|none|neither|no|cancel)\b`)

	optionDigitPatterns = []*regexp.Regexp{
		regexp.MustCompile(`option\s*(\d+)`),
		regexp.MustCompile(`choice\s*(\d+)`),
		regexp.MustCompile(`number\s*(\d+)`),
		regexp.MustCompile(`^(\d+)$`),
		regexp.MustCompile(`the\s*(\d+)`),
		regexp.MustCompile(`pick\s*(\d+)`),
		regexp.MustCompile(`select\s*(\d+)`),
	}

	// Explicit ordinals come before bare number words so "the third one"
	// resolves to three, not one.
	ordinalWords = []struct {
		word  string
		index int
	}{
		{"first", 1}, {"1st", 1},
		{"second", 2}, {"2nd", 2},
		{"third", 3}, {"3rd", 3},
		{"one", 1}, {"two", 2}, {"three", 3},
	}
)

// ParseSelection interprets an utterance as a pick among optionCount
// numbered options, a rejection of all of them, or neither. Rejection wins
// over everything else so "no, none of those" never books option one. A
// digit outside 1..optionCount is unrecognized rather than clamped.
func ParseSelection(utterance string, optionCount int) (int, SelectionOutcome) {
	normalized := strings.ToLower(strings.TrimSpace(utterance))
	if normalized == "" || optionCount <= 0 {
		return 0, SelectionUnrecognized
	}

	if rejectionPattern.MatchString(normalized) {
		return 0, SelectionDeclined
	}

	for _, pattern := range optionDigitPatterns {
		match := pattern.FindStringSubmatch(normalized)
		if match == nil {
			continue
		}
		index, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if index >= 1 && index <= optionCount {
			return index, SelectionPicked
		}
		return 0, SelectionUnrecognized
	}

	for _, ordinal := range ordinalWords {
		if !wordPresent(normalized, ordinal.word) {
			continue
		}
		if ordinal.index <= optionCount {
			return ordinal.index, SelectionPicked
		}
		return 0, SelectionUnrecognized
	}

	return 0, SelectionUnrecognized
}

func wordPresent(haystack, word string) bool {
	index := strings.Index(haystack, word)
	for index >= 0 {
		before := index == 0 || !isWordChar(haystack[index-1])
		afterIdx := index + len(word)
		after := afterIdx >= len(haystack) || !isWordChar(haystack[afterIdx])
		if before && after {
			return true
		}
		next := strings.Index(haystack[index+1:], word)
		if next < 0 {
			return false
		}
		index += 1 + next
	}
	return false
}

func isWordChar(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('0' <= c && c <= '9')
}
