// Package timeparse resolves natural-language time and duration text into
// absolute instants and durations. Both parsers are pure: callers supply
// "now" where it matters, which keeps the day-advance rule testable.
package timeparse

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrNoTime means no clock-time pattern matched the input.
	ErrNoTime = errors.New("no recognizable time in input")
	// ErrNoDuration means no duration quantity matched the input.
	ErrNoDuration = errors.New("no recognizable duration in input")
)

// clockPatterns are tried in order; the first match wins. Group layout is
// either (hour, minute, period), (hour, period) or (hour, minute). The
// patterns match anywhere in the text, which also covers a leading "at".
var clockPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(am|pm)`), // 9:30 pm, at 9:30pm
	regexp.MustCompile(`(\d{1,2})\s*(am|pm)`),         // 9 pm, at 9pm
	regexp.MustCompile(`(\d{1,2}):(\d{2})`),           // 21:00, 09:30
}

// ParseClockTime extracts the first clock time from text and resolves it
// against now. A resolved instant that is not strictly after now is advanced
// by exactly one day.
func ParseClockTime(text string, now time.Time) (time.Time, error) {
	text = strings.ToLower(strings.TrimSpace(text))

	for _, pattern := range clockPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		hour, minute, err := resolveClockGroups(match[1:])
		if err != nil {
			continue
		}
		if hour > 23 || minute > 59 {
			continue
		}

		target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		if !target.After(now) {
			target = target.AddDate(0, 0, 1)
		}
		return target, nil
	}

	return time.Time{}, ErrNoTime
}

// resolveClockGroups turns regexp groups into a 24-hour clock reading.
// 12am maps to 0, 12pm stays 12, any other pm hour gains 12.
func resolveClockGroups(groups []string) (hour, minute int, err error) {
	switch len(groups) {
	case 3: // hour, minute, am/pm
		hour, err = strconv.Atoi(groups[0])
		if err != nil {
			return 0, 0, err
		}
		minute, err = strconv.Atoi(groups[1])
		if err != nil {
			return 0, 0, err
		}
		hour = toTwentyFourHour(hour, groups[2])
	case 2:
		if groups[1] == "am" || groups[1] == "pm" { // hour, am/pm
			hour, err = strconv.Atoi(groups[0])
			if err != nil {
				return 0, 0, err
			}
			hour = toTwentyFourHour(hour, groups[1])
		} else { // hour, minute in 24-hour form
			hour, err = strconv.Atoi(groups[0])
			if err != nil {
				return 0, 0, err
			}
			minute, err = strconv.Atoi(groups[1])
			if err != nil {
				return 0, 0, err
			}
		}
	default:
		return 0, 0, errors.New("unexpected group count")
	}
	return hour, minute, nil
}

func toTwentyFourHour(hour int, period string) int {
	if period == "pm" && hour != 12 {
		return hour + 12
	}
	if period == "am" && hour == 12 {
		return 0
	}
	return hour
}

// durationPattern binds a unit regexp to its length in seconds. Patterns run
// in descending specificity so a bare "m" never re-consumes digits already
// claimed by "minutes".
type durationPattern struct {
	re      *regexp.Regexp
	seconds int64
}

var durationPatterns = []durationPattern{
	{regexp.MustCompile(`(\d+)\s*hours?\b`), 3600},
	{regexp.MustCompile(`(\d+)\s*minutes?\b`), 60},
	{regexp.MustCompile(`(\d+)\s*seconds?\b`), 1},
	{regexp.MustCompile(`(\d+)\s*mins?\b`), 60},
	{regexp.MustCompile(`(\d+)\s*secs?\b`), 1},
	{regexp.MustCompile(`(\d+)\s*h\b`), 3600},
	{regexp.MustCompile(`(\d+)\s*m\b`), 60},
	{regexp.MustCompile(`(\d+)\s*s\b`), 1},
}

// ParseDuration scans text for hour/minute/second quantities in long or
// short form and sums them. Compound input like "1 hour 30 minutes" yields
// 90 minutes. A character range consumed by one pattern is never re-matched
// by a less specific one.
func ParseDuration(text string) (time.Duration, error) {
	text = strings.ToLower(strings.TrimSpace(text))

	var total int64
	consumed := map[int]bool{}

	for _, dp := range durationPatterns {
		for _, loc := range dp.re.FindAllStringSubmatchIndex(text, -1) {
			start, end := loc[0], loc[1]
			if overlaps(consumed, start, end) {
				continue
			}
			value, err := strconv.ParseInt(text[loc[2]:loc[3]], 10, 64)
			if err != nil {
				continue
			}
			for i := start; i < end; i++ {
				consumed[i] = true
			}
			total += value * dp.seconds
		}
	}

	if total <= 0 {
		return 0, ErrNoDuration
	}
	return time.Duration(total) * time.Second, nil
}

func overlaps(consumed map[int]bool, start, end int) bool {
	for i := start; i < end; i++ {
		if consumed[i] {
			return true
		}
	}
	return false
}

// FormatDuration renders a duration as a spoken-style breakdown, e.g.
// "1 hour 30 minutes" or "45 seconds".
func FormatDuration(d time.Duration) string {
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, pluralize(hours, "hour"))
	}
	if minutes > 0 {
		parts = append(parts, pluralize(minutes, "minute"))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, pluralize(seconds, "second"))
	}
	return strings.Join(parts, " ")
}

func pluralize(n int64, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.FormatInt(n, 10) + " " + unit + "s"
}
