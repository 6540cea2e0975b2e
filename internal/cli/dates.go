// Package cli holds parsing helpers shared by command flags.
package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Matches: "3d ago", "2w ago", "1mo ago", "3 days ago"
var daysAgoRegex = regexp.MustCompile(`^(\d+)\s*(mo|months?|w|weeks?|d|days?)\s*ago$`)

// ParseDate parses a day given on the command line. Teamwork filters work on
// whole days, so every result is midnight in now's location.
//
// Supports "today", "yesterday", "tomorrow", weekday names ("mon",
// "last fri"), "3d ago" style offsets, YYYY-MM-DD, YYYYMMDD and RFC3339.
func ParseDate(s string, now time.Time) (time.Time, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	input := strings.ToLower(raw)
	today := startOfDay(now)

	switch input {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}

	if t, ok := parseWeekday(input, today); ok {
		return t, nil
	}

	if m := daysAgoRegex.FindStringSubmatch(input); len(m) == 3 {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			return time.Time{}, fmt.Errorf("invalid relative date %q", raw)
		}
		switch m[2][0] {
		case 'm':
			return today.AddDate(0, -n, 0), nil
		case 'w':
			return today.AddDate(0, 0, -7*n), nil
		default:
			return today.AddDate(0, 0, -n), nil
		}
	}

	for _, layout := range []string{"2006-01-02", "20060102"} {
		if t, err := time.ParseInLocation(layout, raw, now.Location()); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return startOfDay(t.In(now.Location())), nil
	}

	return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD, 'yesterday', 'mon' or '3d ago')", raw)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// parseWeekday resolves a weekday name to the most recent such day, today
// included. "last <day>" always goes back at least one day.
func parseWeekday(input string, today time.Time) (time.Time, bool) {
	last := false
	if rest, ok := strings.CutPrefix(input, "last "); ok {
		last = true
		input = strings.TrimSpace(rest)
	}

	weekday, ok := weekdays[input]
	if !ok {
		return time.Time{}, false
	}

	delta := (int(today.Weekday()) - int(weekday) + 7) % 7
	if last && delta == 0 {
		delta = 7
	}
	return today.AddDate(0, 0, -delta), true
}

var weekdays = map[string]time.Weekday{
	"sun":       time.Sunday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"monday":    time.Monday,
	"tue":       time.Tuesday,
	"tues":      time.Tuesday,
	"tuesday":   time.Tuesday,
	"wed":       time.Wednesday,
	"wednesday": time.Wednesday,
	"thu":       time.Thursday,
	"thurs":     time.Thursday,
	"thursday":  time.Thursday,
	"fri":       time.Friday,
	"friday":    time.Friday,
	"sat":       time.Saturday,
	"saturday":  time.Saturday,
}
