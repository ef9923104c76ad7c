package core

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultTimezone is used when neither a flag nor the config file names one.
const DefaultTimezone = "Europe/Oslo"

// MinAPIKeyLength is the shortest API key accepted by `auth set`.
const MinAPIKeyLength = 10

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

	// date, hh:mm, optional :ss, optional fraction, then Z or a numeric offset.
	instantRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})T(\d{2}:\d{2})(:\d{2})?(\.\d+)?(Z|[+-]\d{2}:?\d{2})$`)
)

// Weekday is a three-letter lowercase day token as used in availability windows.
type Weekday string

const (
	Monday    Weekday = "mon"
	Tuesday   Weekday = "tue"
	Wednesday Weekday = "wed"
	Thursday  Weekday = "thu"
	Friday    Weekday = "fri"
	Saturday  Weekday = "sat"
	Sunday    Weekday = "sun"
)

// Weekdays lists the accepted tokens in week order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseDate accepts YYYY-MM-DD. Only the shape is checked, so 2026-02-30 passes
// and is left for the remote service to reject.
func ParseDate(s string) (string, error) {
	if !dateRe.MatchString(s) {
		return "", &ValidationError{Message: "Expected date format YYYY-MM-DD", Value: s}
	}
	return s, nil
}

// ParseTimeOfDay accepts 24-hour HH:mm.
func ParseTimeOfDay(s string) (string, error) {
	if !timeRe.MatchString(s) {
		return "", &ValidationError{Message: "Expected time format HH:mm (24h)", Value: s}
	}
	return s, nil
}

// ParseWeekday accepts mon..sun in any case and returns the lowercase token.
func ParseWeekday(s string) (Weekday, error) {
	day := Weekday(strings.ToLower(s))
	for _, d := range Weekdays {
		if d == day {
			return d, nil
		}
	}
	return "", &ValidationError{Message: "Expected weekday: one of mon, tue, wed, thu, fri, sat, sun", Value: s}
}

// ParseInstant accepts an ISO-8601 datetime carrying Z or a UTC offset and returns it unchanged.
func ParseInstant(s string) (string, error) {
	if _, err := InstantTime(s); err != nil {
		return "", err
	}
	return s, nil
}

// InstantTime parses an ISO-8601 datetime with an explicit offset.
func InstantTime(s string) (time.Time, error) {
	m := instantRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, &ValidationError{Message: "Expected ISO-8601 datetime with offset (e.g. 2026-03-02T09:00:00+01:00)", Value: s}
	}

	secs := m[3]
	if secs == "" {
		secs = ":00"
	}
	offset := m[5]
	if offset != "Z" && !strings.Contains(offset, ":") {
		offset = offset[:3] + ":" + offset[3:]
	}

	t, err := time.Parse(time.RFC3339Nano, m[1]+"T"+m[2]+secs+m[4]+offset)
	if err != nil {
		return time.Time{}, &ValidationError{Message: "Expected ISO-8601 datetime with offset (e.g. 2026-03-02T09:00:00+01:00)", Value: s}
	}
	return t, nil
}

// ParseTimezone accepts any IANA zone name the runtime can load.
func ParseTimezone(s string) (string, error) {
	if s == "" || s == "Local" {
		return "", &ValidationError{Message: "Invalid timezone identifier", Value: s}
	}
	if _, err := time.LoadLocation(s); err != nil {
		return "", &ValidationError{Message: "Invalid timezone identifier", Value: s}
	}
	return s, nil
}

// ParseAPIKey trims the key and enforces a minimum length. The remote service is
// the real authority on whether it is valid.
func ParseAPIKey(s string) (string, error) {
	key := strings.TrimSpace(s)
	if len(key) < MinAPIKeyLength {
		return "", &ValidationError{Message: "API key looks too short"}
	}
	return key, nil
}

// ParseLimit accepts a positive integer.
func ParseLimit(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, &ValidationError{Message: "Expected a positive integer limit", Value: s}
	}
	return n, nil
}

// ValidateTimeRange requires start < end on normalized HH:mm values.
func ValidateTimeRange(start, end string) error {
	if start >= end {
		return &ValidationError{Message: "End time must be after start time"}
	}
	return nil
}

// DateRange is an inclusive YYYY-MM-DD range; empty bounds are open.
type DateRange struct {
	From string
	To   string
}

// ParseDateRange validates both optional bounds.
func ParseDateRange(from, to string) (DateRange, error) {
	var r DateRange
	var err error
	if from != "" {
		if r.From, err = ParseDate(from); err != nil {
			return DateRange{}, err
		}
	}
	if to != "" {
		if r.To, err = ParseDate(to); err != nil {
			return DateRange{}, err
		}
	}
	if r.From != "" && r.To != "" && r.From > r.To {
		return DateRange{}, &ValidationError{Message: "--from must not be after --to"}
	}
	return r, nil
}

// Contains reports whether date falls inside the range.
func (r DateRange) Contains(date string) bool {
	if r.From != "" && date < r.From {
		return false
	}
	if r.To != "" && date > r.To {
		return false
	}
	return true
}
