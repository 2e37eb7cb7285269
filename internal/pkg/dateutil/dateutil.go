// Package dateutil normalizes every date the service touches into a single
// canonical form: a UTC calendar-day key "YYYY-MM-DD". Mixing local-time and
// UTC truncation silently shifts a trade's day by ±1 across a timezone
// boundary, so all comparisons, range computations, and map keys must go
// through this package.
package dateutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate indicates an input that cannot be interpreted as a date.
var ErrInvalidDate = errors.New("invalid date")

// DayKeyFormat is the canonical day-key layout.
const DayKeyFormat = "2006-01-02"

var dayKeyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Layouts tried in order when the input is not already a day key.
var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// IsDayKey reports whether s is already in canonical day-key form.
func IsDayKey(s string) bool {
	return dayKeyRe.MatchString(s)
}

// ToDateKey converts any date representation to a canonical day key.
// An input that already matches the day-key pattern is returned unchanged,
// with no reinterpretation or timezone shift. Anything else is parsed as an
// instant and truncated to its calendar day in UTC.
func ToDateKey(input string) (string, error) {
	input = strings.TrimSpace(input)
	if IsDayKey(input) {
		return input, nil
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, input); err == nil {
			return FromTime(t), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDate, input)
}

// FromTime truncates an instant to its UTC calendar day.
func FromTime(t time.Time) string {
	return t.UTC().Format(DayKeyFormat)
}

// AddDays returns the day key n calendar days after key. The arithmetic is
// calendar-based (time.Date normalizes day overflow), not 24h-wall-clock.
func AddDays(key string, n int) (string, error) {
	if !IsDayKey(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, key)
	}
	y, _ := strconv.Atoi(key[0:4])
	m, _ := strconv.Atoi(key[5:7])
	d, _ := strconv.Atoi(key[8:10])
	t := time.Date(y, time.Month(m), d+n, 0, 0, 0, 0, time.UTC)
	return FromTime(t), nil
}

// ToTime converts a canonical day key to midnight UTC of that day.
func ToTime(key string) (time.Time, error) {
	if !IsDayKey(key) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, key)
	}
	t, err := time.Parse(DayKeyFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, key)
	}
	return t, nil
}
