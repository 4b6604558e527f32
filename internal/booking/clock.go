package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Times of day travel through the API and the TIME columns as "HH:MM" or
// "HH:MM:SS" strings.  The core normalizes them to minutes from midnight so
// the overlap predicate and duration math work on plain integers.

// ParseClock converts "HH:MM" or "HH:MM:SS" into minutes from midnight.
// Seconds are ignored; MySQL TIME columns scan back with them attached.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("hora inválida %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("hora inválida %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("hora inválida %q", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes from midnight back to "HH:MM".
func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// ParseDate validates a "YYYY-MM-DD" calendar day and returns it at
// midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", strings.TrimSpace(s), loc)
}

// slotRange parses and validates a [start, end) pair.  It returns a
// ValidationError when either time is malformed or the interval is empty or
// inverted.
func slotRange(start, end string) (int, int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, 0, &ValidationError{Field: "hora_inicio", Reason: err.Error()}
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, 0, &ValidationError{Field: "hora_fin", Reason: err.Error()}
	}
	if s >= e {
		return 0, 0, &ValidationError{Field: "hora_fin", Reason: "debe ser posterior a hora_inicio"}
	}
	return s, e, nil
}
