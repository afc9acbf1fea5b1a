package util

import "time"

const DateTimeFormat = "2006-01-02 15:04:05"

// FormatDateTime renders t in the local zone for people reading a terminal.
func FormatDateTime(t time.Time) string {
	return t.Local().Format(DateTimeFormat)
}

// TimeToISO8601Str renders t in UTC with sub-second precision. The zero time
// renders as an empty string.
func TimeToISO8601Str(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func OptionalTimeToISO8601Str(t *time.Time) string {
	if t == nil {
		return ""
	}
	return TimeToISO8601Str(*t)
}

// ParseISO8601 is the inverse of TimeToISO8601Str.
func ParseISO8601(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
