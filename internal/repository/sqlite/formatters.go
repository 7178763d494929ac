package sqlite

import (
	"time"
)

// dbTimeLayout has fixed-width fractional seconds so stored values sort
// lexically in time order.
const dbTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTimeForDB formats t in UTC for storage.
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(dbTimeLayout)
}

// ParseTimeFromDB parses a stored timestamp. Plain RFC3339 values are accepted too.
func ParseTimeFromDB(s string) (time.Time, error) {
	if t, err := time.Parse(dbTimeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
