package models

import "time"

// TimestampLayout renders instants as fixed-width millisecond ISO-8601.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// TimestampPrecision is the resolution kept for client supplied instants.
const TimestampPrecision = time.Millisecond

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
