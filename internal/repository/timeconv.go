package repository

import "time"

// Timestamps are stored as Unix milliseconds so MySQL and SQLite share one
// representation.

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
