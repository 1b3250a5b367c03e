package common

import "time"

// TruncateToDateUTC truncates the given time to midnight (00:00:00) in UTC.
// Matches PostgreSQL's DATE() behavior so client-side streak checks agree
// with the SQL the stats provider runs.
func TruncateToDateUTC(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// SameUTCDay reports whether a and b fall on the same UTC calendar day.
// Used to decide whether a practice session maintains today's streak.
func SameUTCDay(a, b time.Time) bool {
	return TruncateToDateUTC(a).Equal(TruncateToDateUTC(b))
}

// IsPreviousUTCDay reports whether prev falls on the UTC calendar day
// immediately before t. Used to decide whether a practice session extends
// a streak (practiced yesterday, practicing again today).
func IsPreviousUTCDay(prev, t time.Time) bool {
	return TruncateToDateUTC(prev).AddDate(0, 0, 1).Equal(TruncateToDateUTC(t))
}
