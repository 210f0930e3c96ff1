package utils

import "time"

// TruncateToDay returns t at midnight UTC.
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// LastCompletedWeek returns the Monday and Sunday of the most recent fully
// completed Monday-Sunday week before today. When today is itself a Sunday
// the week ending today is not yet complete and the previous one is
// returned.
func LastCompletedWeek(today time.Time) (monday, sunday time.Time) {
	today = TruncateToDay(today)
	// days since Monday, with Monday = 0 and Sunday = 6
	sinceMonday := (int(today.Weekday()) + 6) % 7
	sunday = today.AddDate(0, 0, -(sinceMonday + 1))
	monday = sunday.AddDate(0, 0, -6)
	return monday, sunday
}

// WeekEnding returns the Sunday that closes the week containing the given
// Monday.
func WeekEnding(monday time.Time) time.Time {
	return TruncateToDay(monday).AddDate(0, 0, 6)
}
