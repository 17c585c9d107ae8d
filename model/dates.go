// model/dates.go
package model

import "time"

// Overlaps reports whether the closed date intervals [s1,e1] and [s2,e2]
// share at least one calendar day. Touching endpoints count: a window ending
// on day 5 overlaps a range starting on day 5. This predicate is the contract
// every store-side overlap query must implement.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return !s1.After(e2) && !s2.After(e1)
}

// RentalDays is the payment day-count convention: the whole-day difference
// between start and end, never less than one. A same-day booking is charged
// one day, not zero.
func RentalDays(start, end time.Time) int64 {
	days := daysBetween(start, end)
	if days < 1 {
		return 1
	}
	return days
}

// RevenueDays is the admin-revenue day-count convention: the plain calendar
// difference, exclusive of the start day. It intentionally diverges from
// RentalDays for same-day bookings; do not unify the two.
func RevenueDays(start, end time.Time) int64 {
	return daysBetween(start, end)
}

func daysBetween(start, end time.Time) int64 {
	return int64(DateOnly(end).Sub(DateOnly(start)) / (24 * time.Hour))
}

// DateOnly truncates t to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
