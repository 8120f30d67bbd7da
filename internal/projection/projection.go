// Package projection computes where a recurring annual date falls relative
// to today. Only the month and day of a stored date matter; every
// comparison is made on civil dates, never on time of day.
package projection

import (
	"strconv"
	"time"
)

// Civil truncates t to midnight of its calendar date in t's own location.
func Civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ThisYear places the stored month and day in today's year. A Feb 29 date
// projected onto a non-leap year normalizes to Mar 1.
func ThisYear(stored, today time.Time) time.Time {
	_, m, d := stored.Date()
	return time.Date(today.Year(), m, d, 0, 0, 0, 0, today.Location())
}

// NextOccurrence is the rolling projection used by list views: this year's
// candidate, or next year's if this year's is already behind today.
func NextOccurrence(stored, today time.Time) time.Time {
	today = Civil(today)
	candidate := ThisYear(stored, today)
	if candidate.Before(today) {
		_, m, d := stored.Date()
		candidate = time.Date(today.Year()+1, m, d, 0, 0, 0, 0, today.Location())
	}
	return candidate
}

// DaysUntil returns the number of calendar days from today to target.
// Negative when target is in the past.
func DaysUntil(target, today time.Time) int {
	t := Civil(target)
	n := Civil(today)
	// UTC rebuild avoids DST days that are 23 or 25 hours long.
	tu := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	nu := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	return int(tu.Sub(nu).Hours() / 24)
}

// OccursWithinWindowThisYear reports whether this year's candidate lies in
// [today, today+windowDays]. It never rolls into next year, so a date that
// already passed this year is outside every window.
func OccursWithinWindowThisYear(stored, today time.Time, windowDays int) bool {
	today = Civil(today)
	candidate := ThisYear(stored, today)
	end := today.AddDate(0, 0, windowDays)
	return !candidate.Before(today) && !candidate.After(end)
}

// Label renders a days-until count for display.
func Label(days int) string {
	switch days {
	case 0:
		return "Today!"
	case 1:
		return "Tomorrow"
	default:
		return strconv.Itoa(days) + " days"
	}
}
