// Package timeutil holds the pure time policy shared by the consent lifecycle
// and reporting layers. Every function takes an explicit reference time so
// business logic never reads a hidden global clock.
package timeutil

import (
	"fmt"
	"time"
)

// Day is the unit used for consent expiry arithmetic.
const Day = 24 * time.Hour

// DaysUntil reports the whole days from now until target, rounding up.
// Positive means future, negative means past, zero means due today.
// Ceiling division is deliberate: a consent expiring later today reads as
// "expires in 0 days" rather than already-past.
func DaysUntil(target, now time.Time) int {
	return int(ceilDiv(target.Sub(now), Day))
}

// DaysSince reports the whole days elapsed since t, rounding down.
func DaysSince(t, now time.Time) int {
	return int(now.Sub(t) / Day)
}

// IsExpiredByTime reports whether expiresAt has been reached at now.
func IsExpiredByTime(expiresAt, now time.Time) bool {
	return !now.Before(expiresAt)
}

// IsExpiringSoon reports whether expiresAt falls inside the window
// (now, now+windowDays]. Already-past expiries are excluded even when the
// stored status has not caught up.
func IsExpiringSoon(expiresAt, now time.Time, windowDays int) bool {
	if !now.Before(expiresAt) {
		return false
	}
	threshold := now.Add(time.Duration(windowDays) * Day)
	return !expiresAt.After(threshold)
}

// RelativeTime renders t relative to now for display ("2 hours ago").
// Falls back to a short date for anything older than a week.
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return plural(int(diff/time.Minute), "minute")
	case diff < Day:
		return plural(int(diff/time.Hour), "hour")
	case diff < 7*Day:
		return plural(int(diff/Day), "day")
	default:
		return t.Format("2 Jan 2006")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// ceilDiv divides d by unit, rounding toward positive infinity.
func ceilDiv(d, unit time.Duration) int64 {
	q := d / unit
	if d%unit > 0 {
		q++
	}
	return int64(q)
}
