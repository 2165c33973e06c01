// Package calendar provides pure date-boundary arithmetic for the chain
// engine: Monday-aligned weeks, calendar months, and canonical day keys.
// Every function is deterministic in its inputs; nothing here reads the
// wall clock or mutates its arguments.
package calendar

import "time"

// DateFormat is the canonical day-key layout used throughout the engine.
const DateFormat = "2006-01-02"

// FormatDate returns the canonical YYYY-MM-DD key for t in t's location.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// DayStart returns midnight of t's calendar day, in t's location.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekStart returns Monday 00:00:00 of the ISO-style week containing t.
func WeekStart(t time.Time) time.Time {
	offset := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		offset = 6
	}
	return DayStart(t).AddDate(0, 0, -offset)
}

// WeekEnd returns Sunday 23:59:59 of the week containing t.
func WeekEnd(t time.Time) time.Time {
	ws := WeekStart(t)
	return time.Date(ws.Year(), ws.Month(), ws.Day(), 23, 59, 59, 0, ws.Location()).AddDate(0, 0, 6)
}

// MonthStart returns the first calendar day of t's month at 00:00:00.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthEnd returns the last calendar day of t's month at 23:59:59,
// computed by rolling to day 0 of the following month.
func MonthEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 23, 59, 59, 0, t.Location())
}

// DaysBetween returns the number of calendar days from a to b (b - a),
// ignoring the time of day. Negative when b precedes a. The count is done
// on normalized UTC dates so DST transitions cannot skew it.
func DaysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

// DaysRemaining returns the inclusive count of days left in the period
// ending at periodEnd, counting today only if it is not yet complete.
// Returns 0 when today is past periodEnd.
func DaysRemaining(today, periodEnd time.Time, completedToday bool) int {
	days := DaysBetween(today, periodEnd) + 1
	if completedToday {
		days--
	}
	if days < 0 {
		return 0
	}
	return days
}
