// Package aggregate collapses raw activity records into per-calendar-day
// completion facts. The output is a gap-free, ordered day sequence that
// every downstream chain and tier computation relies on.
package aggregate

import (
	"time"

	"github.com/blackwell-systems/rhythmtrack/internal/calendar"
	"github.com/blackwell-systems/rhythmtrack/internal/rhythm"
)

// DayStatus is the derived completion fact for one calendar day of one
// rhythm. It is recomputed from source records on demand and never stored
// as authoritative state.
type DayStatus struct {
	// Date is the canonical YYYY-MM-DD key in the rhythm's timezone.
	Date string `json:"date"`
	// Day is midnight of the day in the rhythm's timezone.
	Day time.Time `json:"-"`

	TotalSeconds int  `json:"total_seconds"`
	EntryCount   int  `json:"entry_count"`
	IsComplete   bool `json:"is_complete"`
}

// BuildDayStatuses groups records by their logical day in the rhythm's
// timezone, sums duration and entry counts per day, and returns one
// DayStatus per calendar day from the earliest record (or from, when set)
// through today inclusive. Days with no activity appear as incomplete
// zero entries; records with a missing timestamp are skipped rather than
// failing the whole computation.
func BuildDayStatuses(r *rhythm.Rhythm, records []rhythm.Record, from, today time.Time) []DayStatus {
	loc := r.Location()
	end := calendar.DayStart(today.In(loc))

	type bucket struct {
		seconds int
		count   int
	}
	buckets := make(map[string]*bucket)

	var earliest time.Time
	for _, rec := range records {
		if rec.Timestamp.IsZero() {
			continue
		}
		// Day membership is decided by the rhythm's timezone, not the
		// zone the record happened to be captured in.
		day := calendar.DayStart(rec.Timestamp.In(loc))
		if day.After(end) {
			continue
		}
		key := calendar.FormatDate(day)
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		b.seconds += rec.DurationSeconds
		b.count++
		if earliest.IsZero() || day.Before(earliest) {
			earliest = day
		}
	}

	start := end
	if !from.IsZero() {
		start = calendar.DayStart(from.In(loc))
	} else if !earliest.IsZero() {
		start = earliest
	}
	if start.After(end) {
		start = end
	}

	n := calendar.DaysBetween(start, end) + 1
	statuses := make([]DayStatus, 0, n)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := calendar.FormatDate(day)
		ds := DayStatus{Date: key, Day: day}
		if b, ok := buckets[key]; ok {
			ds.TotalSeconds = b.seconds
			ds.EntryCount = b.count
		}
		ds.IsComplete = r.DayComplete(ds.TotalSeconds, ds.EntryCount)
		statuses = append(statuses, ds)
	}

	return statuses
}

// Find returns the status for the given day key, if present.
func Find(statuses []DayStatus, date string) (DayStatus, bool) {
	for _, ds := range statuses {
		if ds.Date == date {
			return ds, true
		}
	}
	return DayStatus{}, false
}
