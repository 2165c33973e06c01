// Package chain computes streak statistics over aggregated day facts.
// Each chain type reduces the day sequence to an ordered list of qualifying
// periods (days, weeks, or months); current and longest runs then fall out
// of one shared scanner.
package chain

import (
	"time"

	"github.com/blackwell-systems/rhythmtrack/internal/aggregate"
	"github.com/blackwell-systems/rhythmtrack/internal/calendar"
	"github.com/blackwell-systems/rhythmtrack/internal/rhythm"
)

// Stat holds current and historical-longest chain lengths for one chain
// type, in that chain's own unit. Longest is never less than Current.
type Stat struct {
	Type    rhythm.ChainType `json:"type"`
	Current int              `json:"current"`
	Longest int              `json:"longest"`
	Unit    rhythm.Unit      `json:"unit"`
}

// Calculate computes one Stat per chain type configured on the rhythm.
// The day sequence must be the gap-free output of aggregate.BuildDayStatuses
// ending at today; an empty sequence yields all-zero stats.
func Calculate(r *rhythm.Rhythm, days []aggregate.DayStatus) []Stat {
	stats := make([]Stat, 0, len(r.ChainTypes))
	for _, ct := range r.ChainTypes {
		cur, longest := calculate(r, ct, days)
		stats = append(stats, Stat{Type: ct, Current: cur, Longest: longest, Unit: ct.Unit()})
	}
	return stats
}

func calculate(r *rhythm.Rhythm, ct rhythm.ChainType, days []aggregate.DayStatus) (current, longest int) {
	if len(days) == 0 {
		return 0, 0
	}

	switch ct {
	case rhythm.ChainDaily:
		qualified := make([]bool, len(days))
		for i, ds := range days {
			qualified[i] = ds.IsComplete
		}
		return runs(qualified)

	case rhythm.ChainWeeklyHigh, rhythm.ChainWeeklyLow:
		weeks := partition(days, calendar.WeekStart)
		qualified := make([]bool, len(weeks))
		for i, p := range weeks {
			qualified[i] = p.completeDays >= ct.MinDaysPerPeriod()
		}
		return runs(qualified)

	case rhythm.ChainWeeklyTarget:
		weeks := partition(days, calendar.WeekStart)
		qualified := make([]bool, len(weeks))
		for i, p := range weeks {
			qualified[i] = p.totalSeconds >= r.WeeklyTargetMinutes*60
		}
		return runs(qualified)

	case rhythm.ChainMonthlyTarget:
		months := partition(days, calendar.MonthStart)
		qualified := make([]bool, len(months))
		for i, p := range months {
			qualified[i] = p.totalSeconds >= r.MonthlyTargetMinutes*60
		}
		return runs(qualified)
	}

	return 0, 0
}

// period accumulates the day facts falling inside one week or month.
type period struct {
	key          string
	completeDays int
	totalSeconds int
}

// partition groups an ordered day sequence into consecutive periods keyed
// by the given boundary function. Because the day sequence is gap-free,
// the resulting periods are consecutive too.
func partition(days []aggregate.DayStatus, startOf func(time.Time) time.Time) []period {
	var periods []period
	for _, ds := range days {
		key := calendar.FormatDate(startOf(ds.Day))
		if len(periods) == 0 || periods[len(periods)-1].key != key {
			periods = append(periods, period{key: key})
		}
		p := &periods[len(periods)-1]
		if ds.IsComplete {
			p.completeDays++
		}
		p.totalSeconds += ds.TotalSeconds
	}
	return periods
}

// runs scans an ordered qualifying-period sequence whose final element is
// the period still in progress. The open period extends the current run
// only if it already qualifies; if it does not yet qualify it is skipped
// rather than treated as a break, so the chain is never optimistic and
// never reported broken before the period is actually over.
func runs(qualified []bool) (current, longest int) {
	run := 0
	for _, q := range qualified {
		if q {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}

	i := len(qualified) - 1
	if i >= 0 && !qualified[i] {
		// Open period, not yet qualifying: look at the one before it.
		i--
	}
	for ; i >= 0 && qualified[i]; i-- {
		current++
	}
	return current, longest
}
