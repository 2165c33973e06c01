// Package tier maps weekly qualifying-day counts onto five named frequency
// bands and derives weekly progress and nudge messages from them. Tiers are
// the graceful alternative to an all-or-nothing streak: losing a daily chain
// degrades to the next band instead of zeroing out.
package tier

import (
	"time"

	"github.com/blackwell-systems/rhythmtrack/internal/aggregate"
	"github.com/blackwell-systems/rhythmtrack/internal/calendar"
)

// Tier is one of the five frequency bands, ordered from most to least
// demanding.
type Tier string

const (
	TierDaily    Tier = "daily"
	TierMostDays Tier = "most_days"
	TierFewTimes Tier = "few_times"
	TierWeekly   Tier = "weekly"
	TierStarting Tier = "starting"
)

// Band describes one tier's inclusive day range over a Monday-Sunday week.
type Band struct {
	Tier    Tier
	Label   string
	MinDays int
	MaxDays int
}

// Bands lists all tiers from most to least demanding. Lookups walk this
// slice top down; the ranges are disjoint so there is no shadowing.
var Bands = []Band{
	{TierDaily, "Every Day", 7, 7},
	{TierMostDays, "Most Days", 5, 6},
	{TierFewTimes, "A Few Times a Week", 3, 4},
	{TierWeekly, "Once a Week", 1, 2},
	{TierStarting, "Just Starting", 0, 0},
}

// ForDays returns the tier implied by n qualifying days in a week.
// Monotonic: more days never yields a less demanding tier.
func ForDays(n int) Tier {
	switch {
	case n >= 7:
		return TierDaily
	case n >= 5:
		return TierMostDays
	case n >= 3:
		return TierFewTimes
	case n >= 1:
		return TierWeekly
	default:
		return TierStarting
	}
}

// BestPossible returns the most demanding tier still reachable with the
// given completed and remaining day counts.
func BestPossible(completed, remaining int) Tier {
	return ForDays(completed + remaining)
}

// Parse returns the tier with the given name, or false for unknown names.
func Parse(s string) (Tier, bool) {
	for _, b := range Bands {
		if string(b.Tier) == s {
			return b.Tier, true
		}
	}
	return "", false
}

func (t Tier) band() Band {
	for _, b := range Bands {
		if b.Tier == t {
			return b
		}
	}
	return Bands[len(Bands)-1]
}

// Label returns the human-readable tier name.
func (t Tier) Label() string { return t.band().Label }

// MinDays returns the minimum qualifying days per week for the tier.
func (t Tier) MinDays() int { return t.band().MinDays }

// WeeklyProgress is the derived, ephemeral snapshot of the current
// Monday-Sunday week for one rhythm.
type WeeklyProgress struct {
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	DaysCompleted    int    `json:"days_completed"`
	DaysRemaining    int    `json:"days_remaining"`
	AchievedTier     Tier   `json:"achieved_tier"`
	BestPossibleTier Tier   `json:"best_possible_tier"`
}

// CalculateWeeklyProgress counts qualifying days inside the week containing
// today. Whether today itself is complete comes straight off its DayStatus,
// which decides how many days are still counted as remaining.
func CalculateWeeklyProgress(days []aggregate.DayStatus, today time.Time) WeeklyProgress {
	weekStart := calendar.WeekStart(today)
	weekEnd := calendar.WeekEnd(today)
	startKey := calendar.FormatDate(weekStart)
	endKey := calendar.FormatDate(weekEnd)

	completed := 0
	for _, ds := range days {
		if ds.Date >= startKey && ds.Date <= endKey && ds.IsComplete {
			completed++
		}
	}

	completedToday := false
	if ds, ok := aggregate.Find(days, calendar.FormatDate(today)); ok {
		completedToday = ds.IsComplete
	}
	remaining := calendar.DaysRemaining(today, weekEnd, completedToday)

	return WeeklyProgress{
		StartDate:        startKey,
		EndDate:          endKey,
		DaysCompleted:    completed,
		DaysRemaining:    remaining,
		AchievedTier:     ForDays(completed),
		BestPossibleTier: BestPossible(completed, remaining),
	}
}
