package chain

import (
	"testing"
	"time"

	"github.com/blackwell-systems/rhythmtrack/internal/aggregate"
	"github.com/blackwell-systems/rhythmtrack/internal/calendar"
	"github.com/blackwell-systems/rhythmtrack/internal/rhythm"
)

// testRhythm returns a 10-minute daily rhythm configured with the given
// chain types.
func testRhythm(types ...rhythm.ChainType) *rhythm.Rhythm {
	return &rhythm.Rhythm{
		ID:                   "r1",
		Name:                 "meditate",
		GoalValue:            10,
		GoalUnit:             rhythm.GoalMinutes,
		ChainTypes:           types,
		WeeklyTargetMinutes:  60,
		MonthlyTargetMinutes: 200,
	}
}

// buildDays turns a pattern of '1' (complete) and '0' (incomplete) days
// into a day sequence starting at start. Complete days carry 30 minutes of
// activity, which also drives the target-chain sums.
func buildDays(t *testing.T, start string, pattern string) []aggregate.DayStatus {
	t.Helper()
	day, err := time.Parse(calendar.DateFormat, start)
	if err != nil {
		t.Fatalf("bad start date %q: %v", start, err)
	}

	days := make([]aggregate.DayStatus, 0, len(pattern))
	for _, c := range pattern {
		ds := aggregate.DayStatus{Date: calendar.FormatDate(day), Day: day}
		if c == '1' {
			ds.TotalSeconds = 1800
			ds.EntryCount = 1
			ds.IsComplete = true
		}
		days = append(days, ds)
		day = day.AddDate(0, 0, 1)
	}
	return days
}

func statFor(t *testing.T, stats []Stat, ct rhythm.ChainType) Stat {
	t.Helper()
	for _, s := range stats {
		if s.Type == ct {
			return s
		}
	}
	t.Fatalf("no stat for chain type %s", ct)
	return Stat{}
}

func TestCalculate_EmptyHistory(t *testing.T) {
	r := testRhythm(rhythm.AllChainTypes()...)
	stats := Calculate(r, nil)

	if len(stats) != 5 {
		t.Fatalf("expected 5 stats, got %d", len(stats))
	}
	for _, s := range stats {
		if s.Current != 0 || s.Longest != 0 {
			t.Errorf("%s: expected zeros for empty history, got %+v", s.Type, s)
		}
	}
}

func TestDaily_SevenConsecutiveDays(t *testing.T) {
	r := testRhythm(rhythm.ChainDaily)
	days := buildDays(t, "2026-01-05", "1111111")

	s := statFor(t, Calculate(r, days), rhythm.ChainDaily)
	if s.Current != 7 || s.Longest != 7 {
		t.Errorf("got current=%d longest=%d, want 7/7", s.Current, s.Longest)
	}
	if s.Unit != rhythm.UnitDays {
		t.Errorf("daily unit = %s, want days", s.Unit)
	}
}

func TestDaily_IncompleteTodayDoesNotBreakChain(t *testing.T) {
	r := testRhythm(rhythm.ChainDaily)
	// Three complete days, then today with nothing logged yet.
	days := buildDays(t, "2026-01-05", "1110")

	s := statFor(t, Calculate(r, days), rhythm.ChainDaily)
	if s.Current != 3 {
		t.Errorf("current = %d, want 3 (today is still open)", s.Current)
	}
	if s.Longest != 3 {
		t.Errorf("longest = %d, want 3", s.Longest)
	}
}

func TestDaily_BrokenChainKeepsLongest(t *testing.T) {
	r := testRhythm(rhythm.ChainDaily)
	// A 10-day chain, a fully elapsed miss, then today complete.
	days := buildDays(t, "2026-01-05", "111111111101")

	s := statFor(t, Calculate(r, days), rhythm.ChainDaily)
	if s.Current != 1 {
		t.Errorf("current = %d, want 1", s.Current)
	}
	if s.Longest != 10 {
		t.Errorf("longest = %d, want 10", s.Longest)
	}
}

func TestDaily_MissYesterdayAndToday(t *testing.T) {
	r := testRhythm(rhythm.ChainDaily)
	days := buildDays(t, "2026-01-05", "111100")

	s := statFor(t, Calculate(r, days), rhythm.ChainDaily)
	if s.Current != 0 {
		t.Errorf("current = %d, want 0 (yesterday was a real miss)", s.Current)
	}
	if s.Longest != 4 {
		t.Errorf("longest = %d, want 4", s.Longest)
	}
}

func TestDaily_LongestNeverBelowCurrent(t *testing.T) {
	r := testRhythm(rhythm.ChainDaily)
	for _, pattern := range []string{"1", "0", "10101", "1111", "0111", "1110", "0000"} {
		days := buildDays(t, "2026-01-05", pattern)
		s := statFor(t, Calculate(r, days), rhythm.ChainDaily)
		if s.Longest < s.Current {
			t.Errorf("pattern %s: longest %d < current %d", pattern, s.Longest, s.Current)
		}
	}
}

func TestWeeklyLow_ConsecutiveWeeks(t *testing.T) {
	r := testRhythm(rhythm.ChainWeeklyLow)
	// Two full Monday-aligned weeks with 3 complete days each, then a
	// current week that already has 3.
	days := buildDays(t, "2026-01-05", "1110000"+"1011000"+"111")

	s := statFor(t, Calculate(r, days), rhythm.ChainWeeklyLow)
	if s.Current != 3 {
		t.Errorf("current = %d weeks, want 3", s.Current)
	}
	if s.Longest != 3 {
		t.Errorf("longest = %d weeks, want 3", s.Longest)
	}
	if s.Unit != rhythm.UnitWeeks {
		t.Errorf("unit = %s, want weeks", s.Unit)
	}
}

func TestWeeklyLow_OpenWeekNotAssumedToComplete(t *testing.T) {
	r := testRhythm(rhythm.ChainWeeklyLow)
	// Two qualifying weeks, then a current week with only 2 of 3 needed
	// days. The open week neither extends nor breaks the chain.
	days := buildDays(t, "2026-01-05", "1110000"+"1110000"+"110")

	s := statFor(t, Calculate(r, days), rhythm.ChainWeeklyLow)
	if s.Current != 2 {
		t.Errorf("current = %d weeks, want 2 (open week not counted)", s.Current)
	}
}

func TestWeeklyHigh_RequiresFiveDays(t *testing.T) {
	r := testRhythm(rhythm.ChainWeeklyHigh)
	// Week 1 has 5 complete days, week 2 only 4, week 3 (open) has 5.
	days := buildDays(t, "2026-01-05", "1111100"+"1111000"+"1111100")

	s := statFor(t, Calculate(r, days), rhythm.ChainWeeklyHigh)
	if s.Current != 1 {
		t.Errorf("current = %d, want 1 (week 2 broke the run)", s.Current)
	}
	if s.Longest != 1 {
		t.Errorf("longest = %d, want 1", s.Longest)
	}
}

func TestWeeklyTarget_CumulativeMinutes(t *testing.T) {
	r := testRhythm(rhythm.ChainWeeklyTarget) // 60 minutes per week
	// Week 1: 2 complete days = 60 min, meets target. Week 2: 1 day = 30
	// min, misses. Week 3 (open): 2 days = 60 min, already met.
	days := buildDays(t, "2026-01-05", "1100000"+"1000000"+"110")

	s := statFor(t, Calculate(r, days), rhythm.ChainWeeklyTarget)
	if s.Current != 1 {
		t.Errorf("current = %d, want 1 (only the open week qualifies)", s.Current)
	}
	if s.Longest != 1 {
		t.Errorf("longest = %d, want 1", s.Longest)
	}
}

func TestMonthlyTarget_CumulativeMinutes(t *testing.T) {
	r := testRhythm(rhythm.ChainMonthlyTarget) // 200 minutes per month
	// January 2026: 8 complete days = 240 min, meets target. February
	// (open, first 10 days): 7 complete days = 210 min, already met.
	days := buildDays(t, "2026-01-01", "1111111100000000000000000000000"+"1111111000")

	s := statFor(t, Calculate(r, days), rhythm.ChainMonthlyTarget)
	if s.Current != 2 {
		t.Errorf("current = %d months, want 2", s.Current)
	}
	if s.Longest != 2 {
		t.Errorf("longest = %d months, want 2", s.Longest)
	}
	if s.Unit != rhythm.UnitMonths {
		t.Errorf("unit = %s, want months", s.Unit)
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	r := testRhythm(rhythm.AllChainTypes()...)
	days := buildDays(t, "2026-01-05", "1110110"+"1111100"+"101")

	first := Calculate(r, days)
	second := Calculate(r, days)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("stat %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
