package rhythm

import (
	"errors"
	"testing"
)

func base() Rhythm {
	return Rhythm{
		Name:       "meditate",
		GoalValue:  10,
		GoalUnit:   GoalMinutes,
		ChainTypes: []ChainType{ChainDaily},
	}
}

func TestValidate_OK(t *testing.T) {
	r := base()
	if err := r.Validate(); err != nil {
		t.Errorf("valid rhythm rejected: %v", err)
	}
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Rhythm)
	}{
		{"empty name", func(r *Rhythm) { r.Name = "  " }},
		{"zero goal", func(r *Rhythm) { r.GoalValue = 0 }},
		{"unknown unit", func(r *Rhythm) { r.GoalUnit = "hours" }},
		{"no chain types", func(r *Rhythm) { r.ChainTypes = nil }},
		{"unknown chain type", func(r *Rhythm) { r.ChainTypes = []ChainType{"yearly"} }},
		{"weekly_target without target", func(r *Rhythm) { r.ChainTypes = []ChainType{ChainWeeklyTarget} }},
		{"monthly_target without target", func(r *Rhythm) { r.ChainTypes = []ChainType{ChainMonthlyTarget} }},
		{"bad timezone", func(r *Rhythm) { r.Timezone = "Mars/Olympus" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := base()
			tc.mutate(&r)
			err := r.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if tc.name != "empty name" && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v not wrapped in ErrInvalidConfig", err)
			}
		})
	}
}

func TestValidate_OccurrenceNeedsNoGoalValue(t *testing.T) {
	r := base()
	r.GoalUnit = GoalOccurrence
	r.GoalValue = 0
	if err := r.Validate(); err != nil {
		t.Errorf("occurrence goal rejected: %v", err)
	}
}

func TestValidate_TargetsSatisfied(t *testing.T) {
	r := base()
	r.ChainTypes = []ChainType{ChainWeeklyTarget, ChainMonthlyTarget}
	r.WeeklyTargetMinutes = 150
	r.MonthlyTargetMinutes = 600
	if err := r.Validate(); err != nil {
		t.Errorf("targets set but rejected: %v", err)
	}
}

func TestChainTypeUnits(t *testing.T) {
	tests := []struct {
		ct   ChainType
		unit Unit
		min  int
	}{
		{ChainDaily, UnitDays, 0},
		{ChainWeeklyHigh, UnitWeeks, 5},
		{ChainWeeklyLow, UnitWeeks, 3},
		{ChainWeeklyTarget, UnitWeeks, 0},
		{ChainMonthlyTarget, UnitMonths, 0},
	}

	for _, tc := range tests {
		if tc.ct.Unit() != tc.unit {
			t.Errorf("%s unit = %s, want %s", tc.ct, tc.ct.Unit(), tc.unit)
		}
		if tc.ct.MinDaysPerPeriod() != tc.min {
			t.Errorf("%s min days = %d, want %d", tc.ct, tc.ct.MinDaysPerPeriod(), tc.min)
		}
	}
}

func TestParseChainTypes(t *testing.T) {
	types, err := ParseChainTypes("daily, weekly_low")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(types) != 2 || types[0] != ChainDaily || types[1] != ChainWeeklyLow {
		t.Errorf("got %v", types)
	}

	if _, err := ParseChainTypes("daily,bogus"); err == nil {
		t.Error("expected error for unknown chain type")
	}
}

func TestDayComplete(t *testing.T) {
	r := base() // 10 minutes
	if r.DayComplete(599, 1) {
		t.Error("599s should not complete a 10-minute goal")
	}
	if !r.DayComplete(600, 1) {
		t.Error("600s should complete a 10-minute goal")
	}

	r.GoalUnit = GoalCount
	r.GoalValue = 2
	if r.DayComplete(0, 1) {
		t.Error("1 entry should not complete a count-2 goal")
	}
	if !r.DayComplete(0, 2) {
		t.Error("2 entries should complete a count-2 goal")
	}

	r.GoalUnit = GoalOccurrence
	if !r.DayComplete(0, 1) {
		t.Error("any entry should complete an occurrence goal")
	}
	if r.DayComplete(0, 0) {
		t.Error("no entries should not complete an occurrence goal")
	}
}
