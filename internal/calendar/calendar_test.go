package calendar

import (
	"testing"
	"time"
)

// date builds a midnight UTC time from a date string.
func date(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(DateFormat, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return ts
}

func TestWeekStart_AlwaysMonday(t *testing.T) {
	tests := []struct {
		day  string
		want string
	}{
		{"2026-01-05", "2026-01-05"}, // Monday maps to itself
		{"2026-01-07", "2026-01-05"}, // Wednesday
		{"2026-01-10", "2026-01-05"}, // Saturday
		{"2026-01-11", "2026-01-05"}, // Sunday belongs to the preceding Monday
		{"2026-01-12", "2026-01-12"}, // next Monday
	}

	for _, tc := range tests {
		got := WeekStart(date(t, tc.day))
		if FormatDate(got) != tc.want {
			t.Errorf("WeekStart(%s) = %s, want %s", tc.day, FormatDate(got), tc.want)
		}
		if got.Weekday() != time.Monday {
			t.Errorf("WeekStart(%s) fell on %s, want Monday", tc.day, got.Weekday())
		}
		if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
			t.Errorf("WeekStart(%s) not at midnight: %v", tc.day, got)
		}
	}
}

func TestWeekBounds_ContainTheDay(t *testing.T) {
	for _, s := range []string{"2026-01-05", "2026-01-08", "2026-01-11", "2026-02-28", "2024-02-29"} {
		d := date(t, s).Add(13 * time.Hour)
		ws, we := WeekStart(d), WeekEnd(d)
		if d.Before(ws) || d.After(we) {
			t.Errorf("%s not within [%v, %v]", s, ws, we)
		}
		if DaysBetween(ws, we) != 6 {
			t.Errorf("week of %s spans %d days, want 6", s, DaysBetween(ws, we))
		}
	}
}

func TestWeekEnd_SundayEndOfDay(t *testing.T) {
	got := WeekEnd(date(t, "2026-01-07"))
	if FormatDate(got) != "2026-01-11" {
		t.Errorf("WeekEnd = %s, want 2026-01-11", FormatDate(got))
	}
	if got.Hour() != 23 || got.Minute() != 59 || got.Second() != 59 {
		t.Errorf("WeekEnd not at 23:59:59: %v", got)
	}
}

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		day       string
		wantStart string
		wantEnd   string
	}{
		{"2026-01-15", "2026-01-01", "2026-01-31"},
		{"2026-02-10", "2026-02-01", "2026-02-28"},
		{"2024-02-10", "2024-02-01", "2024-02-29"}, // leap year
		{"2026-04-30", "2026-04-01", "2026-04-30"},
		{"2026-12-31", "2026-12-01", "2026-12-31"},
	}

	for _, tc := range tests {
		d := date(t, tc.day)
		if got := FormatDate(MonthStart(d)); got != tc.wantStart {
			t.Errorf("MonthStart(%s) = %s, want %s", tc.day, got, tc.wantStart)
		}
		if got := FormatDate(MonthEnd(d)); got != tc.wantEnd {
			t.Errorf("MonthEnd(%s) = %s, want %s", tc.day, got, tc.wantEnd)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	a := date(t, "2026-01-05")
	b := date(t, "2026-01-11")
	if got := DaysBetween(a, b); got != 6 {
		t.Errorf("DaysBetween = %d, want 6", got)
	}
	if got := DaysBetween(b, a); got != -6 {
		t.Errorf("reverse DaysBetween = %d, want -6", got)
	}
	if got := DaysBetween(a, a.Add(23*time.Hour)); got != 0 {
		t.Errorf("same-day DaysBetween = %d, want 0", got)
	}
}

func TestDaysRemaining(t *testing.T) {
	weekEnd := WeekEnd(date(t, "2026-01-07"))

	tests := []struct {
		name           string
		today          string
		completedToday bool
		want           int
	}{
		{"midweek incomplete", "2026-01-07", false, 5},
		{"midweek complete", "2026-01-07", true, 4},
		{"sunday incomplete", "2026-01-11", false, 1},
		{"sunday complete", "2026-01-11", true, 0},
		{"past the period", "2026-01-12", false, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DaysRemaining(date(t, tc.today), weekEnd, tc.completedToday)
			if got != tc.want {
				t.Errorf("DaysRemaining = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestFormatDate_Stable(t *testing.T) {
	d := time.Date(2026, 3, 7, 5, 4, 3, 0, time.UTC)
	if got := FormatDate(d); got != "2026-03-07" {
		t.Errorf("FormatDate = %q, want 2026-03-07", got)
	}
}
