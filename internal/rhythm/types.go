// Package rhythm defines the configuration model for tracked rhythms:
// goals, chain types, and the activity records that count toward them.
package rhythm

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a rhythm lookup misses.
	ErrNotFound = errors.New("rhythm not found")
	// ErrInvalidConfig is returned when a rhythm's configuration is
	// incomplete for one of its chain types.
	ErrInvalidConfig = errors.New("invalid rhythm configuration")
)

// GoalUnit is the per-day metric a rhythm's goal is expressed in.
type GoalUnit string

const (
	// GoalMinutes means a day qualifies when accumulated duration
	// reaches GoalValue minutes.
	GoalMinutes GoalUnit = "minutes"
	// GoalCount means a day qualifies when the number of entries
	// reaches GoalValue.
	GoalCount GoalUnit = "count"
	// GoalOccurrence means any entry at all makes the day qualify.
	GoalOccurrence GoalUnit = "occurrence"
)

// ChainType identifies one of the simultaneous streak definitions computed
// over the same day sequence.
type ChainType string

const (
	ChainDaily         ChainType = "daily"
	ChainWeeklyHigh    ChainType = "weekly_high"
	ChainWeeklyLow     ChainType = "weekly_low"
	ChainWeeklyTarget  ChainType = "weekly_target"
	ChainMonthlyTarget ChainType = "monthly_target"
)

// Unit is the period a chain is counted in.
type Unit string

const (
	UnitDays   Unit = "days"
	UnitWeeks  Unit = "weeks"
	UnitMonths Unit = "months"
)

// AllChainTypes lists every supported chain type in display order.
func AllChainTypes() []ChainType {
	return []ChainType{ChainDaily, ChainWeeklyHigh, ChainWeeklyLow, ChainWeeklyTarget, ChainMonthlyTarget}
}

// Unit returns the period unit a chain type is counted in.
func (c ChainType) Unit() Unit {
	switch c {
	case ChainDaily:
		return UnitDays
	case ChainMonthlyTarget:
		return UnitMonths
	default:
		return UnitWeeks
	}
}

// MinDaysPerPeriod returns the qualifying-day threshold for day-count
// weekly chains, or 0 for chain types that do not use one.
func (c ChainType) MinDaysPerPeriod() int {
	switch c {
	case ChainWeeklyHigh:
		return 5
	case ChainWeeklyLow:
		return 3
	default:
		return 0
	}
}

// Valid reports whether c is a known chain type.
func (c ChainType) Valid() bool {
	switch c {
	case ChainDaily, ChainWeeklyHigh, ChainWeeklyLow, ChainWeeklyTarget, ChainMonthlyTarget:
		return true
	}
	return false
}

// ParseChainTypes parses a comma-separated chain type list.
func ParseChainTypes(s string) ([]ChainType, error) {
	var types []ChainType
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		ct := ChainType(part)
		if !ct.Valid() {
			return nil, fmt.Errorf("unknown chain type %q", part)
		}
		types = append(types, ct)
	}
	return types, nil
}

// Rhythm is a user-defined recurring pattern to track. The engine treats it
// as read-only configuration; creation and edits happen at the CLI boundary.
type Rhythm struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	GoalValue int      `json:"goal_value"`
	GoalUnit  GoalUnit `json:"goal_unit"`

	// Timezone names the location that defines this rhythm's logical day.
	// Empty means the process-local zone.
	Timezone string `json:"timezone,omitempty"`

	ChainTypes []ChainType `json:"chain_types"`

	// WeeklyTargetMinutes and MonthlyTargetMinutes are the cumulative
	// duration thresholds for the weekly_target and monthly_target chains.
	WeeklyTargetMinutes  int `json:"weekly_target_minutes,omitempty"`
	MonthlyTargetMinutes int `json:"monthly_target_minutes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Record is one timestamped activity observation that counts toward a
// rhythm. Records are assumed pre-filtered by the entry store; the engine
// never re-checks matching criteria.
type Record struct {
	Timestamp       time.Time
	Timezone        string
	DurationSeconds int
}

// Validate fails fast when the configuration is incomplete for any of the
// rhythm's chain types. Silent defaulting is deliberately avoided here.
func (r *Rhythm) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}

	switch r.GoalUnit {
	case GoalMinutes, GoalCount:
		if r.GoalValue <= 0 {
			return fmt.Errorf("%w: goal value must be positive for unit %q", ErrInvalidConfig, r.GoalUnit)
		}
	case GoalOccurrence:
		// Any entry completes the day; no value needed.
	default:
		return fmt.Errorf("%w: unknown goal unit %q", ErrInvalidConfig, r.GoalUnit)
	}

	if len(r.ChainTypes) == 0 {
		return fmt.Errorf("%w: at least one chain type is required", ErrInvalidConfig)
	}
	for _, ct := range r.ChainTypes {
		if !ct.Valid() {
			return fmt.Errorf("%w: unknown chain type %q", ErrInvalidConfig, ct)
		}
		if ct == ChainWeeklyTarget && r.WeeklyTargetMinutes <= 0 {
			return fmt.Errorf("%w: weekly_target requires a positive weekly target", ErrInvalidConfig)
		}
		if ct == ChainMonthlyTarget && r.MonthlyTargetMinutes <= 0 {
			return fmt.Errorf("%w: monthly_target requires a positive monthly target", ErrInvalidConfig)
		}
	}

	if r.Timezone != "" {
		if _, err := time.LoadLocation(r.Timezone); err != nil {
			return fmt.Errorf("%w: bad timezone %q", ErrInvalidConfig, r.Timezone)
		}
	}

	return nil
}

// Location resolves the rhythm's timezone. An empty or unknown zone falls
// back to the process-local location.
func (r *Rhythm) Location() *time.Location {
	if r.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// DayComplete reports whether a day with the given accumulated totals meets
// this rhythm's per-day goal. It depends only on the totals and the goal,
// never on the current time.
func (r *Rhythm) DayComplete(totalSeconds, entryCount int) bool {
	switch r.GoalUnit {
	case GoalMinutes:
		return totalSeconds >= r.GoalValue*60
	case GoalCount:
		return entryCount >= r.GoalValue
	case GoalOccurrence:
		return entryCount > 0
	default:
		return false
	}
}
