// Package engine is the component boundary of the chain engine: it pulls a
// rhythm's configuration and records from injected sources, runs the pure
// aggregate/chain/tier computations, and memoizes the result per rhythm and
// day. The current date is always an explicit parameter, so the engine is
// deterministic and testable without clock mocking.
package engine

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/blackwell-systems/rhythmtrack/internal/aggregate"
	"github.com/blackwell-systems/rhythmtrack/internal/calendar"
	"github.com/blackwell-systems/rhythmtrack/internal/chain"
	"github.com/blackwell-systems/rhythmtrack/internal/rhythm"
	"github.com/blackwell-systems/rhythmtrack/internal/tier"
)

// EntryStore supplies the activity records that count toward a rhythm,
// ordered by timestamp. Matching criteria are owned by the store; the
// engine assumes every returned record counts. A zero from means "from the
// beginning of history".
type EntryStore interface {
	ListRecords(rhythmID string, from, to time.Time) ([]rhythm.Record, error)
}

// RhythmSource resolves rhythm configuration by ID.
type RhythmSource interface {
	GetRhythm(id string) (*rhythm.Rhythm, error)
}

// Engine computes chain stats, weekly progress, and nudges for rhythms.
// Reads and invalidations for the same rhythm are serialized on a per-key
// lock so an invalidation can never be lost to an in-flight recompute;
// concurrent identical reads collapse into a single computation.
type Engine struct {
	rhythms RhythmSource
	entries EntryStore
	cache   Cache

	group singleflight.Group
	locks sync.Map // rhythmID -> *sync.Mutex
}

// New builds an Engine over the given sources and cache.
func New(rhythms RhythmSource, entries EntryStore, cache Cache) *Engine {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Engine{rhythms: rhythms, entries: entries, cache: cache}
}

// ChainStats returns one Stat per chain type configured on the rhythm.
func (e *Engine) ChainStats(rhythmID string, today time.Time) ([]chain.Stat, error) {
	snap, err := e.snapshot(rhythmID, today)
	if err != nil {
		return nil, err
	}
	return snap.Stats, nil
}

// WeeklyProgress returns the rhythm's Monday-Sunday progress as of today.
func (e *Engine) WeeklyProgress(rhythmID string, today time.Time) (tier.WeeklyProgress, error) {
	snap, err := e.snapshot(rhythmID, today)
	if err != nil {
		return tier.WeeklyProgress{}, err
	}
	return snap.Weekly, nil
}

// Nudge returns an encouragement toward the target tier, or an empty
// string when none applies.
func (e *Engine) Nudge(rhythmID string, target tier.Tier, today time.Time) (string, error) {
	snap, err := e.snapshot(rhythmID, today)
	if err != nil {
		return "", err
	}
	return tier.Nudge(snap.Weekly, target), nil
}

// Invalidate drops the cached snapshot for a rhythm. The write path calls
// this after persisting any entry or configuration change that could alter
// a day fact; the next read recomputes from source records.
func (e *Engine) Invalidate(rhythmID string) {
	mu := e.lock(rhythmID)
	mu.Lock()
	defer mu.Unlock()
	e.cache.Invalidate(rhythmID)
}

// Snapshot returns the full computed result set for a rhythm as of today,
// from cache when fresh.
func (e *Engine) Snapshot(rhythmID string, today time.Time) (*Snapshot, error) {
	return e.snapshot(rhythmID, today)
}

func (e *Engine) snapshot(rhythmID string, today time.Time) (*Snapshot, error) {
	asOf := calendar.FormatDate(today)

	if snap, ok := e.cache.Get(rhythmID); ok && snap.AsOf == asOf {
		return snap, nil
	}

	v, err, _ := e.group.Do(rhythmID+"|"+asOf, func() (interface{}, error) {
		mu := e.lock(rhythmID)
		mu.Lock()
		defer mu.Unlock()

		// A concurrent reader may have filled the cache while this call
		// waited on the lock.
		if snap, ok := e.cache.Get(rhythmID); ok && snap.AsOf == asOf {
			return snap, nil
		}

		snap, err := e.compute(rhythmID, today)
		if err != nil {
			return nil, err
		}
		e.cache.Set(rhythmID, snap)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

func (e *Engine) compute(rhythmID string, today time.Time) (*Snapshot, error) {
	r, err := e.rhythms.GetRhythm(rhythmID)
	if err != nil {
		return nil, fmt.Errorf("loading rhythm %s: %w", rhythmID, err)
	}

	records, err := e.entries.ListRecords(rhythmID, time.Time{}, today)
	if err != nil {
		return nil, fmt.Errorf("listing records for %s: %w", rhythmID, err)
	}

	// All calendar arithmetic happens in the rhythm's own timezone.
	local := today.In(r.Location())
	days := aggregate.BuildDayStatuses(r, records, time.Time{}, local)

	return &Snapshot{
		RhythmID: rhythmID,
		AsOf:     calendar.FormatDate(today),
		Stats:    chain.Calculate(r, days),
		Weekly:   tier.CalculateWeeklyProgress(days, local),
	}, nil
}

func (e *Engine) lock(rhythmID string) *sync.Mutex {
	mu, _ := e.locks.LoadOrStore(rhythmID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
