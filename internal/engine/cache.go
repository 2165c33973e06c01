package engine

import (
	"sync"

	"github.com/blackwell-systems/rhythmtrack/internal/chain"
	"github.com/blackwell-systems/rhythmtrack/internal/tier"
)

// Snapshot is the full computed result set for one rhythm as of one day.
type Snapshot struct {
	RhythmID string              `json:"rhythm_id"`
	AsOf     string              `json:"as_of"`
	Stats    []chain.Stat        `json:"stats"`
	Weekly   tier.WeeklyProgress `json:"weekly"`
}

// Cache memoizes computed snapshots per rhythm. Implementations must be
// safe for concurrent use. Invalidation deletes the entry outright; entries
// are never patched in place.
type Cache interface {
	Get(rhythmID string) (*Snapshot, bool)
	Set(rhythmID string, snap *Snapshot)
	Invalidate(rhythmID string)
}

// MemoryCache is a mutex-guarded in-process Cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*Snapshot
}

// NewMemoryCache returns an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]*Snapshot)}
}

// Get returns the cached snapshot for a rhythm, if any.
func (c *MemoryCache) Get(rhythmID string) (*Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap, ok := c.entries[rhythmID]
	return snap, ok
}

// Set stores a snapshot for a rhythm, replacing any previous one.
func (c *MemoryCache) Set(rhythmID string, snap *Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[rhythmID] = snap
}

// Invalidate deletes the snapshot for a rhythm.
func (c *MemoryCache) Invalidate(rhythmID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, rhythmID)
}

// NopCache never stores anything, forcing recomputation on every read.
type NopCache struct{}

func (NopCache) Get(string) (*Snapshot, bool) { return nil, false }
func (NopCache) Set(string, *Snapshot)        {}
func (NopCache) Invalidate(string)            {}
