package store

import "time"

// Entry is one persisted activity record for a rhythm.
type Entry struct {
	ID              string    `json:"id"`
	RhythmID        string    `json:"rhythm_id"`
	OccurredAt      time.Time `json:"occurred_at"`
	Timezone        string    `json:"timezone,omitempty"`
	DurationSeconds int       `json:"duration_seconds"`
	Note            string    `json:"note,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// EntryInput holds the caller-supplied fields for a new entry.
type EntryInput struct {
	RhythmID        string
	OccurredAt      time.Time
	Timezone        string
	DurationSeconds int
	Note            string
}
