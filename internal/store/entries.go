package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/blackwell-systems/rhythmtrack/internal/rhythm"
)

// ErrEntryNotFound is returned when an entry lookup or delete misses.
var ErrEntryNotFound = errors.New("entry not found")

// AddEntry persists one activity entry for a rhythm. Callers must
// invalidate the engine's cache for the rhythm afterwards.
func (db *DB) AddEntry(in EntryInput) (*Entry, error) {
	if in.RhythmID == "" {
		return nil, fmt.Errorf("rhythm id is required")
	}
	if in.OccurredAt.IsZero() {
		return nil, fmt.Errorf("entry timestamp is required")
	}

	e := Entry{
		ID:              uuid.NewString(),
		RhythmID:        in.RhythmID,
		OccurredAt:      in.OccurredAt,
		Timezone:        in.Timezone,
		DurationSeconds: in.DurationSeconds,
		Note:            in.Note,
		CreatedAt:       time.Now().UTC(),
	}

	// occurred_at is stored in UTC so string comparisons in range
	// queries stay ordered; the capture zone lives in its own column.
	_, err := db.conn.Exec(
		`INSERT INTO entries (id, rhythm_id, occurred_at, timezone, duration_seconds, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.RhythmID, e.OccurredAt.UTC().Format(time.RFC3339), e.Timezone,
		e.DurationSeconds, e.Note, e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("adding entry: %w", err)
	}
	return &e, nil
}

// DeleteEntry removes one entry by ID.
func (db *DB) DeleteEntry(id string) error {
	res, err := db.conn.Exec("DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// ListEntries returns a rhythm's entries within [from, to], ordered by
// occurrence time. A zero from means from the beginning of history.
func (db *DB) ListEntries(rhythmID string, from, to time.Time) ([]Entry, error) {
	query := `SELECT id, rhythm_id, occurred_at, timezone, duration_seconds, COALESCE(note, ''), created_at
		FROM entries WHERE rhythm_id = ?`
	args := []any{rhythmID}
	if !from.IsZero() {
		query += " AND occurred_at >= ?"
		args = append(args, from.UTC().Format(time.RFC3339))
	}
	if !to.IsZero() {
		query += " AND occurred_at <= ?"
		args = append(args, to.UTC().Format(time.RFC3339))
	}
	query += " ORDER BY occurred_at ASC"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var occurredAt, createdAt string
		if err := rows.Scan(&e.ID, &e.RhythmID, &occurredAt, &e.Timezone,
			&e.DurationSeconds, &e.Note, &createdAt); err != nil {
			return nil, err
		}
		// A row with an unparseable timestamp keeps its zero time; the
		// aggregator drops it instead of failing the whole history.
		e.OccurredAt, _ = time.Parse(time.RFC3339, occurredAt)
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListRecords adapts ListEntries to the engine's EntryStore interface.
func (db *DB) ListRecords(rhythmID string, from, to time.Time) ([]rhythm.Record, error) {
	entries, err := db.ListEntries(rhythmID, from, to)
	if err != nil {
		return nil, err
	}
	records := make([]rhythm.Record, len(entries))
	for i, e := range entries {
		records[i] = rhythm.Record{
			Timestamp:       e.OccurredAt,
			Timezone:        e.Timezone,
			DurationSeconds: e.DurationSeconds,
		}
	}
	return records, nil
}
