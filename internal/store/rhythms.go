package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/blackwell-systems/rhythmtrack/internal/rhythm"
)

// CreateRhythm validates and inserts a new rhythm, returning it with its
// generated ID. Validation fails fast when a chain type is missing a
// required parameter; nothing incomplete ever reaches the engine.
func (db *DB) CreateRhythm(r rhythm.Rhythm) (*rhythm.Rhythm, error) {
	r.Name = strings.TrimSpace(r.Name)
	if err := r.Validate(); err != nil {
		return nil, err
	}

	r.ID = uuid.NewString()
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now

	_, err := db.conn.Exec(
		`INSERT INTO rhythms
		(id, name, goal_value, goal_unit, timezone, chain_types,
		 weekly_target_minutes, monthly_target_minutes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.GoalValue, string(r.GoalUnit), r.Timezone,
		joinChainTypes(r.ChainTypes), r.WeeklyTargetMinutes, r.MonthlyTargetMinutes,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rhythm: %w", err)
	}
	return &r, nil
}

// UpdateRhythm validates and saves changed configuration for an existing
// rhythm. Callers must invalidate the engine's cache afterwards.
func (db *DB) UpdateRhythm(r *rhythm.Rhythm) error {
	if err := r.Validate(); err != nil {
		return err
	}

	r.UpdatedAt = time.Now().UTC()
	res, err := db.conn.Exec(
		`UPDATE rhythms SET name = ?, goal_value = ?, goal_unit = ?, timezone = ?,
		 chain_types = ?, weekly_target_minutes = ?, monthly_target_minutes = ?, updated_at = ?
		 WHERE id = ?`,
		r.Name, r.GoalValue, string(r.GoalUnit), r.Timezone,
		joinChainTypes(r.ChainTypes), r.WeeklyTargetMinutes, r.MonthlyTargetMinutes,
		r.UpdatedAt.Format(time.RFC3339), r.ID,
	)
	if err != nil {
		return fmt.Errorf("updating rhythm: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return rhythm.ErrNotFound
	}
	return nil
}

// GetRhythm returns the rhythm with the given ID.
func (db *DB) GetRhythm(id string) (*rhythm.Rhythm, error) {
	row := db.conn.QueryRow(selectRhythm+" WHERE id = ?", id)
	return scanRhythm(row)
}

// GetRhythmByName returns the rhythm with the given name.
func (db *DB) GetRhythmByName(name string) (*rhythm.Rhythm, error) {
	row := db.conn.QueryRow(selectRhythm+" WHERE name = ?", name)
	return scanRhythm(row)
}

// FindRhythm resolves a rhythm by name first, then by ID. This is the
// lookup the CLI uses for positional rhythm arguments.
func (db *DB) FindRhythm(nameOrID string) (*rhythm.Rhythm, error) {
	r, err := db.GetRhythmByName(nameOrID)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, rhythm.ErrNotFound) {
		return nil, err
	}
	return db.GetRhythm(nameOrID)
}

// ListRhythms returns all rhythms ordered by creation time.
func (db *DB) ListRhythms() ([]rhythm.Rhythm, error) {
	rows, err := db.conn.Query(selectRhythm + " ORDER BY created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("listing rhythms: %w", err)
	}
	defer rows.Close()

	var rhythms []rhythm.Rhythm
	for rows.Next() {
		r, err := scanRhythmRows(rows)
		if err != nil {
			return nil, err
		}
		rhythms = append(rhythms, *r)
	}
	return rhythms, rows.Err()
}

// DeleteRhythm removes a rhythm and, via the schema's cascade, its entries.
func (db *DB) DeleteRhythm(id string) error {
	res, err := db.conn.Exec("DELETE FROM rhythms WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting rhythm: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return rhythm.ErrNotFound
	}
	return nil
}

const selectRhythm = `SELECT id, name, goal_value, goal_unit, timezone, chain_types,
	weekly_target_minutes, monthly_target_minutes, created_at, updated_at FROM rhythms`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRhythm(row *sql.Row) (*rhythm.Rhythm, error) {
	r, err := scanRhythmRows(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, rhythm.ErrNotFound
	}
	return r, err
}

func scanRhythmRows(s rowScanner) (*rhythm.Rhythm, error) {
	var r rhythm.Rhythm
	var unit, chainTypes, createdAt, updatedAt string
	err := s.Scan(&r.ID, &r.Name, &r.GoalValue, &unit, &r.Timezone, &chainTypes,
		&r.WeeklyTargetMinutes, &r.MonthlyTargetMinutes, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	r.GoalUnit = rhythm.GoalUnit(unit)
	r.ChainTypes, _ = rhythm.ParseChainTypes(chainTypes)
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &r, nil
}

func joinChainTypes(types []rhythm.ChainType) string {
	parts := make([]string, len(types))
	for i, ct := range types {
		parts[i] = string(ct)
	}
	return strings.Join(parts, ",")
}
