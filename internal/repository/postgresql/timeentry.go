package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tracklite/timeclock-backend-go/internal/domain/timeentry"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/database"
)

type entryRepository struct {
	db *database.DB
}

func NewEntryRepository(db *database.DB) timeentry.EntryRepository {
	return &entryRepository{db: db}
}

// CreateEntry implements timeentry.EntryRepository.
func (r *entryRepository) CreateEntry(ctx context.Context, entry timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	entry.ID = uuid.NewString()

	query := `
		INSERT INTO time_entries (id, user_id, username, clock_in_time, clock_out_time, task)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Username,
		entry.ClockInTime,
		entry.ClockOutTime,
		entry.Task,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return timeentry.TimeEntry{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	return entry, nil
}

// DeleteEntry implements timeentry.EntryRepository.
func (r *entryRepository) DeleteEntry(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM time_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timeentry.ErrEntryNotFound
	}

	return nil
}

// GetEntryByID implements timeentry.EntryRepository.
func (r *entryRepository) GetEntryByID(ctx context.Context, id string) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, username, clock_in_time, clock_out_time, task, created_at
		FROM time_entries
		WHERE id = $1
	`

	var entry timeentry.TimeEntry
	err := q.QueryRow(ctx, query, id).Scan(
		&entry.ID, &entry.UserID, &entry.Username,
		&entry.ClockInTime, &entry.ClockOutTime,
		&entry.Task, &entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeentry.TimeEntry{}, timeentry.ErrEntryNotFound
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to get time entry by ID: %w", err)
	}

	return entry, nil
}

// ListEntries implements timeentry.EntryRepository.
func (r *entryRepository) ListEntries(ctx context.Context, scope timeentry.EntryScope) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, username, clock_in_time, clock_out_time, task, created_at
		FROM time_entries
	`
	args := []interface{}{}
	if !scope.All {
		query += ` WHERE user_id = $1`
		args = append(args, scope.UserID)
	}
	query += ` ORDER BY clock_in_time DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	var entries []timeentry.TimeEntry
	for rows.Next() {
		var entry timeentry.TimeEntry
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.Username,
			&entry.ClockInTime, &entry.ClockOutTime,
			&entry.Task, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan time entry row: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// GetActiveClock implements timeentry.EntryRepository.
func (r *entryRepository) GetActiveClock(ctx context.Context, userID string) (*timeentry.ActiveClock, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id, username, task, clock_in_time, last_updated
		FROM active_clocks
		WHERE user_id = $1
	`

	var clock timeentry.ActiveClock
	err := q.QueryRow(ctx, query, userID).Scan(
		&clock.UserID, &clock.Username, &clock.Task,
		&clock.ClockInTime, &clock.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // not clocked in
		}
		return nil, fmt.Errorf("failed to get active clock: %w", err)
	}

	return &clock, nil
}

// SetActiveClock implements timeentry.EntryRepository.
func (r *entryRepository) SetActiveClock(ctx context.Context, clock timeentry.ActiveClock) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO active_clocks (user_id, username, task, clock_in_time, last_updated)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET username = EXCLUDED.username,
		    task = EXCLUDED.task,
		    clock_in_time = EXCLUDED.clock_in_time,
		    last_updated = NOW()
	`

	_, err := q.Exec(ctx, query, clock.UserID, clock.Username, clock.Task, clock.ClockInTime)
	if err != nil {
		return fmt.Errorf("failed to set active clock: %w", err)
	}

	return nil
}

// ClearActiveClock implements timeentry.EntryRepository.
func (r *entryRepository) ClearActiveClock(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM active_clocks WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear active clock: %w", err)
	}

	return nil
}
