package scheduler

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// NOTE: assumes a scheduled_calls table:
//   id, workspace_id, contact_id, date, time_slot, status, reason, created_at, updated_at
// with PRIMARY KEY (id) and an index on (workspace_id, date).

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, sc ScheduledCall) error {
	const q = `
INSERT INTO scheduled_calls (
  id, workspace_id, contact_id, date, time_slot, status, reason, created_at, updated_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9
)
`
	_, err := r.db.ExecContext(ctx, q,
		sc.ID,
		sc.WorkspaceID,
		sc.ContactID,
		sc.Date,
		sc.TimeSlot,
		sc.Status,
		sc.Reason,
		sc.CreatedAt,
		sc.UpdatedAt,
	)
	return err
}

func (r *PostgresRepository) Get(ctx context.Context, workspaceID, id string) (ScheduledCall, error) {
	const q = `
SELECT id, workspace_id, contact_id, date, time_slot, status, reason, created_at, updated_at
FROM scheduled_calls
WHERE workspace_id = $1 AND id = $2
`
	var sc ScheduledCall
	if err := r.db.QueryRowContext(ctx, q, workspaceID, id).Scan(
		&sc.ID,
		&sc.WorkspaceID,
		&sc.ContactID,
		&sc.Date,
		&sc.TimeSlot,
		&sc.Status,
		&sc.Reason,
		&sc.CreatedAt,
		&sc.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ScheduledCall{}, ErrNotFound
		}
		return ScheduledCall{}, err
	}
	return sc, nil
}

func (r *PostgresRepository) ListRange(ctx context.Context, workspaceID string, from, to time.Time) ([]ScheduledCall, error) {
	const q = `
SELECT id, workspace_id, contact_id, date, time_slot, status, reason, created_at, updated_at
FROM scheduled_calls
WHERE workspace_id = $1 AND date >= $2 AND date < $3
ORDER BY date, time_slot
`
	rows, err := r.db.QueryContext(ctx, q, workspaceID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ScheduledCall
	for rows.Next() {
		var sc ScheduledCall
		if err := rows.Scan(
			&sc.ID,
			&sc.WorkspaceID,
			&sc.ContactID,
			&sc.Date,
			&sc.TimeSlot,
			&sc.Status,
			&sc.Reason,
			&sc.CreatedAt,
			&sc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, in ScheduledCall) (ScheduledCall, error) {
	const q = `
UPDATE scheduled_calls
SET contact_id = $3, date = $4, time_slot = $5, reason = $6, updated_at = $7
WHERE workspace_id = $1 AND id = $2
RETURNING id, workspace_id, contact_id, date, time_slot, status, reason, created_at, updated_at
`
	var sc ScheduledCall
	if err := r.db.QueryRowContext(ctx, q,
		in.WorkspaceID,
		in.ID,
		in.ContactID,
		in.Date,
		in.TimeSlot,
		in.Reason,
		in.UpdatedAt,
	).Scan(
		&sc.ID,
		&sc.WorkspaceID,
		&sc.ContactID,
		&sc.Date,
		&sc.TimeSlot,
		&sc.Status,
		&sc.Reason,
		&sc.CreatedAt,
		&sc.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ScheduledCall{}, ErrNotFound
		}
		return ScheduledCall{}, err
	}
	return sc, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, workspaceID, id string) error {
	const q = `DELETE FROM scheduled_calls WHERE workspace_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, q, workspaceID, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, workspaceID, id string, status ScheduleStatus, now time.Time) (ScheduledCall, error) {
	const q = `
UPDATE scheduled_calls
SET status = $3, updated_at = $4
WHERE workspace_id = $1 AND id = $2
RETURNING id, workspace_id, contact_id, date, time_slot, status, reason, created_at, updated_at
`
	var sc ScheduledCall
	if err := r.db.QueryRowContext(ctx, q, workspaceID, id, status, now).Scan(
		&sc.ID,
		&sc.WorkspaceID,
		&sc.ContactID,
		&sc.Date,
		&sc.TimeSlot,
		&sc.Status,
		&sc.Reason,
		&sc.CreatedAt,
		&sc.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ScheduledCall{}, ErrNotFound
		}
		return ScheduledCall{}, err
	}
	return sc, nil
}
