package credits

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// NOTE: This repository assumes the following tables exist:
// - credit_ledger (immutable append-only)
// - credit_balances (projection)
// - admin_credit_actions
//
// It also assumes an idempotency constraint:
// UNIQUE (workspace_id, idempotency_key)

func getBalance(ctx context.Context, db *sql.DB, workspaceID string) (Balance, error) {
	const q = `
SELECT workspace_id, credits, updated_at
FROM credit_balances
WHERE workspace_id = $1
`
	var b Balance
	if err := db.QueryRowContext(ctx, q, workspaceID).Scan(
		&b.WorkspaceID,
		&b.Credits,
		&b.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// A workspace with no ledger yet has zero credits, not an error.
			return Balance{WorkspaceID: workspaceID}, nil
		}
		return Balance{}, err
	}
	return b, nil
}

func getBalanceTx(ctx context.Context, tx *sql.Tx, workspaceID string) (Balance, error) {
	const q = `
SELECT workspace_id, credits, updated_at
FROM credit_balances
WHERE workspace_id = $1
`
	var b Balance
	if err := tx.QueryRowContext(ctx, q, workspaceID).Scan(
		&b.WorkspaceID,
		&b.Credits,
		&b.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Balance{WorkspaceID: workspaceID}, nil
		}
		return Balance{}, err
	}
	return b, nil
}

func getBalanceForUpdate(ctx context.Context, tx *sql.Tx, workspaceID string) (Balance, bool, error) {
	const q = `
SELECT workspace_id, credits, updated_at
FROM credit_balances
WHERE workspace_id = $1
FOR UPDATE
`
	var b Balance
	if err := tx.QueryRowContext(ctx, q, workspaceID).Scan(
		&b.WorkspaceID,
		&b.Credits,
		&b.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Balance{WorkspaceID: workspaceID}, false, nil
		}
		return Balance{}, false, err
	}
	return b, true, nil
}

func listLedger(ctx context.Context, db *sql.DB, workspaceID string, limit int) ([]LedgerEntry, error) {
	const q = `
SELECT id, workspace_id, type, credits, external_ref, idempotency_key, reason, created_at
FROM credit_ledger
WHERE workspace_id = $1
ORDER BY created_at DESC
LIMIT $2
`
	rows, err := db.QueryContext(ctx, q, workspaceID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LedgerEntry
	for rows.Next() {
		var e LedgerEntry
		if err := rows.Scan(
			&e.ID,
			&e.WorkspaceID,
			&e.Type,
			&e.Credits,
			&e.ExternalRef,
			&e.IdempotencyKey,
			&e.Reason,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func findLedgerByIdempotency(ctx context.Context, tx *sql.Tx, workspaceID, key string) (LedgerEntry, bool, error) {
	const q = `
SELECT id, workspace_id, type, credits, external_ref, idempotency_key, reason, created_at
FROM credit_ledger
WHERE workspace_id = $1 AND idempotency_key = $2
LIMIT 1
`
	var e LedgerEntry
	err := tx.QueryRowContext(ctx, q, workspaceID, key).Scan(
		&e.ID,
		&e.WorkspaceID,
		&e.Type,
		&e.Credits,
		&e.ExternalRef,
		&e.IdempotencyKey,
		&e.Reason,
		&e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LedgerEntry{}, false, nil
		}
		return LedgerEntry{}, false, err
	}
	return e, true, nil
}

func insertLedger(ctx context.Context, tx *sql.Tx, e LedgerEntry) error {
	const q = `
INSERT INTO credit_ledger (
  id, workspace_id, type, credits, external_ref, idempotency_key, reason, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8
)
`
	_, err := tx.ExecContext(ctx, q,
		e.ID,
		e.WorkspaceID,
		e.Type,
		e.Credits,
		e.ExternalRef,
		e.IdempotencyKey,
		e.Reason,
		e.CreatedAt,
	)
	return err
}

func applyBalanceDelta(ctx context.Context, tx *sql.Tx, workspaceID string, delta int64, now time.Time) (Balance, error) {
	const q = `
INSERT INTO credit_balances (workspace_id, credits, updated_at)
VALUES ($1,$2,$3)
ON CONFLICT (workspace_id)
DO UPDATE SET credits = credit_balances.credits + EXCLUDED.credits,
              updated_at = EXCLUDED.updated_at
RETURNING workspace_id, credits, updated_at
`
	var b Balance
	if err := tx.QueryRowContext(ctx, q, workspaceID, delta, now).Scan(
		&b.WorkspaceID,
		&b.Credits,
		&b.UpdatedAt,
	); err != nil {
		return Balance{}, err
	}
	return b, nil
}

func insertAdminAction(ctx context.Context, tx *sql.Tx, a AdminCreditAction) error {
	const q = `
INSERT INTO admin_credit_actions (
  id, workspace_id, admin_user_id, admin_role, reason, credits, related_ledger_id, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8
)
`
	_, err := tx.ExecContext(ctx, q,
		a.ID,
		a.WorkspaceID,
		a.AdminUserID,
		a.AdminRole,
		a.Reason,
		a.Credits,
		a.RelatedLedgerID,
		a.CreatedAt,
	)
	return err
}

func findAdminActionByLedger(ctx context.Context, tx *sql.Tx, workspaceID, ledgerID string) (AdminCreditAction, bool, error) {
	const q = `
SELECT id, workspace_id, admin_user_id, admin_role, reason, credits, related_ledger_id, created_at
FROM admin_credit_actions
WHERE workspace_id = $1 AND related_ledger_id = $2
LIMIT 1
`
	var a AdminCreditAction
	err := tx.QueryRowContext(ctx, q, workspaceID, ledgerID).Scan(
		&a.ID,
		&a.WorkspaceID,
		&a.AdminUserID,
		&a.AdminRole,
		&a.Reason,
		&a.Credits,
		&a.RelatedLedgerID,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AdminCreditAction{}, false, nil
		}
		return AdminCreditAction{}, false, err
	}
	return a, true, nil
}
