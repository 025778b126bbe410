package reporting

import (
	"context"
	"database/sql"
	"time"

	"sautiai-dashboard/internal/calls"
	"sautiai-dashboard/internal/credits"
)

// CallLister is the slice of the upstream client reporting reads calls from.
type CallLister interface {
	ListCalls(ctx context.Context, workspaceID string) ([]calls.Call, error)
}

// LiveRepo serves reports from the two systems of record: call history from
// the core API and credit movements from the local ledger. The core API does
// not take range filters, so call rows are filtered here.
type LiveRepo struct {
	Calls CallLister
	DB    *sql.DB
}

func (r *LiveRepo) ListCalls(ctx context.Context, workspaceID string, from, to time.Time, campaignID string) ([]calls.Call, error) {
	rows, err := r.Calls.ListCalls(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	out := make([]calls.Call, 0, len(rows))
	for _, c := range rows {
		if c.CreatedAt.Before(from) || !c.CreatedAt.Before(to) {
			continue
		}
		if campaignID != "" && c.CampaignID != campaignID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *LiveRepo) ListCreditLedger(ctx context.Context, workspaceID string, from, to time.Time) ([]credits.LedgerEntry, error) {
	const q = `
SELECT id, workspace_id, type, credits, external_ref, idempotency_key, reason, created_at
FROM credit_ledger
WHERE workspace_id = $1
  AND created_at >= $2
  AND created_at < $3
ORDER BY created_at
`
	rows, err := r.DB.QueryContext(ctx, q, workspaceID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []credits.LedgerEntry
	for rows.Next() {
		var e credits.LedgerEntry
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
