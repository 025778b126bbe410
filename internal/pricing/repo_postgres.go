package pricing

import (
	"context"
	"database/sql"
	"time"
)

// PostgresRepository reads rates from channel_rates and minute_rates. Rate
// selection picks the most recently effective active row whose window covers
// the lookup time.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindChannelRate(ctx context.Context, workspaceID, channel string, at time.Time) (ChannelRate, bool, error) {
	const q = `
SELECT id, workspace_id, channel, currency, rate_per_item_minor,
       effective_from, effective_to, status, created_at, updated_at
FROM channel_rates
WHERE workspace_id = $1
  AND channel = $2
  AND status = $3
  AND effective_from <= $4
  AND (effective_to IS NULL OR effective_to > $4)
ORDER BY effective_from DESC
LIMIT 1
`
	var cr ChannelRate
	err := r.db.QueryRowContext(ctx, q, workspaceID, channel, PricingStatusActive, at).Scan(
		&cr.ID,
		&cr.WorkspaceID,
		&cr.Channel,
		&cr.Currency,
		&cr.RatePerItemMinor,
		&cr.EffectiveFrom,
		&cr.EffectiveTo,
		&cr.Status,
		&cr.CreatedAt,
		&cr.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return ChannelRate{}, false, nil
	}
	if err != nil {
		return ChannelRate{}, false, err
	}
	return cr, true, nil
}

func (r *PostgresRepository) FindMinuteRate(ctx context.Context, workspaceID string, at time.Time) (MinuteRate, bool, error) {
	const q = `
SELECT id, workspace_id, currency, rate_per_minute_minor,
       billing_increment_seconds, minimum_billable_seconds,
       effective_from, effective_to, status, created_at, updated_at
FROM minute_rates
WHERE workspace_id = $1
  AND status = $2
  AND effective_from <= $3
  AND (effective_to IS NULL OR effective_to > $3)
ORDER BY effective_from DESC
LIMIT 1
`
	var mr MinuteRate
	err := r.db.QueryRowContext(ctx, q, workspaceID, PricingStatusActive, at).Scan(
		&mr.ID,
		&mr.WorkspaceID,
		&mr.Currency,
		&mr.RatePerMinuteMinor,
		&mr.BillingIncrementSeconds,
		&mr.MinimumBillableSeconds,
		&mr.EffectiveFrom,
		&mr.EffectiveTo,
		&mr.Status,
		&mr.CreatedAt,
		&mr.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return MinuteRate{}, false, nil
	}
	if err != nil {
		return MinuteRate{}, false, err
	}
	return mr, true, nil
}
