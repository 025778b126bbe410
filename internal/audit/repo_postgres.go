package audit

import (
	"context"
	"database/sql"
)

// PostgresRepository appends audit events to the audit_events table. The
// table carries no update or delete path.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, e Event) error {
	const q = `
INSERT INTO audit_events (
  id, workspace_id, type, actor_user_id, actor_role, ip_address,
  campaign_id, call_id, entity_type, entity_id, message, metadata, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13
)
`
	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		e.WorkspaceID,
		e.Type,
		e.ActorUserID,
		e.ActorRole,
		e.IPAddress,
		e.CampaignID,
		e.CallID,
		e.EntityType,
		e.EntityID,
		e.Message,
		e.Metadata,
		e.CreatedAt,
	)
	return err
}
