package audit

import (
	"context"
	"database/sql"
)

// PostgresRepo appends audit events to the audit_events table.
// (see cmd/seed for the bootstrap DDL)
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Append(ctx context.Context, e Event) error {
	const q = `
INSERT INTO audit_events (
  id, tenant_id, type, session_id, agent_id, wallet_id,
  actor_user_id, actor_role, message, metadata, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11
)
`
	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		e.TenantID,
		e.Type,
		e.SessionID,
		e.AgentID,
		e.WalletID,
		e.ActorUserID,
		e.ActorRole,
		e.Message,
		e.Metadata,
		e.CreatedAt,
	)
	return err
}
