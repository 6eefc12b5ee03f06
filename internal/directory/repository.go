package directory

import (
	"context"
	"database/sql"
	"errors"
)

// Repository abstracts read access to agent records.
// Implementations must never expose write operations to the ingestion path.
type Repository interface {
	FindAgentByID(ctx context.Context, agentID string) (Agent, bool, error)
	FindAgentByNameAndTenant(ctx context.Context, agentName, tenantID string) (Agent, bool, error)
	FindAgentByName(ctx context.Context, agentName string) (Agent, bool, error)
	FirstActiveAgentInTenant(ctx context.Context, tenantID string) (Agent, bool, error)
}

// PostgresRepo reads agents from Postgres via database/sql.
//
// Assumed tables: tenants, agents
// (see cmd/seed for the bootstrap DDL).
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const agentColumns = `agent_id, tenant_id, agent_name, COALESCE(wallet_id, ''), rate_per_minute_minor, is_active, created_at`

func (r *PostgresRepo) FindAgentByID(ctx context.Context, agentID string) (Agent, bool, error) {
	const q = `
SELECT ` + agentColumns + `
FROM agents
WHERE agent_id = $1
`
	return r.queryAgent(ctx, q, agentID)
}

func (r *PostgresRepo) FindAgentByNameAndTenant(ctx context.Context, agentName, tenantID string) (Agent, bool, error) {
	const q = `
SELECT ` + agentColumns + `
FROM agents
WHERE agent_name = $1 AND tenant_id = $2
LIMIT 1
`
	return r.queryAgent(ctx, q, agentName, tenantID)
}

func (r *PostgresRepo) FindAgentByName(ctx context.Context, agentName string) (Agent, bool, error) {
	const q = `
SELECT ` + agentColumns + `
FROM agents
WHERE agent_name = $1
LIMIT 1
`
	return r.queryAgent(ctx, q, agentName)
}

func (r *PostgresRepo) FirstActiveAgentInTenant(ctx context.Context, tenantID string) (Agent, bool, error) {
	const q = `
SELECT ` + agentColumns + `
FROM agents
WHERE tenant_id = $1 AND is_active
ORDER BY created_at
LIMIT 1
`
	return r.queryAgent(ctx, q, tenantID)
}

func (r *PostgresRepo) queryAgent(ctx context.Context, q string, args ...any) (Agent, bool, error) {
	var a Agent
	err := r.db.QueryRowContext(ctx, q, args...).Scan(
		&a.AgentID,
		&a.TenantID,
		&a.AgentName,
		&a.WalletID,
		&a.RatePerMinuteMinor,
		&a.Active,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Agent{}, false, nil
		}
		return Agent{}, false, err
	}
	return a, true, nil
}
