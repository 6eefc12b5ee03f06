package analytics

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"voicebilling-platform/internal/calls"
)

// PostgresRepo reads call records tenant-scoped through the agents table.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const callColumns = `
c.id, c.agent_id, c.start_time, c.end_time, c.duration_seconds, c.status,
COALESCE(c.caller_id, ''), c.ttft_ms, c.ttfc_ms,
c.sentiment_score, c.frustration_velocity, c.agent_iq, c.avg_sentiment,
c.correction_count, c.is_churn_risk, c.is_hot_lead, c.priority_level,
c.cost_minor, c.created_at`

func (r *PostgresRepo) ListCalls(ctx context.Context, tenantID string, q CallQuery) ([]calls.CallRecord, error) {
	query := `
SELECT ` + callColumns + `
FROM call_logs c
JOIN agents a ON c.agent_id = a.agent_id
WHERE a.tenant_id = $1
`
	args := []any{tenantID}
	if q.AgentID != "" {
		args = append(args, q.AgentID)
		query += ` AND c.agent_id = $` + itoa(len(args))
	}
	if q.Status != "" {
		args = append(args, q.Status)
		query += ` AND c.status = $` + itoa(len(args))
	}
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)
	query += ` ORDER BY c.start_time DESC LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))

	return r.queryCalls(ctx, query, args...)
}

func (r *PostgresRepo) ListCallsSince(ctx context.Context, tenantID string, since time.Time, agentID string) ([]calls.CallRecord, error) {
	query := `
SELECT ` + callColumns + `
FROM call_logs c
JOIN agents a ON c.agent_id = a.agent_id
WHERE a.tenant_id = $1 AND c.start_time >= $2
`
	args := []any{tenantID, since}
	if agentID != "" {
		args = append(args, agentID)
		query += ` AND c.agent_id = $3`
	}
	return r.queryCalls(ctx, query, args...)
}

func (r *PostgresRepo) ListActiveCalls(ctx context.Context, tenantID string, since time.Time, agentID string) ([]calls.CallRecord, error) {
	query := `
SELECT ` + callColumns + `
FROM call_logs c
JOIN agents a ON c.agent_id = a.agent_id
WHERE a.tenant_id = $1
  AND c.start_time >= $2
  AND c.end_time IS NULL
  AND c.status = 'in_progress'
`
	args := []any{tenantID, since}
	if agentID != "" {
		args = append(args, agentID)
		query += ` AND c.agent_id = $3`
	}
	query += ` ORDER BY c.start_time DESC LIMIT 20`
	return r.queryCalls(ctx, query, args...)
}

func (r *PostgresRepo) queryCalls(ctx context.Context, query string, args ...any) ([]calls.CallRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []calls.CallRecord
	for rows.Next() {
		var c calls.CallRecord
		if err := rows.Scan(
			&c.SessionID,
			&c.AgentID,
			&c.StartTime,
			&c.EndTime,
			&c.DurationSeconds,
			&c.Status,
			&c.CallerID,
			&c.TTFTMs,
			&c.TTFCMs,
			&c.Signals.SentimentScore,
			&c.Signals.FrustrationVelocity,
			&c.Signals.AgentIQ,
			&c.Signals.AvgSentiment,
			&c.Signals.CorrectionCount,
			&c.Signals.IsChurnRisk,
			&c.Signals.IsHotLead,
			&c.Signals.PriorityLevel,
			&c.CostMinor,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
