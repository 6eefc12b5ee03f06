package calls

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// NOTE: This repository assumes a call_logs table with:
// PRIMARY KEY (id) -- id is the session id and the idempotency key.
// (see cmd/seed for the bootstrap DDL)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation. A violation on call_logs at commit time is the authoritative
// duplicate-delivery signal; callers treat it as a duplicate outcome, not a
// failure.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// Exists is the advisory duplicate check run before the ingestion transaction.
// A race between two deliveries of the same session can still pass it; the
// primary key catches the loser.
func Exists(ctx context.Context, db *sql.DB, sessionID string) (bool, error) {
	const q = `SELECT 1 FROM call_logs WHERE id = $1`
	var one int
	err := db.QueryRowContext(ctx, q, sessionID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Insert writes an immutable call record inside the ingestion transaction.
func Insert(ctx context.Context, tx *sql.Tx, c CallRecord) error {
	const q = `
INSERT INTO call_logs (
  id, agent_id, start_time, end_time, duration_seconds, status, caller_id,
  ttft_ms, ttfc_ms,
  sentiment_score, frustration_velocity, agent_iq, avg_sentiment,
  correction_count, is_churn_risk, is_hot_lead, priority_level,
  cost_minor, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19
)
`
	_, err := tx.ExecContext(ctx, q,
		c.SessionID,
		c.AgentID,
		c.StartTime,
		c.EndTime,
		c.DurationSeconds,
		c.Status,
		c.CallerID,
		c.TTFTMs,
		c.TTFCMs,
		c.Signals.SentimentScore,
		c.Signals.FrustrationVelocity,
		c.Signals.AgentIQ,
		c.Signals.AvgSentiment,
		c.Signals.CorrectionCount,
		c.Signals.IsChurnRisk,
		c.Signals.IsHotLead,
		c.Signals.PriorityLevel,
		c.CostMinor,
		c.CreatedAt,
	)
	return err
}
