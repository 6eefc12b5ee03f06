package calls

import (
	"fmt"
	"time"

	"voicebilling-platform/internal/signals"
)

// CallRecord is one completed voice interaction, keyed by the caller-supplied
// session id. The session id doubles as the idempotency token: the call_logs
// primary key guarantees at most one record per session regardless of how
// often the report is delivered.
//
// Records are immutable after creation. Ingestion never updates or deletes.
//
// Money invariant reminder: the wallet debit for a call references SessionID
// in the transactions ledger (reference_id) rather than mutating money fields
// here.
type CallRecord struct {
	SessionID string `json:"call_id" db:"id"`
	AgentID   string `json:"agent_id" db:"agent_id"`

	StartTime time.Time  `json:"start_time" db:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty" db:"end_time"`

	DurationSeconds int    `json:"duration_seconds" db:"duration_seconds"`
	Status          string `json:"status" db:"status"`
	CallerID        string `json:"caller_id,omitempty" db:"caller_id"`

	// Latency aggregates reported by the runtime (milliseconds).
	TTFTMs *int `json:"ttft_ms,omitempty" db:"ttft_ms"`
	TTFCMs *int `json:"ttfc_ms,omitempty" db:"ttfc_ms"`

	Signals signals.Signals `json:"signals"`

	// CostMinor is the computed call cost in minor units (euro cents).
	CostMinor int64 `json:"cost_minor" db:"cost_minor"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

const (
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusInProgress = "in_progress"
)

// DurationDisplay renders the duration as m:ss for dashboard rows.
func (c CallRecord) DurationDisplay() string {
	return fmt.Sprintf("%d:%02d", c.DurationSeconds/60, c.DurationSeconds%60)
}
