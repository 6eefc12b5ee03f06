package audit

import "time"

// Event is an immutable, append-only audit record.
//
// Invariants:
// - Events are never updated or deleted.
// - Writing audit records is best-effort; critical flows never block on it.
//
// Storage recommendation (Postgres):
// - Table audit_events with an INSERT-only policy.
// - Optional: partition by time for retention.

type Event struct {
	ID string `json:"id" db:"id"`

	// TenantID is empty for events that never resolved to a tenant
	// (e.g., an unresolvable session report).
	TenantID string `json:"tenant_id,omitempty" db:"tenant_id"`

	Type EventType `json:"type" db:"type"`

	// SessionID ties ingestion events back to the inbound report.
	SessionID string `json:"session_id,omitempty" db:"session_id"`
	AgentID   string `json:"agent_id,omitempty" db:"agent_id"`
	WalletID  string `json:"wallet_id,omitempty" db:"wallet_id"`

	// Actor fields apply to admin-initiated events only.
	ActorUserID string `json:"actor_user_id,omitempty" db:"actor_user_id"`
	ActorRole   string `json:"actor_role,omitempty" db:"actor_role"`

	// Message is a short human-readable description for internal ops.
	Message string `json:"message,omitempty" db:"message"`

	// Metadata is optional JSON for full details (store as JSONB).
	Metadata string `json:"metadata,omitempty" db:"metadata"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EventType string

const (
	EventTypeIngestRejected EventType = "ingest_rejected"
	EventTypeIngestFailed   EventType = "ingest_failed"
	EventTypeAdminAction    EventType = "admin_action"
)
