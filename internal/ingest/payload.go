package ingest

import (
	"strings"
	"time"
)

// SessionReport is the end-of-call event posted by external voice-agent
// runtimes. Everything except SessionID is optional; absent fields take the
// documented defaults.
type SessionReport struct {
	SessionID string `json:"session_id"`

	// UserID is nominally a user id but sometimes carries an opaque bearer
	// token; internal/claims sniffs for that case.
	UserID string `json:"user_id"`

	AgentName string `json:"agent_name"`
	AgentID   string `json:"agent_id"`
	TenantID  string `json:"tenant_id"`

	// ISO-8601 strings as sent by the runtime; may be absent or malformed.
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	// DurationSeconds is authoritative over the timestamp delta.
	DurationSeconds float64 `json:"duration_seconds"`

	TotalTurns int     `json:"total_turns"`
	AvgTTFTMs  float64 `json:"avg_ttft_ms"`
	AvgTTFCMs  float64 `json:"avg_ttfc_ms"`

	Status   string `json:"status"`
	CallerID string `json:"caller_id"`

	// Analysis is open-ended and of unverified shape; internal/signals parses
	// it permissively.
	Analysis map[string]any `json:"analysis"`
}

const (
	defaultUserID = "anonymous"
	defaultStatus = "completed"
)

// parseTimestamp accepts the ISO-8601 variants runtimes actually send:
// RFC 3339 with Z or a numeric offset, and naive date-times taken as UTC.
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
