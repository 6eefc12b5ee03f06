package audit

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events.
//
// It MUST be append-only. No Update/Delete methods are provided by design.
type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service records internal audit information.
//
// Callers treat audit logging as best-effort: an audit failure must never
// fail the flow that triggered it.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

// LogIngestRejected records a session report that could not be resolved to an
// agent, keeping every identifying field that was attempted.
func (s *Service) LogIngestRejected(ctx context.Context, sessionID, agentID, agentName, tenantID string) error {
	meta, _ := json.Marshal(map[string]string{
		"agent_id":   agentID,
		"agent_name": agentName,
		"tenant_id":  tenantID,
	})
	return s.Append(ctx, Event{
		Type:      EventTypeIngestRejected,
		TenantID:  tenantID,
		SessionID: sessionID,
		Message:   "agent not found",
		Metadata:  string(meta),
	})
}

// LogIngestFailed records a persistence failure for a session report.
func (s *Service) LogIngestFailed(ctx context.Context, sessionID, tenantID, agentID, reason string) error {
	return s.Append(ctx, Event{
		Type:      EventTypeIngestFailed,
		TenantID:  tenantID,
		SessionID: sessionID,
		AgentID:   agentID,
		Message:   reason,
	})
}

// LogAdminAction records a privileged wallet mutation.
func (s *Service) LogAdminAction(ctx context.Context, tenantID, actorUserID, actorRole, walletID, message string) error {
	return s.Append(ctx, Event{
		Type:        EventTypeAdminAction,
		TenantID:    tenantID,
		ActorUserID: actorUserID,
		ActorRole:   actorRole,
		WalletID:    walletID,
		Message:     message,
	})
}
