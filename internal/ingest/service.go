package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"voicebilling-platform/internal/audit"
	"voicebilling-platform/internal/billing"
	"voicebilling-platform/internal/calls"
	"voicebilling-platform/internal/claims"
	"voicebilling-platform/internal/directory"
	"voicebilling-platform/internal/observability"
	"voicebilling-platform/internal/signals"
	"voicebilling-platform/internal/wallet"
	"voicebilling-platform/pkg/logger"
)

// Terminal ingestion statuses.
const (
	StatusIngested  = "ingested"
	StatusDuplicate = "duplicate"
	StatusRejected  = "rejected"
	StatusFailed    = "failed"
)

// Result is the terminal outcome of processing one session report.
type Result struct {
	Status    string
	SessionID string
	AgentID   string
	CostMinor int64
}

var ErrInvalidReport = errors.New("session_id is required")

// ErrAgentNotFound re-exported for callers mapping errors to responses.
var ErrAgentNotFound = directory.ErrAgentNotFound

// Service is the ingestion orchestrator. Per report it sequences: structural
// validation, advisory duplicate check, claims decode, agent resolution, cost
// and signal computation, then one atomic persistence step (call record +
// wallet debit + ledger entry).
//
// Concurrency: one call per inbound event, safe across goroutines; all
// cross-event coordination lives in the store (call_logs primary key, atomic
// wallet increments).
type Service struct {
	store    Store
	resolver *directory.Resolver
	calc     billing.Calculator

	// audit and metrics are best-effort; either may be nil.
	audit   *audit.Service
	metrics *observability.Metrics

	clock func() time.Time
}

func NewService(store Store, resolver *directory.Resolver, calc billing.Calculator) *Service {
	return &Service{
		store:    store,
		resolver: resolver,
		calc:     calc,
		clock:    time.Now,
	}
}

func (s *Service) WithAudit(a *audit.Service) *Service {
	s.audit = a
	return s
}

func (s *Service) WithMetrics(m *observability.Metrics) *Service {
	s.metrics = m
	return s
}

// Ingest processes one session report to a terminal state.
//
// Error contract:
// - duplicate deliveries return Result{Status: StatusDuplicate} and nil error
// - unresolvable agents return an error wrapping ErrAgentNotFound (not retried)
// - persistence failures return Result{Status: StatusFailed} and a retryable
//   error; retrying with the same session id is safe
func (s *Service) Ingest(ctx context.Context, report SessionReport) (Result, error) {
	start := s.clock()
	res, err := s.ingest(ctx, report)
	if res.Status != "" {
		s.metrics.ObserveIngest(res.Status, s.clock().Sub(start))
	}
	return res, err
}

func (s *Service) ingest(ctx context.Context, report SessionReport) (Result, error) {
	log := logger.From(ctx).With("session_id", report.SessionID)

	// received: structural validation.
	if report.SessionID == "" {
		return Result{}, ErrInvalidReport
	}

	// duplicate-check (advisory; the primary key is authoritative).
	exists, err := s.store.SessionExists(ctx, report.SessionID)
	if err != nil {
		return Result{Status: StatusFailed, SessionID: report.SessionID}, fmt.Errorf("duplicate check: %w", err)
	}
	if exists {
		log.Info("session already ingested, skipping")
		return Result{Status: StatusDuplicate, SessionID: report.SessionID}, nil
	}

	// resolving: best-effort claims decode, then the agent fallback chain.
	userID := report.UserID
	if userID == "" {
		userID = defaultUserID
	}
	tenantID := report.TenantID
	if cs, ok := claims.Extract(userID); ok {
		if cs.Subject != "" {
			log.Debug("decoded user id from embedded token", "user_id", cs.Subject)
			userID = cs.Subject
		}
		// Recovered tenant id never overrides an explicitly supplied one.
		if cs.TenantID != "" && tenantID == "" {
			tenantID = cs.TenantID
		}
	}

	agent, err := s.resolver.Resolve(ctx, directory.ResolutionInput{
		AgentID:   report.AgentID,
		AgentName: report.AgentName,
		TenantID:  tenantID,
	})
	if err != nil {
		if errors.Is(err, directory.ErrAgentNotFound) {
			log.Warn("could not resolve agent",
				"agent_id", report.AgentID,
				"agent_name", report.AgentName,
				"tenant_id", tenantID,
			)
			s.metrics.CountResolution("not_found")
			s.auditRejected(ctx, report, tenantID)
			return Result{Status: StatusRejected, SessionID: report.SessionID},
				fmt.Errorf("session %s: %w", report.SessionID, err)
		}
		return Result{Status: StatusFailed, SessionID: report.SessionID}, fmt.Errorf("agent lookup: %w", err)
	}
	s.metrics.CountResolution("resolved")
	log.Info("resolved agent", "agent_id", agent.AgentID, "agent_name", agent.AgentName, "tenant_id", agent.TenantID)

	// computing: duration is authoritative integer seconds, truncated.
	durationSecs := int(report.DurationSeconds)
	costMinor := s.calc.CallCost(durationSecs, agent.RatePerMinuteMinor)
	sig := signals.Extract(report.Analysis)

	now := s.clock().UTC()
	startTime, ok := parseTimestamp(report.StartTime)
	if !ok {
		if report.StartTime != "" {
			log.Warn("unparseable start_time, falling back to ingestion time", "start_time", report.StartTime)
		}
		startTime = now
	}
	var endTime *time.Time
	if t, ok := parseTimestamp(report.EndTime); ok {
		endTime = &t
	}

	status := report.Status
	if status == "" {
		status = defaultStatus
	}
	callerID := report.CallerID
	if callerID == "" {
		callerID = userID
	}

	rec := calls.CallRecord{
		SessionID:       report.SessionID,
		AgentID:         agent.AgentID,
		StartTime:       startTime,
		EndTime:         endTime,
		DurationSeconds: durationSecs,
		Status:          status,
		CallerID:        callerID,
		TTFTMs:          msPointer(report.AvgTTFTMs),
		TTFCMs:          msPointer(report.AvgTTFCMs),
		Signals:         sig,
		CostMinor:       costMinor,
		CreatedAt:       now,
	}

	// persisting: record + debit + ledger entry in one transaction.
	var debit *wallet.DebitRequest
	if agent.WalletID != "" {
		debit = &wallet.DebitRequest{
			WalletID:        agent.WalletID,
			SessionID:       report.SessionID,
			DurationSeconds: durationSecs,
			AmountMinor:     costMinor,
			Now:             now,
		}
	}

	if err := s.store.SaveCall(ctx, rec, debit); err != nil {
		if errors.Is(err, ErrDuplicateSession) {
			// Lost the race against a concurrent identical delivery.
			log.Warn("uniqueness violation at commit, treating as duplicate")
			return Result{Status: StatusDuplicate, SessionID: report.SessionID}, nil
		}
		log.Error("persisting session failed", "err", err)
		s.auditFailed(ctx, report.SessionID, agent, err)
		return Result{Status: StatusFailed, SessionID: report.SessionID}, fmt.Errorf("persist session %s: %w", report.SessionID, err)
	}

	if debit != nil {
		s.metrics.AddDebit(costMinor)
	}
	log.Info("session ingested",
		"agent_id", agent.AgentID,
		"duration_s", durationSecs,
		"cost_minor", costMinor,
		"status", status,
	)

	return Result{
		Status:    StatusIngested,
		SessionID: report.SessionID,
		AgentID:   agent.AgentID,
		CostMinor: costMinor,
	}, nil
}

func (s *Service) auditRejected(ctx context.Context, report SessionReport, tenantID string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.LogIngestRejected(ctx, report.SessionID, report.AgentID, report.AgentName, tenantID); err != nil {
		logger.From(ctx).Warn("audit append failed", "err", err)
	}
}

func (s *Service) auditFailed(ctx context.Context, sessionID string, agent directory.Agent, cause error) {
	if s.audit == nil {
		return
	}
	if err := s.audit.LogIngestFailed(ctx, sessionID, agent.TenantID, agent.AgentID, cause.Error()); err != nil {
		logger.From(ctx).Warn("audit append failed", "err", err)
	}
}

func msPointer(v float64) *int {
	if v <= 0 {
		return nil
	}
	ms := int(v)
	return &ms
}
