package analytics

import (
	"context"
	"time"

	"voicebilling-platform/internal/calls"
)

// Repository abstracts read access to call records for reporting.
//
// IMPORTANT: every method must enforce tenant scoping; call records link to a
// tenant only through their agent, so implementations join through agents.
type Repository interface {
	// ListCalls returns the most recent calls for a tenant, newest first.
	ListCalls(ctx context.Context, tenantID string, q CallQuery) ([]calls.CallRecord, error)

	// ListCallsSince returns calls whose start time is >= since.
	ListCallsSince(ctx context.Context, tenantID string, since time.Time, agentID string) ([]calls.CallRecord, error)

	// ListActiveCalls returns in-progress calls (no end time) started after
	// since, newest first.
	ListActiveCalls(ctx context.Context, tenantID string, since time.Time, agentID string) ([]calls.CallRecord, error)
}
