package analytics

import (
	"context"
	"sort"
	"sync"
	"time"

	"voicebilling-platform/internal/calls"
)

// MemoryRepo is an in-memory Repository for tests. Tenant scoping works the
// same way as the SQL implementation: through an agent -> tenant mapping.
type MemoryRepo struct {
	mu          sync.RWMutex
	records     []calls.CallRecord
	agentTenant map[string]string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{agentTenant: make(map[string]string)}
}

func (r *MemoryRepo) AddAgent(agentID, tenantID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agentTenant[agentID] = tenantID
}

func (r *MemoryRepo) AddCall(rec calls.CallRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
}

func (r *MemoryRepo) ListCalls(_ context.Context, tenantID string, q CallQuery) ([]calls.CallRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []calls.CallRecord
	for _, c := range r.records {
		if r.agentTenant[c.AgentID] != tenantID {
			continue
		}
		if q.AgentID != "" && c.AgentID != q.AgentID {
			continue
		}
		if q.Status != "" && c.Status != q.Status {
			continue
		}
		out = append(out, c)
	}
	sortNewestFirst(out)

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) ListCallsSince(_ context.Context, tenantID string, since time.Time, agentID string) ([]calls.CallRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []calls.CallRecord
	for _, c := range r.records {
		if r.agentTenant[c.AgentID] != tenantID {
			continue
		}
		if agentID != "" && c.AgentID != agentID {
			continue
		}
		if c.StartTime.Before(since) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *MemoryRepo) ListActiveCalls(_ context.Context, tenantID string, since time.Time, agentID string) ([]calls.CallRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []calls.CallRecord
	for _, c := range r.records {
		if r.agentTenant[c.AgentID] != tenantID {
			continue
		}
		if agentID != "" && c.AgentID != agentID {
			continue
		}
		if c.StartTime.Before(since) || c.EndTime != nil || c.Status != calls.StatusInProgress {
			continue
		}
		out = append(out, c)
	}
	sortNewestFirst(out)
	if len(out) > 20 {
		out = out[:20]
	}
	return out, nil
}

func sortNewestFirst(recs []calls.CallRecord) {
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].StartTime.After(recs[j].StartTime)
	})
}
