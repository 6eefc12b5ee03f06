package directory

import "context"

// MemoryRepo is an in-memory agent repository for tests and early development.
// Lookup order within a slice is insertion order, mirroring the LIMIT 1
// behavior of the Postgres implementation.
type MemoryRepo struct {
	Agents []Agent
}

func (r *MemoryRepo) FindAgentByID(ctx context.Context, agentID string) (Agent, bool, error) {
	_ = ctx
	for _, a := range r.Agents {
		if a.AgentID == agentID {
			return a, true, nil
		}
	}
	return Agent{}, false, nil
}

func (r *MemoryRepo) FindAgentByNameAndTenant(ctx context.Context, agentName, tenantID string) (Agent, bool, error) {
	_ = ctx
	for _, a := range r.Agents {
		if a.AgentName == agentName && a.TenantID == tenantID {
			return a, true, nil
		}
	}
	return Agent{}, false, nil
}

func (r *MemoryRepo) FindAgentByName(ctx context.Context, agentName string) (Agent, bool, error) {
	_ = ctx
	for _, a := range r.Agents {
		if a.AgentName == agentName {
			return a, true, nil
		}
	}
	return Agent{}, false, nil
}

func (r *MemoryRepo) FirstActiveAgentInTenant(ctx context.Context, tenantID string) (Agent, bool, error) {
	_ = ctx
	for _, a := range r.Agents {
		if a.TenantID == tenantID && a.Active {
			return a, true, nil
		}
	}
	return Agent{}, false, nil
}
