package directory

import (
	"context"
	"errors"
)

// ErrAgentNotFound is the terminal resolution failure. It is surfaced to the
// caller as a not-found outcome and is not retried automatically.
var ErrAgentNotFound = errors.New("agent not found")

// ResolutionInput carries the identifying fields a session report may supply.
// All fields are optional; the resolver works with whatever is present.
type ResolutionInput struct {
	AgentID   string
	AgentName string
	TenantID  string
}

// Resolver maps partial identifying information to an owning Agent.
type Resolver struct {
	repo Repository
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve walks an ordered fallback chain and stops at the first hit:
//
//  1. exact agent_id
//  2. agent_name + tenant_id
//  3. agent_name alone, any tenant
//  4. any active agent in the tenant
//
// Steps 3 and 4 are deliberately permissive to keep demo and misconfigured
// callers working; they are a routing convenience, not a security boundary.
// There is never a cross-tenant default: with no usable identifiers the
// resolution fails with ErrAgentNotFound.
func (r *Resolver) Resolve(ctx context.Context, in ResolutionInput) (Agent, error) {
	if in.AgentID != "" {
		a, ok, err := r.repo.FindAgentByID(ctx, in.AgentID)
		if err != nil {
			return Agent{}, err
		}
		if ok {
			return a, nil
		}
	}

	if in.AgentName != "" {
		if in.TenantID != "" {
			a, ok, err := r.repo.FindAgentByNameAndTenant(ctx, in.AgentName, in.TenantID)
			if err != nil {
				return Agent{}, err
			}
			if ok {
				return a, nil
			}
		}

		a, ok, err := r.repo.FindAgentByName(ctx, in.AgentName)
		if err != nil {
			return Agent{}, err
		}
		if ok {
			return a, nil
		}
	}

	if in.TenantID != "" {
		a, ok, err := r.repo.FirstActiveAgentInTenant(ctx, in.TenantID)
		if err != nil {
			return Agent{}, err
		}
		if ok {
			return a, nil
		}
	}

	return Agent{}, ErrAgentNotFound
}
