package directory

import "time"

// Tenant is an isolated customer organization. Tenants own agents and a wallet.
type Tenant struct {
	TenantID         string    `json:"tenant_id" db:"tenant_id"`
	OrganizationName string    `json:"organization_name" db:"organization_name"`
	Subdomain        string    `json:"subdomain" db:"subdomain"`
	PlanTier         string    `json:"plan_tier" db:"plan_tier"`
	Active           bool      `json:"is_active" db:"is_active"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// Agent is a configured voice-assistant persona belonging to one tenant.
//
// Multi-tenant invariant: TenantID is required on every row.
// AgentName is NOT unique across tenants; only AgentID is.
// Ingestion reads agents, it never mutates them.
type Agent struct {
	AgentID  string `json:"agent_id" db:"agent_id"`
	TenantID string `json:"tenant_id" db:"tenant_id"`

	AgentName string `json:"agent_name" db:"agent_name"`

	// WalletID links to the owning tenant's wallet; empty when no wallet is
	// provisioned. Billing is skipped (not rejected) for wallet-less agents.
	WalletID string `json:"wallet_id,omitempty" db:"wallet_id"`

	// RatePerMinuteMinor is the per-minute call rate in minor units (cents).
	RatePerMinuteMinor int64 `json:"rate_per_minute_minor" db:"rate_per_minute_minor"`

	Active bool `json:"is_active" db:"is_active"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
