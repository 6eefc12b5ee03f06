// Command seed bootstraps the database schema and loads a demo tenant so a
// fresh environment can ingest reports immediately.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"voicebilling-platform/internal/config"
	"voicebilling-platform/pkg/logger"
	"voicebilling-platform/pkg/utils"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS tenants (
  tenant_id  TEXT PRIMARY KEY,
  name       TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS wallets (
  wallet_id                  TEXT PRIMARY KEY,
  tenant_id                  TEXT NOT NULL REFERENCES tenants(tenant_id),
  balance_minor              BIGINT NOT NULL DEFAULT 0,
  currency                   TEXT NOT NULL DEFAULT 'EUR',
  is_auto_recharge_enabled   BOOLEAN NOT NULL DEFAULT FALSE,
  auto_recharge_amount_minor BIGINT NOT NULL DEFAULT 0,
  created_at                 TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at                 TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS agents (
  agent_id              TEXT PRIMARY KEY,
  tenant_id             TEXT NOT NULL REFERENCES tenants(tenant_id),
  agent_name            TEXT NOT NULL,
  wallet_id             TEXT REFERENCES wallets(wallet_id),
  rate_per_minute_minor BIGINT NOT NULL DEFAULT 25,
  is_active             BOOLEAN NOT NULL DEFAULT TRUE,
  created_at            TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS idx_agents_tenant_name ON agents (tenant_id, agent_name)`,
	`CREATE TABLE IF NOT EXISTS transactions (
  id           TEXT PRIMARY KEY,
  wallet_id    TEXT NOT NULL REFERENCES wallets(wallet_id),
  tenant_id    TEXT NOT NULL,
  type         TEXT NOT NULL,
  amount_minor BIGINT NOT NULL,
  description  TEXT NOT NULL DEFAULT '',
  reference_id TEXT NOT NULL DEFAULT '',
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_wallet ON transactions (wallet_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS call_logs (
  id                   TEXT PRIMARY KEY,
  agent_id             TEXT NOT NULL REFERENCES agents(agent_id),
  start_time           TIMESTAMPTZ NOT NULL,
  end_time             TIMESTAMPTZ,
  duration_seconds     INTEGER NOT NULL DEFAULT 0,
  status               TEXT NOT NULL,
  caller_id            TEXT,
  ttft_ms              INTEGER,
  ttfc_ms              INTEGER,
  sentiment_score      DOUBLE PRECISION,
  frustration_velocity TEXT,
  agent_iq             DOUBLE PRECISION,
  avg_sentiment        DOUBLE PRECISION,
  correction_count     INTEGER NOT NULL DEFAULT 0,
  is_churn_risk        BOOLEAN NOT NULL DEFAULT FALSE,
  is_hot_lead          BOOLEAN NOT NULL DEFAULT FALSE,
  priority_level       TEXT NOT NULL DEFAULT 'NORMAL',
  cost_minor           BIGINT NOT NULL DEFAULT 0,
  created_at           TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS idx_call_logs_agent_start ON call_logs (agent_id, start_time DESC)`,
	`CREATE TABLE IF NOT EXISTS audit_events (
  id            TEXT PRIMARY KEY,
  tenant_id     TEXT NOT NULL,
  type          TEXT NOT NULL,
  session_id    TEXT,
  agent_id      TEXT,
  wallet_id     TEXT,
  actor_user_id TEXT,
  actor_role    TEXT,
  message       TEXT NOT NULL DEFAULT '',
  metadata      TEXT NOT NULL DEFAULT '',
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	db, err := utils.OpenPostgres(ctx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Error("schema statement failed", "err", err)
			os.Exit(1)
		}
	}
	log.Info("schema ready")

	if err := seedDemo(ctx, db, cfg.Billing.DefaultRatePerMinuteMinor, cfg.Billing.Currency); err != nil {
		log.Error("demo seed failed", "err", err)
		os.Exit(1)
	}
	log.Info("demo tenant seeded", "tenant_id", demoTenantID, "agent_id", demoAgentID)
}

const (
	demoTenantID = "tenant-demo"
	demoWalletID = "wallet-demo"
	demoAgentID  = "agent-demo"
)

// seedDemo inserts a demo tenant, a funded wallet, and one active agent.
// Re-running is safe: every insert is ON CONFLICT DO NOTHING.
func seedDemo(ctx context.Context, db *sql.DB, rateMinor int64, currency string) error {
	return utils.WithTx(ctx, db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		now := time.Now().UTC()

		if _, err := tx.ExecContext(ctx, `
INSERT INTO tenants (tenant_id, name, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (tenant_id) DO NOTHING`,
			demoTenantID, "Demo Tenant", now); err != nil {
			return err
		}

		// 50 euro opening balance.
		if _, err := tx.ExecContext(ctx, `
INSERT INTO wallets (wallet_id, tenant_id, balance_minor, currency, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)
ON CONFLICT (wallet_id) DO NOTHING`,
			demoWalletID, demoTenantID, int64(5000), currency, now); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO agents (agent_id, tenant_id, agent_name, wallet_id, rate_per_minute_minor, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, TRUE, $6)
ON CONFLICT (agent_id) DO NOTHING`,
			demoAgentID, demoTenantID, "Demo Receptionist", demoWalletID, rateMinor, now); err != nil {
			return err
		}

		// One historical call so the dashboard is not empty on first load.
		if _, err := tx.ExecContext(ctx, `
INSERT INTO call_logs (
  id, agent_id, start_time, end_time, duration_seconds, status, caller_id,
  correction_count, is_churn_risk, is_hot_lead, priority_level, cost_minor, created_at
) VALUES ($1, $2, $3, $4, $5, 'completed', '+3900000000', 0, FALSE, FALSE, 'NORMAL', $6, $4)
ON CONFLICT (id) DO NOTHING`,
			"demo-call-seed",
			demoAgentID,
			now.Add(-10*time.Minute),
			now.Add(-8*time.Minute),
			120,
			int64(50),
		); err != nil {
			return err
		}
		return nil
	})
}
