package wallet

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// NOTE: This repository assumes the following tables exist:
// - wallets
// - transactions (immutable append-only)
// (see cmd/seed for the bootstrap DDL)

func findWalletTx(ctx context.Context, tx *sql.Tx, walletID string) (Wallet, bool, error) {
	const q = `
SELECT wallet_id, tenant_id, balance_minor, currency,
       is_auto_recharge_enabled, auto_recharge_amount_minor, created_at, updated_at
FROM wallets
WHERE wallet_id = $1
`
	var w Wallet
	err := tx.QueryRowContext(ctx, q, walletID).Scan(
		&w.WalletID,
		&w.TenantID,
		&w.BalanceMinor,
		&w.Currency,
		&w.AutoRechargeEnabled,
		&w.AutoRechargeAmountMinor,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Wallet{}, false, nil
		}
		return Wallet{}, false, err
	}
	return w, true, nil
}

// applyBalanceDelta adjusts the balance as a single in-database increment so
// concurrent debits to one wallet serialize on the row instead of racing a
// stale read. Negative deltas below zero are allowed.
func applyBalanceDelta(ctx context.Context, tx *sql.Tx, walletID string, deltaMinor int64, now time.Time) (Wallet, error) {
	const q = `
UPDATE wallets
SET balance_minor = balance_minor + $2,
    updated_at = $3
WHERE wallet_id = $1
RETURNING wallet_id, tenant_id, balance_minor, currency,
          is_auto_recharge_enabled, auto_recharge_amount_minor, created_at, updated_at
`
	var w Wallet
	err := tx.QueryRowContext(ctx, q, walletID, deltaMinor, now).Scan(
		&w.WalletID,
		&w.TenantID,
		&w.BalanceMinor,
		&w.Currency,
		&w.AutoRechargeEnabled,
		&w.AutoRechargeAmountMinor,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Wallet{}, ErrNotFound
		}
		return Wallet{}, err
	}
	return w, nil
}

func insertTransaction(ctx context.Context, tx *sql.Tx, t Transaction) error {
	const q = `
INSERT INTO transactions (
  id, wallet_id, tenant_id, type, amount_minor, description, reference_id, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8
)
`
	_, err := tx.ExecContext(ctx, q,
		t.ID,
		t.WalletID,
		t.TenantID,
		t.Type,
		t.AmountMinor,
		t.Description,
		t.ReferenceID,
		t.CreatedAt,
	)
	return err
}

func getWallet(ctx context.Context, db *sql.DB, tenantID, walletID string) (Wallet, error) {
	const q = `
SELECT wallet_id, tenant_id, balance_minor, currency,
       is_auto_recharge_enabled, auto_recharge_amount_minor, created_at, updated_at
FROM wallets
WHERE tenant_id = $1 AND wallet_id = $2
`
	var w Wallet
	err := db.QueryRowContext(ctx, q, tenantID, walletID).Scan(
		&w.WalletID,
		&w.TenantID,
		&w.BalanceMinor,
		&w.Currency,
		&w.AutoRechargeEnabled,
		&w.AutoRechargeAmountMinor,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Wallet{}, ErrNotFound
		}
		return Wallet{}, err
	}
	return w, nil
}

func listTransactions(ctx context.Context, db *sql.DB, tenantID, walletID string, limit int) ([]Transaction, error) {
	const q = `
SELECT id, wallet_id, tenant_id, type, amount_minor, description, reference_id, created_at
FROM transactions
WHERE tenant_id = $1 AND wallet_id = $2
ORDER BY created_at DESC
LIMIT $3
`
	rows, err := db.QueryContext(ctx, q, tenantID, walletID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(
			&t.ID,
			&t.WalletID,
			&t.TenantID,
			&t.Type,
			&t.AmountMinor,
			&t.Description,
			&t.ReferenceID,
			&t.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
