package wallet

import "time"

// Wallet is a tenant's prepaid balance, debited per ingested call.
//
// Money invariants:
// - The balance changes only together with a Transaction row.
// - Balance updates are atomic in-database increments, never read-then-write.
//
// The balance MAY go negative: ingestion never rejects a call for lack of
// funds. Overdraft handling is a tenant-lifecycle concern, not an ingestion
// concern.
type Wallet struct {
	WalletID string `json:"wallet_id" db:"wallet_id"`
	TenantID string `json:"tenant_id" db:"tenant_id"`

	// BalanceMinor is the current balance in minor units (euro cents).
	BalanceMinor int64  `json:"balance_minor" db:"balance_minor"`
	Currency     string `json:"currency" db:"currency"`

	AutoRechargeEnabled     bool  `json:"is_auto_recharge_enabled" db:"is_auto_recharge_enabled"`
	AutoRechargeAmountMinor int64 `json:"auto_recharge_amount_minor" db:"auto_recharge_amount_minor"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Transaction is an immutable append-only ledger entry. One deduction row is
// written per successfully ingested call that resolved to a wallet.
//
// Traceability invariant: ReferenceID carries the session id of the call that
// caused the entry, so every balance change can be tied back to exactly one
// call record.
type Transaction struct {
	ID       string `json:"id" db:"id"`
	WalletID string `json:"wallet_id" db:"wallet_id"`
	TenantID string `json:"tenant_id" db:"tenant_id"`

	Type TransactionType `json:"type" db:"type"`

	// AmountMinor is signed: deductions are negative, credits positive.
	AmountMinor int64 `json:"amount_minor" db:"amount_minor"`

	Description string `json:"description,omitempty" db:"description"`
	ReferenceID string `json:"reference_id,omitempty" db:"reference_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type TransactionType string

const (
	TransactionTypeDeduction TransactionType = "deduction"
	TransactionTypeCredit    TransactionType = "credit"
)
