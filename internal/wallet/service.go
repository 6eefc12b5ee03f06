package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"voicebilling-platform/pkg/utils"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("wallet not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Service provides wallet reads and credits for the dashboard API.
//
// Call debits do NOT go through this service: they are posted by the
// ingestion orchestrator inside its own transaction via DebitForCall, so the
// call record and the debit commit or roll back together.
type Service struct {
	db *sql.DB
	// clock is injectable for deterministic tests.
	clock func() time.Time
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db, clock: time.Now}
}

func (s *Service) GetWallet(ctx context.Context, tenantID, walletID string) (Wallet, error) {
	if tenantID == "" || walletID == "" {
		return Wallet{}, ErrInvalidArgument
	}
	return getWallet(ctx, s.db, tenantID, walletID)
}

func (s *Service) ListTransactions(ctx context.Context, tenantID, walletID string, limit int) ([]Transaction, error) {
	if tenantID == "" || walletID == "" {
		return nil, ErrInvalidArgument
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return listTransactions(ctx, s.db, tenantID, walletID, limit)
}

type CreditRequest struct {
	AmountMinor int64  `json:"amount_minor"`
	Description string `json:"description,omitempty"`
	ReferenceID string `json:"reference_id,omitempty"`
}

// Credit tops up a wallet: ledger entry plus atomic balance increment in one
// transaction.
func (s *Service) Credit(ctx context.Context, tenantID, walletID string, req CreditRequest) (Transaction, Wallet, error) {
	if tenantID == "" || walletID == "" || req.AmountMinor <= 0 {
		return Transaction{}, Wallet{}, ErrInvalidArgument
	}

	now := s.clock().UTC()
	entry := Transaction{
		ID:          uuid.NewString(),
		WalletID:    walletID,
		TenantID:    tenantID,
		Type:        TransactionTypeCredit,
		AmountMinor: req.AmountMinor,
		Description: req.Description,
		ReferenceID: req.ReferenceID,
		CreatedAt:   now,
	}

	var out Wallet
	err := utils.WithTx(ctx, s.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		w, ok, err := findWalletTx(ctx, tx, walletID)
		if err != nil {
			return err
		}
		if !ok || w.TenantID != tenantID {
			return ErrNotFound
		}
		if err := insertTransaction(ctx, tx, entry); err != nil {
			return err
		}
		out, err = applyBalanceDelta(ctx, tx, walletID, req.AmountMinor, now)
		return err
	})
	if err != nil {
		return Transaction{}, Wallet{}, err
	}
	return entry, out, nil
}

// DebitRequest describes the call-cost deduction posted during ingestion.
type DebitRequest struct {
	WalletID        string
	SessionID       string
	DurationSeconds int
	AmountMinor     int64
	Now             time.Time
}

// DebitForCall posts a call-cost deduction inside the caller's transaction.
// It returns the ledger entry and the wallet state after the debit.
//
// The wallet row is adjusted with a single atomic increment; no balance is
// read before writing, so concurrent debits to one wallet cannot lose
// updates. The balance is allowed to go negative.
func DebitForCall(ctx context.Context, tx *sql.Tx, req DebitRequest) (Transaction, Wallet, error) {
	if req.WalletID == "" || req.SessionID == "" || req.AmountMinor < 0 {
		return Transaction{}, Wallet{}, ErrInvalidArgument
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	w, ok, err := findWalletTx(ctx, tx, req.WalletID)
	if err != nil {
		return Transaction{}, Wallet{}, err
	}
	if !ok {
		return Transaction{}, Wallet{}, ErrNotFound
	}

	entry := Transaction{
		ID:          uuid.NewString(),
		WalletID:    w.WalletID,
		TenantID:    w.TenantID,
		Type:        TransactionTypeDeduction,
		AmountMinor: -req.AmountMinor,
		Description: debitDescription(req.SessionID, req.DurationSeconds),
		ReferenceID: req.SessionID,
		CreatedAt:   now,
	}
	if err := insertTransaction(ctx, tx, entry); err != nil {
		return Transaction{}, Wallet{}, err
	}

	after, err := applyBalanceDelta(ctx, tx, req.WalletID, -req.AmountMinor, now)
	if err != nil {
		return Transaction{}, Wallet{}, err
	}
	return entry, after, nil
}

func debitDescription(sessionID string, durationSeconds int) string {
	short := sessionID
	if len(short) > 12 {
		short = short[:12] + "..."
	}
	return fmt.Sprintf("Call %s (%ds)", short, durationSeconds)
}
