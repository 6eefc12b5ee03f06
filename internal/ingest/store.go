package ingest

import (
	"context"
	"database/sql"
	"errors"

	"voicebilling-platform/internal/calls"
	"voicebilling-platform/internal/wallet"
	"voicebilling-platform/pkg/utils"
)

// ErrDuplicateSession signals that a call record for the session id already
// exists. It is surfaced by SaveCall when the storage uniqueness constraint
// fires at commit time (a concurrent delivery raced past the advisory check).
var ErrDuplicateSession = errors.New("duplicate session")

// Store is the persistence boundary of the orchestrator.
//
// SaveCall must be atomic: the call record insert and the wallet debit (when
// debit is non-nil) commit or roll back as one unit. No call record may ever
// persist while its debit rolled back, and vice versa.
type Store interface {
	SessionExists(ctx context.Context, sessionID string) (bool, error)
	SaveCall(ctx context.Context, rec calls.CallRecord, debit *wallet.DebitRequest) error
}

// PostgresStore persists ingestions via database/sql in one transaction.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	return calls.Exists(ctx, s.db, sessionID)
}

func (s *PostgresStore) SaveCall(ctx context.Context, rec calls.CallRecord, debit *wallet.DebitRequest) error {
	err := utils.WithTx(ctx, s.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		if err := calls.Insert(ctx, tx, rec); err != nil {
			return err
		}
		if debit == nil {
			return nil
		}
		_, _, err := wallet.DebitForCall(ctx, tx, *debit)
		if errors.Is(err, wallet.ErrNotFound) {
			// Dangling wallet reference on the agent: persist the call,
			// skip billing. Mirrors wallet-less agents.
			return nil
		}
		return err
	})
	if calls.IsUniqueViolation(err) {
		return ErrDuplicateSession
	}
	return err
}
