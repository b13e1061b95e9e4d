package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/upb/casting-agency/repositories"
	"go.uber.org/zap"
)

type txContextKey struct{}

// TransactionManager runs work inside database transactions
type TransactionManager struct {
	db     *DB
	logger *zap.Logger
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(db *DB, logger *zap.Logger) repositories.TransactionManager {
	return &TransactionManager{
		db:     db,
		logger: logger,
	}
}

// Begin starts a new transaction
func (tm *TransactionManager) Begin(ctx context.Context) (repositories.Transaction, error) {
	sqlTx, err := tm.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	tx := &Transaction{tx: sqlTx, logger: tm.logger}
	tx.ctx = context.WithValue(ctx, txContextKey{}, tx)
	return tx, nil
}

// InTransaction executes fn within a transaction. A context that already
// carries a transaction joins it instead of opening a nested one.
func (tm *TransactionManager) InTransaction(ctx context.Context, fn func(ctx context.Context, tx repositories.Transaction) error) error {
	if outer, ok := transactionFromContext(ctx); ok {
		return fn(ctx, outer)
	}

	tx, err := tm.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(tx.Context(), tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			tm.logger.Error("failed to rollback transaction",
				zap.Error(rbErr),
				zap.NamedError("original_error", err),
			)
		}
		return err
	}

	return tx.Commit()
}

// Transaction wraps *sql.Tx
type Transaction struct {
	tx     *sql.Tx
	ctx    context.Context
	logger *zap.Logger
}

// Commit commits the transaction
func (t *Transaction) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback rolls back the transaction; rolling back a finished one is a no-op
func (t *Transaction) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	t.logger.Debug("transaction rolled back")
	return nil
}

// Context returns a context carrying this transaction
func (t *Transaction) Context() context.Context {
	return t.ctx
}

func transactionFromContext(ctx context.Context) (*Transaction, bool) {
	tx, ok := ctx.Value(txContextKey{}).(*Transaction)
	return tx, ok
}

// Executor is satisfied by both *sql.DB and *sql.Tx
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// GetExecutor returns the transaction carried by ctx, or the pool
func GetExecutor(ctx context.Context, db *DB) Executor {
	if tx, ok := transactionFromContext(ctx); ok {
		return tx.tx
	}
	return db.DB
}
